// Package bmp writes 24-bit uncompressed Windows bitmaps.
package bmp

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	bytesPerPixel  = 3
	fileHeaderSize = 14
	infoHeaderSize = 40
)

// Encode writes pixels as a 24-bit uncompressed BMP. The buffer holds
// (blue, green, red) triplets, row-major, top row first; rows are written
// bottom-up with 4-byte alignment padding as the format requires.
func Encode(w io.Writer, pixels []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	if len(pixels) != width*height*bytesPerPixel {
		return fmt.Errorf("pixel buffer has %d bytes, want %d for %dx%d",
			len(pixels), width*height*bytesPerPixel, width, height)
	}

	rowSize := width * bytesPerPixel
	padding := (4 - rowSize%4) % 4
	stride := rowSize + padding
	fileSize := fileHeaderSize + infoHeaderSize + stride*height

	var header [fileHeaderSize + infoHeaderSize]byte

	// BITMAPFILEHEADER
	header[0] = 'B'
	header[1] = 'M'
	binary.LittleEndian.PutUint32(header[2:6], uint32(fileSize))
	binary.LittleEndian.PutUint32(header[10:14], fileHeaderSize+infoHeaderSize)

	// BITMAPINFOHEADER
	binary.LittleEndian.PutUint32(header[14:18], infoHeaderSize)
	binary.LittleEndian.PutUint32(header[18:22], uint32(width))
	binary.LittleEndian.PutUint32(header[22:26], uint32(height))
	binary.LittleEndian.PutUint16(header[26:28], 1)                 // Color planes
	binary.LittleEndian.PutUint16(header[28:30], 8*bytesPerPixel)   // Bits per pixel

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing BMP header: %w", err)
	}

	// Positive height means bottom-up rows
	pad := make([]byte, padding)
	for y := height - 1; y >= 0; y-- {
		row := pixels[y*rowSize : (y+1)*rowSize]
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("writing BMP row %d: %w", y, err)
		}
		if padding > 0 {
			if _, err := w.Write(pad); err != nil {
				return fmt.Errorf("writing BMP row %d padding: %w", y, err)
			}
		}
	}

	return nil
}
