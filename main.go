package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkral/go-path-tracer/pkg/bmp"
	"github.com/mkral/go-path-tracer/pkg/geometry"
	"github.com/mkral/go-path-tracer/pkg/renderer"
	"github.com/mkral/go-path-tracer/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "default", "Scene type: 'default' or 'glow'")
	width := flag.Int("width", 960, "Image width in pixels")
	height := flag.Int("height", 540, "Image height in pixels")
	samples := flag.Int("samples", 100, "Samples per pixel")
	depth := flag.Int("depth", 25, "Maximum ray bounce depth")
	workers := flag.Int("workers", 4, "Number of parallel workers (0 = CPU count)")
	seed := flag.Int64("seed", 42, "Render seed; the same seed reproduces the same image")
	output := flag.String("output", "render.bmp", "Output file (.bmp or .png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Path Tracer")
		fmt.Println("Usage: pathtracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default - metal, glass and diffuse spheres under two sphere lights")
		fmt.Println("  glow    - single diffuse sphere with one light, renders quickly")
		return
	}

	aspectRatio := float64(*width) / float64(*height)
	selectedScene, err := createScene(*sceneType, aspectRatio)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	config := renderer.Config{
		Width:           *width,
		Height:          *height,
		SamplesPerPixel: *samples,
		MaxDepth:        *depth,
		MaxPasses:       1,
		NumWorkers:      *workers,
		Seed:            *seed,
	}

	raytracer := renderer.NewRaytracer(selectedScene, config, nil)

	fmt.Printf("Rendering %dx%d at %d samples/pixel...\n", *width, *height, *samples)
	startTime := time.Now()
	_, stats, err := raytracer.Render()
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render completed in %v (%.1f samples/pixel)\n",
		time.Since(startTime), stats.AverageSamples)

	if err := writeImage(*output, raytracer); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Image saved as %s\n", *output)
}

// createScene builds a scene by name with the camera matched to the
// output aspect ratio
func createScene(sceneType string, aspectRatio float64) (*scene.Scene, error) {
	overrides := geometry.CameraConfig{AspectRatio: aspectRatio}

	switch sceneType {
	case "default":
		return scene.NewDefaultScene(overrides), nil
	case "glow":
		return scene.NewGlowScene(overrides), nil
	default:
		return nil, fmt.Errorf("unknown scene type %q", sceneType)
	}
}

// writeImage encodes the rendered image in the format implied by the
// file extension
func writeImage(path string, raytracer *renderer.Raytracer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	config := raytracer.Config()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return bmp.Encode(file, raytracer.PixelBuffer(), config.Width, config.Height)
	case ".png":
		return png.Encode(file, raytracer.Image())
	default:
		return fmt.Errorf("unsupported output format %q (use .bmp or .png)", filepath.Ext(path))
	}
}
