package renderer

import "github.com/mkral/go-path-tracer/pkg/core"

// RenderStats contains statistics about a render or a single pass
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken so far
	AverageSamples float64 // Average samples per pixel
	TargetSamples  int     // Samples per pixel this pass aimed for
}

// PixelStats accumulates radiance samples for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // Sum of linear radiance samples
	SampleCount int       // Number of samples taken
}

// AddSample adds a new radiance sample to the pixel
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// Color returns the current average radiance for this pixel
func (ps *PixelStats) Color() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
