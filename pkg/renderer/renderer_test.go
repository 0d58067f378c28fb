package renderer

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/mkral/go-path-tracer/pkg/core"
	"github.com/mkral/go-path-tracer/pkg/geometry"
	"github.com/mkral/go-path-tracer/pkg/material"
)

func glowTestScene() *testScene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60,
		AspectRatio: 16.0 / 9.0,
	})
	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 1, material.NewLambertian(core.NewVec3(1, 0, 0))),
		geometry.NewSphere(core.NewVec3(0, 4, -1), 1.5, material.NewEmissive(core.NewVec3(3, 3, 3))),
	)
	return &testScene{camera: camera, world: world}
}

func smallConfig() Config {
	config := DefaultConfig()
	config.Width = 16
	config.Height = 9
	config.SamplesPerPixel = 4
	return config
}

func TestGammaByte(t *testing.T) {
	tests := []struct {
		name     string
		channel  float64
		expected uint8
	}{
		{"Zero maps to 0", 0.0, 0},
		{"One maps to 255", 1.0, 255},
		{"Above one clamps to 255", 4.0, 255},
		{"Far above one clamps without wraparound", 1e12, 255},
		{"Negative clamps to 0", -0.5, 0},
		{"NaN clamps to 0", math.NaN(), 0},
		{"Quarter maps through sqrt", 0.25, 127}, // 255*0.5 truncated
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gammaByte(tt.channel); got != tt.expected {
				t.Errorf("gammaByte(%f): expected %d, got %d", tt.channel, tt.expected, got)
			}
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	config := smallConfig()
	config.SamplesPerPixel = 1

	render := func() []byte {
		rt := NewRaytracer(glowTestScene(), config, nil)
		if _, _, err := rt.Render(); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return rt.PixelBuffer()
	}

	first := render()
	second := render()
	if !bytes.Equal(first, second) {
		t.Error("Same seed must reproduce the same pixel buffer bit-for-bit")
	}
}

func TestRender_WorkerCountDoesNotChangeImage(t *testing.T) {
	config := smallConfig()

	render := func(workers int) []byte {
		c := config
		c.NumWorkers = workers
		rt := NewRaytracer(glowTestScene(), c, nil)
		if _, _, err := rt.Render(); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return rt.PixelBuffer()
	}

	single := render(1)
	for _, workers := range []int{2, 4, 8} {
		if !bytes.Equal(single, render(workers)) {
			t.Errorf("Image with %d workers differs from single-worker render", workers)
		}
	}
}

func TestRender_SeedChangesImage(t *testing.T) {
	config := smallConfig()

	render := func(seed int64) []byte {
		c := config
		c.Seed = seed
		rt := NewRaytracer(glowTestScene(), c, nil)
		if _, _, err := rt.Render(); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return rt.PixelBuffer()
	}

	if bytes.Equal(render(1), render(2)) {
		t.Error("Different seeds should produce different sample noise")
	}
}

func TestRender_Stats(t *testing.T) {
	config := smallConfig()
	rt := NewRaytracer(glowTestScene(), config, nil)

	_, stats, err := rt.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	expectedPixels := config.Width * config.Height
	if stats.TotalPixels != expectedPixels {
		t.Errorf("Expected %d pixels, got %d", expectedPixels, stats.TotalPixels)
	}
	if stats.TotalSamples != expectedPixels*config.SamplesPerPixel {
		t.Errorf("Expected %d samples, got %d", expectedPixels*config.SamplesPerPixel, stats.TotalSamples)
	}
	if stats.AverageSamples != float64(config.SamplesPerPixel) {
		t.Errorf("Expected average %d samples/pixel, got %f", config.SamplesPerPixel, stats.AverageSamples)
	}
}

func TestPixelBuffer_LayoutAndOrder(t *testing.T) {
	// Camera fully enclosed by a red light: every sample returns (1,0,0),
	// so every pixel must be the byte triplet (B,G,R) = (0,0,255).
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60,
		AspectRatio: 1,
	})
	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 10, material.NewEmissive(core.NewVec3(1, 0, 0))),
	)

	config := smallConfig()
	config.Width = 4
	config.Height = 3
	config.SamplesPerPixel = 1
	rt := NewRaytracer(&testScene{camera: camera, world: world}, config, nil)
	if _, _, err := rt.Render(); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	buf := rt.PixelBuffer()
	if len(buf) != config.Width*config.Height*3 {
		t.Fatalf("Expected buffer of %d bytes, got %d", config.Width*config.Height*3, len(buf))
	}

	for i := 0; i < len(buf); i += 3 {
		b, g, r := buf[i], buf[i+1], buf[i+2]
		if b != 0 || g != 0 || r != 255 {
			t.Fatalf("Pixel %d: expected BGR (0,0,255), got (%d,%d,%d)", i/3, b, g, r)
		}
	}
}

func TestSamplesForPass(t *testing.T) {
	config := smallConfig()
	config.SamplesPerPixel = 100
	config.MaxPasses = 5
	rt := NewRaytracer(glowTestScene(), config, nil)

	if got := rt.samplesForPass(1); got != 1 {
		t.Errorf("First pass should be a 1-sample preview, got %d", got)
	}
	if got := rt.samplesForPass(5); got != 100 {
		t.Errorf("Final pass should reach the full budget, got %d", got)
	}
	previous := 0
	for pass := 1; pass <= 5; pass++ {
		target := rt.samplesForPass(pass)
		if target <= previous {
			t.Errorf("Pass targets should increase: pass %d target %d after %d", pass, target, previous)
		}
		previous = target
	}

	// Single-pass renders skip the preview schedule
	config.MaxPasses = 1
	rt = NewRaytracer(glowTestScene(), config, nil)
	if got := rt.samplesForPass(1); got != 100 {
		t.Errorf("Single pass should use the full budget, got %d", got)
	}
}

func TestRenderProgressive(t *testing.T) {
	config := smallConfig()
	config.SamplesPerPixel = 8
	config.MaxPasses = 3
	rt := NewRaytracer(glowTestScene(), config, nil)

	passChan, errChan := rt.RenderProgressive(context.Background())

	var passes []PassResult
	for result := range passChan {
		passes = append(passes, result)
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Progressive render failed: %v", err)
	}

	if len(passes) != 3 {
		t.Fatalf("Expected 3 passes, got %d", len(passes))
	}
	for i, pass := range passes {
		if pass.PassNumber != i+1 {
			t.Errorf("Pass %d numbered %d", i, pass.PassNumber)
		}
		if pass.Image == nil {
			t.Errorf("Pass %d missing image", i)
		}
		isLast := i == len(passes)-1
		if pass.IsLast != isLast {
			t.Errorf("Pass %d IsLast = %v", i, pass.IsLast)
		}
	}

	final := passes[len(passes)-1].Stats
	expectedSamples := config.Width * config.Height * config.SamplesPerPixel
	if final.TotalSamples != expectedSamples {
		t.Errorf("Expected %d total samples after the final pass, got %d", expectedSamples, final.TotalSamples)
	}
}

func TestRenderProgressive_Cancellation(t *testing.T) {
	config := smallConfig()
	config.MaxPasses = 3
	rt := NewRaytracer(glowTestScene(), config, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, errChan := rt.RenderProgressive(ctx)
	for range passChan {
	}
	if err := <-errChan; err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
