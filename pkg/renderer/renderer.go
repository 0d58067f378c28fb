package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/mkral/go-path-tracer/pkg/core"
	"github.com/mkral/go-path-tracer/pkg/geometry"
)

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Total samples per pixel
	MaxDepth        int   // Maximum ray bounce depth
	MaxPasses       int   // Progressive passes (1 = render everything at once)
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	Seed            int64 // Render seed; same seed produces the same image
}

// DefaultConfig returns the reference render settings
func DefaultConfig() Config {
	return Config{
		Width:           960,
		Height:          540,
		SamplesPerPixel: 100,
		MaxDepth:        25,
		MaxPasses:       1,
		NumWorkers:      4,
		Seed:            42,
	}
}

// Scene interface to avoid a circular import with the scene package
type Scene interface {
	GetCamera() *geometry.Camera
	GetWorld() *geometry.World
}

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Raytracer accumulates path-traced samples for a single render. The scene
// and camera are immutable during rendering; each row of the pixel stats
// array is written by exactly one worker at a time.
type Raytracer struct {
	scene   Scene
	camera  *geometry.Camera
	world   *geometry.World
	config  Config
	pixels  [][]PixelStats
	rowRand []*rand.Rand
	logger  core.Logger
}

// NewRaytracer creates a raytracer for one render of the given scene
func NewRaytracer(scene Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	pixels := make([][]PixelStats, config.Height)
	for y := range pixels {
		pixels[y] = make([]PixelStats, config.Width)
	}

	// One deterministic generator per row: the image depends only on the
	// seed, never on worker count or scheduling.
	rowRand := make([]*rand.Rand, config.Height)
	for y := range rowRand {
		rowRand[y] = rand.New(rand.NewSource(config.Seed + int64(y)*1000003))
	}

	return &Raytracer{
		scene:   scene,
		camera:  scene.GetCamera(),
		world:   scene.GetWorld(),
		config:  config,
		pixels:  pixels,
		rowRand: rowRand,
		logger:  logger,
	}
}

// Config returns the render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// renderRow takes samples for every pixel of row y until each pixel has
// reached targetSamples, returning the number of samples taken.
func (rt *Raytracer) renderRow(y, targetSamples int) int {
	random := rt.rowRand[y]
	width := float64(rt.config.Width)
	height := float64(rt.config.Height)

	samples := 0
	for x := 0; x < rt.config.Width; x++ {
		ps := &rt.pixels[y][x]
		for ps.SampleCount < targetSamples {
			// Jitter the sample position within the pixel
			u := (float64(x) + random.Float64()) / width
			v := (float64(rt.config.Height-1-y) + random.Float64()) / height

			ray := rt.camera.GetRay(u, v, random)
			ps.AddSample(rt.RayColor(ray, rt.config.MaxDepth, random))
			samples++
		}
	}
	return samples
}

// renderPass brings every pixel up to targetSamples using the worker pool
func (rt *Raytracer) renderPass(pool *WorkerPool, targetSamples int) (RenderStats, error) {
	for y := 0; y < rt.config.Height; y++ {
		pool.Submit(RowTask{Y: y, TargetSamples: targetSamples})
	}

	for i := 0; i < rt.config.Height; i++ {
		if _, ok := pool.Result(); !ok {
			return RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
	}

	return rt.currentStats(targetSamples), nil
}

// currentStats summarizes the accumulated pixel statistics
func (rt *Raytracer) currentStats(targetSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels:   rt.config.Width * rt.config.Height,
		TargetSamples: targetSamples,
	}
	for y := range rt.pixels {
		for x := range rt.pixels[y] {
			stats.TotalSamples += rt.pixels[y][x].SampleCount
		}
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return stats
}

// Render renders the full image in a single pass
func (rt *Raytracer) Render() (*image.RGBA, RenderStats, error) {
	pool := NewWorkerPool(rt, rt.config.NumWorkers)
	pool.Start()
	defer pool.Stop()

	stats, err := rt.renderPass(pool, rt.config.SamplesPerPixel)
	if err != nil {
		return nil, RenderStats{}, err
	}
	return rt.Image(), stats, nil
}

// PassResult contains the result of a single progressive pass
type PassResult struct {
	PassNumber  int
	TotalPasses int
	Image       *image.RGBA
	Stats       RenderStats
	IsLast      bool
}

// samplesForPass calculates the target total samples for a given pass:
// a one-sample preview first, then the remaining budget split evenly,
// with the final pass absorbing the remainder.
func (rt *Raytracer) samplesForPass(passNumber int) int {
	if rt.config.MaxPasses <= 1 || rt.config.SamplesPerPixel <= rt.config.MaxPasses {
		return rt.config.SamplesPerPixel
	}
	if passNumber == 1 {
		return 1
	}
	if passNumber >= rt.config.MaxPasses {
		return rt.config.SamplesPerPixel
	}

	perPass := (rt.config.SamplesPerPixel - 1) / (rt.config.MaxPasses - 1)
	return 1 + (passNumber-1)*perPass
}

// RenderProgressive renders in passes, emitting an image after each one.
// The caller reads pass results until the channel closes; cancelling the
// context stops the render between passes.
func (rt *Raytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		pool := NewWorkerPool(rt, rt.config.NumWorkers)
		pool.Start()
		defer pool.Stop()

		rt.logger.Printf("Starting progressive render: %d passes, %d samples/pixel, %d workers\n",
			rt.config.MaxPasses, rt.config.SamplesPerPixel, pool.NumWorkers())

		for pass := 1; pass <= rt.config.MaxPasses; pass++ {
			select {
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()
			targetSamples := rt.samplesForPass(pass)

			stats, err := rt.renderPass(pool, targetSamples)
			if err != nil {
				errChan <- err
				return
			}

			rt.logger.Printf("Pass %d/%d completed in %v (%.1f samples/pixel)\n",
				pass, rt.config.MaxPasses, time.Since(startTime), stats.AverageSamples)

			isLast := pass == rt.config.MaxPasses || targetSamples >= rt.config.SamplesPerPixel
			result := PassResult{
				PassNumber:  pass,
				TotalPasses: rt.config.MaxPasses,
				Image:       rt.Image(),
				Stats:       stats,
				IsLast:      isLast,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if isLast {
				return
			}
		}
	}()

	return passChan, errChan
}

// gammaByte converts a linear radiance channel to a display byte with
// gamma-2 correction. NaN and negative radiance clamp to 0, values above
// 1.0 clamp to 255.
func gammaByte(channel float64) uint8 {
	if math.IsNaN(channel) || channel <= 0 {
		return 0
	}
	value := 255.0 * math.Sqrt(channel)
	if value > 255.0 {
		value = 255.0
	}
	return uint8(value)
}

// PixelBuffer returns the gamma-corrected image as (blue, green, red) byte
// triplets, row-major, top row first. This is the layout the BMP writer
// consumes.
func (rt *Raytracer) PixelBuffer() []byte {
	buf := make([]byte, rt.config.Height*rt.config.Width*3)
	i := 0
	for y := 0; y < rt.config.Height; y++ {
		for x := 0; x < rt.config.Width; x++ {
			c := rt.pixels[y][x].Color()
			buf[i] = gammaByte(c.Z)
			buf[i+1] = gammaByte(c.Y)
			buf[i+2] = gammaByte(c.X)
			i += 3
		}
	}
	return buf
}

// Image assembles the current accumulated state into an RGBA image
func (rt *Raytracer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))
	for y := 0; y < rt.config.Height; y++ {
		for x := 0; x < rt.config.Width; x++ {
			c := rt.pixels[y][x].Color()
			img.SetRGBA(x, y, color.RGBA{
				R: gammaByte(c.X),
				G: gammaByte(c.Y),
				B: gammaByte(c.Z),
				A: 255,
			})
		}
	}
	return img
}
