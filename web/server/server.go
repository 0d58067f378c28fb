// Package server provides a web interface for watching renders progress.
// Clients open a websocket, send one render request, and receive an image
// update after every progressive pass.
package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mkral/go-path-tracer/pkg/geometry"
	"github.com/mkral/go-path-tracer/pkg/renderer"
	"github.com/mkral/go-path-tracer/pkg/scene"
)

// Server handles web requests for the path tracer
type Server struct {
	port     int
	upgrader websocket.Upgrader
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{
		port: port,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The preview page may be served from another origin during development
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RenderRequest is the first message a client sends on the render socket
type RenderRequest struct {
	Scene      string `json:"scene"`      // Scene name (e.g., "default")
	Width      int    `json:"width"`      // Image width
	Height     int    `json:"height"`     // Image height
	MaxSamples int    `json:"maxSamples"` // Samples per pixel
	MaxPasses  int    `json:"maxPasses"`  // Number of progressive passes
	MaxDepth   int    `json:"maxDepth"`   // Maximum ray bounce depth
	Seed       int64  `json:"seed"`       // Render seed
}

// RenderUpdate is sent to the client after each progressive pass. Type is
// "pass" for image updates and "error" when rendering fails.
type RenderUpdate struct {
	Type        string `json:"type"`
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
	Error       string `json:"error,omitempty"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	TargetSamples  int     `json:"targetSamples"`
}

// Handler returns the HTTP handler with all routes registered
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/ws/render", s.handleRenderSocket)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, `{"status":"ok"}`)
}

// handleRenderSocket runs one render per websocket connection. The client
// sends a single RenderRequest, then receives a RenderUpdate per pass until
// the final pass arrives or the client disconnects.
func (s *Server) handleRenderSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var req RenderRequest
	if err := conn.ReadJSON(&req); err != nil {
		log.Printf("Reading render request: %v", err)
		return
	}
	if err := validateRequest(&req); err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := createScene(req.Scene, float64(req.Width)/float64(req.Height))
	if err != nil {
		s.sendError(conn, err.Error())
		return
	}

	config := renderer.Config{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.MaxSamples,
		MaxDepth:        req.MaxDepth,
		MaxPasses:       req.MaxPasses,
		NumWorkers:      0, // Auto-detect
		Seed:            req.Seed,
	}
	raytracer := renderer.NewRaytracer(sceneObj, config, nil)

	// The reader goroutine exists only to detect disconnection: the
	// render loop below is the connection's single writer.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	startTime := time.Now()
	passChan, errChan := raytracer.RenderProgressive(ctx)

	for result := range passChan {
		imageData, err := imageToBase64PNG(result.Image)
		if err != nil {
			s.sendError(conn, fmt.Sprintf("Encoding image: %v", err))
			return
		}

		update := RenderUpdate{
			Type:        "pass",
			PassNumber:  result.PassNumber,
			TotalPasses: result.TotalPasses,
			ImageData:   imageData,
			Stats: Stats{
				TotalPixels:    result.Stats.TotalPixels,
				TotalSamples:   result.Stats.TotalSamples,
				AverageSamples: result.Stats.AverageSamples,
				TargetSamples:  result.Stats.TargetSamples,
			},
			IsComplete: result.IsLast,
			ElapsedMs:  time.Since(startTime).Milliseconds(),
		}
		if err := conn.WriteJSON(update); err != nil {
			cancel()
			return
		}
	}

	if err := <-errChan; err != nil && err != context.Canceled {
		s.sendError(conn, fmt.Sprintf("Render error: %v", err))
	}
}

// validateRequest fills in defaults and rejects out-of-range values
func validateRequest(req *RenderRequest) error {
	if req.Scene == "" {
		req.Scene = "default"
	}
	var err error
	if req.Width, err = validateIntField("width", req.Width, 400, 16, 2000); err != nil {
		return err
	}
	if req.Height, err = validateIntField("height", req.Height, 300, 16, 2000); err != nil {
		return err
	}
	if req.MaxSamples, err = validateIntField("maxSamples", req.MaxSamples, 50, 1, 10000); err != nil {
		return err
	}
	if req.MaxPasses, err = validateIntField("maxPasses", req.MaxPasses, 7, 1, 10000); err != nil {
		return err
	}
	if req.MaxDepth, err = validateIntField("maxDepth", req.MaxDepth, 25, 1, 1000); err != nil {
		return err
	}
	if req.Seed == 0 {
		req.Seed = 42
	}

	if req.Width*req.Height > 800*600 && req.MaxSamples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}
	return nil
}

// validateIntField applies a default for the zero value and range-checks the rest
func validateIntField(name string, value, defaultValue, min, max int) (int, error) {
	if value == 0 {
		return defaultValue, nil
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", name, min, max, value)
	}
	return value, nil
}

// createScene creates a scene based on the scene name
func createScene(sceneName string, aspectRatio float64) (*scene.Scene, error) {
	overrides := geometry.CameraConfig{AspectRatio: aspectRatio}

	switch sceneName {
	case "default":
		return scene.NewDefaultScene(overrides), nil
	case "glow":
		return scene.NewGlowScene(overrides), nil
	default:
		return nil, fmt.Errorf("unknown scene: %s", sceneName)
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendError sends an error update; write failures just mean the client left
func (s *Server) sendError(conn *websocket.Conn, message string) {
	update := RenderUpdate{Type: "error", Error: message}
	if err := conn.WriteJSON(update); err != nil {
		log.Printf("Writing error update: %v", err)
	}
}
