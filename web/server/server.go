// Package server exposes the raytracer over HTTP: a single-shot render
// endpoint plus a health check.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang/glog"

	"github.com/rfield/go-raytracer/pkg/ppm"
	"github.com/rfield/go-raytracer/pkg/renderer"
	"github.com/rfield/go-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string  `json:"scene"`           // Scene name or path (e.g. "default")
	Width           int     `json:"width"`           // Image width in pixels
	AspectRatio     float64 `json:"aspectRatio"`     // Width over height
	SamplesPerPixel int     `json:"samplesPerPixel"` // Rays per pixel
	Format          string  `json:"format"`          // "png" or "ppm"
}

// applyDefaults fills unset request fields from the scene description
func (req *RenderRequest) applyDefaults(defaults renderer.CameraConfig) {
	if req.Scene == "" {
		req.Scene = "default"
	}
	if req.Width <= 0 {
		req.Width = defaults.ImageWidth
	}
	if req.AspectRatio <= 0 {
		req.AspectRatio = defaults.AspectRatio
	}
	if req.SamplesPerPixel <= 0 {
		req.SamplesPerPixel = defaults.SamplesPerPixel
	}
	if req.Format == "" {
		req.Format = "png"
	}
}

// Mux returns the server's routes, exported so tests can drive the
// handlers without a listening socket.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	glog.Infof("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Mux())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// parseRenderRequest accepts either GET query parameters or a POST JSON
// body.
func parseRenderRequest(r *http.Request) (RenderRequest, error) {
	var req RenderRequest

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		req.Scene = query.Get("scene")
		req.Format = query.Get("format")

		var err error
		if req.Width, err = queryInt(query, "width"); err != nil {
			return req, err
		}
		if req.SamplesPerPixel, err = queryInt(query, "samplesPerPixel"); err != nil {
			return req, err
		}
		if v := query.Get("aspectRatio"); v != "" {
			if req.AspectRatio, err = strconv.ParseFloat(v, 64); err != nil {
				return req, fmt.Errorf("invalid aspectRatio %q", v)
			}
		}
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("invalid JSON body: %w", err)
		}
	default:
		return req, fmt.Errorf("method %s not allowed", r.Method)
	}

	return req, nil
}

func queryInt(query url.Values, key string) (int, error) {
	v := query.Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

// quietLogger drops the per-scanline progress stream; the server logs
// one line per completed render instead.
type quietLogger struct{}

func (quietLogger) Printf(format string, args ...interface{}) {}

// handleRender renders one frame and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			http.Error(w, err.Error(), http.StatusMethodNotAllowed)
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	if req.Scene == "" {
		req.Scene = "default"
	}
	desc, err := scene.ByName(req.Scene)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.applyDefaults(desc.Camera)

	if req.Format != "png" && req.Format != "ppm" {
		http.Error(w, fmt.Sprintf("unknown format %q", req.Format), http.StatusBadRequest)
		return
	}

	camera := renderer.NewCamera(renderer.CameraConfig{
		AspectRatio:     req.AspectRatio,
		ImageWidth:      req.Width,
		SamplesPerPixel: req.SamplesPerPixel,
	})
	rt := renderer.NewRaytracer(desc.Build(), camera, quietLogger{})
	rt.SetSeed(time.Now().UnixNano())

	startTime := time.Now()
	frame, stats := rt.Render()
	glog.Infof("Rendered %s %dx%d (%d samples/px) in %v",
		req.Scene, frame.Width, frame.Height, req.SamplesPerPixel, time.Since(startTime))

	var buf bytes.Buffer
	var contentType string
	switch req.Format {
	case "png":
		contentType = "image/png"
		if err := png.Encode(&buf, frame.ToRGBA()); err != nil {
			http.Error(w, fmt.Sprintf("while encoding PNG: %v", err), http.StatusInternalServerError)
			return
		}
	case "ppm":
		contentType = "image/x-portable-pixmap"
		if err := ppm.Write(&buf, frame); err != nil {
			http.Error(w, fmt.Sprintf("while encoding PPM: %v", err), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Write(buf.Bytes())
}
