package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleHealth(t *testing.T) {
	srv := NewServer(8080)
	recorder := httptest.NewRecorder()

	srv.Mux().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", recorder.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestHandleRender_GetPNG(t *testing.T) {
	srv := NewServer(8080)
	recorder := httptest.NewRecorder()

	url := "/api/render?scene=default&width=16&samplesPerPixel=1"
	srv.Mux().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, url, nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(recorder.Body.Bytes(), pngMagic) {
		t.Error("Response body is not a PNG")
	}
}

func TestHandleRender_PostPPM(t *testing.T) {
	srv := NewServer(8080)
	recorder := httptest.NewRecorder()

	body := `{"scene": "empty", "width": 8, "aspectRatio": 2.0, "samplesPerPixel": 1, "format": "ppm"}`
	request := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(body))
	srv.Mux().ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "image/x-portable-pixmap" {
		t.Errorf("Expected image/x-portable-pixmap, got %q", ct)
	}
	if !strings.HasPrefix(recorder.Body.String(), "P3\n8 4\n255\n") {
		t.Errorf("Unexpected PPM header: %.40q", recorder.Body.String())
	}
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		target       string
		body         string
		expectedCode int
	}{
		{"unknown scene", http.MethodGet, "/api/render?scene=nope", "", http.StatusBadRequest},
		{"bad width", http.MethodGet, "/api/render?width=abc", "", http.StatusBadRequest},
		{"bad format", http.MethodGet, "/api/render?format=gif&width=8", "", http.StatusBadRequest},
		{"bad JSON", http.MethodPost, "/api/render", "{", http.StatusBadRequest},
		{"method not allowed", http.MethodDelete, "/api/render", "", http.StatusMethodNotAllowed},
	}

	srv := NewServer(8080)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reader *strings.Reader
			if tt.body != "" {
				reader = strings.NewReader(tt.body)
			} else {
				reader = strings.NewReader("")
			}
			recorder := httptest.NewRecorder()
			srv.Mux().ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.target, reader))

			if recorder.Code != tt.expectedCode {
				t.Errorf("Expected %d, got %d: %s", tt.expectedCode, recorder.Code, recorder.Body.String())
			}
		})
	}
}
