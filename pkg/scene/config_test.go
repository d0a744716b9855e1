package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rfield/go-raytracer/pkg/geometry"
)

func TestLoad(t *testing.T) {
	input := `{
		"camera": {"aspectRatio": 1.0, "imageWidth": 100, "samplesPerPixel": 4},
		"spheres": [
			{"center": [0, 0, -1], "radius": 0.5},
			{"center": [0, -100.5, -1], "radius": 100}
		]
	}`

	desc, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if desc.Camera.ImageWidth != 100 || desc.Camera.SamplesPerPixel != 4 {
		t.Errorf("Unexpected camera config: %+v", desc.Camera)
	}
	if len(desc.Spheres) != 2 {
		t.Fatalf("Expected 2 spheres, got %d", len(desc.Spheres))
	}
	if desc.Spheres[1].Radius != 100 {
		t.Errorf("Expected ground radius 100, got %v", desc.Spheres[1].Radius)
	}
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	if _, err := Load(strings.NewReader(`{"shperes": []}`)); err == nil {
		t.Error("Expected error for misspelled field, got none")
	}
}

func TestDescription_Build(t *testing.T) {
	desc := &Description{
		Spheres: []SphereConfig{
			{Center: [3]float64{1, 2, 3}, Radius: 0.5},
			{Center: [3]float64{0, 0, -1}, Radius: -5}, // clamped to 0
		},
	}

	world := desc.Build()
	if len(world.Objects) != 2 {
		t.Fatalf("Expected 2 objects, got %d", len(world.Objects))
	}

	sphere, ok := world.Objects[1].(*geometry.Sphere)
	if !ok {
		t.Fatalf("Expected *geometry.Sphere, got %T", world.Objects[1])
	}
	if sphere.Radius != 0 {
		t.Errorf("Expected negative radius clamped to 0, got %v", sphere.Radius)
	}
}

func TestByName(t *testing.T) {
	sceneFile := filepath.Join(t.TempDir(), "one-sphere.json")
	content := `{"camera": {"aspectRatio": 1.7778, "imageWidth": 40, "samplesPerPixel": 1},
		"spheres": [{"center": [0, 0, -1], "radius": 0.5}]}`
	if err := os.WriteFile(sceneFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		scene       string
		expectError bool
		objects     int
	}{
		{"default scene", "default", false, 2},
		{"empty scene", "empty", false, 0},
		{"scene file path", sceneFile, false, 1},
		{"unknown scene", "nonexistent", true, 0},
		{"empty scene name", "", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := ByName(tt.scene)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q, got none", tt.scene)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene %q: %v", tt.scene, err)
			}
			if desc.Camera.ImageWidth <= 0 {
				t.Errorf("Scene camera width should be positive, got %d", desc.Camera.ImageWidth)
			}
			if got := len(desc.Build().Objects); got != tt.objects {
				t.Errorf("Expected %d objects, got %d", tt.objects, got)
			}
		})
	}
}
