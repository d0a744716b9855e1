package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rfield/go-raytracer/pkg/core"
	"github.com/rfield/go-raytracer/pkg/geometry"
	"github.com/rfield/go-raytracer/pkg/renderer"
)

// SphereConfig describes one sphere in a scene description
type SphereConfig struct {
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

// Description is the plain-data form of a scene: camera settings plus
// zero or more spheres. It is what scene files on disk contain.
type Description struct {
	Camera  renderer.CameraConfig `json:"camera"`
	Spheres []SphereConfig        `json:"spheres"`
}

// Load reads a JSON scene description
func Load(r io.Reader) (*Description, error) {
	var desc Description
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&desc); err != nil {
		return nil, fmt.Errorf("while decoding scene description: %w", err)
	}
	return &desc, nil
}

// LoadFile reads a JSON scene description from a file
func LoadFile(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("while opening scene file: %w", err)
	}
	defer f.Close()

	desc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("while reading %s: %w", path, err)
	}
	return desc, nil
}

// Build constructs the hittable scene from the description
func (d *Description) Build() *Scene {
	world := NewScene()
	for _, sc := range d.Spheres {
		center := core.NewVec3(sc.Center[0], sc.Center[1], sc.Center[2])
		world.Add(geometry.NewSphere(center, sc.Radius))
	}
	return world
}

// NewDefaultDescription returns the built-in two-sphere scene: a small
// sphere in front of the camera resting on a large ground sphere.
func NewDefaultDescription() *Description {
	return &Description{
		Camera: renderer.CameraConfig{
			AspectRatio:     16.0 / 9.0,
			ImageWidth:      400,
			SamplesPerPixel: 1,
		},
		Spheres: []SphereConfig{
			{Center: [3]float64{0, 0, -1}, Radius: 0.5},
			{Center: [3]float64{0, -100.5, -1}, Radius: 100},
		},
	}
}

// NewEmptyDescription returns a scene with no objects, rendering only
// the background gradient.
func NewEmptyDescription() *Description {
	return &Description{
		Camera: renderer.CameraConfig{
			AspectRatio:     16.0 / 9.0,
			ImageWidth:      400,
			SamplesPerPixel: 1,
		},
	}
}

// ByName resolves a built-in scene name or a path to a JSON scene file
func ByName(name string) (*Description, error) {
	switch name {
	case "default":
		return NewDefaultDescription(), nil
	case "empty":
		return NewEmptyDescription(), nil
	case "":
		return nil, fmt.Errorf("no scene specified")
	}

	if _, err := os.Stat(name); err == nil {
		return LoadFile(name)
	}
	return nil, fmt.Errorf("unknown scene %q", name)
}
