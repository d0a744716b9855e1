package renderer

import (
	"math/rand"

	"github.com/rfield/go-raytracer/pkg/core"
)

// CameraConfig holds the user-supplied camera options. Each option
// affects only image/viewport derivation and is independent of the
// others.
type CameraConfig struct {
	AspectRatio     float64 `json:"aspectRatio"`     // Ratio of image width over height
	ImageWidth      int     `json:"imageWidth"`      // Rendered image width in pixels
	SamplesPerPixel int     `json:"samplesPerPixel"` // Rays per pixel; 1 disables jitter
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 1,
	}
}

// Camera owns the viewport geometry and generates rays for rendering.
// All derived state is computed once in NewCamera and immutable for the
// render pass.
type Camera struct {
	config      CameraConfig
	imageHeight int
	center      core.Vec3 // Camera center
	pixel00Loc  core.Vec3 // Location of pixel 0, 0
	pixelDeltaU core.Vec3 // Offset to pixel to the right
	pixelDeltaV core.Vec3 // Offset to pixel below
}

// NewCamera derives the viewport geometry from the configuration.
// Out-of-range options are clamped, never rejected.
func NewCamera(config CameraConfig) *Camera {
	if config.AspectRatio <= 0 {
		config.AspectRatio = 16.0 / 9.0
	}
	if config.ImageWidth < 1 {
		config.ImageWidth = 1
	}
	if config.SamplesPerPixel < 1 {
		config.SamplesPerPixel = 1
	}

	imageHeight := max(1, int(float64(config.ImageWidth)/config.AspectRatio))

	center := core.NewVec3(0, 0, 0)
	focalLength := 1.0
	viewportHeight := 2.0
	// Use the actual pixel-rounded ratio, not the nominal aspect ratio,
	// so pixels stay square.
	viewportWidth := viewportHeight * (float64(config.ImageWidth) / float64(imageHeight))

	// Viewport edge vectors: u runs right along the top edge, v runs
	// down the left edge.
	viewportU := core.NewVec3(viewportWidth, 0, 0)
	viewportV := core.NewVec3(0, -viewportHeight, 0)

	pixelDeltaU := viewportU.Divide(float64(config.ImageWidth))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	// Pixel (0,0) sits half a pixel in from the viewport's upper-left
	// corner: pixel centers, not corners.
	viewportUpperLeft := center.
		Subtract(core.NewVec3(0, 0, focalLength)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	return &Camera{
		config:      config,
		imageHeight: imageHeight,
		center:      center,
		pixel00Loc:  pixel00Loc,
		pixelDeltaU: pixelDeltaU,
		pixelDeltaV: pixelDeltaV,
	}
}

// Config returns the (clamped) camera configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// ImageWidth returns the rendered image width in pixels
func (c *Camera) ImageWidth() int {
	return c.config.ImageWidth
}

// ImageHeight returns the rendered image height in pixels
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// GetRay generates a ray from the camera center through pixel (i, j).
// With one sample per pixel the ray passes through the pixel center;
// with more, each sample is jittered by an independent uniform offset
// in [-0.5,+0.5) pixel units.
func (c *Camera) GetRay(i, j int, random *rand.Rand) core.Ray {
	offsetX, offsetY := 0.0, 0.0
	if c.config.SamplesPerPixel > 1 {
		offsetX = random.Float64() - 0.5
		offsetY = random.Float64() - 0.5
	}

	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offsetX)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offsetY))

	return core.NewRay(c.center, pixelSample.Subtract(c.center))
}
