package renderer

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/rfield/go-raytracer/pkg/core"
)

// Background gradient colors: white at the horizon blending up to sky
// blue at the top of the viewport.
var (
	gradientBottom = core.NewVec3(1.0, 1.0, 1.0)
	gradientTop    = core.NewVec3(0.5, 0.7, 1.0)
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	RenderTime     time.Duration // Wall time for the render pass
}

// DefaultLogger implements core.Logger by writing to stderr, keeping
// the progress stream out of the image stream.
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Raytracer renders a scene through a camera into a frame
type Raytracer struct {
	world  core.Hittable
	camera *Camera
	random *rand.Rand
	logger core.Logger
}

// NewRaytracer creates a new raytracer for the given world and camera
func NewRaytracer(world core.Hittable, camera *Camera, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		world:  world,
		camera: camera,
		random: rand.New(rand.NewSource(42)), // Deterministic for testing
		logger: logger,
	}
}

// SetSeed reseeds the sampling generator
func (rt *Raytracer) SetSeed(seed int64) {
	rt.random = rand.New(rand.NewSource(seed))
}

// RayColor computes the color seen along a ray: the normal-visualization
// color on a hit, the vertical background gradient on a miss. The lower
// interval bound of 0 excludes intersections behind the origin.
func (rt *Raytracer) RayColor(r core.Ray) core.Vec3 {
	if hit, isHit := rt.world.Hit(r, core.NewInterval(0, math.Inf(1))); isHit {
		// Map each normal component from [-1,1] to a visible [0,1]
		// color channel
		return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
	}

	// Background: blend on the y component of the unit direction
	unitDirection := r.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return gradientBottom.Multiply(1.0 - a).Add(gradientTop.Multiply(a))
}

// Render produces the full frame, row-major from the top, accumulating
// and averaging SamplesPerPixel colors per pixel.
func (rt *Raytracer) Render() (*Frame, RenderStats) {
	width := rt.camera.ImageWidth()
	height := rt.camera.ImageHeight()
	samplesPerPixel := rt.camera.Config().SamplesPerPixel
	sampleScale := 1.0 / float64(samplesPerPixel)

	frame := NewFrame(width, height)
	startTime := time.Now()

	for j := 0; j < height; j++ {
		rt.logger.Printf("\rScanlines remaining: %d ", height-j)
		for i := 0; i < width; i++ {
			colorAccum := core.Vec3{}
			for sample := 0; sample < samplesPerPixel; sample++ {
				ray := rt.camera.GetRay(i, j, rt.random)
				colorAccum = colorAccum.Add(rt.RayColor(ray))
			}
			frame.Set(i, j, colorAccum.Multiply(sampleScale))
		}
	}
	rt.logger.Printf("\rDone.                 \n")

	totalPixels := width * height
	stats := RenderStats{
		TotalPixels:    totalPixels,
		TotalSamples:   totalPixels * samplesPerPixel,
		AverageSamples: float64(samplesPerPixel),
		RenderTime:     time.Since(startTime),
	}
	return frame, stats
}
