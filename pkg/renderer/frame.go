package renderer

import (
	"image"
	"image/color"

	"github.com/rfield/go-raytracer/pkg/core"
)

// Frame holds the rendered image as float colors, row-major from the
// top-left. Keeping floats lets the output encoders apply the exact
// channel quantization.
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame creates a zeroed frame of the given dimensions
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (i, j)
func (f *Frame) At(i, j int) core.Vec3 {
	return f.Pixels[j*f.Width+i]
}

// Set assigns the color of pixel (i, j)
func (f *Frame) Set(i, j int, c core.Vec3) {
	f.Pixels[j*f.Width+i] = c
}

// channelValue maps a [0,1] color component to an 8-bit channel by
// truncation, the same mapping the PPM writer uses.
func channelValue(c float64) uint8 {
	intensity := core.NewInterval(0, 1)
	return uint8(255.999 * intensity.Clamp(c))
}

// ToRGBA converts the frame to an image for PNG encoding
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for j := 0; j < f.Height; j++ {
		for i := 0; i < f.Width; i++ {
			c := f.At(i, j)
			img.SetRGBA(i, j, color.RGBA{
				R: channelValue(c.X),
				G: channelValue(c.Y),
				B: channelValue(c.Z),
				A: 255,
			})
		}
	}
	return img
}
