// Package ppm writes frames in the plain-text P3 pixmap format.
package ppm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rfield/go-raytracer/pkg/core"
	"github.com/rfield/go-raytracer/pkg/renderer"
)

// intensity bounds color components before output scaling
var intensity = core.NewInterval(0, 1)

// Write encodes the frame as a P3 pixmap: a three-line header followed
// by one "r g b" row per pixel, row-major from the top.
func Write(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return fmt.Errorf("while writing PPM header: %w", err)
	}

	for j := 0; j < frame.Height; j++ {
		for i := 0; i < frame.Width; i++ {
			if err := writeColor(bw, frame.At(i, j)); err != nil {
				return fmt.Errorf("while writing pixel (%d,%d): %w", i, j, err)
			}
		}
	}

	return bw.Flush()
}

// writeColor emits one pixel row. Channels are scaled by 255.999 and
// truncated, not rounded; downstream consumers depend on this exact
// mapping.
func writeColor(w io.Writer, c core.Vec3) error {
	ir := int(255.999 * intensity.Clamp(c.X))
	ig := int(255.999 * intensity.Clamp(c.Y))
	ib := int(255.999 * intensity.Clamp(c.Z))

	_, err := fmt.Fprintf(w, "%d %d %d\n", ir, ig, ib)
	return err
}
