// raytracer renders sphere scenes to PPM or PNG images, either as a
// one-shot CLI or as a small HTTP service.
package main

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"github.com/nfnt/resize"
	"github.com/spf13/cobra"

	"github.com/rfield/go-raytracer/pkg/ppm"
	"github.com/rfield/go-raytracer/pkg/renderer"
	"github.com/rfield/go-raytracer/pkg/scene"
	"github.com/rfield/go-raytracer/pkg/upload"
	"github.com/rfield/go-raytracer/web/server"
)

var cmdRoot = &cobra.Command{
	Use:   "raytracer",
	Short: "A small sphere raytracer with normal shading",
}

var (
	sceneName       string
	imageWidth      int
	aspectRatio     float64
	samplesPerPixel int
	outputDir       string
	outputFormat    string
	renderSeed      int64
	writePreview    bool
	uploadResult    bool
	servePort       int
)

func init() {
	cmdRender.Flags().StringVar(&sceneName, "scene", "default", "Scene name ('default', 'empty') or path to a JSON scene file")
	cmdRender.Flags().IntVar(&imageWidth, "width", 0, "Image width in pixels (0 uses the scene's setting)")
	cmdRender.Flags().Float64Var(&aspectRatio, "aspect-ratio", 0, "Image aspect ratio (0 uses the scene's setting)")
	cmdRender.Flags().IntVar(&samplesPerPixel, "samples", 0, "Samples per pixel (0 uses the scene's setting)")
	cmdRender.Flags().StringVar(&outputDir, "output", "output", "Output directory")
	cmdRender.Flags().StringVar(&outputFormat, "format", "ppm", "Output format: 'ppm' or 'png'")
	cmdRender.Flags().Int64Var(&renderSeed, "seed", 42, "Sampling seed")
	cmdRender.Flags().BoolVar(&writePreview, "preview", false, "Also write a half-width PNG preview")
	cmdRender.Flags().BoolVar(&uploadResult, "upload", false, "Upload the image to S3 (S3_* env vars)")

	cmdServe.Flags().IntVar(&servePort, "port", 8080, "HTTP listen port")

	cmdRoot.AddCommand(cmdRender, cmdServe)
}

// createScene resolves the scene flag and applies CLI overrides
func createScene(name string) (*scene.Description, error) {
	desc, err := scene.ByName(name)
	if err != nil {
		return nil, err
	}
	if imageWidth > 0 {
		desc.Camera.ImageWidth = imageWidth
	}
	if aspectRatio > 0 {
		desc.Camera.AspectRatio = aspectRatio
	}
	if samplesPerPixel > 0 {
		desc.Camera.SamplesPerPixel = samplesPerPixel
	}
	return desc, nil
}

var cmdRender = &cobra.Command{
	Use:   "render",
	Short: "Render a scene to an image file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat != "ppm" && outputFormat != "png" {
			return fmt.Errorf("unknown format %q", outputFormat)
		}

		desc, err := createScene(sceneName)
		if err != nil {
			return fmt.Errorf("while creating scene: %w", err)
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("while creating output directory: %w", err)
		}

		camera := renderer.NewCamera(desc.Camera)
		rt := renderer.NewRaytracer(desc.Build(), camera, renderer.NewDefaultLogger())
		rt.SetSeed(renderSeed)

		glog.Infof("Rendering %s at %dx%d with %d samples/px",
			sceneName, camera.ImageWidth(), camera.ImageHeight(), camera.Config().SamplesPerPixel)

		frame, stats := rt.Render()
		glog.Infof("Render completed in %v (%d samples)", stats.RenderTime, stats.TotalSamples)

		var encoded bytes.Buffer
		if outputFormat == "png" {
			if err := png.Encode(&encoded, frame.ToRGBA()); err != nil {
				return fmt.Errorf("while encoding PNG: %w", err)
			}
		} else {
			if err := ppm.Write(&encoded, frame); err != nil {
				return fmt.Errorf("while encoding PPM: %w", err)
			}
		}

		timestamp := time.Now().Format("20060102_150405")
		filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, outputFormat))
		if err := os.WriteFile(filename, encoded.Bytes(), 0644); err != nil {
			return fmt.Errorf("while writing %s: %w", filename, err)
		}
		fmt.Printf("Render saved as %s\n", filename)

		if writePreview {
			previewName := filepath.Join(outputDir, fmt.Sprintf("render_%s_preview.png", timestamp))
			if err := writePreviewFile(previewName, frame); err != nil {
				return err
			}
			fmt.Printf("Preview saved as %s\n", previewName)
		}

		if uploadResult {
			uploader, err := upload.NewUploader(upload.ConfigFromEnv())
			if err != nil {
				return fmt.Errorf("while configuring upload: %w", err)
			}
			contentType := "image/x-portable-pixmap"
			if outputFormat == "png" {
				contentType = "image/png"
			}
			key := filepath.Base(filename)
			if err := uploader.Upload(context.Background(), key, encoded.Bytes(), contentType); err != nil {
				return err
			}
		}

		return nil
	},
}

// writePreviewFile downscales the frame to half width and writes a PNG
func writePreviewFile(path string, frame *renderer.Frame) error {
	preview := resize.Resize(uint(frame.Width/2), 0, frame.ToRGBA(), resize.Lanczos3)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("while creating preview: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, preview); err != nil {
		return fmt.Errorf("while encoding preview: %w", err)
	}
	return nil
}

var cmdServe = &cobra.Command{
	Use:   "serve",
	Short: "Serve renders over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.NewServer(servePort).Start()
	},
}

func main() {
	glog.CopyStandardLogTo("INFO")

	err := cmdRoot.Execute()
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
