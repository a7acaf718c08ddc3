package timelapse

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/icza/mjpeg"
)

// fallbackFPS is the fixed frame rate of the fallback writer. Still
// duration is expressed by duplicating frames at this rate.
const fallbackFPS = 30

// fallbackJPEGQuality matches a standard-quality encode
const fallbackJPEGQuality = 90

// FramesPerImage returns how many duplicate frames express one still's
// display duration at the fixed fallback frame rate
func FramesPerImage(frameDuration float64) int {
	return int(math.Round(frameDuration * fallbackFPS))
}

// MJPEGWriter is the fallback frame writer: an in-process motion-JPEG
// encoder used when ffmpeg is unavailable or fails. The container is AVI,
// so the output swaps the requested extension to .avi.
type MJPEGWriter struct {
	// OnFrame is called after each written frame, may be nil
	OnFrame func(written, total int)
}

// Encode writes the frame sequence as a motion-JPEG video and returns the
// actual output path. Writer-open failures are *WriterInitError and leave
// no partial output behind.
func (w *MJPEGWriter) Encode(images []string, opts Options) (string, error) {
	if len(images) == 0 {
		return "", ErrNoImages
	}

	// All frames must match the geometry of the first image exactly
	first, err := LoadFrame(images[0], opts.Resize)
	if err != nil {
		return "", err
	}
	width := first.Bounds().Dx()
	height := first.Bounds().Dy()

	outputPath := aviPath(opts.OutputPath)

	aw, err := mjpeg.New(outputPath, int32(width), int32(height), fallbackFPS)
	if err != nil {
		_ = os.Remove(outputPath)
		return "", &WriterInitError{Err: err}
	}

	framesPerImage := FramesPerImage(opts.FrameDuration)
	totalFrames := len(images) * framesPerImage
	written := 0

	writeFrame := func(path string, frame *image.RGBA) error {
		if frame.Bounds().Dx() != width || frame.Bounds().Dy() != height {
			return fmt.Errorf("image %s is %dx%d, expected %dx%d (all frames must match the first image)",
				path, frame.Bounds().Dx(), frame.Bounds().Dy(), width, height)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: fallbackJPEGQuality}); err != nil {
			return fmt.Errorf("failed to encode frame as JPEG: %w", err)
		}

		for i := 0; i < framesPerImage; i++ {
			if err := aw.AddFrame(buf.Bytes()); err != nil {
				return fmt.Errorf("failed to add frame: %w", err)
			}
			written++
			if w.OnFrame != nil {
				w.OnFrame(written, totalFrames)
			}
		}
		return nil
	}

	for i, imagePath := range images {
		// The first image was already decoded for geometry
		frame := first
		if i > 0 {
			frame, err = LoadFrame(imagePath, opts.Resize)
			if err != nil {
				_ = aw.Close()
				_ = os.Remove(outputPath)
				return "", err
			}
		}
		if err := writeFrame(imagePath, frame); err != nil {
			_ = aw.Close()
			_ = os.Remove(outputPath)
			return "", err
		}
	}

	if err := aw.Close(); err != nil {
		_ = os.Remove(outputPath)
		return "", fmt.Errorf("failed to finalize video: %w", err)
	}

	return outputPath, nil
}

// aviPath swaps the output extension to .avi, the container the motion-JPEG
// writer produces
func aviPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	if strings.EqualFold(ext, ".avi") {
		return outputPath
	}
	return strings.TrimSuffix(outputPath, ext) + ".avi"
}
