package timelapse

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
)

// framePattern is the sequential filename pattern ffmpeg addresses frames by
const framePattern = "frame_%06d.png"

// LoadFrame decodes an image file and normalizes it for encoding: the pixel
// data is converted to RGBA regardless of source color model (palette and
// alpha variance is discarded) and the optional forced resize is applied
// with a Lanczos filter. RGBA is only the uniform in-memory form, the alpha
// channel never reaches an output (yuv420p and JPEG both drop it).
func LoadFrame(path string, target *Resolution) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	if target != nil {
		img = resize.Resize(uint(target.Width), uint(target.Height), img, resize.Lanczos3)
	}

	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba, nil
}

// StageFrames writes a normalized copy of every source image into dir under
// zero-padded sequential filenames so ffmpeg can address them by a fixed
// numeric pattern. onFrame is called after each staged image when non-nil.
func StageFrames(images []string, dir string, target *Resolution, onFrame func(done, total int)) error {
	for idx, imagePath := range images {
		frame, err := LoadFrame(imagePath, target)
		if err != nil {
			return err
		}

		savePath := filepath.Join(dir, fmt.Sprintf(framePattern, idx))
		if err := savePNG(savePath, frame); err != nil {
			return err
		}

		if onFrame != nil {
			onFrame(idx+1, len(images))
		}
	}
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode frame %s: %w", path, err)
	}

	return f.Close()
}
