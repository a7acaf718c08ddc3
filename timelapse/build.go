package timelapse

import (
	"fmt"
	"os"
)

// Builder orchestrates the two encoder paths: the ffmpeg driver is tried
// first and any failure there, including a missing binary, triggers exactly
// one complete retry of the job through the fallback writer. A fallback
// failure is terminal.
type Builder struct {
	FFmpeg   *FFmpegEncoder
	Fallback *MJPEGWriter

	// OnFallback is called with the primary-path error before the
	// fallback attempt starts, may be nil
	OnFallback func(err error)

	// test seams, nil means the real encoders above
	encodePrimary  func(images []string, opts Options) error
	encodeFallback func(images []string, opts Options) (string, error)
}

// NewBuilder wires a Builder around a resolved ffmpeg path. An empty path
// means the primary encoder is unavailable and every build goes through
// the fallback writer.
func NewBuilder(ffmpegPath string, searched []string) *Builder {
	return &Builder{
		FFmpeg:   &FFmpegEncoder{Path: ffmpegPath, Searched: searched},
		Fallback: &MJPEGWriter{},
	}
}

// Build runs the complete job for an ordered, non-empty image list
func (b *Builder) Build(images []string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	result := &Result{
		OutputPath:    opts.OutputPath,
		ImageCount:    len(images),
		TotalDuration: opts.TotalDuration(len(images)),
		Encoder:       "libx264",
	}

	primary := b.encodePrimary
	if primary == nil {
		primary = b.FFmpeg.Encode
	}

	if err := primary(images, opts); err != nil {
		if b.OnFallback != nil {
			b.OnFallback(err)
		}

		fallback := b.encodeFallback
		if fallback == nil {
			fallback = b.Fallback.Encode
		}

		outputPath, fbErr := fallback(images, opts)
		if fbErr != nil {
			return nil, fbErr
		}

		result.OutputPath = outputPath
		result.Encoder = "mjpeg"
		result.UsedFallback = true
	}

	if fi, err := os.Stat(result.OutputPath); err == nil {
		result.FileSize = fi.Size()
	} else {
		return nil, fmt.Errorf("output file not created: %w", err)
	}

	return result, nil
}
