package timelapse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SortMode controls the temporal order of the frame sequence.
type SortMode string

const (
	SortByName    SortMode = "name"
	SortByModTime SortMode = "mtime"
)

// Resolution is an explicit target frame size. The resize is forced:
// aspect ratio is not preserved, every frame becomes exactly this size.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

var resolutionRegex = regexp.MustCompile(`^(\d+)x(\d+)$`)

// ParseResolution parses a "WIDTHxHEIGHT" string like "1280x720"
func ParseResolution(s string) (Resolution, error) {
	matches := resolutionRegex.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return Resolution{}, fmt.Errorf("%w: invalid resolution %q, use WIDTHxHEIGHT (e.g. 1280x720)", ErrValidation, s)
	}

	width, err := strconv.Atoi(matches[1])
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: invalid width in %q", ErrValidation, s)
	}
	height, err := strconv.Atoi(matches[2])
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: invalid height in %q", ErrValidation, s)
	}

	if width <= 0 || height <= 0 {
		return Resolution{}, fmt.Errorf("%w: resolution %q must be positive", ErrValidation, s)
	}

	return Resolution{Width: width, Height: height}, nil
}

// Options holds the render job parameters shared by both encoder paths.
type Options struct {
	FrameDuration float64     // seconds each image is shown, must be > 0
	Resize        *Resolution // nil keeps original dimensions
	OutputPath    string      // target .mp4 path
}

// Validate checks the render job parameters before any processing starts
func (o *Options) Validate() error {
	if o.FrameDuration <= 0 {
		return fmt.Errorf("%w: frame duration must be positive, got %g", ErrValidation, o.FrameDuration)
	}
	if strings.TrimSpace(o.OutputPath) == "" {
		return fmt.Errorf("%w: output path cannot be empty", ErrValidation)
	}
	return nil
}

// TotalDuration returns the expected video duration for a frame count
func (o *Options) TotalDuration(imageCount int) float64 {
	return float64(imageCount) * o.FrameDuration
}

// Result describes a finished build.
type Result struct {
	OutputPath    string  // actual output file (fallback may swap the extension)
	ImageCount    int
	TotalDuration float64 // seconds, ImageCount * FrameDuration
	FileSize      int64   // bytes
	Encoder       string  // "libx264" or "mjpeg"
	UsedFallback  bool
}
