package timelapse

import (
	"errors"
	"fmt"
)

// ErrValidation marks render job parameters rejected before any processing
var ErrValidation = errors.New("validation error")

// ErrNoImages is returned when the source folder yields an empty frame sequence
var ErrNoImages = errors.New("no image files found")

// EncoderUnavailableError means the ffmpeg binary could not be located.
// The orchestrator treats it like any other primary-path failure and
// retries the job with the fallback writer.
type EncoderUnavailableError struct {
	Searched []string
}

func (e *EncoderUnavailableError) Error() string {
	return fmt.Sprintf("ffmpeg not found (searched bundled locations and PATH: %v)", e.Searched)
}

// EncoderProcessError carries the diagnostic output of a failed ffmpeg run
type EncoderProcessError struct {
	Err    error
	Output string
}

func (e *EncoderProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("ffmpeg failed: %v\n%s", e.Err, e.Output)
	}
	return fmt.Sprintf("ffmpeg failed: %v", e.Err)
}

func (e *EncoderProcessError) Unwrap() error { return e.Err }

// WriterInitError means the fallback motion-JPEG writer could not be opened
type WriterInitError struct {
	Err error
}

func (e *WriterInitError) Error() string {
	return fmt.Sprintf("failed to initialize video writer: %v", e.Err)
}

func (e *WriterInitError) Unwrap() error { return e.Err }
