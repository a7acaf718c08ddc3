package timelapse

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildValidatesOptions(t *testing.T) {
	builder := NewBuilder("", nil)

	_, err := builder.Build([]string{"a.png"}, Options{FrameDuration: -1, OutputPath: "out.mp4"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

func TestBuildEmptySequence(t *testing.T) {
	builder := NewBuilder("", nil)

	_, err := builder.Build(nil, Options{FrameDuration: 2.0, OutputPath: "out.mp4"})
	if !errors.Is(err, ErrNoImages) {
		t.Errorf("Expected ErrNoImages, got %v", err)
	}
}

func TestBuildPrimarySucceeds(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.mp4")

	fallbackCalled := false
	builder := NewBuilder("/usr/bin/ffmpeg", nil)
	builder.encodePrimary = func(images []string, opts Options) error {
		return os.WriteFile(opts.OutputPath, []byte("video data"), 0644)
	}
	builder.encodeFallback = func(images []string, opts Options) (string, error) {
		fallbackCalled = true
		return "", errors.New("should not be called")
	}

	result, err := builder.Build([]string{"a.png", "b.png"}, Options{FrameDuration: 2.0, OutputPath: outPath})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if fallbackCalled {
		t.Error("Fallback must not run when the primary path succeeds")
	}
	if result.UsedFallback {
		t.Error("Result should not be marked as fallback")
	}
	if result.Encoder != "libx264" {
		t.Errorf("Expected encoder libx264, got %s", result.Encoder)
	}
	if result.OutputPath != outPath {
		t.Errorf("Expected output %s, got %s", outPath, result.OutputPath)
	}
	if result.ImageCount != 2 {
		t.Errorf("Expected 2 images, got %d", result.ImageCount)
	}
	if result.TotalDuration != 4.0 {
		t.Errorf("Expected total duration 4.0, got %g", result.TotalDuration)
	}
	if result.FileSize == 0 {
		t.Error("Expected non-zero file size")
	}
}

func TestBuildFallsBackOnPrimaryFailure(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.mp4")
	aviOut := filepath.Join(dir, "out.avi")

	primaryErr := &EncoderUnavailableError{Searched: []string{"PATH"}}
	var observed error
	fallbackCalls := 0

	builder := NewBuilder("", nil)
	builder.OnFallback = func(err error) { observed = err }
	builder.encodePrimary = func(images []string, opts Options) error {
		return primaryErr
	}
	builder.encodeFallback = func(images []string, opts Options) (string, error) {
		fallbackCalls++
		if err := os.WriteFile(aviOut, []byte("mjpeg data"), 0644); err != nil {
			return "", err
		}
		return aviOut, nil
	}

	result, err := builder.Build([]string{"a.png"}, Options{FrameDuration: 2.0, OutputPath: outPath})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if fallbackCalls != 1 {
		t.Errorf("Expected exactly one fallback attempt, got %d", fallbackCalls)
	}
	if !errors.Is(observed, primaryErr) {
		t.Errorf("OnFallback should receive the primary error, got %v", observed)
	}
	if !result.UsedFallback {
		t.Error("Result should be marked as fallback")
	}
	if result.Encoder != "mjpeg" {
		t.Errorf("Expected encoder mjpeg, got %s", result.Encoder)
	}
	if result.OutputPath != aviOut {
		t.Errorf("Result should carry the fallback output path, got %s", result.OutputPath)
	}
}

func TestBuildFallbackFailureIsTerminal(t *testing.T) {
	writerErr := &WriterInitError{Err: errors.New("codec unavailable")}

	builder := NewBuilder("", nil)
	builder.encodePrimary = func(images []string, opts Options) error {
		return &EncoderProcessError{Err: errors.New("exit status 1")}
	}
	builder.encodeFallback = func(images []string, opts Options) (string, error) {
		return "", writerErr
	}

	_, err := builder.Build([]string{"a.png"}, Options{FrameDuration: 2.0, OutputPath: "out.mp4"})

	var initErr *WriterInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("Expected the fallback's WriterInitError to surface, got %v", err)
	}
}

func TestBuildFailsWhenOutputMissing(t *testing.T) {
	builder := NewBuilder("", nil)
	builder.encodePrimary = func(images []string, opts Options) error {
		return nil // claims success but writes nothing
	}

	_, err := builder.Build([]string{"a.png"}, Options{FrameDuration: 2.0, OutputPath: filepath.Join(t.TempDir(), "out.mp4")})
	if err == nil {
		t.Error("Expected error when no output file was produced")
	}
}

func TestNewBuilderWiresEncoders(t *testing.T) {
	builder := NewBuilder("/opt/ffmpeg", []string{"a", "b"})

	if builder.FFmpeg == nil || builder.Fallback == nil {
		t.Fatal("Expected both encoder paths to be wired")
	}
	if builder.FFmpeg.Path != "/opt/ffmpeg" {
		t.Errorf("Expected ffmpeg path to be carried, got %s", builder.FFmpeg.Path)
	}
	if len(builder.FFmpeg.Searched) != 2 {
		t.Errorf("Expected searched locations to be carried, got %v", builder.FFmpeg.Searched)
	}
}
