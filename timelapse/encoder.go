package timelapse

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// tempFrameDir is created next to the output file and removed when the
// encoder returns, on every exit path
const tempFrameDir = "temp_frames"

// maxStderrLines bounds the diagnostic text kept for error reporting
const maxStderrLines = 40

// FFmpegEncoder is the primary encoder driver. It stages normalized copies
// of the source images into a temporary frame set and drives an external
// ffmpeg process configured for a fixed quality profile.
type FFmpegEncoder struct {
	Path     string   // resolved ffmpeg binary, empty when not found
	Searched []string // locations checked while resolving, for error messages

	// OnStage is called after each staged frame, OnProgress with the
	// encode percentage (0-100). Both may be nil.
	OnStage    func(done, total int)
	OnProgress func(percent float64)
}

// Encode produces an MP4 at opts.OutputPath from the ordered image list.
// It fails with *EncoderUnavailableError when ffmpeg is missing and with
// *EncoderProcessError when the subprocess exits non-zero.
func (e *FFmpegEncoder) Encode(images []string, opts Options) error {
	if len(images) == 0 {
		return ErrNoImages
	}

	if e.Path == "" {
		return &EncoderUnavailableError{Searched: e.Searched}
	}
	if _, err := os.Stat(e.Path); err != nil {
		return &EncoderUnavailableError{Searched: append(e.Searched, e.Path)}
	}

	tempDir := filepath.Join(filepath.Dir(opts.OutputPath), tempFrameDir)
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return fmt.Errorf("failed to create temp frame directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	if err := StageFrames(images, tempDir, opts.Resize, e.OnStage); err != nil {
		return err
	}

	return e.runFFmpeg(tempDir, len(images), opts)
}

func (e *FFmpegEncoder) runFFmpeg(tempDir string, frameCount int, opts Options) error {
	// One encoded frame per still: the input frame rate is the inverse of
	// the per-image display duration (0.5 fps shows each image 2 seconds)
	framerate := strconv.FormatFloat(1/opts.FrameDuration, 'f', -1, 64)

	cmd := exec.Command(e.Path,
		"-y", // Overwrite output file if it exists
		"-framerate", framerate,
		"-i", filepath.Join(tempDir, framePattern),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-crf", "23",
		"-preset", "medium",
		"-movflags", "+faststart",
		opts.OutputPath,
	)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to get stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return &EncoderProcessError{Err: err}
	}

	// ffmpeg writes its progress to stderr, terminated by carriage returns
	scanner := bufio.NewScanner(stderr)
	scanner.Split(scanLines)

	totalSeconds := opts.TotalDuration(frameCount)
	var lastPercent float64
	var tail []string

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		tail = append(tail, line)
		if len(tail) > maxStderrLines {
			tail = tail[1:]
		}

		elapsed, ok := parseProgressLine(line)
		if !ok {
			continue
		}

		percent := elapsed / totalSeconds * 100
		if percent > 100 {
			percent = 100
		}
		// Reported progress is monotonically non-decreasing
		if percent > lastPercent {
			lastPercent = percent
			if e.OnProgress != nil {
				e.OnProgress(percent)
			}
		}
	}

	if err := cmd.Wait(); err != nil {
		return &EncoderProcessError{Err: err, Output: strings.Join(tail, "\n")}
	}

	if e.OnProgress != nil && lastPercent < 100 {
		e.OnProgress(100)
	}
	return nil
}

// scanLines splits on both newlines and carriage returns so ffmpeg's
// in-place progress updates surface as individual lines
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// parseProgressLine extracts the elapsed encode time in seconds from an
// ffmpeg status line containing a "time=HH:MM:SS.cc" marker. Lines without
// a parseable marker are skipped, not fatal.
func parseProgressLine(line string) (float64, bool) {
	idx := strings.Index(line, "time=")
	if idx < 0 {
		return 0, false
	}

	token := line[idx+len("time="):]
	if end := strings.IndexByte(token, ' '); end >= 0 {
		token = token[:end]
	}

	return parseTimestamp(token)
}

// parseTimestamp converts "HH:MM:SS.cc" to seconds
func parseTimestamp(s string) (float64, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false
	}

	hours, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, false
	}

	return hours*3600 + minutes*60 + seconds, true
}
