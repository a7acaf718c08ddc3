package timelapse

import (
	"fmt"
	"math"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// VideoResolution extracts the output resolution using ffprobe
func VideoResolution(videoFile string) (string, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-select_streams", "v:0",
		"-show_entries", "stream=width,height", "-of", "csv=s=x:p=0", "--", videoFile)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to get resolution: %w\nffprobe output: %s", err, string(output))
	}

	// Fix cases where command prints multiple resolutions
	outputParts := strings.SplitN(string(output), "\n", 2)
	resolution := strings.TrimSpace(outputParts[0])
	resolution = strings.TrimSuffix(resolution, "x")

	if !regexp.MustCompile(`^\d+x\d+$`).MatchString(resolution) {
		return "", fmt.Errorf("invalid resolution format: %s", resolution)
	}

	return resolution, nil
}

// VideoDuration extracts the output duration in seconds using ffprobe
func VideoDuration(videoFile string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries",
		"format=duration", "-of", "default=noprint_wrappers=1:nokey=1", "--", videoFile)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to get duration: %w", err)
	}

	durationSecs, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return durationSecs, nil
}

// durationTolerance covers container rounding to whole frames
const durationTolerance = 1.0

// VerifyOutput probes a finished build and checks it against the render
// job parameters: the file must be non-empty and structurally readable,
// its duration must match count x per-image duration, and when a forced
// resize was requested the frames must have exactly that geometry.
func VerifyOutput(result *Result, opts Options) error {
	fi, err := os.Stat(result.OutputPath)
	if err != nil {
		return fmt.Errorf("output not accessible: %w", err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("output file is empty")
	}

	duration, err := VideoDuration(result.OutputPath)
	if err != nil {
		return fmt.Errorf("output appears corrupted: %w", err)
	}
	if math.Abs(duration-result.TotalDuration) > durationTolerance {
		return fmt.Errorf("output duration %.2fs does not match expected %.2fs", duration, result.TotalDuration)
	}

	if opts.Resize != nil {
		resolution, err := VideoResolution(result.OutputPath)
		if err != nil {
			return err
		}
		if resolution != opts.Resize.String() {
			return fmt.Errorf("output resolution %s does not match requested %s", resolution, opts.Resize)
		}
	}

	return nil
}
