package utils

import (
	"strings"
	"testing"
)

func TestFindFFmpegReportsSearchedLocations(t *testing.T) {
	path, searched := FindFFmpeg()

	if len(searched) == 0 {
		t.Error("Expected at least one searched location")
	}

	// Whatever the environment, a found path must be non-empty and a
	// missing binary must come back as the empty string
	if path != "" {
		t.Logf("ffmpeg found at: %s", path)
	} else {
		t.Logf("ffmpeg not found, searched: %v", searched)
	}
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()

	if instructions == "" {
		t.Error("Expected non-empty installation instructions")
	}

	// Every platform's instructions mention where to get ffmpeg
	if !strings.Contains(strings.ToLower(instructions), "ffmpeg") {
		t.Errorf("Instructions should mention ffmpeg: %q", instructions)
	}
}

func TestHasFFprobe(t *testing.T) {
	// Just verify it does not panic; availability depends on the environment
	_ = HasFFprobe()
}
