package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// FindFFmpeg resolves the ffmpeg binary: a bundled copy next to the
// executable wins, then PATH, then common install locations. An empty path
// means ffmpeg is unavailable; the list of searched locations is returned
// for error reporting.
func FindFFmpeg() (path string, searched []string) {
	if bundled := bundledFFmpegPath(); bundled != "" {
		searched = append(searched, bundled)
		if _, err := os.Stat(bundled); err == nil {
			return bundled, searched
		}
	}

	searched = append(searched, "PATH")
	if p, err := exec.LookPath(ffmpegBinaryName()); err == nil {
		return p, searched
	}

	for _, p := range commonFFmpegPaths() {
		searched = append(searched, p)
		if _, err := os.Stat(p); err == nil {
			return p, searched
		}
	}

	return "", searched
}

// HasFFprobe checks if ffprobe is available for output verification
func HasFFprobe() bool {
	_, err := exec.LookPath("ffprobe")
	return err == nil
}

func ffmpegBinaryName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

// bundledFFmpegPath returns the expected location of a bundled ffmpeg
// under bin/ffmpeg/ next to the executable
func bundledFFmpegPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(execPath), "bin", "ffmpeg", ffmpegBinaryName())
}

func commonFFmpegPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/opt/local/bin/ffmpeg",
		}
	case "linux":
		return []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
		}
	case "windows":
		return []string{
			"C:\\ffmpeg\\bin\\ffmpeg.exe",
			"C:\\Program Files\\ffmpeg\\bin\\ffmpeg.exe",
		}
	default:
		return nil
	}
}

// InstallInstructions returns platform-specific ffmpeg installation instructions
func InstallInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install ffmpeg"
	case "linux":
		return "Install with: apt-get install ffmpeg (Ubuntu/Debian) or yum install ffmpeg (CentOS/RHEL)"
	case "windows":
		return "Download from https://ffmpeg.org/download.html and add to PATH"
	default:
		return "Download from https://ffmpeg.org/download.html"
	}
}
