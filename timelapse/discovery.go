package timelapse

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IsImageFile checks if the given file extension is one of the supported image extensions
func IsImageFile(path string) bool {
	var desiredExtensions = []string{".png", ".jpg", ".jpeg"}

	ext := filepath.Ext(path)
	ext = strings.ToLower(ext) // handle cases where extension is upper case

	for _, v := range desiredExtensions {
		if v == ext {
			return true
		}
	}
	return false
}

// CollectImages lists the image files directly inside directory and orders
// them by the given sort mode. The returned order is the temporal order of
// the final video. An empty result is ErrNoImages.
func CollectImages(directory string, mode SortMode) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read source folder: %w", err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsImageFile(entry.Name()) {
			images = append(images, filepath.Join(directory, entry.Name()))
		}
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, directory)
	}

	switch mode {
	case SortByModTime:
		if err := sortByModTime(images); err != nil {
			return nil, err
		}
	default:
		sort.Strings(images)
	}

	return images, nil
}

func sortByModTime(images []string) error {
	type fileTime struct {
		path    string
		modTime int64
	}

	times := make([]fileTime, 0, len(images))
	for _, path := range images {
		fi, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		times = append(times, fileTime{path: path, modTime: fi.ModTime().UnixNano()})
	}

	sort.SliceStable(times, func(i, j int) bool {
		return times[i].modTime < times[j].modTime
	})

	for i, ft := range times {
		images[i] = ft.path
	}
	return nil
}
