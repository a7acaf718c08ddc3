package timelapse

import (
	"fmt"

	"github.com/corona10/goimagehash"
)

// DefaultSimilarityThreshold is the Hamming distance below which two
// consecutive images are considered near-duplicates
const DefaultSimilarityThreshold = 5

// FilterNearDuplicates drops images that are perceptually near-identical to
// the previously kept one, so a stalled camera doesn't freeze the timelapse.
// Distance is the Hamming distance between difference hashes (0-64, lower
// means more similar). The first image is always kept.
func FilterNearDuplicates(images []string, threshold int) (kept []string, skipped int, err error) {
	if threshold < 0 || threshold > 64 {
		return nil, 0, fmt.Errorf("%w: similarity threshold must be 0-64, got %d", ErrValidation, threshold)
	}

	var lastHash *goimagehash.ImageHash
	for _, imagePath := range images {
		hash, err := imageDifferenceHash(imagePath)
		if err != nil {
			return nil, 0, err
		}

		if lastHash != nil {
			distance, err := lastHash.Distance(hash)
			if err != nil {
				return nil, 0, fmt.Errorf("failed to compare %s: %w", imagePath, err)
			}
			if distance <= threshold {
				skipped++
				continue
			}
		}

		kept = append(kept, imagePath)
		lastHash = hash
	}

	return kept, skipped, nil
}

func imageDifferenceHash(imagePath string) (*goimagehash.ImageHash, error) {
	img, err := LoadFrame(imagePath, nil)
	if err != nil {
		return nil, err
	}

	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate perceptual hash for %s: %w", imagePath, err)
	}
	return hash, nil
}
