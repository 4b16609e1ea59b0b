// Package image validates the image paths handed to the external tools.
package image

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotFound is returned when an input image does not exist.
var ErrNotFound = errors.New("image file not found")

// ValidateImagePath checks that path names an existing regular file.
// swatch never decodes the image itself, so the format is left to the tools.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty: %w", ErrNotFound)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	return nil
}
