package paths

import (
	"strings"

	"github.com/arthur-debert/mflash/pkg/errors"
)

// maxPathLength mirrors the common PATH_MAX limit
const maxPathLength = 4096

// ValidatePath performs basic sanity checks on a path taken from a document.
// It checks for:
// - Empty paths
// - Embedded null bytes
// - Excessive path length
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes").
			WithDetail("path", path)
	}

	if len(path) > maxPathLength {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length").
			WithDetail("length", len(path))
	}

	return nil
}
