package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/errors"
)

// ValidateDestination checks that a manifest destination is safe to
// commit under the home root. It rejects:
// - empty destinations
// - absolute paths
// - paths containing null bytes
// - paths that traverse outside the home root after cleaning
func ValidateDestination(destination string) error {
	if destination == "" {
		return errors.New(errors.ErrLinkValidation, "destination cannot be empty")
	}

	if strings.Contains(destination, "\x00") {
		return errors.Newf(errors.ErrLinkValidation,
			"destination %q contains null bytes", destination)
	}

	if filepath.IsAbs(destination) {
		return errors.Newf(errors.ErrLinkValidation,
			"destination %q must be relative to the home root", destination)
	}

	cleaned := filepath.Clean(destination)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return errors.Newf(errors.ErrLinkValidation,
			"destination %q escapes the home root", destination)
	}

	return nil
}

// ValidateSource checks that a manifest source path stays inside the
// repository root.
func ValidateSource(source string) error {
	if source == "" {
		return errors.New(errors.ErrInvalidInput, "source cannot be empty")
	}

	if filepath.IsAbs(source) {
		return errors.Newf(errors.ErrInvalidInput,
			"source %q must be relative to the repository root", source)
	}

	cleaned := filepath.Clean(source)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return errors.Newf(errors.ErrInvalidInput,
			"source %q escapes the repository root", source)
	}

	return nil
}
