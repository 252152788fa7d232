// Package validation checks user-supplied file paths before the CLI opens
// them.
package validation

import (
	"errors"
	"os"
	"strings"
	"unicode"

	apperrors "github.com/FocuswithJustin/ecoji/core/errors"
)

// MaxPathLength is the maximum allowed path length.
const MaxPathLength = 4096

// Common validation errors.
var (
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrIsDirectory      = errors.New("path is a directory")
)

func invalid(path, message string, err error) error {
	return &apperrors.ValidationError{Field: "path", Value: path, Message: message, Err: err}
}

// ValidatePath checks a path for length limits, null bytes and control
// characters, and rejects existing directories. The file itself need not
// exist.
func ValidatePath(path string) error {
	if path == "" {
		return invalid(path, ErrEmptyPath.Error(), ErrEmptyPath)
	}

	if len(path) > MaxPathLength {
		return invalid(path[:32]+"...", ErrPathTooLong.Error(), ErrPathTooLong)
	}

	if strings.Contains(path, "\x00") {
		return invalid(path, "null byte not allowed", ErrInvalidCharacter)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return invalid(path, "control character not allowed", ErrInvalidCharacter)
		}
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return invalid(path, ErrIsDirectory.Error(), ErrIsDirectory)
	}

	return nil
}
