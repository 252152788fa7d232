package validation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/FocuswithJustin/ecoji/core/errors"
)

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "data.bin")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	tests := []struct {
		name      string
		path      string
		wantError error
	}{
		{
			name:      "valid relative path",
			path:      "file.txt",
			wantError: nil,
		},
		{
			name:      "valid nested path",
			path:      "dir/subdir/file.txt",
			wantError: nil,
		},
		{
			name:      "existing file",
			path:      existing,
			wantError: nil,
		},
		{
			name:      "emoji file name",
			path:      filepath.Join(dir, "☕.txt"),
			wantError: nil,
		},
		{
			name:      "empty path",
			path:      "",
			wantError: ErrEmptyPath,
		},
		{
			name:      "path with null byte",
			path:      "file\x00.txt",
			wantError: ErrInvalidCharacter,
		},
		{
			name:      "path with control character",
			path:      "dir/file\n.txt",
			wantError: ErrInvalidCharacter,
		},
		{
			name:      "very long path",
			path:      strings.Repeat("a/", 2048) + "file.txt",
			wantError: ErrPathTooLong,
		},
		{
			name:      "directory",
			path:      dir,
			wantError: ErrIsDirectory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)

			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("ValidatePath() error = %v, want %v", err, tt.wantError)
				}
				var valErr *apperrors.ValidationError
				if !errors.As(err, &valErr) || valErr.Field != "path" {
					t.Errorf("ValidatePath() error = %T, want ValidationError for path", err)
				}
				return
			}

			if err != nil {
				t.Errorf("ValidatePath() unexpected error: %v", err)
			}
		})
	}
}
