package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxPathLength bounds input and output paths accepted by the CLI.
const maxPathLength = 4096

// ValidateOutputPath validates a path that an artifact will be written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must carry a file extension (it selects the output format)
func ValidateOutputPath(path string) error {
	if err := validatePathChars(path); err != nil {
		return err
	}
	if filepath.Ext(path) == "" {
		return New(ErrCodeInvalidPath, "output path %q has no extension", path)
	}
	return nil
}

// ValidateInputPath validates a path that words will be read from. The
// extension selects the word source, so it is required as well.
func ValidateInputPath(path string) error {
	if err := validatePathChars(path); err != nil {
		return err
	}
	if filepath.Ext(path) == "" {
		return New(ErrCodeInvalidPath, "input path %q has no extension", path)
	}
	return nil
}

func validatePathChars(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateExtension checks that ext looks like a file extension (".txt").
func ValidateExtension(ext string) error {
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		return New(ErrCodeInvalidInput, "extension must start with a dot: %q", ext)
	}
	if strings.ContainsAny(ext, `/\ `) {
		return New(ErrCodeInvalidInput, "extension contains invalid characters: %q", ext)
	}
	return nil
}
