// Package fileutil provides file and output-name helpers.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// PDFExtension is appended to export names.
const PDFExtension = ".pdf"

// unsafeFilenameChars are replaced by '_' in output names.
const unsafeFilenameChars = `/\:*?"<>|`

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "paperexport-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// SanitizeFilename turns a user-supplied export name into a safe base name
// without extension. A trailing ".pdf" is dropped, characters that are
// invalid on common filesystems become '_', and an empty result falls back
// to fallback. With useSlug the name is further normalized to a lowercase
// slug; if slugging yields nothing the sanitized name is kept.
func SanitizeFilename(name, fallback string, useSlug bool) string {
	name = strings.TrimSpace(name)
	if strings.EqualFold(filepath.Ext(name), PDFExtension) {
		name = name[:len(name)-len(PDFExtension)]
	}
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(unsafeFilenameChars, r) {
			return '_'
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		name = fallback
	}

	if useSlug {
		if s, err := slug.Normalize(name); err == nil && s != "" {
			name = s
		}
	}
	return name
}

// OutputPath joins dir and the sanitized name with ext (for example ".pdf").
func OutputPath(dir, name, fallback string, useSlug bool, ext string) string {
	return filepath.Join(dir, SanitizeFilename(name, fallback, useSlug)+ext)
}
