package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed styles/*.css templates/*.html
var embedded embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	content, err := readEmbedded("styles", name, ".css")
	if err != nil {
		return "", wrapNotFound(err, ErrStyleNotFound, name)
	}
	return content, nil
}

// LoadTemplate loads an HTML template from embedded assets by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	content, err := readEmbedded("templates", name, ".html")
	if err != nil {
		return "", wrapNotFound(err, ErrTemplateNotFound, name)
	}
	return content, nil
}

// Styles lists the embedded style names, sorted.
func (e *EmbeddedLoader) Styles() []string {
	entries, err := fs.ReadDir(embedded, "styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".css"))
	}
	sort.Strings(names)
	return names
}

func readEmbedded(dir, name, ext string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := embedded.ReadFile(path.Join(dir, name+ext))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// wrapNotFound keeps validation errors and maps anything else to notFound.
func wrapNotFound(err, notFound error, name string) error {
	if isValidationError(err) {
		return err
	}
	return fmt.Errorf("%w: %q", notFound, name)
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
