// Package vault exposes a directory of Markdown notes as a read-only file store.
//
// Paths are slash-separated and relative to the vault root, whatever the host
// OS. Notes are enumerated in lexical path order, which makes catalog
// construction and default chapter lists deterministic.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// Sentinel errors for store operations.
var (
	ErrNotMarkdown = errors.New("not a markdown file")
	ErrInvalidPath = errors.New("invalid vault path")
)

// markdownExtensions lists the extensions treated as notes.
var markdownExtensions = []string{".md", ".markdown"}

// File identifies a note inside a store.
type File struct {
	Path     string // slash-separated, relative to the vault root
	Basename string // file name without extension
}

// Store is the file collaborator consumed by the merge pipeline.
type Store interface {
	// List returns every Markdown note, in lexical path order.
	List(ctx context.Context) ([]File, error)
	// Read returns the full UTF-8 content of a note.
	Read(ctx context.Context, f File) (string, error)
}

// FS implements Store on top of an fs.FS.
type FS struct {
	fsys fs.FS
	root string // informational, empty for non-disk filesystems
}

// New wraps fsys as a Store.
func New(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Open returns a Store rooted at a directory on disk.
func Open(dir string) (*FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidPath, dir)
	}
	return &FS{fsys: os.DirFS(dir), root: dir}, nil
}

// Root returns the directory the store was opened on, or "".
func (v *FS) Root() string {
	return v.root
}

// List walks the store and returns its notes sorted by path. Hidden
// directories such as .obsidian, .git and .trash are skipped.
func (v *FS) List(ctx context.Context) ([]File, error) {
	var files []File
	err := fs.WalkDir(v.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !IsMarkdown(p) {
			return nil
		}
		files = append(files, NewFile(p))
		return nil
	})
	if err != nil {
		return nil, err
	}
	// WalkDir orders per directory, which puts "a/x.md" before "a.md".
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Read returns the content of f.
func (v *FS) Read(ctx context.Context, f File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !fs.ValidPath(f.Path) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, f.Path)
	}
	data, err := fs.ReadFile(v.fsys, f.Path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Lookup resolves a vault-relative path to a File. The path is normalized
// first and must name an existing Markdown note.
func (v *FS) Lookup(p string) (File, error) {
	p = NormalizePath(p)
	if !IsMarkdown(p) {
		return File{}, fmt.Errorf("%w: %s", ErrNotMarkdown, p)
	}
	if !fs.ValidPath(p) {
		return File{}, fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	info, err := fs.Stat(v.fsys, p)
	if err != nil {
		return File{}, err
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%w: %s is a directory", ErrNotMarkdown, p)
	}
	return NewFile(p), nil
}

// NewFile builds a File from a slash-separated vault path.
func NewFile(p string) File {
	p = NormalizePath(p)
	base := path.Base(p)
	return File{
		Path:     p,
		Basename: strings.TrimSuffix(base, path.Ext(base)),
	}
}

// NormalizePath converts backslashes to slashes, cleans the path and trims
// leading and trailing slashes. The vault root normalizes to "".
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." {
		return ""
	}
	return p
}

// InFolder reports whether p is folder itself or lies below it. Matching is
// an exact prefix comparison on normalized paths; an empty folder matches
// everything.
func InFolder(p, folder string) bool {
	folder = NormalizePath(folder)
	if folder == "" {
		return true
	}
	p = NormalizePath(p)
	return p == folder || strings.HasPrefix(p, folder+"/")
}

// IsMarkdown reports whether p has a Markdown extension.
func IsMarkdown(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range markdownExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Compile-time interface check.
var _ Store = (*FS)(nil)
