package merge

import (
	"context"
	"errors"
	"testing/fstest"

	"github.com/alnah/go-paperexport/internal/frontmatter"
	"github.com/alnah/go-paperexport/internal/vault"
)

var errDisk = errors.New("disk on fire")

// failingStore wraps a store and fails reads of one path, or every List.
type failingStore struct {
	vault.Store
	failRead string
	failList bool
}

func (s *failingStore) List(ctx context.Context) ([]vault.File, error) {
	if s.failList {
		return nil, errDisk
	}
	return s.Store.List(ctx)
}

func (s *failingStore) Read(ctx context.Context, f vault.File) (string, error) {
	if f.Path == s.failRead {
		return "", errDisk
	}
	return s.Store.Read(ctx, f)
}

func mapStore(files map[string]string) *vault.FS {
	fsys := fstest.MapFS{}
	for p, content := range files {
		fsys[p] = &fstest.MapFile{Data: []byte(content)}
	}
	return vault.New(fsys)
}

func newSource(key string, fm frontmatter.FrontMatter) *Source {
	return &Source{Key: key, File: vault.NewFile("sources/" + key + ".md"), FrontMatter: fm}
}

func catalogOf(sources ...*Source) *Catalog {
	c := NewCatalog()
	for _, s := range sources {
		c.Add(s)
	}
	return c
}

func files(paths ...string) []vault.File {
	out := make([]vault.File, len(paths))
	for i, p := range paths {
		out[i] = vault.NewFile(p)
	}
	return out
}
