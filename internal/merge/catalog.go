package merge

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alnah/go-paperexport/internal/frontmatter"
	"github.com/alnah/go-paperexport/internal/logging"
	"github.com/alnah/go-paperexport/internal/vault"
)

// ShortKey is the front-matter field that marks a note as a citable source.
const ShortKey = "short"

// Source is a citable note.
type Source struct {
	Key         string // base name of the note
	File        vault.File
	FrontMatter frontmatter.FrontMatter
}

// Short returns the in-text citation label, falling back to the key.
func (s *Source) Short() string {
	if v := s.FrontMatter.Get(ShortKey); v != "" {
		return v
	}
	return s.Key
}

// Collision records two sources sharing a key. The later one replaced the
// earlier one.
type Collision struct {
	Key     string
	Kept    string
	Dropped string
}

// Catalog maps source keys to sources. Keys are case-sensitive.
// The zero value is not usable; call NewCatalog.
type Catalog struct {
	sources    map[string]*Source
	collisions []Collision
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{sources: make(map[string]*Source)}
}

// Add inserts s, replacing any source with the same key.
// It reports whether a replacement happened.
func (c *Catalog) Add(s *Source) bool {
	prev, exists := c.sources[s.Key]
	c.sources[s.Key] = s
	if exists {
		c.collisions = append(c.collisions, Collision{
			Key:     s.Key,
			Kept:    s.File.Path,
			Dropped: prev.File.Path,
		})
	}
	return exists
}

// Get looks up a source by key. Safe on a nil catalog.
func (c *Catalog) Get(key string) (*Source, bool) {
	if c == nil {
		return nil, false
	}
	s, ok := c.sources[key]
	return s, ok
}

// Len returns the number of sources.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sources)
}

// Keys returns every key in lexicographic order.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.sources))
	for k := range c.sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Collisions returns the duplicate keys met while building, in insertion
// order.
func (c *Catalog) Collisions() []Collision {
	if c == nil {
		return nil
	}
	out := make([]Collision, len(c.collisions))
	copy(out, c.collisions)
	return out
}

// BuildCatalog scans store for source notes. When folder is non-empty only
// notes equal to it or below it are considered. A note is a source iff its
// front matter has a short field.
func BuildCatalog(ctx context.Context, store vault.Store, folder string, logger *logging.Logger) (*Catalog, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if logger == nil {
		logger = logging.Discard()
	}
	start := time.Now()

	files, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListFiles, err)
	}

	catalog := NewCatalog()
	for _, f := range files {
		if !vault.InFolder(f.Path, folder) {
			continue
		}
		content, err := store.Read(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, f.Path, err)
		}
		fm, _, _ := frontmatter.Extract(content)
		if !fm.Has(ShortKey) {
			logger.Skipped(f.Path, "no short field")
			continue
		}
		src := &Source{Key: f.Basename, File: f, FrontMatter: fm}
		if replaced := catalog.Add(src); replaced {
			last := catalog.collisions[len(catalog.collisions)-1]
			logger.SourceCollision(last.Key, last.Kept, last.Dropped)
		}
	}

	logger.CatalogBuilt(vault.NormalizePath(folder), catalog.Len(), len(catalog.collisions), time.Since(start))
	return catalog, nil
}
