package merge

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-paperexport/internal/frontmatter"
	"github.com/alnah/go-paperexport/internal/logging"
	"github.com/alnah/go-paperexport/internal/vault"
)

// Options configures a Merger.
type Options struct {
	// IncludeFrontMatter keeps each note's front-matter block in the output.
	IncludeFrontMatter bool
	Citations          CitationOptions
}

// CitationOptions configures citation resolution and the bibliography.
type CitationOptions struct {
	Enabled           bool
	SourcesFolder     string // "" scans the whole store
	IncludeReferences bool
	ReferencesTitle   string
}

// DefaultOptions mirrors the stock export settings.
func DefaultOptions() Options {
	return Options{
		IncludeFrontMatter: true,
		Citations: CitationOptions{
			Enabled:           true,
			SourcesFolder:     "sources",
			IncludeReferences: true,
			ReferencesTitle:   DefaultReferencesTitle,
		},
	}
}

// Result is the outcome of one merge.
type Result struct {
	Markdown string
	Chapters []Chapter // in merged order
	Used     UsedSet
	Catalog  *Catalog // nil when citations are disabled
}

// Merger merges notes read from a store. It keeps no state between calls.
type Merger struct {
	store  vault.Store
	opts   Options
	logger *logging.Logger
}

// New creates a Merger. A nil logger discards output.
func New(store vault.Store, opts Options, logger *logging.Logger) *Merger {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Merger{store: store, opts: opts, logger: logger}
}

// Merge reads files in order and assembles them into one document.
// Cancellation is checked between notes; no partial result is returned.
func (m *Merger) Merge(ctx context.Context, files []vault.File) (*Result, error) {
	if m.store == nil {
		return nil, ErrNilStore
	}
	start := time.Now()

	var catalog *Catalog
	if m.opts.Citations.Enabled {
		var err error
		catalog, err = BuildCatalog(ctx, m.store, m.opts.Citations.SourcesFolder, m.logger)
		if err != nil {
			return nil, err
		}
	}

	used := make(UsedSet)
	chapters := make([]Chapter, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ch, cited, err := m.prepare(ctx, f, catalog)
		if err != nil {
			return nil, err
		}
		used.Merge(cited)
		chapters = append(chapters, ch)
	}

	SortChapters(chapters)
	references := GenerateReferences(used, catalog, ReferenceOptions{
		CitationsEnabled:  m.opts.Citations.Enabled,
		IncludeReferences: m.opts.Citations.IncludeReferences,
		Title:             m.opts.Citations.ReferencesTitle,
	})

	m.logger.MergeCompleted(len(chapters), len(used), time.Since(start))
	return &Result{
		Markdown: Assemble(chapters, references),
		Chapters: chapters,
		Used:     used,
		Catalog:  catalog,
	}, nil
}

// prepare turns one note into a chapter.
func (m *Merger) prepare(ctx context.Context, f vault.File, catalog *Catalog) (Chapter, UsedSet, error) {
	content, err := m.store.Read(ctx, f)
	if err != nil {
		return Chapter{}, nil, fmt.Errorf("%w: %s: %w", ErrReadFile, f.Path, err)
	}

	fm, body, found := frontmatter.Extract(content)
	if found && !m.opts.IncludeFrontMatter {
		content = body
	}

	used := make(UsedSet)
	if m.opts.Citations.Enabled {
		content, used = ResolveCitations(content, catalog)
		m.logger.CitationsResolved(f.Path, len(used))
	}

	order := ChapterOrder(fm, f.Basename)
	m.logger.ChapterOrdered(f.Path, order)

	return Chapter{
		File:        f,
		Content:     content,
		FrontMatter: fm,
		Order:       order,
	}, used, nil
}

// DiscoverChapters lists every note of store outside excludeFolder, in
// lexical path order. An empty excludeFolder keeps every note.
func DiscoverChapters(ctx context.Context, store vault.Store, excludeFolder string) ([]vault.File, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	files, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListFiles, err)
	}
	if vault.NormalizePath(excludeFolder) == "" {
		return files, nil
	}
	kept := files[:0]
	for _, f := range files {
		if !vault.InFolder(f.Path, excludeFolder) {
			kept = append(kept, f)
		}
	}
	return kept, nil
}
