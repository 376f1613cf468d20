package merge

import "strings"

// DefaultReferencesTitle heads the references section when no title is set.
const DefaultReferencesTitle = "References"

// PageBreak is the marker placed between chapters and before references.
const PageBreak = `<div class="page-break"></div>`

// pageBreakSeparator surrounds PageBreak with blank lines so it stays a
// standalone HTML block in Markdown.
const pageBreakSeparator = "\n\n" + PageBreak + "\n\n"

// ReferenceOptions controls the references section.
type ReferenceOptions struct {
	CitationsEnabled  bool
	IncludeReferences bool
	Title             string
}

// GenerateReferences renders the bibliography for used. It returns "" when
// citations or the section are disabled, or nothing was cited. Entries are
// sorted by key; keys missing from catalog are skipped.
func GenerateReferences(used UsedSet, catalog *Catalog, opts ReferenceOptions) string {
	if !opts.CitationsEnabled || !opts.IncludeReferences || len(used) == 0 {
		return ""
	}

	title := opts.Title
	if title == "" {
		title = DefaultReferencesTitle
	}

	var b strings.Builder
	b.WriteString(pageBreakSeparator)
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")

	for _, key := range used.Sorted() {
		src, ok := catalog.Get(key)
		if !ok {
			continue
		}
		b.WriteString(FormatReference(src))
		b.WriteString("\n\n")
	}
	return b.String()
}

// FormatReference renders one bibliography entry from the source's front
// matter. Absent fields are omitted; journal takes precedence over
// publisher.
func FormatReference(src *Source) string {
	fm := src.FrontMatter
	var b strings.Builder

	if v := fm.Get("author"); v != "" {
		b.WriteString(v + ". ")
	}
	if v := fm.Get("year"); v != "" {
		b.WriteString("(" + v + "). ")
	}
	if v := fm.Get("title"); v != "" {
		b.WriteString(v + ". ")
	}
	if journal := fm.Get("journal"); journal != "" {
		b.WriteString("*" + journal + "*")
		if v := fm.Get("volume"); v != "" {
			b.WriteString(", " + v)
		}
		if v := fm.Get("pages"); v != "" {
			b.WriteString(", " + v)
		}
		b.WriteString(". ")
	} else if v := fm.Get("publisher"); v != "" {
		b.WriteString(v + ". ")
	}
	if v := fm.Get("url"); v != "" {
		b.WriteString("Retrieved from " + v)
	}
	return b.String()
}
