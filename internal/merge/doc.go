// Package merge assembles an ordered set of notes into a single paper.
//
// The pipeline runs per note: extract front matter, rewrite [[key]]
// citations against a catalog of source notes, and compute the chapter
// order. Chapters are then stably sorted, joined with page-break markers and
// followed by a generated references section.
//
// Every transformation works on strings; there is no Markdown AST here. The
// rendering side (HTML, PDF) lives outside this package and only sees the
// merged Markdown.
package merge
