package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Placeholders use Unicode Private Use Area characters. They pass through
// goldmark unchanged and are turned into markup afterwards, so raw HTML
// rendering (WithUnsafe) stays off.
const (
	MarkStartPlaceholder = "\uE000" // U+E000
	MarkEndPlaceholder   = "\uE001" // U+E001
	PageBreakPlaceholder = "\uE002" // U+E002
)

// PageBreakHTML is the page-break marker emitted by the merge step and by
// the converter.
const PageBreakHTML = `<div class="page-break"></div>`

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.*?)==`)

	// A page-break marker alone on its line, with optional surrounding blanks
	// and self-closing or spaced variants.
	pageBreakLine = regexp.MustCompile(`(?mi)^[ \t]*<div\s+class\s*=\s*["']page-break["']\s*>\s*</div>[ \t]*$`)

	// Placeholder paragraph as rendered by goldmark.
	pageBreakParagraph = regexp.MustCompile(`<p>` + PageBreakPlaceholder + `</p>\n?`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before CommonMark conversion.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown normalizes line endings, marks page breaks and
// highlights, and compresses blank lines.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = convertPageBreaks(content)
	content = convertHighlights(content)
	content = compressBlankLines(content)
	return content
}

func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights transforms ==text== to placeholder markers.
func convertHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
}

// convertPageBreaks turns each standalone page-break marker into its own
// placeholder paragraph.
func convertPageBreaks(content string) string {
	return pageBreakLine.ReplaceAllString(content, "\n"+PageBreakPlaceholder+"\n")
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}

// ConvertPageBreakPlaceholders restores page-break divs. A placeholder that
// ended up inside another block (a list item, a blockquote) still becomes a
// div.
func ConvertPageBreakPlaceholders(content string) string {
	content = pageBreakParagraph.ReplaceAllString(content, PageBreakHTML+"\n")
	return strings.ReplaceAll(content, PageBreakPlaceholder, PageBreakHTML)
}
