package merge

import "strings"

// Assemble joins chapters with page breaks and appends references.
// A chapter with a title field whose content does not start with a heading
// gets "# title" prepended.
func Assemble(chapters []Chapter, references string) string {
	var b strings.Builder
	for i, ch := range chapters {
		if i > 0 {
			b.WriteString(pageBreakSeparator)
		}
		if title := ch.FrontMatter.Get("title"); title != "" && !strings.HasPrefix(strings.TrimSpace(ch.Content), "#") {
			b.WriteString("# " + title + "\n\n")
		}
		b.WriteString(ch.Content)
	}
	b.WriteString(references)
	return b.String()
}
