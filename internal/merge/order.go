package merge

import (
	"sort"
	"strconv"

	"github.com/alnah/go-paperexport/internal/frontmatter"
	"github.com/alnah/go-paperexport/internal/vault"
)

// UnorderedChapter is the order given to chapters with no order field, no
// chapter field and no leading digits in their name. They sort after any
// realistically numbered chapter and keep their input order among
// themselves.
const UnorderedChapter = 999

// Front-matter fields consulted for ordering, in precedence order.
const (
	OrderKey   = "order"
	ChapterKey = "chapter"
)

// Chapter is one note prepared for assembly.
type Chapter struct {
	File        vault.File
	Content     string
	FrontMatter frontmatter.FrontMatter
	Order       int
}

// ChapterOrder computes the sort key of a note. The first present of the
// order field, the chapter field and the leading digits of basename
// decides. A field whose value has no leading integer yields
// UnorderedChapter; it does not fall through to the next rule.
func ChapterOrder(fm frontmatter.FrontMatter, basename string) int {
	for _, key := range []string{OrderKey, ChapterKey} {
		if fm.Has(key) {
			if n, ok := leadingInt(fm.Get(key)); ok {
				return n
			}
			return UnorderedChapter
		}
	}
	if n, ok := leadingDigits(basename); ok {
		return n
	}
	return UnorderedChapter
}

// SortChapters orders chapters ascending by Order. Equal orders keep their
// relative input order.
func SortChapters(chapters []Chapter) {
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Order < chapters[j].Order
	})
}

// leadingInt parses an optionally signed decimal prefix of s after leading
// spaces: "12abc" is 12, "3.5" is 3, "-2" is -2, "abc" has none.
func leadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// leadingDigits parses the unsigned digit run at the start of s.
func leadingDigits(s string) (int, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}
