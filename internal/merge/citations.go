package merge

import (
	"regexp"
	"sort"
)

// wikiLinkPattern matches [[key]] lazily, so "[[a]] and [[b]]" yields two
// matches. Keys containing "]]" cannot be expressed.
var wikiLinkPattern = regexp.MustCompile(`\[\[(.*?)\]\]`)

// UsedSet is the set of source keys cited at least once.
type UsedSet map[string]struct{}

// Add records key.
func (u UsedSet) Add(key string) {
	u[key] = struct{}{}
}

// Has reports whether key was cited.
func (u UsedSet) Has(key string) bool {
	_, ok := u[key]
	return ok
}

// Merge adds every key of other.
func (u UsedSet) Merge(other UsedSet) {
	for k := range other {
		u[k] = struct{}{}
	}
}

// Sorted returns the keys in lexicographic byte order.
func (u UsedSet) Sorted() []string {
	keys := make([]string, 0, len(u))
	for k := range u {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ResolveCitations rewrites every [[key]] whose key is in catalog as
// [short]. Unknown keys are left untouched and not recorded. Output text is
// never rescanned, so the result contains no resolvable link and resolving
// it again is a no-op.
func ResolveCitations(body string, catalog *Catalog) (string, UsedSet) {
	used := make(UsedSet)
	if catalog.Len() == 0 {
		return body, used
	}

	out := wikiLinkPattern.ReplaceAllStringFunc(body, func(match string) string {
		key := match[2 : len(match)-2]
		src, ok := catalog.Get(key)
		if !ok {
			return match
		}
		used.Add(key)
		return "[" + src.Short() + "]"
	})
	return out, used
}
