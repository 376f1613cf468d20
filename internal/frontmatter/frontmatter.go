// Package frontmatter splits a note's leading "---" block from its body and
// parses it into a flat string mapping.
//
// The block is parsed as YAML first. Blocks that are not a valid YAML mapping
// (for example "title: Part 1: Origins") fall back to a line parser that
// splits each line on its first colon. Either way values are strings as
// written: numbers, nulls and dates are never re-rendered. Neither path ever
// fails: malformed input degrades to fewer keys.
package frontmatter

import (
	"strings"

	"github.com/alnah/go-paperexport/internal/yamlutil"
)

// Delimiter opens and closes a front matter block.
const Delimiter = "---"

// FrontMatter maps front matter keys to their string values.
type FrontMatter map[string]string

// Has reports whether key is present.
func (fm FrontMatter) Has(key string) bool {
	_, ok := fm[key]
	return ok
}

// Get returns the value for key, or "" when absent.
func (fm FrontMatter) Get(key string) string {
	return fm[key]
}

// Extract splits content into front matter and body.
//
// Content must start with Delimiter. The closing delimiter is the next
// occurrence of Delimiter searched from byte offset 3, which means it does
// not have to sit on its own line. Without a closing delimiter the document
// has no front matter: ok is false, fm is empty and body is content unchanged.
// When ok is true, body is the text after the closing delimiter, trimmed.
func Extract(content string) (fm FrontMatter, body string, ok bool) {
	block, rest, found := split(content)
	if !found {
		return FrontMatter{}, content, false
	}
	return Parse(block), strings.TrimSpace(rest), true
}

// split locates the delimited block. block excludes both delimiters.
func split(content string) (block, rest string, found bool) {
	if !strings.HasPrefix(content, Delimiter) {
		return "", "", false
	}
	end := strings.Index(content[len(Delimiter):], Delimiter)
	if end == -1 {
		return "", "", false
	}
	end += len(Delimiter)
	return content[len(Delimiter):end], content[end+len(Delimiter):], true
}

// Parse converts the text between the delimiters into a FrontMatter.
func Parse(block string) FrontMatter {
	block = strings.TrimSpace(block)
	if block == "" {
		return FrontMatter{}
	}
	if fm, err := parseYAML(block); err == nil {
		return fm
	}
	return parseLines(block)
}

// parseYAML uses the YAML structure to decide which top-level keys hold
// scalars, but keeps values as the author typed them. Plain scalars take the
// text after the key's colon on its own line, so "3.10", "0x1F", "~" and
// "Issue #5" are not resolved to numbers, nulls or comments. Quoted and block
// scalars take their unquoted content.
func parseYAML(block string) (FrontMatter, error) {
	scalars, err := yamlutil.ScalarMapping([]byte(block))
	if err != nil {
		return nil, err
	}
	raw := topLevelLines(block)
	fm := make(FrontMatter, len(scalars))
	for key, s := range scalars {
		value, written := raw[key]
		switch {
		case s.Quoted || s.Block:
			value = s.Text
		case !written && s.Null:
			continue
		case !written:
			value = s.Text
		}
		if value = strings.TrimSpace(value); value != "" {
			fm[key] = value
		}
	}
	return fm, nil
}

// topLevelLines reads unindented "key: value" lines verbatim.
func topLevelLines(block string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(block, "\n") {
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		if key, value, ok := cutLine(line); ok {
			out[key] = value
		}
	}
	return out
}

// parseLines is the lenient "key: value" reader. Lines without a colon, with
// an empty key or with an empty value are skipped.
func parseLines(block string) FrontMatter {
	fm := FrontMatter{}
	for _, line := range strings.Split(block, "\n") {
		if key, value, ok := cutLine(line); ok {
			fm[key] = value
		}
	}
	return fm
}

// cutLine splits line on its first colon. Both sides are trimmed and must be
// non-empty.
func cutLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	return key, value, key != "" && value != ""
}
