package frontmatter

// Notes:
// - parseLines is tested directly for the empty-key case: what the YAML
//   decoder does with an empty key is library-specific, the line parser's
//   behavior is ours.
// - The time.Time branch of scalarString depends on whether the YAML decoder
//   resolves timestamps for untyped targets; the test accepts the date string
//   either way.

import (
	"testing"
)

// ---------------------------------------------------------------------------
// TestExtract - Delimiter handling and body splitting
// ---------------------------------------------------------------------------

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantFM   FrontMatter
		wantBody string
		wantOK   bool
	}{
		{
			name:     "simple block",
			content:  "---\nkey: value\n---\nBODY",
			wantFM:   FrontMatter{"key": "value"},
			wantBody: "BODY",
			wantOK:   true,
		},
		{
			name:     "body is trimmed",
			content:  "---\nshort: Smith20\n---\n\n\nSome text.\n\n",
			wantFM:   FrontMatter{"short": "Smith20"},
			wantBody: "Some text.",
			wantOK:   true,
		},
		{
			name:     "no leading delimiter",
			content:  "# Title\n\n---\nnot: frontmatter\n---",
			wantFM:   FrontMatter{},
			wantBody: "# Title\n\n---\nnot: frontmatter\n---",
			wantOK:   false,
		},
		{
			name:     "missing closing delimiter",
			content:  "---\ntitle: Draft\nno closing here",
			wantFM:   FrontMatter{},
			wantBody: "---\ntitle: Draft\nno closing here",
			wantOK:   false,
		},
		{
			name:     "closing delimiter need not be on its own line",
			content:  "---\ntitle: x --- y\n---\nBody",
			wantFM:   FrontMatter{"title": "x"},
			wantBody: "y\n---\nBody",
			wantOK:   true,
		},
		{
			name:     "empty block",
			content:  "------\nBody",
			wantFM:   FrontMatter{},
			wantBody: "Body",
			wantOK:   true,
		},
		{
			name:     "empty document",
			content:  "",
			wantFM:   FrontMatter{},
			wantBody: "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fm, body, ok := Extract(tt.content)
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			assertFrontMatter(t, fm, tt.wantFM)
		})
	}
}

// ---------------------------------------------------------------------------
// TestParse - YAML values and line-parser fallback
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block string
		want  FrontMatter
	}{
		{
			name:  "plain scalars kept as strings",
			block: "short: Smith20\nyear: 2020\norder: 3\ndraft: true",
			want: FrontMatter{
				"short": "Smith20",
				"year":  "2020",
				"order": "3",
				"draft": "true",
			},
		},
		{
			name:  "numerals are not normalized",
			block: "volume: 3.10\nversion: 1.0\nshort: 0x1F\npages: 007\nratio: 1e3",
			want: FrontMatter{
				"volume":  "3.10",
				"version": "1.0",
				"short":   "0x1F",
				"pages":   "007",
				"ratio":   "1e3",
			},
		},
		{
			name:  "hash after space stays in the value",
			block: "title: Issue #5 revisited\nshort: Chapter #1",
			want:  FrontMatter{"title": "Issue #5 revisited", "short": "Chapter #1"},
		},
		{
			name:  "null tokens are values",
			block: "short: ~\nnote: null",
			want:  FrontMatter{"short": "~", "note": "null"},
		},
		{
			name:  "block scalar content",
			block: "abstract: |\n  First line.\n  Second line.\nshort: S",
			want:  FrontMatter{"abstract": "First line.\nSecond line.", "short": "S"},
		},
		{
			name:  "quoted values are unquoted",
			block: "title: \"A Study: Part 1\"\nauthor: 'Smith, J.'",
			want:  FrontMatter{"title": "A Study: Part 1", "author": "Smith, J."},
		},
		{
			name:  "nested values are skipped",
			block: "tags:\n  - one\n  - two\nmeta:\n  a: b\nshort: S",
			want:  FrontMatter{"short": "S"},
		},
		{
			name:  "null values are skipped",
			block: "order:\nshort: S",
			want:  FrontMatter{"short": "S"},
		},
		{
			name:  "invalid YAML falls back to line parsing",
			block: "title: Part 1: Origins\nshort: P1",
			want:  FrontMatter{"title": "Part 1: Origins", "short": "P1"},
		},
		{
			name:  "lines without colon are skipped",
			block: "short: S\njust some text",
			want:  FrontMatter{"short": "S"},
		},
		{
			name:  "scalar block has no keys",
			block: "just text",
			want:  FrontMatter{},
		},
		{
			name:  "whitespace only",
			block: "  \n \n",
			want:  FrontMatter{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertFrontMatter(t, Parse(tt.block), tt.want)
		})
	}
}

func TestParse_Date(t *testing.T) {
	t.Parallel()

	fm := Parse("date: 2020-01-15")
	if got := fm.Get("date"); got != "2020-01-15" {
		t.Errorf("date = %q, want %q", got, "2020-01-15")
	}
}

// ---------------------------------------------------------------------------
// TestParseLines - Lenient key: value reader
// ---------------------------------------------------------------------------

func TestParseLines(t *testing.T) {
	t.Parallel()

	got := parseLines(": orphan\nshort:\n  url : https://example.com/a \nno colon\r\nyear: 2020\r")
	want := FrontMatter{
		"url":  "https://example.com/a",
		"year": "2020",
	}
	assertFrontMatter(t, got, want)
}

// ---------------------------------------------------------------------------
// TestFrontMatter_Accessors
// ---------------------------------------------------------------------------

func TestFrontMatter_Accessors(t *testing.T) {
	t.Parallel()

	fm := FrontMatter{"short": "S"}
	if !fm.Has("short") {
		t.Error("Has(short) = false, want true")
	}
	if fm.Has("title") {
		t.Error("Has(title) = true, want false")
	}
	if fm.Get("title") != "" {
		t.Errorf("Get(title) = %q, want empty", fm.Get("title"))
	}

	var nilFM FrontMatter
	if nilFM.Has("x") || nilFM.Get("x") != "" {
		t.Error("nil FrontMatter should behave as empty")
	}
}

func assertFrontMatter(t *testing.T, got, want FrontMatter) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("len = %d, want %d (got %v)", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}
