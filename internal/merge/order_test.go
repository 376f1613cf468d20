package merge

import (
	"testing"

	"github.com/alnah/go-paperexport/internal/frontmatter"
	"github.com/alnah/go-paperexport/internal/vault"
)

// ---------------------------------------------------------------------------
// TestChapterOrder - Precedence rules
// ---------------------------------------------------------------------------

func TestChapterOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fm       frontmatter.FrontMatter
		basename string
		want     int
	}{
		{"order field", frontmatter.FrontMatter{"order": "4"}, "x", 4},
		{"order beats chapter", frontmatter.FrontMatter{"order": "4", "chapter": "7"}, "01-x", 4},
		{"chapter beats filename", frontmatter.FrontMatter{"chapter": "7"}, "03-chapter", 7},
		{"filename digits", nil, "03-chapter", 3},
		{"filename digits only", nil, "12", 12},
		{"no digits", nil, "intro", UnorderedChapter},
		{"digits not leading", nil, "chapter-3", UnorderedChapter},
		{"negative order", frontmatter.FrontMatter{"order": "-2"}, "x", -2},
		{"plus sign", frontmatter.FrontMatter{"order": "+5"}, "x", 5},
		{"numeric prefix", frontmatter.FrontMatter{"order": "12abc"}, "x", 12},
		{"decimal truncates", frontmatter.FrontMatter{"chapter": "3.7"}, "x", 3},
		{"non-numeric order", frontmatter.FrontMatter{"order": "intro"}, "05-x", UnorderedChapter},
		{"non-numeric order does not fall through", frontmatter.FrontMatter{"order": "intro", "chapter": "2"}, "x", UnorderedChapter},
		{"bare sign", frontmatter.FrontMatter{"order": "-"}, "x", UnorderedChapter},
		{"zero", frontmatter.FrontMatter{"order": "0"}, "x", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ChapterOrder(tt.fm, tt.basename); got != tt.want {
				t.Errorf("ChapterOrder(%v, %q) = %d, want %d", tt.fm, tt.basename, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSortChapters - Stability
// ---------------------------------------------------------------------------

func TestSortChapters(t *testing.T) {
	t.Parallel()

	chapters := []Chapter{
		{File: vault.NewFile("z.md"), Order: UnorderedChapter},
		{File: vault.NewFile("b.md"), Order: 2},
		{File: vault.NewFile("a.md"), Order: UnorderedChapter},
		{File: vault.NewFile("c.md"), Order: 1},
		{File: vault.NewFile("d.md"), Order: 2},
	}
	SortChapters(chapters)

	want := []string{"c.md", "b.md", "d.md", "z.md", "a.md"}
	for i, p := range want {
		if chapters[i].File.Path != p {
			t.Errorf("chapters[%d] = %s, want %s", i, chapters[i].File.Path, p)
		}
	}
}
