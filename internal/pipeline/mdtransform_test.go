package pipeline

import (
	"context"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPreprocessMarkdown - Full preprocessing pass
// ---------------------------------------------------------------------------

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	p := &CommonMarkPreprocessor{}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "CRLF normalized",
			input: "a\r\nb\rc",
			want:  "a\nb\nc",
		},
		{
			name:  "blank lines compressed",
			input: "a\n\n\n\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "highlight converted",
			input: "some ==key== text",
			want:  "some " + MarkStartPlaceholder + "key" + MarkEndPlaceholder + " text",
		},
		{
			name:  "merge separator becomes placeholder paragraph",
			input: "A\n\n<div class=\"page-break\"></div>\n\nB",
			want:  "A\n\n" + PageBreakPlaceholder + "\n\nB",
		},
		{
			name:  "marker right after text gets its own paragraph",
			input: "A\n<div class=\"page-break\"></div>\nB",
			want:  "A\n\n" + PageBreakPlaceholder + "\n\nB",
		},
		{
			name:  "single quotes and spacing",
			input: "  <div class='page-break'> </div>  ",
			want:  "\n" + PageBreakPlaceholder + "\n",
		},
		{
			name:  "inline marker untouched",
			input: "text <div class=\"page-break\"></div> text",
			want:  "text <div class=\"page-break\"></div> text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.want {
				t.Errorf("PreprocessMarkdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreprocessMarkdown_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := "a\r\n==b=="
	if got := (&CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, in); got != in {
		t.Errorf("cancelled PreprocessMarkdown() = %q, want input unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// Placeholder post-processing
// ---------------------------------------------------------------------------

func TestConvertMarkPlaceholders(t *testing.T) {
	t.Parallel()

	in := "<p>" + MarkStartPlaceholder + "x" + MarkEndPlaceholder + "</p>"
	if got, want := ConvertMarkPlaceholders(in), "<p><mark>x</mark></p>"; got != want {
		t.Errorf("ConvertMarkPlaceholders() = %q, want %q", got, want)
	}
}

func TestConvertPageBreakPlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "paragraph replaced",
			in:   "<p>A</p>\n<p>" + PageBreakPlaceholder + "</p>\n<p>B</p>\n",
			want: "<p>A</p>\n" + PageBreakHTML + "\n<p>B</p>\n",
		},
		{
			name: "nested placeholder replaced",
			in:   "<li>" + PageBreakPlaceholder + "</li>",
			want: "<li>" + PageBreakHTML + "</li>",
		},
		{
			name: "no placeholder",
			in:   "<p>plain</p>",
			want: "<p>plain</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ConvertPageBreakPlaceholders(tt.in)
			if got != tt.want {
				t.Errorf("ConvertPageBreakPlaceholders() = %q, want %q", got, tt.want)
			}
			if strings.Contains(got, PageBreakPlaceholder) {
				t.Error("placeholder left in output")
			}
		})
	}
}
