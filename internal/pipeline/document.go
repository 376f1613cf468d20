package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// Sentinel errors for document rendering.
var (
	ErrTemplateParse  = errors.New("document template parse failed")
	ErrTemplateRender = errors.New("document template rendering failed")
)

// DefaultMathJaxURL is the MathJax 3 bundle loaded when math rendering is on.
const DefaultMathJaxURL = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"

// DocumentData holds the values substituted into the document template.
type DocumentData struct {
	Title      string
	Lang       string // defaults to "en"
	CSS        string
	Body       string // trusted HTML produced by the converter
	MathJax    bool
	MathJaxURL string // defaults to DefaultMathJaxURL
}

// templateView is what the template sees: CSS and Body are marked safe so
// html/template inserts them verbatim.
type templateView struct {
	Title      string
	Lang       string
	CSS        template.CSS
	Body       template.HTML
	MathJax    bool
	MathJaxURL string
}

// DocumentRenderer wraps converted HTML in a complete document.
type DocumentRenderer struct {
	tmpl *template.Template
}

// NewDocumentRenderer parses tmplContent as an html/template.
func NewDocumentRenderer(tmplContent string) (*DocumentRenderer, error) {
	tmpl, err := template.New("document").Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &DocumentRenderer{tmpl: tmpl}, nil
}

// Render executes the template.
func (r *DocumentRenderer) Render(ctx context.Context, data DocumentData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := templateView{
		Title:      data.Title,
		Lang:       data.Lang,
		CSS:        template.CSS(sanitizeCSS(data.CSS)), // #nosec G203 -- style block closers escaped
		Body:       template.HTML(data.Body),            // #nosec G203 -- goldmark output without raw HTML
		MathJax:    data.MathJax,
		MathJaxURL: data.MathJaxURL,
	}
	if view.Lang == "" {
		view.Lang = "en"
	}
	if view.MathJaxURL == "" {
		view.MathJaxURL = DefaultMathJaxURL
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// HighlightCSS returns the stylesheet for code blocks highlighted with
// HighlightStyle.
func HighlightCSS() (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(HighlightStyle)); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}

// JoinCSS concatenates non-empty stylesheets in order.
func JoinCSS(sheets ...string) string {
	parts := make([]string, 0, len(sheets))
	for _, s := range sheets {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}
