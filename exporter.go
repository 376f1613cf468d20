package paperexport

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-paperexport/internal/assets"
	"github.com/alnah/go-paperexport/internal/logging"
	"github.com/alnah/go-paperexport/internal/merge"
	"github.com/alnah/go-paperexport/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ Store                         = (*Vault)(nil)
	_ pdfConverter                  = (*rodConverter)(nil)
	_ pdfRenderer                   = (*rodRenderer)(nil)
)

// defaultTitle names documents without an H1.
const defaultTitle = "Export"

// firstHeading matches the first ATX level-one heading.
var firstHeading = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t#]*$`)

// Exporter orchestrates the merge, HTML, and PDF stages.
// Create with NewExporter, use Export for a full run, and Close when done.
type Exporter struct {
	cfg           exporterConfig
	store         Store
	baseLogger    *log.Logger
	logger        *logging.Logger
	assetLoader   assets.AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	document      *pipeline.DocumentRenderer
	fallback      *pipeline.DocumentRenderer // built-in template, set when a custom one is used
	stylesheet    string
	pdfConverter  pdfConverter
}

// NewExporter creates an Exporter with default configuration.
// Returns error if asset loading or template parsing fails.
func NewExporter(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		cfg: exporterConfig{
			timeout:   defaultTimeout,
			styleName: assets.DefaultStyleName,
			merge:     merge.DefaultOptions(),
		},
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.logger = logging.Wrap(e.baseLogger)

	resolver, err := assets.NewAssetResolver(e.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	e.assetLoader = resolver

	if err := e.loadStylesheet(); err != nil {
		return nil, err
	}
	if err := e.loadTemplates(); err != nil {
		return nil, err
	}

	// Create PDF converter if not injected (e.g., by tests)
	if e.pdfConverter == nil {
		e.pdfConverter = newRodConverter(e.cfg.timeout, e.logger)
	}

	return e, nil
}

// loadStylesheet resolves the named style and appends the code highlighting rules.
func (e *Exporter) loadStylesheet() error {
	style, err := e.assetLoader.LoadStyle(e.cfg.styleName)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w: %q", ErrStyleNotFound, e.cfg.styleName)
		}
		return fmt.Errorf("loading style %q: %w", e.cfg.styleName, err)
	}
	highlight, err := pipeline.HighlightCSS()
	if err != nil {
		return err
	}
	e.stylesheet = pipeline.JoinCSS(style, highlight)
	return nil
}

// loadTemplates parses the built-in document template and, when configured,
// the custom one. A custom template that fails is logged and skipped.
func (e *Exporter) loadTemplates() error {
	content, err := e.assetLoader.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return fmt.Errorf("loading default template: %w", err)
	}
	builtin, err := pipeline.NewDocumentRenderer(content)
	if err != nil {
		return fmt.Errorf("initializing document template: %w", err)
	}
	e.document = builtin

	if e.cfg.templatePath == "" {
		return nil
	}
	custom, err := assets.LoadTemplateFile(e.cfg.templatePath, e.cfg.templateBaseDir)
	if err == nil {
		var r *pipeline.DocumentRenderer
		if r, err = pipeline.NewDocumentRenderer(custom); err == nil {
			e.document = r
			e.fallback = builtin
			return nil
		}
	}
	e.logger.TemplateFallback(e.cfg.templatePath, err)
	return nil
}

// Merge assembles files into one document. Empty files discovers every note
// outside the sources folder. Returns ErrNoChapters when nothing is found.
func (e *Exporter) Merge(ctx context.Context, files []File) (*MergeResult, error) {
	if e.store == nil {
		return nil, ErrNilStore
	}
	if len(files) == 0 {
		var err error
		files, err = merge.DiscoverChapters(ctx, e.store, e.cfg.merge.Citations.SourcesFolder)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, ErrNoChapters
		}
	}
	return merge.New(e.store, e.cfg.merge, e.logger).Merge(ctx, files)
}

// Export runs the full pipeline and returns the merged Markdown, the HTML
// document and, unless input.HTMLOnly, the PDF.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (e *Exporter) Export(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	res := &Result{Markdown: input.Markdown}
	if res.Markdown == "" {
		merged, err := e.Merge(ctx, input.Files)
		if err != nil {
			return nil, err
		}
		res.Merge = merged
		res.Markdown = merged.Markdown
	}
	if strings.TrimSpace(res.Markdown) == "" {
		return nil, ErrEmptyDocument
	}

	htmlContent, err := e.RenderHTML(ctx, res.Markdown, input)
	if err != nil {
		return nil, err
	}
	res.HTML = []byte(htmlContent)

	if input.HTMLOnly {
		return res, nil
	}

	box, err := input.Page.resolve()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	pdf, err := e.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{
		Page:    box,
		Footer:  input.Footer,
		MathJax: input.MathJax,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	e.logger.Rendered("pdf", len(pdf), time.Since(start))

	res.PDF = pdf
	return res, nil
}

// RenderHTML converts merged Markdown into a complete HTML document using
// the title, CSS, MathJax, and BaseDir settings of input.
func (e *Exporter) RenderHTML(ctx context.Context, markdown string, input Input) (string, error) {
	start := time.Now()

	mdContent := e.preprocessor.PreprocessMarkdown(ctx, markdown)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := e.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return "", fmt.Errorf("converting to HTML: %w", err)
	}

	body, err = pipeline.RewriteHTML(body, pipeline.RewriteOptions{
		BaseDir:   e.baseDir(input),
		NewWindow: true,
	})
	if err != nil {
		return "", fmt.Errorf("rewriting HTML: %w", err)
	}

	data := pipeline.DocumentData{
		Title:      documentTitle(input.Title, markdown),
		CSS:        pipeline.JoinCSS(e.stylesheet, input.CSS),
		Body:       body,
		MathJax:    input.MathJax,
		MathJaxURL: e.cfg.mathJaxURL,
	}
	doc, err := e.document.Render(ctx, data)
	if err != nil && e.fallback != nil && ctx.Err() == nil {
		e.logger.TemplateFallback(e.cfg.templatePath, err)
		doc, err = e.fallback.Render(ctx, data)
	}
	if err != nil {
		return "", err
	}

	e.logger.Rendered("html", len(doc), time.Since(start))
	return doc, nil
}

// Close releases resources (headless Chrome browser).
func (e *Exporter) Close() error {
	if e.pdfConverter != nil {
		return e.pdfConverter.Close()
	}
	return nil
}

// baseDir picks the absolute directory relative image paths resolve against.
func (e *Exporter) baseDir(input Input) string {
	dir := input.BaseDir
	if dir == "" {
		if r, ok := e.store.(interface{ Root() string }); ok {
			dir = r.Root()
		}
	}
	if dir == "" {
		return ""
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// validateInput checks page and footer settings before any work is done.
func validateInput(input Input) error {
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return input.Footer.Validate()
}

// documentTitle returns title, or the first H1 of markdown, or defaultTitle.
func documentTitle(title, markdown string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	if m := firstHeading.FindStringSubmatch(markdown); m != nil {
		return strings.TrimSpace(m[1])
	}
	return defaultTitle
}
