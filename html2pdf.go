package paperexport

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-paperexport/internal/fileutil"
	"github.com/alnah/go-paperexport/internal/logging"
	"github.com/alnah/go-paperexport/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	Page    pageBox
	Footer  *Footer
	MathJax bool
}

// Extra bottom margin reserved for Chrome's footer, in inches.
const footerReserve = 0.3

// mathJaxWait bounds how long typesetting may delay printing.
const mathJaxWait = 15 * time.Second

// mathJaxReadyJS resolves once MathJax has typeset the page, or at once
// when MathJax never loaded (offline).
const mathJaxReadyJS = `() => (window.MathJax && window.MathJax.startup && window.MathJax.startup.promise) ? window.MathJax.startup.promise.then(() => true) : false`

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	logger   *logging.Logger
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration, logger *logging.Logger) *rodRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &rodRenderer{timeout: timeout, logger: logger}
}

// noSandbox reports whether Chrome must run without its sandbox.
func noSandbox() bool {
	return os.Getenv("ROD_NO_SANDBOX") == "1" ||
		os.Getenv("CI") == "true" ||
		os.Getenv("ROD_BROWSER_BIN") != ""
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if noSandbox() {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.shutdownLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources and reaps the Chrome process tree.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.shutdownLauncher()
	return err
}

// shutdownLauncher kills whatever the launcher started.
func (r *rodRenderer) shutdownLauncher() {
	if r.launcher == nil {
		return
	}
	process.KillTree(r.launcher.PID())
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx)

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if opts != nil && opts.MathJax {
		r.waitMathJax(page, min(timeout, mathJaxWait))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// waitMathJax blocks until MathJax finished typesetting. Failures only
// mean formulas print as TeX source, so they are logged, not returned.
func (r *rodRenderer) waitMathJax(page *rod.Page, timeout time.Duration) {
	res, err := page.Timeout(timeout).Eval(mathJaxReadyJS)
	if err != nil {
		r.logger.Warn("MathJax did not finish typesetting", "error", err)
		return
	}
	if !res.Value.Bool() {
		r.logger.Warn("MathJax not loaded, formulas print as source")
	}
}

// buildPDFOptions constructs proto.PagePrintToPDF with page box and optional footer.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	box := pageBox{}
	var footer *Footer
	if opts != nil {
		box = opts.Page
		footer = opts.Footer
	}
	if box.width == 0 || box.height == 0 {
		box, _ = DefaultPageSettings().resolve()
	}

	marginBottom := box.bottom
	if footer.enabled() && marginBottom < footerReserve {
		marginBottom = footerReserve
	}

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(box.width),
		PaperHeight:     floatPtr(box.height),
		MarginTop:       floatPtr(box.top),
		MarginBottom:    floatPtr(marginBottom),
		MarginLeft:      floatPtr(box.left),
		MarginRight:     floatPtr(box.right),
		PrintBackground: true,
	}

	if footer.enabled() {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = "<span></span>" // Empty header
		pdfOpts.FooterTemplate = buildFooterTemplate(footer, box)
	}

	return pdfOpts
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(timeout time.Duration, logger *logging.Logger) *rodConverter {
	return &rodConverter{
		renderer: newRodRenderer(timeout, logger),
	}
}

// ToPDF writes htmlContent to a temporary file so relative file:// URLs
// resolve, then renders it.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
