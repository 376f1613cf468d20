package paperexport

import (
	"time"

	"github.com/charmbracelet/log"
)

// Option configures an Exporter.
type Option func(*Exporter)

// exporterConfig holds settings collected from options.
type exporterConfig struct {
	timeout         time.Duration
	assetPath       string
	styleName       string
	templatePath    string
	templateBaseDir string
	mathJaxURL      string
	merge           MergeOptions
}

// WithTimeout sets the page load and PDF generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("paperexport: WithTimeout duration must be positive")
	}
	return func(e *Exporter) {
		e.cfg.timeout = d
	}
}

// WithStore sets the vault notes are read from.
func WithStore(s Store) Option {
	return func(e *Exporter) {
		e.store = s
	}
}

// WithLogger routes exporter logs to l. A nil logger discards them.
func WithLogger(l *log.Logger) Option {
	return func(e *Exporter) {
		e.baseLogger = l
	}
}

// WithMergeOptions replaces the front matter and citation settings.
func WithMergeOptions(opts MergeOptions) Option {
	return func(e *Exporter) {
		e.cfg.merge = opts
	}
}

// WithAssetPath overrides built-in styles and templates with files from
// dir/styles/*.css and dir/templates/*.html. Missing files fall back to the
// built-in ones.
func WithAssetPath(dir string) Option {
	return func(e *Exporter) {
		e.cfg.assetPath = dir
	}
}

// WithStyle selects a stylesheet by name (default "academic").
func WithStyle(name string) Option {
	return func(e *Exporter) {
		e.cfg.styleName = name
	}
}

// WithTemplateFile uses the html/template at path as the document wrapper.
// Relative paths resolve against baseDir. A template that cannot be read,
// parsed, or executed is logged and replaced by the built-in one.
func WithTemplateFile(path, baseDir string) Option {
	return func(e *Exporter) {
		e.cfg.templatePath = path
		e.cfg.templateBaseDir = baseDir
	}
}

// WithMathJaxURL overrides the MathJax bundle location, for example a
// local copy for offline rendering.
func WithMathJaxURL(url string) Option {
	return func(e *Exporter) {
		e.cfg.mathJaxURL = url
	}
}
