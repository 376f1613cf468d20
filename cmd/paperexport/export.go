package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	paperexport "github.com/alnah/go-paperexport"
	"github.com/alnah/go-paperexport/internal/config"
	"github.com/alnah/go-paperexport/internal/fileutil"
)

// Output extensions besides the PDF.
const (
	htmlExtension     = ".html"
	markdownExtension = ".md"
)

// exportTarget is where an export is written.
type exportTarget struct {
	dir  string // created if missing
	name string // base name before sanitizing; "" uses export.defaultFilename
}

// runExport merges the given notes, or the whole vault, and writes the PDF.
func runExport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExportFlags(args)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadSettings(&flags.common, envCfg)
	if err != nil {
		return withHint(err, nil)
	}
	applyCitationFlags(&flags.citations, cfg)
	applyExportFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}

	css, err := resolveCSS(flags.assets.css, cfg)
	if err != nil {
		return err
	}

	v, err := openVault(cfg)
	if err != nil {
		return withHint(err, cfg)
	}
	files, err := resolveNotes(v, positional)
	if err != nil {
		return err
	}

	logger := newLogger(env, &flags.common)
	opts := append(exporterOptions(cfg, v, logger), paperexport.WithTimeout(timeout))
	if style := firstNonEmpty(flags.assets.style, envCfg.Style); style != "" {
		opts = append(opts, paperexport.WithStyle(style))
	}
	if envCfg.MathJaxURL != "" {
		opts = append(opts, paperexport.WithMathJaxURL(envCfg.MathJaxURL))
	}

	exp, err := env.NewExporter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = exp.Close() }()

	start := env.Now()
	res, err := exp.Export(ctx, paperexport.Input{
		Title:    flags.title,
		Files:    files,
		CSS:      css,
		MathJax:  cfg.Template.RenderMathJax,
		Page:     pageSettingsFrom(cfg),
		Footer:   footerFrom(cfg),
		HTMLOnly: flags.outputMode.htmlOnly,
	})
	if err != nil {
		return withHint(err, cfg)
	}

	target := resolveTarget(flags.output, cfg, v.Root())
	written, err := writeOutputs(target, cfg, flags.outputMode, res)
	if err != nil {
		return withHint(err, cfg)
	}

	if flags.common.quiet {
		return nil
	}
	for _, path := range written {
		printCreated(env.Stdout, path)
	}
	if flags.common.verbose && res.Merge != nil {
		printSummary(env.Stdout, len(res.Merge.Chapters), len(res.Merge.Used))
		fmt.Fprintln(env.Stdout, dimStyle.Render(fmt.Sprintf("  done in %v", env.Now().Sub(start).Round(time.Millisecond))))
	}
	return nil
}

// applyExportFlags merges export flags into cfg (CLI wins).
func applyExportFlags(f *exportFlags, cfg *config.Config) {
	if f.page.size != "" {
		cfg.Page.Size = f.page.size
	}
	if f.page.margin != "" {
		cfg.Page.Margins = config.MarginsConfig{
			Top: f.page.margin, Right: f.page.margin, Bottom: f.page.margin, Left: f.page.margin,
		}
	}

	if f.footer.position != "" {
		cfg.Footer.Position = f.footer.position
	}
	if f.footer.pageNumber {
		cfg.Footer.PageNumbers = true
	}
	if f.footer.disabled {
		cfg.Footer.PageNumbers = false
	}

	if f.assets.template != "" {
		cfg.Template.Path = f.assets.template
	}
	if f.assets.assetPath != "" {
		cfg.Template.AssetsDir = f.assets.assetPath
	}
	if f.assets.noMathJax {
		cfg.Template.RenderMathJax = false
	}
}

// resolveCSS joins template.customCss with the --css file.
func resolveCSS(cssFile string, cfg *config.Config) (string, error) {
	css := cfg.Template.CustomCSS
	if cssFile == "" {
		return css, nil
	}
	data, err := os.ReadFile(cssFile) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("reading CSS file: %w", err)
	}
	if css == "" {
		return string(data), nil
	}
	return css + "\n" + string(data), nil
}

// resolveTarget picks the output directory and name. A directory in -o is
// taken from the working directory; export.path is taken from the vault root.
func resolveTarget(output string, cfg *config.Config, vaultRoot string) exportTarget {
	if dir, name := filepath.Split(output); dir != "" {
		return exportTarget{dir: filepath.Clean(dir), name: name}
	}

	dir := vaultRoot
	if p := cfg.Export.Path; p != "" {
		if filepath.IsAbs(p) {
			dir = p
		} else {
			dir = filepath.Join(vaultRoot, filepath.FromSlash(p))
		}
	}
	return exportTarget{dir: dir, name: output}
}

// writeOutputs writes the PDF and the requested side outputs.
// Returns the written paths in order.
func writeOutputs(t exportTarget, cfg *config.Config, mode outputFlags, res *paperexport.Result) ([]string, error) {
	if err := os.MkdirAll(t.dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrWriteOutput, t.dir, err)
	}

	pdfPath := fileutil.OutputPath(t.dir, t.name, cfg.Export.DefaultFilename, cfg.Export.SlugFilenames, fileutil.PDFExtension)
	stem := strings.TrimSuffix(pdfPath, fileutil.PDFExtension)

	var written []string
	write := func(path string, data []byte) error {
		if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- exported documents are meant to be shared
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
		}
		written = append(written, path)
		return nil
	}

	if !mode.htmlOnly {
		if err := write(pdfPath, res.PDF); err != nil {
			return written, err
		}
	}
	if mode.html || mode.htmlOnly {
		if err := write(stem+htmlExtension, res.HTML); err != nil {
			return written, err
		}
	}
	if mode.markdown {
		if err := write(stem+markdownExtension, []byte(res.Markdown)); err != nil {
			return written, err
		}
	}
	return written, nil
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
