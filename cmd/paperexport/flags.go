package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	vault   string
	quiet   bool
	verbose bool
}

// citationFlags holds citation overrides.
type citationFlags struct {
	sourcesFolder string
	noCitations   bool
	noReferences  bool
	noFrontMatter bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size   string
	margin string
}

// footerFlags holds footer flags.
type footerFlags struct {
	position   string
	pageNumber bool
	disabled   bool
}

// assetFlags holds style and template flags.
type assetFlags struct {
	style     string
	template  string
	assetPath string
	css       string
	noMathJax bool
}

// outputFlags holds output mode flags.
type outputFlags struct {
	html     bool // write HTML alongside PDF
	htmlOnly bool // write HTML only, skip PDF
	markdown bool // write the merged Markdown alongside
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common     commonFlags
	citations  citationFlags
	output     string
	title      string
	timeout    string
	page       pageFlags
	footer     footerFlags
	assets     assetFlags
	outputMode outputFlags
}

// mergeFlags holds flags for the merge command.
type mergeFlags struct {
	common    commonFlags
	citations citationFlags
	pretty    bool
}

// sourcesFlags holds flags for the sources command.
type sourcesFlags struct {
	common        commonFlags
	sourcesFolder string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.vault, "vault", "", "vault directory")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed logs")
}

// addCitationFlags adds citation flags to a FlagSet.
func addCitationFlags(fs *flag.FlagSet, f *citationFlags) {
	fs.StringVar(&f.sourcesFolder, "sources", "", "citation sources folder inside the vault")
	fs.BoolVar(&f.noCitations, "no-citations", false, "leave [[links]] untouched")
	fs.BoolVar(&f.noReferences, "no-references", false, "omit the references section")
	fs.BoolVar(&f.noFrontMatter, "no-frontmatter", false, "strip YAML front matter from chapters")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter, legal, a3, a5")
	fs.StringVar(&f.margin, "margin", "", "margin on every side as a CSS length (e.g. 1in, 20mm)")
}

// addFooterFlags adds footer flags to a FlagSet.
func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.StringVar(&f.position, "footer-position", "", "footer position: left, center, right")
	fs.BoolVar(&f.pageNumber, "footer-page-number", false, "show page numbers in footer")
	fs.BoolVar(&f.disabled, "no-footer", false, "disable footer")
}

// addAssetFlags adds style and template flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name")
	fs.StringVar(&f.template, "template", "", "custom HTML template path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended to the style")
	fs.BoolVar(&f.noMathJax, "no-mathjax", false, "do not load MathJax")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "write HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
	fs.BoolVar(&f.markdown, "md", false, "write the merged Markdown alongside")
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string) (*exportFlags, []string, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	f := &exportFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file name (without extension)")
	fs.StringVar(&f.title, "title", "", "document title (\"\" = first H1)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addCitationFlags(fs, &f.citations)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printExportUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseMergeFlags parses merge command flags and returns positional args.
func parseMergeFlags(args []string) (*mergeFlags, []string, error) {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	f := &mergeFlags{}

	fs.BoolVar(&f.pretty, "pretty", false, "render for the terminal")
	addCommonFlags(fs, &f.common)
	addCitationFlags(fs, &f.citations)

	fs.Usage = func() { printMergeUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseSourcesFlags parses sources command flags.
func parseSourcesFlags(args []string) (*sourcesFlags, error) {
	fs := flag.NewFlagSet("sources", flag.ContinueOnError)
	f := &sourcesFlags{}

	fs.StringVar(&f.sourcesFolder, "sources", "", "citation sources folder inside the vault")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printSourcesUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: sources takes no arguments", ErrUsage)
	}
	return f, nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string) (*commonFlags, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	f := &commonFlags{}
	addCommonFlags(fs, f)

	fs.Usage = func() { printConfigUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	return f, nil
}

// usageError marks a flag parsing failure as a usage error.
// flag.ErrHelp passes through so -h exits cleanly.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
