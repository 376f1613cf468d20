// Package paperexport merges a vault of Markdown notes into one academic
// paper and renders it to PDF using headless Chrome.
//
// # Quick Start
//
// Open a vault, create an exporter, export, and close when done:
//
//	v, err := paperexport.OpenVault("/path/to/vault")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	exp, err := paperexport.NewExporter(paperexport.WithStore(v))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer exp.Close()
//
//	result, err := exp.Export(ctx, paperexport.Input{Title: "Thesis"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("thesis.pdf", result.PDF, 0644)
//
// With no Input.Files and no Input.Markdown, every note outside the sources
// folder becomes a chapter. The result carries the merged Markdown, the
// complete HTML document and the PDF bytes. Use Input.HTMLOnly to skip
// Chrome.
//
// # Pipeline
//
//  1. Merge: front matter, [[wikilink]] citations, chapter order, page
//     breaks and the references section
//  2. Markdown preprocessing (line endings, ==highlight==, page-break markers)
//  3. Markdown to HTML via Goldmark (GFM, footnotes, emoji, highlighting)
//  4. HTML rewriting (file:// images, external links in a new window)
//  5. Document template (title, CSS, optional MathJax)
//  6. PDF rendering via headless Chrome (go-rod)
//
// # Citations
//
// Notes under the sources folder (default "sources") form the citation
// catalog, keyed by base name. A [[key]] in a chapter becomes [short] when
// the source front matter has a "short" field, or [key] otherwise. Cited
// sources are listed alphabetically in the references section.
//
// # Configuration
//
// Exporter-wide settings use functional options:
//
//	exp, err := paperexport.NewExporter(
//	    paperexport.WithStore(v),
//	    paperexport.WithTimeout(2 * time.Minute),
//	    paperexport.WithMergeOptions(opts),
//	    paperexport.WithTemplateFile("templates/paper.html", v.Root()),
//	)
//
// Per-export settings are passed via Input:
//
//	result, err := exp.Export(ctx, paperexport.Input{
//	    Title:   "Thesis",
//	    Files:   files,
//	    CSS:     "body { font-size: 11pt; }",
//	    MathJax: true,
//	    Page:    &paperexport.PageSettings{Size: "Letter", Margins: paperexport.UniformMargins("20mm")},
//	    Footer:  &paperexport.Footer{PageNumbers: true, Position: "right"},
//	})
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package paperexport
