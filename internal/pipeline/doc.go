// Package pipeline turns merged Markdown into a printable HTML document.
//
// Stages, in order:
//   - Markdown preprocessing (line endings, ==highlight==, page-break markers)
//   - Markdown to HTML conversion via goldmark
//   - HTML rewriting (external links open in a new window, relative images
//     resolved against the vault root)
//   - Document templating (title, CSS, optional MathJax)
//
// PDF generation is handled by the root paperexport package using headless
// Chrome (go-rod). This package never touches a browser.
package pipeline
