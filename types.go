package paperexport

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-paperexport/internal/layout"
	"github.com/alnah/go-paperexport/internal/merge"
	"github.com/alnah/go-paperexport/internal/vault"
)

// File identifies a note by its slash-separated path within a vault.
type File = vault.File

// Store lists and reads vault notes.
type Store = vault.Store

// Vault is a Store backed by a directory on disk.
type Vault = vault.FS

// MergeOptions configures front matter and citation handling.
type MergeOptions = merge.Options

// CitationOptions configures citation resolution and the references section.
type CitationOptions = merge.CitationOptions

// MergeResult is the outcome of a merge: the document and what went into it.
type MergeResult = merge.Result

// OpenVault opens the vault rooted at dir.
func OpenVault(dir string) (*Vault, error) {
	return vault.Open(dir)
}

// DefaultMergeOptions returns the stock merge settings.
func DefaultMergeOptions() MergeOptions {
	return merge.DefaultOptions()
}

// Page size constants.
const (
	PageSizeA4     = layout.PageSizeA4
	PageSizeLetter = layout.PageSizeLetter
	PageSizeLegal  = layout.PageSizeLegal
	PageSizeA3     = layout.PageSizeA3
	PageSizeA5     = layout.PageSizeA5
)

// DefaultMargin applies to every side when none is given.
const DefaultMargin = "1in"

// Footer positions.
const (
	FooterLeft   = "left"
	FooterCenter = "center"
	FooterRight  = "right"
)

// Margins holds CSS lengths per side ("1in", "20mm", "2.5cm", "72pt", "96px").
type Margins struct {
	Top    string
	Right  string
	Bottom string
	Left   string
}

// UniformMargins returns margins with the same length on every side.
func UniformMargins(length string) Margins {
	return Margins{Top: length, Right: length, Bottom: length, Left: length}
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size    string // A4, Letter, Legal, A3, A5 (case-insensitive)
	Margins Margins
}

// DefaultPageSettings returns A4 with one-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:    PageSizeA4,
		Margins: UniformMargins(DefaultMargin),
	}
}

// Validate checks the page size and every margin.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	_, err := p.resolve()
	return err
}

// pageBox is a page size and its margins, all in inches.
type pageBox struct {
	width, height            float64
	top, right, bottom, left float64
}

// resolve converts p to inches. Empty fields take their defaults.
func (p *PageSettings) resolve() (pageBox, error) {
	if p == nil {
		p = DefaultPageSettings()
	}

	name := p.Size
	if name == "" {
		name = PageSizeA4
	}
	size, err := layout.LookupSize(name)
	if err != nil {
		return pageBox{}, err
	}

	box := pageBox{width: size.Width, height: size.Height}
	sides := []struct {
		name  string
		value string
		dst   *float64
	}{
		{"top", p.Margins.Top, &box.top},
		{"right", p.Margins.Right, &box.right},
		{"bottom", p.Margins.Bottom, &box.bottom},
		{"left", p.Margins.Left, &box.left},
	}
	for _, side := range sides {
		v := side.value
		if v == "" {
			v = DefaultMargin
		}
		inches, err := layout.ParseLength(v)
		if err != nil {
			return pageBox{}, fmt.Errorf("%s margin: %w", side.name, err)
		}
		*side.dst = inches
	}

	if box.left+box.right >= box.width || box.top+box.bottom >= box.height {
		return pageBox{}, fmt.Errorf("%w: margins leave no printable area on %s", ErrInvalidMargin, size.Name)
	}
	return box, nil
}

// Footer configures Chrome's native page footer.
type Footer struct {
	PageNumbers bool   // "Page N of M"
	Position    string // "left", "center" (default), "right"
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", FooterLeft, FooterCenter, FooterRight:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// enabled reports whether the footer prints anything.
func (f *Footer) enabled() bool {
	return f != nil && f.PageNumbers
}

// Input contains export parameters.
type Input struct {
	Title    string        // document title; "" uses the first H1
	Markdown string        // already-merged Markdown; when set, Files is ignored
	Files    []File        // chapters to merge; empty discovers every note outside the sources folder
	BaseDir  string        // directory for relative image paths; "" uses the vault root
	CSS      string        // appended after the built-in stylesheet
	MathJax  bool          // load MathJax 3 for $...$ and $$...$$
	Page     *PageSettings // nil = DefaultPageSettings
	Footer   *Footer       // nil = no footer
	HTMLOnly bool          // skip PDF generation
}

// Result is the output of an export.
type Result struct {
	Markdown string       // merged Markdown
	HTML     []byte       // complete HTML document
	PDF      []byte       // nil when Input.HTMLOnly
	Merge    *MergeResult // nil when Input.Markdown was given
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 60 * time.Second
