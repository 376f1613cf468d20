package paperexport

import (
	"errors"

	"github.com/alnah/go-paperexport/internal/layout"
	"github.com/alnah/go-paperexport/internal/merge"
	"github.com/alnah/go-paperexport/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyDocument  = errors.New("nothing to export")
	ErrNoChapters     = errors.New("no chapters found")
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Store errors.
	ErrNilStore  = merge.ErrNilStore
	ErrReadFile  = merge.ErrReadFile
	ErrListFiles = merge.ErrListFiles

	// Page settings validation errors.
	ErrInvalidPageSize = layout.ErrInvalidPageSize
	ErrInvalidMargin   = layout.ErrInvalidLength

	// Footer validation errors.
	ErrInvalidFooterPosition = errors.New("invalid footer position")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
