package paperexport

import (
	"fmt"
	"strings"
)

// defaultFontFamily matches the body font of the academic stylesheet.
const defaultFontFamily = `'Times New Roman', Times, serif`

// footerFontSize is small enough to sit in the reserved bottom margin.
const footerFontSize = "9pt"

// buildFooterTemplate generates an HTML template for Chrome's native footer.
// Chrome fills the pageNumber and totalPages classes. The side padding
// follows the page margins so the text lines up with the body.
func buildFooterTemplate(f *Footer, box pageBox) string {
	if !f.enabled() {
		return "<span></span>"
	}

	textAlign := FooterCenter
	switch strings.ToLower(f.Position) {
	case FooterLeft:
		textAlign = FooterLeft
	case FooterRight:
		textAlign = FooterRight
	}

	return fmt.Sprintf(`<div style="font-size: %s; font-family: %s; color: #555; width: 100%%; text-align: %s; padding: 0 %.2fin 0 %.2fin;">Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`,
		footerFontSize, defaultFontFamily, textAlign, box.right, box.left)
}
