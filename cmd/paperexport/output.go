package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette.
const (
	colorGreen  = "#A9DC76"
	colorRed    = "#FF6188"
	colorOrange = "#FC9867"
	colorDim    = "#727072"
	colorTitle  = "#78DCE8"
)

// Result line styles.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorOrange))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle))
)

// printCreated reports a written file.
func printCreated(w io.Writer, path string) {
	fmt.Fprintf(w, "%s Created %s\n", successStyle.Render("✓"), path)
}

// printError reports a failed command.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("✗"), err)
}

// printWarning reports a non-fatal problem.
func printWarning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", warningStyle.Render("!"), msg)
}

// printSummary reports what went into the merged document.
func printSummary(w io.Writer, chapters, cited int) {
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  %d chapter(s), %d cited source(s)", chapters, cited)))
}
