package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paperexport <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export     Merge vault notes into a paper and write the PDF")
	fmt.Fprintln(w, "  merge      Print the merged Markdown")
	fmt.Fprintln(w, "  sources    List citation sources")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  doctor     Check Chrome, environment, and vault")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'paperexport help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every vault command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --vault <dir>         Vault directory")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed logs")
}

// printCitationUsage prints the citation flags.
func printCitationUsage(w io.Writer) {
	fmt.Fprintln(w, "Citations:")
	fmt.Fprintln(w, "      --sources <dir>       Sources folder inside the vault")
	fmt.Fprintln(w, "      --no-citations        Leave [[links]] untouched")
	fmt.Fprintln(w, "      --no-references       Omit the references section")
	fmt.Fprintln(w, "      --no-frontmatter      Strip YAML front matter from chapters")
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paperexport export [notes...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Merge notes into one paper and write it as PDF. Without notes, every")
	fmt.Fprintln(w, "note outside the sources folder is merged.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <name>       File name, or dir/name (default: export.defaultFilename)")
	fmt.Fprintln(w, "      --html                Also write the HTML document")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip PDF")
	fmt.Fprintln(w, "      --md                  Also write the merged Markdown")
	fmt.Fprintln(w, "      --title <s>           Document title (\"\" = first H1)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter, legal, a3, a5")
	fmt.Fprintln(w, "      --margin <len>        Margin on every side (e.g., 1in, 20mm)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Footer:")
	fmt.Fprintln(w, "      --footer-position <s> Position: left, center, right")
	fmt.Fprintln(w, "      --footer-page-number  Show page numbers")
	fmt.Fprintln(w, "      --no-footer           Disable footer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name>        CSS style name")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file")
	fmt.Fprintln(w, "      --template <path>     Custom HTML template")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/ and templates/ directory")
	fmt.Fprintln(w, "      --no-mathjax          Do not load MathJax")
	fmt.Fprintln(w)
	printCitationUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printMergeUsage prints usage for the merge command.
func printMergeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paperexport merge [notes...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the merged Markdown to stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --pretty              Render for the terminal")
	fmt.Fprintln(w)
	printCitationUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printSourcesUsage prints usage for the sources command.
func printSourcesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paperexport sources [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List notes with a short front matter field, and duplicate keys.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --sources <dir>       Sources folder inside the vault")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paperexport config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paperexport doctor [--json] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, sandbox, temp directory, and the configured vault.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Output JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "export":
		printExportUsage(env.Stdout)
	case "merge":
		printMergeUsage(env.Stdout)
	case "sources":
		printSourcesUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: paperexport version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: paperexport help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
