package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// prettyWrap is the terminal width used by merge --pretty.
const prettyWrap = 120

// runMerge prints the merged Markdown of the given notes, or the whole vault.
func runMerge(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseMergeFlags(args)
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
	if err := cfg.Validate(); err != nil {
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

	exp, err := env.NewExporter(exporterOptions(cfg, v, newLogger(env, &flags.common))...)
	if err != nil {
		return err
	}
	defer func() { _ = exp.Close() }()

	res, err := exp.Merge(ctx, files)
	if err != nil {
		return withHint(err, cfg)
	}

	if flags.pretty {
		return printPretty(env.Stdout, res.Markdown)
	}
	_, err = io.WriteString(env.Stdout, res.Markdown)
	return err
}

// printPretty renders Markdown for the terminal.
// Falls back to the raw Markdown if glamour fails.
func printPretty(w io.Writer, markdown string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(prettyWrap),
	)
	if err != nil {
		_, err = io.WriteString(w, markdown)
		return err
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		_, err = io.WriteString(w, markdown)
		return err
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}
