package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/alnah/go-paperexport/internal/logging"
	"github.com/alnah/go-paperexport/internal/merge"
)

// runSources lists the citation catalog of the vault.
func runSources(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseSourcesFlags(args)
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
	if flags.sourcesFolder != "" {
		cfg.Citations.SourcesFolderPath = flags.sourcesFolder
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	v, err := openVault(cfg)
	if err != nil {
		return withHint(err, cfg)
	}

	logger := logging.Wrap(newLogger(env, &flags.common))
	catalog, err := merge.BuildCatalog(ctx, v, cfg.Citations.SourcesFolderPath, logger)
	if err != nil {
		return err
	}

	printCatalog(env.Stdout, catalog, cfg.Citations.SourcesFolderPath)
	return nil
}

// printCatalog writes one row per source, then the key collisions.
func printCatalog(w io.Writer, c *merge.Catalog, folder string) {
	keys := c.Keys()
	if len(keys) == 0 {
		if folder == "" {
			folder = "."
		}
		fmt.Fprintf(w, "No sources found in %s (notes need a %q front matter field)\n", folder, merge.ShortKey)
		return
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("KEY", "SHORT", "TITLE").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.PaddingRight(1)
			}
			return lipgloss.NewStyle().PaddingRight(1)
		})
	for _, k := range keys {
		s, _ := c.Get(k)
		t.Row(k, s.Short(), s.FrontMatter.Get("title"))
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d source(s)", len(keys))))

	for _, col := range c.Collisions() {
		printWarning(w, fmt.Sprintf("duplicate key %q: %s replaced %s", col.Key, col.Kept, col.Dropped))
	}
}
