package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	paperexport "github.com/alnah/go-paperexport"
	"github.com/alnah/go-paperexport/internal/config"
	"github.com/alnah/go-paperexport/internal/logging"
)

// defaultConfigName is loaded from the standard locations when no config
// is given. Its absence is not an error.
const defaultConfigName = "paperexport"

// defaultTimeout bounds page load and PDF generation.
const defaultTimeout = 60 * time.Second

// loadSettings resolves the effective config: defaults, then the config
// file, then PAPEREXPORT_* variables, then the common flags.
func loadSettings(f *commonFlags, env *envConfig) (*config.Config, error) {
	name := f.config
	if name == "" {
		name = env.ConfigPath
	}

	var cfg *config.Config
	var err error
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg, err = config.LoadConfig(defaultConfigName)
		if errors.Is(err, config.ErrConfigNotFound) {
			cfg, err = config.DefaultConfig(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	if f.vault != "" {
		cfg.Vault = f.vault
	}
	return cfg, nil
}

// applyCitationFlags overrides the citation and front matter settings.
func applyCitationFlags(f *citationFlags, cfg *config.Config) {
	if f.sourcesFolder != "" {
		cfg.Citations.SourcesFolderPath = f.sourcesFolder
	}
	if f.noCitations {
		cfg.Citations.Enabled = false
	}
	if f.noReferences {
		cfg.Citations.IncludeReferencesSection = false
	}
	if f.noFrontMatter {
		cfg.IncludeYamlFrontmatter = false
	}
}

// openVault opens the configured vault directory.
func openVault(cfg *config.Config) (*paperexport.Vault, error) {
	if strings.TrimSpace(cfg.Vault) == "" {
		return nil, ErrNoVault
	}
	info, err := os.Stat(cfg.Vault)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoVault, cfg.Vault)
	}
	return paperexport.OpenVault(cfg.Vault)
}

// resolveNotes maps command-line note paths to vault files. Paths that
// exist on disk are taken relative to the working directory and must lie
// inside the vault; other paths are vault-relative.
func resolveNotes(v *paperexport.Vault, args []string) ([]paperexport.File, error) {
	files := make([]paperexport.File, 0, len(args))
	for _, arg := range args {
		rel, err := vaultRelative(v.Root(), arg)
		if err != nil {
			return nil, err
		}
		f, err := v.Lookup(rel)
		if err != nil {
			return nil, fmt.Errorf("note %s: %w", arg, err)
		}
		files = append(files, f)
	}
	return files, nil
}

// vaultRelative returns arg relative to root when it names a file on disk,
// and arg unchanged otherwise.
func vaultRelative(root, arg string) (string, error) {
	if !filepath.IsAbs(arg) {
		if _, err := os.Stat(arg); err != nil {
			return filepath.ToSlash(arg), nil
		}
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absArg, err := filepath.Abs(arg)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, absArg)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideVault, arg)
	}
	return filepath.ToSlash(rel), nil
}

// mergeOptionsFrom maps the config onto merge settings.
func mergeOptionsFrom(cfg *config.Config) paperexport.MergeOptions {
	return paperexport.MergeOptions{
		IncludeFrontMatter: cfg.IncludeYamlFrontmatter,
		Citations: paperexport.CitationOptions{
			Enabled:           cfg.Citations.Enabled,
			SourcesFolder:     cfg.Citations.SourcesFolderPath,
			IncludeReferences: cfg.Citations.IncludeReferencesSection,
			ReferencesTitle:   cfg.Citations.ReferencesSectionTitle,
		},
	}
}

// pageSettingsFrom maps the config onto PDF page settings.
func pageSettingsFrom(cfg *config.Config) *paperexport.PageSettings {
	m := cfg.Page.Margins
	return &paperexport.PageSettings{
		Size: cfg.Page.Size,
		Margins: paperexport.Margins{
			Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left,
		},
	}
}

// footerFrom maps the config onto the PDF footer. Returns nil when page
// numbers are off.
func footerFrom(cfg *config.Config) *paperexport.Footer {
	if !cfg.Footer.PageNumbers {
		return nil
	}
	return &paperexport.Footer{PageNumbers: true, Position: cfg.Footer.Position}
}

// newLogger creates the CLI logger for the verbosity flags.
func newLogger(env *Environment, f *commonFlags) *log.Logger {
	return logging.NewWithLevel(env.Stderr, logging.LevelFor(f.verbose, f.quiet)).Logger
}

// exporterOptions builds the exporter options shared by every command.
func exporterOptions(cfg *config.Config, v *paperexport.Vault, logger *log.Logger) []paperexport.Option {
	opts := []paperexport.Option{
		paperexport.WithStore(v),
		paperexport.WithLogger(logger),
		paperexport.WithMergeOptions(mergeOptionsFrom(cfg)),
	}
	if cfg.Template.AssetsDir != "" {
		opts = append(opts, paperexport.WithAssetPath(cfg.Template.AssetsDir))
	}
	if cfg.Template.Path != "" {
		opts = append(opts, paperexport.WithTemplateFile(cfg.Template.Path, v.Root()))
	}
	return opts
}

// resolveTimeout picks the flag value, then the environment, then the default.
func resolveTimeout(flagValue string, env *envConfig) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: %q (e.g., 30s, 2m)", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if env.Timeout > 0 {
		return env.Timeout, nil
	}
	return defaultTimeout, nil
}

// userConfigPaths lists where a named config is looked up in the user
// config directory, for hints.
func userConfigPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, config.AppDirName, defaultConfigName+".yaml")}
}
