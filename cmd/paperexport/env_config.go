package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-paperexport/internal/config"
)

// envPrefix namespaces the CLI's environment variables.
const envPrefix = "PAPEREXPORT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string        // PAPEREXPORT_CONFIG: config file name or path
	Vault         string        // PAPEREXPORT_VAULT: vault directory
	ExportPath    string        // PAPEREXPORT_EXPORT_PATH: output directory
	PageSize      string        // PAPEREXPORT_PAGE_SIZE: a4, letter, legal, a3, a5
	SourcesFolder string        // PAPEREXPORT_SOURCES_FOLDER: citation sources folder
	Template      string        // PAPEREXPORT_TEMPLATE: custom HTML template path
	AssetPath     string        // PAPEREXPORT_ASSET_PATH: custom asset directory
	Style         string        // PAPEREXPORT_STYLE: CSS style name
	MathJaxURL    string        // PAPEREXPORT_MATHJAX_URL: MathJax bundle location
	Timeout       time.Duration // PAPEREXPORT_TIMEOUT: PDF generation timeout
}

// knownEnvVars lists valid PAPEREXPORT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PAPEREXPORT_CONFIG":         true,
	"PAPEREXPORT_VAULT":          true,
	"PAPEREXPORT_EXPORT_PATH":    true,
	"PAPEREXPORT_PAGE_SIZE":      true,
	"PAPEREXPORT_SOURCES_FOLDER": true,
	"PAPEREXPORT_TEMPLATE":       true,
	"PAPEREXPORT_ASSET_PATH":     true,
	"PAPEREXPORT_STYLE":          true,
	"PAPEREXPORT_MATHJAX_URL":    true,
	"PAPEREXPORT_TIMEOUT":        true,
	"PAPEREXPORT_CONTAINER":      true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:    os.Getenv("PAPEREXPORT_CONFIG"),
		Vault:         os.Getenv("PAPEREXPORT_VAULT"),
		ExportPath:    os.Getenv("PAPEREXPORT_EXPORT_PATH"),
		PageSize:      os.Getenv("PAPEREXPORT_PAGE_SIZE"),
		SourcesFolder: os.Getenv("PAPEREXPORT_SOURCES_FOLDER"),
		Template:      os.Getenv("PAPEREXPORT_TEMPLATE"),
		AssetPath:     os.Getenv("PAPEREXPORT_ASSET_PATH"),
		Style:         os.Getenv("PAPEREXPORT_STYLE"),
		MathJaxURL:    os.Getenv("PAPEREXPORT_MATHJAX_URL"),
	}

	// Invalid durations are ignored; --timeout reports its own errors.
	if timeout := os.Getenv("PAPEREXPORT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized PAPEREXPORT_* variables.
// Helps catch typos like PAPEREXPORT_VALUT instead of PAPEREXPORT_VAULT.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to cfg.
// Set variables override the config file; CLI flags are applied later.
// Precedence: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Vault != "" {
		cfg.Vault = env.Vault
	}
	if env.ExportPath != "" {
		cfg.Export.Path = env.ExportPath
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.SourcesFolder != "" {
		cfg.Citations.SourcesFolderPath = env.SourcesFolder
	}
	if env.Template != "" {
		cfg.Template.Path = env.Template
	}
	if env.AssetPath != "" {
		cfg.Template.AssetsDir = env.AssetPath
	}
}
