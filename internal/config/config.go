// Package config loads the YAML settings file of the paperexport CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-paperexport/internal/layout"
	"github.com/alnah/go-paperexport/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// AppDirName is the directory under the user config dir searched for
// named configs.
const AppDirName = "go-paperexport"

func init() {
	// Report validation errors with the YAML key names.
	validation.ErrorTag = "yaml"
}

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxFilenameLength = 255
	MaxTitleLength    = 200
	MaxCSSLength      = 64 << 10
	MaxMarginLength   = 16
)

// Footer positions.
const (
	FooterLeft   = "left"
	FooterCenter = "center"
	FooterRight  = "right"
)

// Config holds every export setting.
type Config struct {
	Vault                  string          `yaml:"vault"`
	Export                 ExportConfig    `yaml:"export"`
	Template               TemplateConfig  `yaml:"template"`
	Page                   PageConfig      `yaml:"page"`
	Footer                 FooterConfig    `yaml:"footer"`
	IncludeYamlFrontmatter bool            `yaml:"includeYamlFrontmatter"`
	Citations              CitationsConfig `yaml:"citations"`
}

// ExportConfig defines where and under which name PDFs are written.
type ExportConfig struct {
	Path            string `yaml:"path"`            // empty = vault root
	DefaultFilename string `yaml:"defaultFilename"` // used when no name is given
	SlugFilenames   bool   `yaml:"slugFilenames"`
}

// TemplateConfig defines the HTML document wrapper.
type TemplateConfig struct {
	Path          string `yaml:"path"`      // custom document template, relative to the vault
	AssetsDir     string `yaml:"assetsDir"` // overrides for styles/ and templates/
	CustomCSS     string `yaml:"customCss"`
	RenderMathJax bool   `yaml:"renderMathJax"`
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size    string        `yaml:"size"`
	Margins MarginsConfig `yaml:"margins"`
}

// MarginsConfig holds CSS lengths per side.
type MarginsConfig struct {
	Top    string `yaml:"top"`
	Right  string `yaml:"right"`
	Bottom string `yaml:"bottom"`
	Left   string `yaml:"left"`
}

// FooterConfig defines the page-number footer.
type FooterConfig struct {
	PageNumbers bool   `yaml:"pageNumbers"`
	Position    string `yaml:"position"`
}

// CitationsConfig defines citation resolution and the bibliography.
type CitationsConfig struct {
	Enabled                  bool   `yaml:"enabled"`
	SourcesFolderPath        string `yaml:"sourcesFolderPath"`
	IncludeReferencesSection bool   `yaml:"includeReferencesSection"`
	ReferencesSectionTitle   string `yaml:"referencesSectionTitle"`
}

// DefaultConfig returns the stock settings.
func DefaultConfig() *Config {
	return &Config{
		Export: ExportConfig{
			DefaultFilename: "exported_paper",
		},
		Template: TemplateConfig{
			RenderMathJax: true,
		},
		Page: PageConfig{
			Size: layout.PageSizeA4,
			Margins: MarginsConfig{
				Top: "1in", Right: "1in", Bottom: "1in", Left: "1in",
			},
		},
		Footer: FooterConfig{
			Position: FooterCenter,
		},
		IncludeYamlFrontmatter: true,
		Citations: CitationsConfig{
			Enabled:                  true,
			SourcesFolderPath:        "sources",
			IncludeReferencesSection: true,
			ReferencesSectionTitle:   "References",
		},
	}
}

// Validate checks lengths and enumerations. Called by LoadConfig, and by
// the CLI after environment and flag overrides are applied.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Vault, validation.Length(0, MaxPathLength)),
		validation.Field(&c.Export),
		validation.Field(&c.Template),
		validation.Field(&c.Page),
		validation.Field(&c.Footer),
		validation.Field(&c.Citations),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate implements validation.Validatable.
func (e ExportConfig) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Path, validation.Length(0, MaxPathLength)),
		validation.Field(&e.DefaultFilename, validation.Length(0, MaxFilenameLength)),
	)
}

// Validate implements validation.Validatable.
func (t TemplateConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Path, validation.Length(0, MaxPathLength)),
		validation.Field(&t.AssetsDir, validation.Length(0, MaxPathLength)),
		validation.Field(&t.CustomCSS, validation.Length(0, MaxCSSLength)),
	)
}

// Validate implements validation.Validatable.
func (p PageConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Size, validation.Required, validation.By(pageSizeRule)),
		validation.Field(&p.Margins),
	)
}

// Validate implements validation.Validatable.
func (m MarginsConfig) Validate() error {
	rules := []validation.Rule{validation.Required, validation.Length(0, MaxMarginLength), validation.By(lengthRule)}
	return validation.ValidateStruct(&m,
		validation.Field(&m.Top, rules...),
		validation.Field(&m.Right, rules...),
		validation.Field(&m.Bottom, rules...),
		validation.Field(&m.Left, rules...),
	)
}

// Validate implements validation.Validatable.
func (f FooterConfig) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Position, validation.By(footerPositionRule)),
	)
}

// Validate implements validation.Validatable.
func (c CitationsConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SourcesFolderPath, validation.Length(0, MaxPathLength)),
		validation.Field(&c.ReferencesSectionTitle, validation.Length(0, MaxTitleLength)),
	)
}

func pageSizeRule(value any) error {
	s, _ := value.(string)
	if _, err := layout.LookupSize(s); err != nil {
		return validation.NewError("validation_page_size", "must be one of "+strings.Join(layout.SizeNames(), ", "))
	}
	return nil
}

func lengthRule(value any) error {
	s, _ := value.(string)
	if _, err := layout.ParseLength(s); err != nil {
		return validation.NewError("validation_css_length", "must be a length such as 1in, 2.5cm, 20mm, 72pt or 96px")
	}
	return nil
}

func footerPositionRule(value any) error {
	s, _ := value.(string)
	switch strings.ToLower(s) {
	case "", FooterLeft, FooterCenter, FooterRight:
		return nil
	}
	return validation.NewError("validation_footer_position", "must be left, center or right")
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig value; an empty
// file yields the defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// resolveConfigPath searches for a config file by name.
// Extensions in order: .yaml, .yml.
// Locations in order: current directory, <user config dir>/go-paperexport/.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
