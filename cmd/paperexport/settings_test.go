package main

// Notes:
// - loadSettings: explicit configs are tested in parallel; the implicit
//   "paperexport" lookup changes directory and XDG_CONFIG_HOME, so those
//   subtests run serially.
// - vaultRelative/resolveNotes: paths on disk must lie inside the vault;
//   other paths are vault-relative.
// - The config mappers are checked field by field against the library types.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	paperexport "github.com/alnah/go-paperexport"
	"github.com/alnah/go-paperexport/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadSettings - Config precedence
// ---------------------------------------------------------------------------

func TestLoadSettings(t *testing.T) {
	t.Run("flag over env over file", func(t *testing.T) {
		path := configFile(t, "vault: /file\npage:\n  size: A5\n")

		cfg, err := loadSettings(&commonFlags{config: path, vault: "/flag"}, &envConfig{Vault: "/env", PageSize: "letter"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Vault != "/flag" {
			t.Errorf("Vault = %q, want /flag", cfg.Vault)
		}
		if cfg.Page.Size != "letter" {
			t.Errorf("Page.Size = %q, want letter", cfg.Page.Size)
		}
	})

	t.Run("env config path", func(t *testing.T) {
		path := configFile(t, "vault: /file\n")

		cfg, err := loadSettings(&commonFlags{}, &envConfig{ConfigPath: path})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Vault != "/file" {
			t.Errorf("Vault = %q, want /file", cfg.Vault)
		}
	})

	t.Run("explicit missing config fails", func(t *testing.T) {
		_, err := loadSettings(&commonFlags{config: "/nonexistent/paper.yaml"}, &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("implicit config is optional", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := loadSettings(&commonFlags{}, &envConfig{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Page.Size != config.DefaultConfig().Page.Size {
			t.Errorf("Page.Size = %q, want default", cfg.Page.Size)
		}
	})

	t.Run("implicit config in working directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "paperexport.yaml"), []byte("vault: /cwd\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := loadSettings(&commonFlags{}, &envConfig{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Vault != "/cwd" {
			t.Errorf("Vault = %q, want /cwd", cfg.Vault)
		}
	})

	t.Run("implicit config parse error is reported", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "paperexport.yaml"), []byte("bogus: 1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		_, err := loadSettings(&commonFlags{}, &envConfig{})
		if !errors.Is(err, config.ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyCitationFlags - Citation overrides
// ---------------------------------------------------------------------------

func TestApplyCitationFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	applyCitationFlags(&citationFlags{sourcesFolder: "refs", noCitations: true, noReferences: true, noFrontMatter: true}, cfg)

	if cfg.Citations.SourcesFolderPath != "refs" {
		t.Errorf("SourcesFolderPath = %q, want refs", cfg.Citations.SourcesFolderPath)
	}
	if cfg.Citations.Enabled || cfg.Citations.IncludeReferencesSection || cfg.IncludeYamlFrontmatter {
		t.Errorf("flags not applied: %+v, frontmatter=%v", cfg.Citations, cfg.IncludeYamlFrontmatter)
	}

	untouched := config.DefaultConfig()
	applyCitationFlags(&citationFlags{}, untouched)
	if untouched.Citations != config.DefaultConfig().Citations {
		t.Errorf("empty flags changed citations: %+v", untouched.Citations)
	}
}

// ---------------------------------------------------------------------------
// TestOpenVault - Vault directory checks
// ---------------------------------------------------------------------------

func TestOpenVault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "note.md")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		vault   string
		wantErr error
	}{
		{"directory", dir, nil},
		{"empty", "  ", ErrNoVault},
		{"missing", filepath.Join(dir, "nope"), ErrNoVault},
		{"file", file, ErrNoVault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.Vault = tt.vault
			v, err := openVault(cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && v == nil {
				t.Error("expected vault")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestVaultRelative - Command-line note paths
// ---------------------------------------------------------------------------

func TestVaultRelative(t *testing.T) {
	t.Parallel()

	root := paperVault(t)
	outside := writeFiles(t, map[string]string{"other.md": "x"})

	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr error
	}{
		{"vault relative", "chapters/01.md", "chapters/01.md", nil},
		{"absolute inside", filepath.Join(root, "sources", "smith2020.md"), "sources/smith2020.md", nil},
		{"absolute outside", filepath.Join(outside, "other.md"), "", ErrOutsideVault},
		{"root itself", root, ".", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := vaultRelative(root, tt.arg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("vaultRelative(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveNotes - Lookup through the vault
// ---------------------------------------------------------------------------

func TestResolveNotes(t *testing.T) {
	t.Parallel()

	root := paperVault(t)
	v, err := paperexport.OpenVault(root)
	if err != nil {
		t.Fatal(err)
	}

	files, err := resolveNotes(v, []string{"02-method.md", filepath.Join(root, "01-intro.md")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 || files[0].Basename != "02-method" || files[1].Path != "01-intro.md" {
		t.Errorf("files = %+v", files)
	}

	if _, err := resolveNotes(v, []string{"missing.md"}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestConfigMappers - Config to library types
// ---------------------------------------------------------------------------

func TestConfigMappers(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.IncludeYamlFrontmatter = false
	cfg.Citations.SourcesFolderPath = "refs"
	cfg.Citations.ReferencesSectionTitle = "Bibliography"
	cfg.Page.Size = "Letter"
	cfg.Page.Margins.Left = "2cm"

	t.Run("merge options", func(t *testing.T) {
		t.Parallel()

		got := mergeOptionsFrom(cfg)
		want := paperexport.MergeOptions{
			IncludeFrontMatter: false,
			Citations: paperexport.CitationOptions{
				Enabled:           true,
				SourcesFolder:     "refs",
				IncludeReferences: true,
				ReferencesTitle:   "Bibliography",
			},
		}
		if got != want {
			t.Errorf("mergeOptionsFrom() = %+v, want %+v", got, want)
		}
	})

	t.Run("page settings", func(t *testing.T) {
		t.Parallel()

		got := pageSettingsFrom(cfg)
		if got.Size != "Letter" || got.Margins.Left != "2cm" || got.Margins.Top != "1in" {
			t.Errorf("pageSettingsFrom() = %+v", got)
		}
		if err := got.Validate(); err != nil {
			t.Errorf("mapped settings invalid: %v", err)
		}
	})

	t.Run("footer", func(t *testing.T) {
		t.Parallel()

		off := config.DefaultConfig()
		if f := footerFrom(off); f != nil {
			t.Errorf("footerFrom() = %+v, want nil without page numbers", f)
		}

		on := config.DefaultConfig()
		on.Footer.PageNumbers = true
		on.Footer.Position = "left"
		f := footerFrom(on)
		if f == nil || !f.PageNumbers || f.Position != "left" {
			t.Errorf("footerFrom() = %+v", f)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveTimeout - Flag, env, default
// ---------------------------------------------------------------------------

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr bool
	}{
		{"default", "", 0, defaultTimeout, false},
		{"env", "", 90 * time.Second, 90 * time.Second, false},
		{"flag wins", "2m", 90 * time.Second, 2 * time.Minute, false},
		{"invalid flag", "later", 0, 0, true},
		{"negative flag", "-1s", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, &envConfig{Timeout: tt.env})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeout) {
					t.Errorf("error = %v, want ErrInvalidTimeout", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}
