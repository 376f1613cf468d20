package main

// Notes:
// - runDoctor/checkChrome: the result depends on the host's Chrome, so we
//   only test invariants (status consistent with errors/warnings).
// - checkVault: we test the vault, sources folder, and template checks on
//   temp directories.
// - isContainer: we test the explicit override; file-based detection is
//   host-dependent.
// - Tests using t.Setenv() cannot run in parallel.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-paperexport/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunDoctor - Status invariants
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	t.Parallel()

	r := runDoctor()

	switch {
	case len(r.Errors) > 0 && r.Status != statusErrors:
		t.Errorf("Status = %q with errors %v", r.Status, r.Errors)
	case len(r.Errors) == 0 && len(r.Warnings) > 0 && r.Status != statusWarnings:
		t.Errorf("Status = %q with warnings %v", r.Status, r.Warnings)
	case len(r.Errors) == 0 && len(r.Warnings) == 0 && r.Status != statusReady:
		t.Errorf("Status = %q without findings", r.Status)
	}
	if r.Env.OS == "" || r.Env.Arch == "" {
		t.Errorf("Env = %+v, want OS and Arch", r.Env)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - JSON output and flags
// ---------------------------------------------------------------------------

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		dir := paperVault(t)
		env, stdout, _, _ := testEnv(t)
		code := runDoctorCmd([]string{"--json", "-c", configFile(t, ""), "--vault", dir}, env)

		var r doctorResult
		if err := json.Unmarshal(stdout.Bytes(), &r); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if !r.Vault.Found || !r.Vault.SourcesFound {
			t.Errorf("Vault = %+v, want found with sources", r.Vault)
		}
		want := ExitSuccess
		if r.Status == statusErrors {
			want = ExitGeneral
		}
		if code != want {
			t.Errorf("exit code = %d, want %d for status %q", code, want, r.Status)
		}
	})

	t.Run("bad flag", func(t *testing.T) {
		t.Parallel()

		env, _, _, _ := testEnv(t)
		if code := runDoctorCmd([]string{"--bogus"}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}

// ---------------------------------------------------------------------------
// TestCheckVault - Vault, sources, template checks
// ---------------------------------------------------------------------------

func TestCheckVault(t *testing.T) {
	t.Parallel()

	dir := paperVault(t)

	tests := []struct {
		name         string
		mutate       func(*config.Config)
		wantErrors   int
		wantWarnings int
		wantFound    bool
	}{
		{"healthy", func(c *config.Config) { c.Vault = dir }, 0, 0, true},
		{"no vault", func(c *config.Config) { c.Vault = "" }, 0, 1, false},
		{"missing vault", func(c *config.Config) { c.Vault = filepath.Join(dir, "nope") }, 1, 0, false},
		{"missing sources", func(c *config.Config) {
			c.Vault = dir
			c.Citations.SourcesFolderPath = "refs"
		}, 0, 1, true},
		{"sources ignored without citations", func(c *config.Config) {
			c.Vault = dir
			c.Citations.Enabled = false
			c.Citations.SourcesFolderPath = "refs"
		}, 0, 0, true},
		{"missing template", func(c *config.Config) {
			c.Vault = dir
			c.Template.Path = "tpl/paper.html"
		}, 0, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			r := &doctorResult{}
			checkVault(r, cfg)

			if len(r.Errors) != tt.wantErrors || len(r.Warnings) != tt.wantWarnings {
				t.Errorf("errors = %v, warnings = %v", r.Errors, r.Warnings)
			}
			if r.Vault.Found != tt.wantFound {
				t.Errorf("Vault.Found = %v, want %v", r.Vault.Found, tt.wantFound)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsContainer - Explicit override
// ---------------------------------------------------------------------------

func TestIsContainer(t *testing.T) {
	t.Setenv("PAPEREXPORT_CONTAINER", "1")

	ok, hint := isContainer()
	if !ok || hint != "PAPEREXPORT_CONTAINER=1" {
		t.Errorf("isContainer() = %v, %q", ok, hint)
	}
}

// ---------------------------------------------------------------------------
// TestPrintDoctorResult - Human-readable output
// ---------------------------------------------------------------------------

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *doctorResult
		want   []string
	}{
		{
			name: "ready",
			result: &doctorResult{
				Status: statusReady,
				Chrome: chromeInfo{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 120", Sandbox: true},
				Env:    envInfo{OS: "linux", Arch: "amd64"},
				System: systemInfo{TempWritable: true},
				Vault:  vaultInfo{Path: "/notes", Found: true, SourcesFolder: "sources", SourcesFound: true},
			},
			want: []string{"/usr/bin/chromium", "Chromium 120", "Sandbox: enabled", "linux/amd64", "Vault: /notes", "Sources: sources", "Ready to export"},
		},
		{
			name: "errors",
			result: &doctorResult{
				Status:   statusErrors,
				Env:      envInfo{OS: "linux", Arch: "arm64", Container: true, ContainerHint: "/.dockerenv"},
				Warnings: []string{"Container/CI detected"},
				Errors:   []string{"Chrome/Chromium not found"},
			},
			want: []string{"Not found", "Container: detected (/.dockerenv)", "Warnings:", "Errors:", "Not ready"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printDoctorResult(&buf, tt.result)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output missing %q:\n%s", w, buf.String())
				}
			}
		})
	}
}
