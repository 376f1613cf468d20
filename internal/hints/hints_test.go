package hints

// Notes:
// - TestForBrowserConnect swaps the package-level IsInContainer and sets
//   process environment, so neither it nor its subtests run in parallel.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Sandbox and binary suggestions
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		container   bool
		env         map[string]string
		wantSandbox bool
		wantBin     bool
	}{
		{
			name:        "ci runner",
			env:         map[string]string{"CI": "true"},
			wantSandbox: true,
			wantBin:     true,
		},
		{
			name:        "gitlab runner with custom chrome",
			env:         map[string]string{"GITLAB_CI": "1", "ROD_BROWSER_BIN": "/opt/chrome"},
			wantSandbox: true,
		},
		{
			name:        "container",
			container:   true,
			wantSandbox: true,
			wantBin:     true,
		},
		{
			name:      "container with sandbox disabled",
			container: true,
			env:       map[string]string{"ROD_NO_SANDBOX": "1"},
			wantBin:   true,
		},
		{
			name:    "desktop",
			wantBin: true,
		},
		{
			name:      "fully configured",
			container: true,
			env:       map[string]string{"CI": "true", "ROD_NO_SANDBOX": "1", "ROD_BROWSER_BIN": "/usr/bin/chromium"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := IsInContainer
			t.Cleanup(func() { IsInContainer = orig })
			IsInContainer = func() bool { return tt.container }

			for _, k := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "ROD_NO_SANDBOX", "ROD_BROWSER_BIN"} {
				t.Setenv(k, tt.env[k])
			}

			hint := ForBrowserConnect()

			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("sandbox suggestion = %v, want %v (hint %q)", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("browser bin suggestion = %v, want %v (hint %q)", got, tt.wantBin, hint)
			}
			if !tt.wantSandbox && !tt.wantBin && hint != "" {
				t.Errorf("ForBrowserConnect() = %q, want empty", hint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStaticHints - Fixed hint wording
// ---------------------------------------------------------------------------

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hint string
		want []string
	}{
		{"timeout", ForTimeout(), []string{"--timeout"}},
		{"output directory", ForOutputDirectory(), []string{"writable"}},
		{"vault", ForVault(), []string{"--vault", "PAPEREXPORT_VAULT"}},
		{"template", ForTemplate(), []string{"template.path", "vault root"}},
		{"config without candidates", ForConfigNotFound(nil), []string{"--config"}},
		{
			"config with user dir candidate",
			ForConfigNotFound([]string{"paperexport.yaml", "/home/ada/.config/go-paperexport/paperexport.yaml"}),
			[]string{"or create /home/ada/.config/go-paperexport/paperexport.yaml"},
		},
		{
			"config with windows candidate",
			ForConfigNotFound([]string{`C:\Users\ada\AppData\Roaming\go-paperexport\thesis.yml`}),
			[]string{`or create C:\Users\ada\AppData\Roaming\go-paperexport\thesis.yml`},
		},
		{"chapters without sources", ForNoChapters(""), []string{"note paths"}},
		{"chapters with sources", ForNoChapters("refs"), []string{"refs/", "citation sources"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint %q lacks the hint prefix", tt.hint)
			}
			for _, w := range tt.want {
				if !strings.Contains(tt.hint, w) {
					t.Errorf("hint %q missing %q", tt.hint, w)
				}
			}
		})
	}
}

func TestForNoChapters_WithoutSourcesSkipsCitationNote(t *testing.T) {
	t.Parallel()

	if hint := ForNoChapters(""); strings.Contains(hint, "citation") {
		t.Errorf("ForNoChapters(\"\") = %q, should not mention citations", hint)
	}
}

func TestFormatHints(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
