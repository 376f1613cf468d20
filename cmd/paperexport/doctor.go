package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-paperexport/internal/config"
	"github.com/alnah/go-paperexport/internal/hints"
)

// Doctor status values.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Vault    vaultInfo  `json:"vault"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// vaultInfo holds the checks of the configured vault.
type vaultInfo struct {
	Path          string `json:"path,omitempty"`
	Found         bool   `json:"found"`
	SourcesFolder string `json:"sources_folder,omitempty"`
	SourcesFound  bool   `json:"sources_found"`
	Template      string `json:"template,omitempty"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "output JSON")
	var common commonFlags
	addCommonFlags(fs, &common)
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	result := runDoctor()
	if cfg, err := loadSettings(&common, loadEnvConfig()); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Config not loaded: %v", err))
	} else {
		checkVault(result, cfg)
	}
	result.finalize()

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs the browser and system checks.
func runDoctor() *doctorResult {
	r := &doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}
	checkChrome(r)
	checkEnvironment(r)
	checkSystem(r)
	r.finalize()
	return r
}

func (r *doctorResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) failf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// finalize derives Status from the collected warnings and errors.
func (r *doctorResult) finalize() {
	r.Status = statusReady
	if len(r.Warnings) > 0 {
		r.Status = statusWarnings
	}
	if len(r.Errors) > 0 {
		r.Status = statusErrors
	}
}

// checkChrome locates the browser rod will launch, honouring ROD_BROWSER_BIN.
func checkChrome(r *doctorResult) {
	bin := r.Env.BrowserBin
	if bin == "" {
		var found bool
		if bin, found = launcher.LookPath(); !found {
			r.failf("Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}
	if _, err := os.Stat(bin); err != nil {
		r.failf("Chrome not found at %s", bin)
		return
	}

	r.Chrome = chromeInfo{Found: true, Path: bin, Sandbox: r.Env.NoSandbox != "1"}
	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- browser path from rod or ROD_BROWSER_BIN
	if err != nil {
		r.warnf("Could not get Chrome version: %v", err)
		return
	}
	r.Chrome.Version = strings.TrimSpace(string(out))
}

var ciEnvVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// checkEnvironment detects container and CI environments.
func checkEnvironment(r *doctorResult) {
	r.Env.Container, r.Env.ContainerHint = isContainer()
	for _, v := range ciEnvVars {
		if os.Getenv(v) != "" {
			r.Env.CI = true
			break
		}
	}
	if (r.Env.Container || r.Env.CI) && r.Env.NoSandbox != "1" {
		r.warnf("Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer reports whether we run inside a container, and which signal
// said so.
func isContainer() (bool, string) {
	switch {
	case os.Getenv("PAPEREXPORT_CONTAINER") == "1":
		return true, "PAPEREXPORT_CONTAINER=1"
	case hints.IsInContainer():
		return true, "/.dockerenv"
	case os.Getenv("container") != "":
		return true, "container=" + os.Getenv("container")
	case os.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory that receives rendered HTML.
func checkSystem(r *doctorResult) {
	probe := filepath.Join(os.TempDir(), "paperexport-doctor-test")
	if err := os.WriteFile(probe, nil, 0o600); err != nil {
		r.failf("Temp directory not writable: %s", os.TempDir())
		return
	}
	_ = os.Remove(probe)
	r.System.TempWritable = true
}

// checkVault verifies the configured vault, its sources folder and the
// custom template.
func checkVault(r *doctorResult, cfg *config.Config) {
	r.Vault.Path = cfg.Vault
	if cfg.Vault == "" {
		r.warnf("No vault configured%s", hints.ForVault())
		return
	}
	if !isDir(cfg.Vault) {
		r.failf("Vault not found: %s", cfg.Vault)
		return
	}
	r.Vault.Found = true

	if folder := cfg.Citations.SourcesFolderPath; cfg.Citations.Enabled && folder != "" {
		r.Vault.SourcesFolder = folder
		dir := filepath.Join(cfg.Vault, filepath.FromSlash(folder))
		if r.Vault.SourcesFound = isDir(dir); !r.Vault.SourcesFound {
			r.warnf("Sources folder not found: %s (citations stay unresolved)", dir)
		}
	}

	if tpl := cfg.Template.Path; tpl != "" {
		r.Vault.Template = tpl
		if !filepath.IsAbs(tpl) {
			tpl = filepath.Join(cfg.Vault, filepath.FromSlash(tpl))
		}
		if _, err := os.Stat(tpl); err != nil {
			r.warnf("Template not readable: %s%s", tpl, hints.ForTemplate())
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

var statusLines = map[string]string{
	statusReady:    "Status: Ready to export",
	statusWarnings: "Status: Ready with warnings",
	statusErrors:   "Status: Not ready (see errors above)",
}

// printDoctorResult renders r as grouped check lines.
func printDoctorResult(w io.Writer, r *doctorResult) {
	mark := func(ok bool) string {
		if ok {
			return successStyle.Render("✓")
		}
		return errorStyle.Render("✗")
	}
	line := func(ok bool, format string, args ...any) {
		fmt.Fprintf(w, "  %s %s\n", mark(ok), fmt.Sprintf(format, args...))
	}
	section := func(title string, body func()) {
		fmt.Fprintln(w, title)
		body()
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, titleStyle.Render("paperexport doctor"))
	fmt.Fprintln(w)

	section("Chrome/Chromium", func() {
		if !r.Chrome.Found {
			line(false, "Not found")
			return
		}
		line(true, "Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			line(true, "Version: %s", r.Chrome.Version)
		}
		sandbox := "enabled"
		if !r.Chrome.Sandbox {
			sandbox = "disabled (ROD_NO_SANDBOX=1)"
		}
		line(true, "Sandbox: %s", sandbox)
	})

	section("Environment", func() {
		line(true, "Platform: %s/%s", r.Env.OS, r.Env.Arch)
		if r.Env.Container {
			line(true, "Container: detected (%s)", r.Env.ContainerHint)
		}
		if r.Env.CI {
			line(true, "CI: detected")
		}
	})

	section("System", func() {
		if r.System.TempWritable {
			line(true, "Temp directory: writable")
		} else {
			line(false, "Temp directory: not writable")
		}
	})

	if r.Vault.Path != "" {
		section("Vault", func() {
			if r.Vault.Found {
				line(true, "Vault: %s", r.Vault.Path)
			} else {
				line(false, "Vault: %s not found", r.Vault.Path)
			}
			if r.Vault.SourcesFound {
				line(true, "Sources: %s", r.Vault.SourcesFolder)
			}
		})
	}

	if len(r.Warnings) > 0 {
		section("Warnings:", func() {
			for _, msg := range r.Warnings {
				fmt.Fprintf(w, "  %s %s\n", warningStyle.Render("!"), msg)
			}
		})
	}
	if len(r.Errors) > 0 {
		section("Errors:", func() {
			for _, msg := range r.Errors {
				line(false, "%s", msg)
			}
		})
	}

	fmt.Fprintln(w, statusLines[r.Status])
}
