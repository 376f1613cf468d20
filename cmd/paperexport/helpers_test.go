package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	paperexport "github.com/alnah/go-paperexport"
)

// fakePDF is what fakeExporter returns instead of a Chrome-rendered PDF.
const fakePDF = "%PDF-1.4 fake"

// fakeExporter runs the real merge and HTML stages and fakes the PDF.
type fakeExporter struct {
	real   *paperexport.Exporter
	inputs []paperexport.Input
	err    error
	closed bool
}

func (f *fakeExporter) Export(ctx context.Context, in paperexport.Input) (*paperexport.Result, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	htmlOnly := in.HTMLOnly
	in.HTMLOnly = true
	res, err := f.real.Export(ctx, in)
	if err != nil {
		return nil, err
	}
	if !htmlOnly {
		res.PDF = []byte(fakePDF)
	}
	return res, nil
}

func (f *fakeExporter) Merge(ctx context.Context, files []paperexport.File) (*paperexport.MergeResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.real.Merge(ctx, files)
}

func (f *fakeExporter) Close() error {
	f.closed = true
	return f.real.Close()
}

// testEnv returns an Environment writing to buffers and building
// fakeExporters.
func testEnv(t *testing.T) (*Environment, *bytes.Buffer, *bytes.Buffer, *fakeExporter) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	fake := &fakeExporter{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
		NewExporter: func(opts ...paperexport.Option) (exporter, error) {
			exp, err := paperexport.NewExporter(opts...)
			if err != nil {
				return nil, err
			}
			fake.real = exp
			return fake, nil
		},
	}
	return env, &stdout, &stderr, fake
}

// paperVault writes a two-chapter vault with one source and returns its
// directory.
func paperVault(t *testing.T) string {
	t.Helper()
	return writeFiles(t, map[string]string{
		"01-intro.md":  "---\nchapter: 1\n---\n# Paper\n\nAs shown in [[smith2020]].",
		"02-method.md": "# Method\n\nMeasured twice.",
		"sources/smith2020.md": "---\nshort: Smith20\nauthor: Smith, J\nyear: 2020\n" +
			"title: Deep Notes\npublisher: Acme\n---\n",
	})
}

// writeFiles creates files under a temp directory and returns it.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

// configFile writes a config file and returns its path.
func configFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "paperexport.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
