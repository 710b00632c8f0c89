package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		r, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatal(err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport_Archive(t *testing.T) {
	tmpDir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(tmpDir, "final.log")
	if err := os.WriteFile(stored, []byte("log line"), 0644); err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "a.svg"), []byte("<svg/>"), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("final.log", stored)
	r.Store("results", dir)
	r.Store("missing", filepath.Join(tmpDir, "absent"))
	r.StoreData("expr/tokens.txt", []byte("Text(a)"))

	if !r.Has("results") || r.Has("other") {
		t.Error("Has() does not reflect stored entries")
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	tests := map[string]string{
		"final.log":         "log line",
		"results/sub/a.svg": "<svg/>",
		"expr/tokens.txt":   "Text(a)",
	}
	for name, want := range tests {
		if got, ok := files[name]; !ok || got != want {
			t.Errorf("archive entry %s = %q (present %v), want %q", name, got, ok, want)
		}
	}
	if _, ok := files["missing"]; ok {
		t.Error("absent file must not be archived")
	}
	manifest := files["MANIFEST"]
	for _, name := range []string{"final.log", "results", "missing", "expr/tokens.txt"} {
		if !strings.Contains(manifest, name) {
			t.Errorf("MANIFEST does not mention %s", name)
		}
	}
}

func TestReport_OverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("a", []byte("1"))
	defer func() {
		if recover() == nil {
			t.Error("storing the same name twice must panic")
		}
	}()
	r.StoreData("a", []byte("2"))
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	r.Store("x", "y")
	r.StoreData("x", nil)
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Error("nil report has no name")
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
