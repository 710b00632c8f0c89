// Package dumputil provides output helpers for debug tools working with
// results cache.
package dumputil

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amazon-ion/ion-go/ion"
	"github.com/h2non/filetype"

	"eqgen/cache"
	"eqgen/common"
)

// OutputPath returns <stem><suffix> in either the input file's directory or
// outDir, checking that existing file could be replaced.
func OutputPath(inPath, outDir, suffix string, overwrite bool) (string, error) {
	base := filepath.Base(inPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Dir(inPath)
	if outDir != "" {
		dir = outDir
	}
	outPath := filepath.Join(dir, stem+suffix)

	if _, err := os.Stat(outPath); err == nil {
		if !overwrite {
			return "", fmt.Errorf("output file already exists: %s (use -overwrite)", outPath)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	return outPath, nil
}

// WriteOutput writes data to <stem><suffix> in either the input file's directory or outDir.
func WriteOutput(inPath, outDir, suffix string, data []byte, overwrite bool) error {
	outPath, err := OutputPath(inPath, outDir, suffix, overwrite)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	return nil
}

// Ext returns file extension for cached result. Recorded format is trusted
// first, magic bytes are used for anything else.
func Ext(format string, b []byte) string {
	if f, err := common.ParseOutputFmt(format); err == nil {
		return f.Ext()
	}
	kind, err := filetype.Match(b)
	if err == nil && kind != filetype.Unknown && kind.Extension != "" {
		return "." + kind.Extension
	}
	return ".bin"
}

// List returns one line per cache entry.
func List(entries []cache.Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s %-4s %8d %s\n", e.Key, e.Format, len(e.Data), e.Created.UTC().Format("2006-01-02T15:04:05Z"))
	}
	fmt.Fprintf(&sb, "total: %d entries\n", len(entries))
	return sb.String()
}

// DumpResults writes cached blobs into <stem>-results.zip.
func DumpResults(entries []cache.Entry, inPath, outDir string, overwrite bool) (retErr error) {
	outPath, err := OutputPath(inPath, outDir, "-results.zip", overwrite)
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer func() { retErr = errors.Join(retErr, f.Close()) }()

	zw := zip.NewWriter(f)
	defer func() { retErr = errors.Join(retErr, zw.Close()) }()

	for _, e := range entries {
		w, err := zw.Create(e.Key + Ext(e.Format, e.Data))
		if err != nil {
			return err
		}
		if _, err := w.Write(e.Data); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stderr, "results: wrote %d file(s) into %s\n", len(entries), outPath)
	return nil
}

// IonText renders element trees of Ion entries as text Ion, one per entry.
func IonText(entries []cache.Entry) (string, error) {
	var sb strings.Builder
	for _, e := range entries {
		if e.Format != common.OutputFmtIon.String() {
			continue
		}
		var v any
		if err := ion.Unmarshal(e.Data, &v); err != nil {
			return "", fmt.Errorf("decode %s: %w", e.Key, err)
		}
		text, err := ion.MarshalText(v)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", e.Key, err)
		}
		fmt.Fprintf(&sb, "// %s\n%s\n\n", e.Key, text)
	}
	return sb.String(), nil
}
