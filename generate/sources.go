package generate

import (
	"archive/zip"
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"eqgen/archive"
)

// expression is a single markup string to compile together with information
// about where it came from.
type expression struct {
	Markup string
	// SourceFile is path of the source relative to processed source, empty
	// for expressions from command line.
	SourceFile string
	// Index is 1 based position of expression inside its source.
	Index int
}

// sourceExt is extension of markup files picked up from directories.
const sourceExt = ".tex"

// decodeSource returns reader producing UTF-8 text. BOM when present wins,
// otherwise cp (if any) is used to decode the data.
func decodeSource(r io.Reader, cp encoding.Encoding) io.Reader {
	var fallback transform.Transformer = encoding.Nop.NewDecoder()
	if cp != nil {
		fallback = cp.NewDecoder()
	}
	return transform.NewReader(r, unicode.BOMOverride(fallback))
}

// parseExpressions splits source into expressions, one per line. Empty lines
// and lines starting with '%' are skipped.
func parseExpressions(r io.Reader, name string) ([]expression, error) {
	var (
		out   []expression
		index int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if len(line) == 0 || strings.HasPrefix(line, "%") {
			continue
		}
		index++
		out = append(out, expression{Markup: line, SourceFile: name, Index: index})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("unable to read expressions from %s: %w", name, err)
	}
	return out, nil
}

func readFile(path, name string, cp encoding.Encoding) ([]expression, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseExpressions(decodeSource(bytes.NewReader(data), cp), name)
}

func isSource(name string) bool {
	return strings.EqualFold(path.Ext(name), sourceExt)
}

// collect reads all expressions from src which is a file, a directory, a zip
// archive or a path inside zip archive. Directories and archives are walked
// recursively and only files with sourceExt are processed, in natural order
// of their relative paths.
func collect(ctx context.Context, src string, cp encoding.Encoding, log *zap.Logger) ([]expression, error) {
	for head := src; len(head) != 0; head, _ = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))
		fi, err := os.Stat(head)
		if err != nil {
			// does not exist - probably path in archive
			continue
		}

		if fi.IsDir() {
			if head != src {
				return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return collectDir(ctx, head, cp, log)
		}
		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("unexpected path mode for (%s)", head)
		}

		arc, err := archive.IsArchive(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check archive type: %w", err)
		}
		if arc {
			inner := strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			return collectArchive(ctx, head, filepath.ToSlash(inner), "", cp, log)
		}
		if head != src {
			return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		return readFile(head, filepath.Base(head), cp)
	}
	return nil, fmt.Errorf("input source was not found (%s)", src)
}

func collectDir(ctx context.Context, dir string, cp encoding.Encoding, log *zap.Logger) ([]expression, error) {
	var (
		names    []string
		archives = make(map[string]bool)
	)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if isSource(path) {
			names = append(names, rel)
			return nil
		}
		arc, err := archive.IsArchive(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if arc {
			names = append(names, rel)
			archives[rel] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
		return nil, nil
	}
	sort.Sort(natural.StringSlice(names))

	var out []expression
	for _, name := range names {
		var (
			exprs []expression
			err   error
		)
		if archives[name] {
			exprs, err = collectArchive(ctx, filepath.Join(dir, name), "", filepath.Dir(name), cp, log)
		} else {
			exprs, err = readFile(filepath.Join(dir, name), name, cp)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			log.Warn("Skipping file", zap.String("file", name), zap.Error(err))
			continue
		}
		out = append(out, exprs...)
	}
	return out, nil
}

// collectArchive reads sources located under prefix inside zip archive,
// pathOut is prepended to their names.
func collectArchive(ctx context.Context, arc, prefix, pathOut string, cp encoding.Encoding, log *zap.Logger) ([]expression, error) {
	var out []expression
	err := archive.Walk(arc, prefix, isSource, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		name, err := archive.Name(f, cp)
		if err != nil {
			log.Warn("Unable to convert archive name from specified encoding",
				zap.String("archive", arc), zap.String("path", name), zap.Error(err))
		}

		r, err := f.Open()
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", arc), zap.String("file", name), zap.Error(err))
			return nil
		}
		defer r.Close()

		exprs, err := parseExpressions(decodeSource(r, cp), filepath.Join(pathOut, filepath.FromSlash(name)))
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", arc), zap.String("file", name), zap.Error(err))
			return nil
		}
		out = append(out, exprs...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to process archive: %w", err)
	}
	if len(out) == 0 {
		log.Debug("Nothing to process", zap.String("archive", arc), zap.String("path", prefix))
	}
	return out, nil
}
