// Package archive reads markup sources packed into zip archives.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"golang.org/x/text/encoding"
)

// WalkFunc is called for every matching file in archive visited by Walk. If an
// error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// IsArchive reports whether file at path is a zip archive, judging by content.
func IsArchive(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// Walk visits files in the archive which are located under prefix and
// satisfy match (nil matches everything) in natural order of their names.
// Entries with path traversal components ("..") or absolute paths make the
// whole archive unacceptable.
func Walk(archive, prefix string, match func(name string) bool, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	files := make(map[string]*zip.File, len(r.File))
	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if match != nil && !match(name) {
			continue
		}
		if _, dup := files[name]; !dup {
			names = append(names, name)
		}
		files[name] = f
	}
	sort.Sort(natural.StringSlice(names))

	for _, name := range names {
		if err := walkFn(archive, files[name]); err != nil {
			return err
		}
	}
	return nil
}

// Name returns name of the archived file. Zip does not define encoding of
// names so legacy archives may need cp to get readable result.
func Name(f *zip.File, cp encoding.Encoding) (string, error) {
	name := f.FileHeader.Name
	if cp == nil || !f.FileHeader.NonUTF8 {
		return name, nil
	}
	decoded, err := cp.NewDecoder().String(name)
	if err != nil {
		return name, err
	}
	return decoded, nil
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
