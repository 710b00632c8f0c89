package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"eqgen/common"
	"eqgen/config"
	"eqgen/state"
)

// maxBaseName limits length of names derived from markup.
const maxBaseName = 64

// namer produces output file names and keeps them unique within one run.
type namer struct {
	dst    string
	format common.OutputFmt
	env    *state.LocalEnv
	used   map[string]int
}

func newNamer(dst string, format common.OutputFmt, env *state.LocalEnv) *namer {
	return &namer{dst: dst, format: format, env: env, used: make(map[string]int)}
}

// path returns output path for expression. Default name is derived from the
// markup, user template may also place results in subdirectories.
func (n *namer) path(e expression, id string) string {
	outDir := filepath.Join(n.dst, filepath.Dir(e.SourceFile))

	var name string
	if tmpl := n.env.Cfg.Output.OutputNameTemplate; tmpl != "" {
		if expanded := n.expand(e, id, tmpl); expanded != "" {
			name = n.assemble(outDir, expanded)
		}
	}
	if name == "" {
		name = filepath.Join(outDir, n.defaultName(e))
	}
	return n.unique(name)
}

func (n *namer) defaultName(e expression) string {
	base := n.clean(e.Markup)
	if r := []rune(base); len(r) > maxBaseName {
		base = strings.TrimRight(string(r[:maxBaseName]), "-")
	}
	if base == "" || base == "_bad_file_name_" {
		base = fmt.Sprintf("expr-%03d", e.Index)
	}
	return base + n.format.Ext()
}

func (n *namer) clean(segment string) string {
	if n.env.Cfg.Output.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}

func (n *namer) expand(e expression, id, tmpl string) string {
	expanded, err := expandTemplate(e, id, config.OutputNameTemplateFieldName, tmpl, n.format)
	if err != nil {
		n.env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return filepath.FromSlash(expanded)
}

// assemble cleans every segment of expanded template and puts result under
// outDir.
func (n *namer) assemble(outDir, expanded string) string {
	segments := splitPath(expanded)
	if len(segments) == 0 {
		return ""
	}
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, s := range segments[:len(segments)-1] {
		parts = append(parts, n.clean(s))
	}
	parts = append(parts, n.clean(segments[len(segments)-1])+n.format.Ext())
	return filepath.Join(parts...)
}

// unique appends counter to names already produced in this run.
func (n *namer) unique(name string) string {
	count := n.used[name]
	n.used[name] = count + 1
	if count == 0 {
		return name
	}
	ext := n.format.Ext()
	candidate := fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), count+1, ext)
	return n.unique(candidate)
}

func splitPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)
	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}
