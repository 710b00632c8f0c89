package generate

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"eqgen/common"
	"eqgen/config"
	"eqgen/state"
)

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	env.Cfg = cfg
	if err := env.PrepareFace(); err != nil {
		t.Fatalf("prepare face: %v", err)
	}
	return ctx, env
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParseExpressions(t *testing.T) {
	src := "x^2\n\n% comment line\n  \\frac{a}{b}  \r\n\t\n\\sqrt{y}"
	got, err := parseExpressions(strings.NewReader(src), "set.tex")
	if err != nil {
		t.Fatalf("parseExpressions() error = %v", err)
	}
	want := []expression{
		{Markup: "x^2", SourceFile: "set.tex", Index: 1},
		{Markup: `\frac{a}{b}`, SourceFile: "set.tex", Index: 2},
		{Markup: `\sqrt{y}`, SourceFile: "set.tex", Index: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d expressions, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expression %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodeSource(t *testing.T) {
	const text = `\text{ширина} = 2`

	cp1251, err := charmap.Windows1251.NewEncoder().String(text)
	if err != nil {
		t.Fatal(err)
	}
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(text)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data string
		cp   bool
	}{
		{"utf-8", text, false},
		{"utf-8 with bom", "\uFEFF" + text, false},
		{"utf-16 with bom", utf16, false},
		{"code page", cp1251, true},
		{"bom wins over code page", utf16, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := strings.NewReader(tt.data)
			var got []expression
			var err error
			if tt.cp {
				got, err = parseExpressions(decodeSource(r, charmap.Windows1251), "x")
			} else {
				got, err = parseExpressions(decodeSource(r, nil), "x")
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 || got[0].Markup != text {
				t.Errorf("decoded %+v, want %q", got, text)
			}
		})
	}
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, buf.Bytes())
}

func TestCollect(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b10.tex"), []byte("c\n"))
	writeFile(t, filepath.Join(dir, "b2.tex"), []byte("a\nb\n"))
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("ignored\n"))
	writeFile(t, filepath.Join(dir, "sub", "c.TEX"), []byte("d\n"))
	writeZip(t, filepath.Join(dir, "pack.zip"), map[string]string{
		"inner/x.tex": "z\n",
		"inner/y.txt": "ignored\n",
		"outer/w.tex": "w\n",
	})

	got, err := collect(ctx, dir, nil, env.Log)
	if err != nil {
		t.Fatalf("collect() error = %v", err)
	}
	var markups, sources []string
	for _, e := range got {
		markups = append(markups, e.Markup)
		sources = append(sources, e.SourceFile)
	}
	if strings.Join(markups, ",") != "a,b,c,z,w,d" {
		t.Errorf("order = %v, want natural order of files", markups)
	}
	if strings.Join(sources[3:], ",") != strings.Join([]string{
		filepath.Join("inner", "x.tex"), filepath.Join("outer", "w.tex"), filepath.Join("sub", "c.TEX"),
	}, ",") {
		t.Errorf("sources = %v", sources)
	}

	single, err := collect(ctx, filepath.Join(dir, "b2.tex"), nil, env.Log)
	if err != nil || len(single) != 2 || single[1].Index != 2 {
		t.Errorf("collect(file) = %+v, %v", single, err)
	}

	inner, err := collect(ctx, filepath.Join(dir, "pack.zip", "inner"), nil, env.Log)
	if err != nil || len(inner) != 1 || inner[0].Markup != "z" {
		t.Errorf("collect(path in archive) = %+v, %v", inner, err)
	}

	for _, bad := range []string{
		filepath.Join(dir, "absent"),
		filepath.Join(dir, "b2.tex", "tail"),
	} {
		if _, err := collect(ctx, bad, nil, env.Log); err == nil {
			t.Errorf("collect(%s): expected error", bad)
		}
	}
}

func TestNamer(t *testing.T) {
	_, env := setupTestEnv(t)
	dst := filepath.Join("/", "out")

	t.Run("default", func(t *testing.T) {
		n := newNamer(dst, common.OutputFmtSvg, env)
		tests := []struct {
			e    expression
			want string
		}{
			{expression{Markup: `\frac{a}{b}`, Index: 1}, filepath.Join(dst, "frac-a-b.svg")},
			{expression{Markup: `x^2`, Index: 2}, filepath.Join(dst, "x-2.svg")},
			{expression{Markup: `x^{2}`, Index: 3}, filepath.Join(dst, "x-2-2.svg")},
			{expression{Markup: `x^2`, SourceFile: filepath.Join("set", "a.tex"), Index: 4}, filepath.Join(dst, "set", "x-2.svg")},
			{expression{Markup: `{}`, Index: 5}, filepath.Join(dst, "expr-005.svg")},
		}
		for _, tt := range tests {
			if got := n.path(tt.e, "id"); got != tt.want {
				t.Errorf("path(%q) = %q, want %q", tt.e.Markup, got, tt.want)
			}
		}
	})

	t.Run("template", func(t *testing.T) {
		env.Cfg.Output.OutputNameTemplate = `{{ .SourceFile }}/{{ printf "%03d" .Index }}-{{ .Format }}`
		defer func() { env.Cfg.Output.OutputNameTemplate = "" }()

		n := newNamer(dst, common.OutputFmtPng, env)
		got := n.path(expression{Markup: "a", SourceFile: "set.tex", Index: 7}, "id")
		if want := filepath.Join(dst, "set", "007-png.png"); got != want {
			t.Errorf("path() = %q, want %q", got, want)
		}
	})

	t.Run("broken template", func(t *testing.T) {
		env.Cfg.Output.OutputNameTemplate = `{{ .Nope`
		defer func() { env.Cfg.Output.OutputNameTemplate = "" }()

		n := newNamer(dst, common.OutputFmtIon, env)
		if got, want := n.path(expression{Markup: "a", Index: 1}, "id"), filepath.Join(dst, "a.ion"); got != want {
			t.Errorf("path() = %q, want %q", got, want)
		}
	})
}

func TestProcess(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dst := t.TempDir()

	exprs := []expression{
		{Markup: `\frac{a}{b}`, Index: 1},
		{Markup: `x^{`, Index: 2},
		{Markup: `\sqrt{\alpha} + \unknown`, Index: 3},
	}
	if err := process(ctx, exprs, dst, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	for _, name := range []string{"frac-a-b.svg", "sqrt-alpha-unknown.svg"} {
		data, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Errorf("result %s is missing: %v", name, err)
			continue
		}
		if !bytes.Contains(data, []byte("<svg")) {
			t.Errorf("result %s is not svg", name)
		}
	}

	// results exist and overwrite was not requested
	if err := process(ctx, exprs[:1], dst, env.Log); err == nil {
		t.Error("expected error when output exists")
	}
	env.Overwrite = true
	if err := process(ctx, exprs[:1], dst, env.Log); err != nil {
		t.Errorf("overwrite failed: %v", err)
	}

	if err := process(ctx, exprs[1:2], dst, env.Log); err == nil {
		t.Error("expected error when nothing could be processed")
	}
}

func TestProcess_Cache(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.Cfg.Cache.Path = filepath.Join(t.TempDir(), "cache.db")
	env.Cfg.Output.Format = common.OutputFmtIon
	env.Overwrite = true
	if err := env.OpenCache(); err != nil {
		t.Fatal(err)
	}
	defer env.CloseCache()

	dst := t.TempDir()
	exprs := []expression{{Markup: `a_1`, Index: 1}, {Markup: `b^2`, Index: 2}}
	for range 2 {
		if err := process(ctx, exprs, dst, env.Log); err != nil {
			t.Fatalf("process() error = %v", err)
		}
	}
	if n, err := env.Cache.Len("ion"); err != nil || n != 2 {
		t.Errorf("cache holds %d entries (%v), want 2", n, err)
	}
	if _, err := os.Stat(filepath.Join(dst, "a_1.ion")); err != nil {
		t.Errorf("cached result was not written: %v", err)
	}
}

func TestProcess_Cancelled(t *testing.T) {
	ctx, env := setupTestEnv(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := process(ctx, []expression{{Markup: "a", Index: 1}}, t.TempDir(), env.Log); err != context.Canceled {
		t.Errorf("Expected context.Canceled error, got %v", err)
	}
}

func compileCommand(out *bytes.Buffer) *cli.Command {
	return &cli.Command{
		Name:   "eqgen",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:   "compile",
				Action: Run,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "expr"},
					&cli.StringFlag{Name: "to"},
					&cli.FloatFlag{Name: "scale"},
					&cli.IntFlag{Name: "rotate"},
					&cli.BoolFlag{Name: "overwrite"},
					&cli.BoolFlag{Name: "nocache"},
					&cli.StringFlag{Name: "input-cp"},
				},
			},
			{
				Name:   "tokens",
				Action: Tokens,
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "tree"}},
			},
			{Name: "symbols", Action: Symbols},
		},
	}
}

func TestRun(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dst := t.TempDir()

	var out bytes.Buffer
	err := compileCommand(&out).Run(ctx, []string{"eqgen", "compile", "--expr", `x^2`, "--to", "png", "--scale", "2", "--rotate", "90", dst})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if env.Cfg.Output.Format != common.OutputFmtPng || env.Cfg.Layout.Scale != 2 || env.Cfg.Output.Rotation != 90 {
		t.Errorf("overrides were not applied: %+v %+v", env.Cfg.Output, env.Cfg.Layout)
	}
	if _, err := os.Stat(filepath.Join(dst, "x-2.png")); err != nil {
		t.Errorf("result is missing: %v", err)
	}

	src := filepath.Join(t.TempDir(), "set.tex")
	writeFile(t, src, []byte("a\nb\n"))
	if err := compileCommand(&out).Run(ctx, []string{"eqgen", "compile", "--to", "svg", src, dst}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, name := range []string{"a.svg", "b.svg"} {
		if _, err := os.Stat(filepath.Join(dst, name)); err != nil {
			t.Errorf("result %s is missing: %v", name, err)
		}
	}

	if err := compileCommand(&out).Run(ctx, []string{"eqgen", "compile"}); err == nil {
		t.Error("expected error without source")
	}
}

func TestTokens(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	var out bytes.Buffer
	if err := compileCommand(&out).Run(ctx, []string{"eqgen", "tokens", "--tree", `\frac{a}{b}`}); err != nil {
		t.Fatalf("tokens error = %v", err)
	}
	for _, want := range []string{`0: command: "frac"`, "7: end", "numerator #", "denominator #", `glyph: "a"`, "bar ["} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output misses %q:\n%s", want, out.String())
		}
	}
}

func TestSymbols(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	var out bytes.Buffer
	if err := compileCommand(&out).Run(ctx, []string{"eqgen", "symbols", `\alp`}); err != nil {
		t.Fatalf("symbols error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], `\alpha`) || !strings.HasSuffix(lines[0], "α") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
