package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"eqgen/engine"
	"eqgen/markup"
	"eqgen/scene"
	"eqgen/state"
)

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// Tokens prints token stream of expression and, when requested, laid out
// element tree.
func Tokens(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("tokens")

	expr := strings.Join(cmd.Args().Slice(), " ")
	if len(expr) == 0 {
		return errors.New("no expression has been specified")
	}
	out := output(cmd)

	dump := markup.Dump(expr)
	fmt.Fprint(out, dump)
	env.Rpt.StoreData("tokens.txt", []byte(dump))

	if !cmd.Bool("tree") {
		return nil
	}
	if err := env.PrepareFace(); err != nil {
		return fmt.Errorf("unable to prepare font: %w", err)
	}
	b := scene.New(env.Face, env.Symbols)
	res, err := engine.Compile(expr, b, engine.Options{
		Scale:       env.Cfg.Layout.Scale,
		LineSpacing: env.Cfg.Layout.LineSpacing,
		Log:         log,
	})
	if err != nil {
		return fmt.Errorf("unable to compile expression: %w", err)
	}
	for _, w := range multierr.Errors(res.Warnings) {
		log.Warn("Expression compiled with problems", zap.Error(w))
	}
	tree := b.Dump(res.Root)
	fmt.Fprintln(out)
	fmt.Fprint(out, tree)
	env.Rpt.StoreData("scene.txt", []byte(tree))
	return nil
}

// Symbols prints supported symbol commands, optionally only those starting
// with one of the arguments.
func Symbols(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	out := output(cmd)

	prefixes := cmd.Args().Slice()
	for _, name := range env.Symbols.Names() {
		if len(prefixes) > 0 && !hasAnyPrefix(name, prefixes) {
			continue
		}
		glyph, err := env.Symbols.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\\%-16s %s\n", name, glyph)
	}
	return nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, strings.TrimPrefix(p, `\`)) {
			return true
		}
	}
	return false
}
