// Package generate implements program sub-commands which compile markup
// and write the results.
package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"eqgen/common"
	"eqgen/state"
)

// Run is the action of compile sub-command.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	var src, dst string
	expr := cmd.String("expr")
	if len(expr) > 0 {
		dst = cmd.Args().Get(0)
		if cmd.Args().Len() > 1 {
			log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
		}
	} else {
		if src = cmd.Args().Get(0); len(src) == 0 {
			return errors.New("no input source has been specified")
		}
		if src, err = filepath.Abs(src); err != nil {
			return err
		}
		dst = cmd.Args().Get(1)
		if cmd.Args().Len() > 2 {
			log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
		}
	}
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}

	applyOverrides(cmd, env, log)

	// sources not in UTF-8 and without BOM
	if cp := cmd.String("input-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Decoding sources", zap.String("charset", n))
		}
	}

	if err := env.PrepareFace(); err != nil {
		return fmt.Errorf("unable to prepare font: %w", err)
	}
	if !cmd.Bool("nocache") {
		if err := env.OpenCache(); err != nil {
			return err
		}
		defer func() {
			if er := env.CloseCache(); er != nil {
				log.Warn("Unable to close cache", zap.Error(er))
			}
		}()
	}

	var exprs []expression
	if len(expr) > 0 {
		exprs = []expression{{Markup: expr, Index: 1}}
	} else if exprs, err = collect(ctx, src, env.CodePage, log); err != nil {
		return fmt.Errorf("unable to read expressions: %w", err)
	}

	format := env.Cfg.Output.Format
	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format), zap.Int("expressions", len(exprs)))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, exprs, dst, log)
}

// applyOverrides puts command line options on top of configuration.
func applyOverrides(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) {
	if cmd.IsSet("to") {
		format, err := common.ParseOutputFmt(cmd.String("to"))
		if err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Error(err), zap.Stringer("format", env.Cfg.Output.Format))
		} else {
			env.Cfg.Output.Format = format
		}
	}
	if cmd.IsSet("scale") {
		if s := cmd.Float("scale"); s > 0 {
			env.Cfg.Layout.Scale = s
		} else {
			log.Warn("Scale must be positive, ignoring", zap.Float64("scale", s))
		}
	}
	if cmd.IsSet("rotate") {
		switch r := cmd.Int("rotate"); r {
		case 0, 90, 180, 270:
			env.Cfg.Output.Rotation = r
		default:
			log.Warn("Rotation must be multiple of 90, ignoring", zap.Int("rotate", r))
		}
	}
	env.Overwrite = cmd.Bool("overwrite")
}

// process compiles expressions one by one. Failure of a single expression is
// logged and does not stop the batch.
func process(ctx context.Context, exprs []expression, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)
	if len(exprs) == 0 {
		log.Warn("Nothing to process")
		return nil
	}

	opts := exportOptions(env)
	names := newNamer(dst, opts.Format, env)

	var failed int
	for _, e := range exprs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := processExpression(ctx, e, names, opts, log); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			failed++
			log.Error("Unable to process expression",
				zap.String("markup", e.Markup), zap.String("source", e.SourceFile), zap.Int("index", e.Index), zap.Error(err))
		}
	}
	if failed == len(exprs) {
		return fmt.Errorf("none of %d expression(s) could be processed", len(exprs))
	}
	if failed > 0 {
		log.Warn("Some expressions were not processed", zap.Int("failed", failed), zap.Int("total", len(exprs)))
	}
	return nil
}
