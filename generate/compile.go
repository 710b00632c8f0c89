package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"eqgen/cache"
	"eqgen/engine"
	"eqgen/export"
	"eqgen/markup"
	"eqgen/scene"
	"eqgen/state"
)

// exportOptions builds renderer options from configuration.
func exportOptions(env *state.LocalEnv) export.Options {
	cfg := env.Cfg
	return export.Options{
		Format:      cfg.Output.Format,
		PxPerEm:     cfg.Output.PxPerEm,
		Margin:      cfg.Output.Margin,
		Rotation:    cfg.Output.Rotation,
		MaxWidth:    cfg.Output.MaxWidth,
		Transparent: cfg.Output.Transparent,
		Ion:         cfg.Output.IonEncoding,
	}
}

// cacheKey covers everything which affects produced bytes.
func cacheKey(e expression, env *state.LocalEnv, opts export.Options) string {
	return cache.Key(
		e.Markup,
		strconv.FormatFloat(env.Cfg.Layout.Scale, 'g', -1, 64),
		strconv.FormatFloat(env.Cfg.Layout.LineSpacing, 'g', -1, 64),
		env.Face.Name,
		opts.Format.String(),
		strconv.FormatFloat(opts.PxPerEm, 'g', -1, 64),
		strconv.FormatFloat(opts.Margin, 'g', -1, 64),
		strconv.Itoa(opts.Rotation),
		strconv.Itoa(opts.MaxWidth),
		strconv.FormatBool(opts.Transparent),
		opts.Ion.String(),
	)
}

// render compiles expression and exports the result. Compilation
// diagnostics are stored in debug report under id.
func render(e expression, id string, env *state.LocalEnv, opts export.Options, log *zap.Logger) ([]byte, error) {
	b := scene.New(env.Face, env.Symbols)
	res, err := engine.Compile(e.Markup, b, engine.Options{
		Scale:       env.Cfg.Layout.Scale,
		LineSpacing: env.Cfg.Layout.LineSpacing,
		Log:         log,
	})

	if env.Rpt != nil {
		env.Rpt.StoreData(id+"/markup.txt", []byte(e.Markup))
		env.Rpt.StoreData(id+"/tokens.txt", []byte(markup.Dump(e.Markup)))
		if err == nil {
			env.Rpt.StoreData(id+"/scene.txt", []byte(b.Dump(res.Root)))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("unable to compile expression: %w", err)
	}

	for _, w := range multierr.Errors(res.Warnings) {
		log.Warn("Expression compiled with problems", zap.Error(w))
	}

	data, err := export.Render(export.Source{Scene: b, Root: res.Root, Face: env.Face, Markup: e.Markup}, opts)
	if err != nil {
		return nil, fmt.Errorf("unable to export expression: %w", err)
	}
	return data, nil
}

// processExpression compiles single expression and writes result to the path
// selected by names.
func processExpression(ctx context.Context, e expression, names *namer, opts export.Options, log *zap.Logger) (rerr error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	uid, err := uuid.NewV7()
	if err != nil {
		uid = uuid.New()
	}
	id := uid.String()
	log = log.With(zap.String("id", id))

	var outputName string
	log.Debug("Compilation starting", zap.String("markup", e.Markup), zap.String("source", e.SourceFile), zap.Int("index", e.Index))
	defer func(start time.Time) {
		// rasterization libraries may panic on unusual geometry, the rest
		// of the batch must survive
		if r := recover(); r != nil {
			log.Error("Compilation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("compilation panic: %v", r)
		} else if rerr == nil {
			log.Info("Compilation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	var (
		data []byte
		hit  bool
		key  = cacheKey(e, env, opts)
	)
	if env.Cache != nil {
		if data, hit, err = env.Cache.Get(key); err != nil {
			log.Warn("Unable to use cache", zap.Error(err))
		}
	}
	if !hit {
		if data, err = render(e, id, env, opts, log); err != nil {
			return err
		}
		if env.Cache != nil {
			if err := env.Cache.Put(key, opts.Format.String(), data); err != nil {
				log.Warn("Unable to update cache", zap.Error(err))
			}
		}
	}

	outputName = names.path(e, id)
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(outputName, data, 0644); err != nil {
		return fmt.Errorf("unable to write result: %w", err)
	}
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("%s/result%s", id, opts.Format.Ext()), outputName)
	}
	return nil
}
