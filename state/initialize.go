package state

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"eqgen/cache"
	"eqgen/scene"
	"eqgen/symbols"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:   time.Now(),
		Symbols: symbols.Default(),
	}
}

// PrepareFace loads font requested by configuration, built-in face is used
// when none is configured.
func (e *LocalEnv) PrepareFace() error {
	if e.Face != nil {
		return nil
	}
	if e.Cfg == nil || e.Cfg.Layout.FontPath == "" {
		e.Face = scene.DefaultFace()
		return nil
	}
	face, err := scene.LoadFace(e.Cfg.Layout.FontPath)
	if err != nil {
		return err
	}
	e.Face = face
	if e.Log != nil {
		e.Log.Debug("Using font", zap.String("path", e.Cfg.Layout.FontPath))
	}
	return nil
}

// OpenCache opens result cache when configured.
func (e *LocalEnv) OpenCache() error {
	if e.Cache != nil || e.Cfg == nil || e.Cfg.Cache.Path == "" {
		return nil
	}
	store, err := cache.Open(e.Cfg.Cache.Path, e.Log)
	if err != nil {
		return fmt.Errorf("unable to open cache: %w", err)
	}
	e.Cache = store
	return nil
}

// CloseCache releases result cache if it was opened.
func (e *LocalEnv) CloseCache() error {
	if e.Cache == nil {
		return nil
	}
	err := e.Cache.Close()
	e.Cache = nil
	return err
}
