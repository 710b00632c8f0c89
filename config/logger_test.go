package config

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"
)

func TestLoggingConfig_Prepare(t *testing.T) {
	dir := t.TempDir()
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "normal", Destination: filepath.Join(dir, "eqgen.log"), Mode: "overwrite"},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	defer debug.SetCrashOutput(nil, debug.CrashOptions{})

	log.Debug("hidden message")
	log.Info("visible message")
	_ = log.Sync()

	data, err := os.ReadFile(conf.FileLogger.Destination)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if !strings.Contains(string(data), "visible message") {
		t.Error("info message is missing from file log")
	}
	if strings.Contains(string(data), "hidden message") {
		t.Error("debug message must be filtered at normal level")
	}
	if _, err := os.Stat(filepath.Join(dir, "eqgen-panic.log")); err != nil {
		t.Errorf("panic log was not prepared: %v", err)
	}
}

func TestLoggingConfig_PrepareReport(t *testing.T) {
	dir := t.TempDir()
	rpt := &Report{entries: make(map[string]entry)}
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none", Destination: filepath.Join(dir, "eqgen.log")},
	}
	log, err := conf.Prepare(rpt)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	defer debug.SetCrashOutput(nil, debug.CrashOptions{})

	log.Debug("debug message")
	_ = log.Sync()

	if !rpt.Has("final.log") || !rpt.Has("panic.log") {
		t.Error("logs are not stored in report")
	}
	data, _ := os.ReadFile(conf.FileLogger.Destination)
	if !strings.Contains(string(data), "debug message") {
		t.Error("report forces debug level file log")
	}
}
