package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nhle/mediashelf/internal/catalog"
	"github.com/nhle/mediashelf/internal/logger"
	"github.com/nhle/mediashelf/internal/model"
	"github.com/nhle/mediashelf/internal/store"
)

const memoryDB = ":memory:"

// env is everything a command needs once configuration is resolved.
type env struct {
	cfg   *model.AppConfig
	log   *slog.Logger
	store *store.SQLiteStore
	svc   *catalog.Service

	closers []io.Closer
}

// logTarget selects where an env writes its logs.
type logTarget int

const (
	logStderr logTarget = iota
	logFile
)

// openEnv loads configuration, applies flag overrides, and opens the
// logger, store and catalog service.
func openEnv(ro *RootOptions, target logTarget) (*env, error) {
	cfg, err := model.LoadConfig(ro.ConfigPath)
	if err != nil {
		return nil, err
	}
	if ro.DBPath != "" {
		cfg.Database.Path = ro.DBPath
	}
	if ro.LogLevel != "" {
		cfg.Log.Level = ro.LogLevel
	}
	if !logger.ValidFormat(cfg.Log.Format) {
		return nil, fmt.Errorf("unknown log format %q", cfg.Log.Format)
	}

	e := &env{cfg: cfg}
	level := logger.ParseLevel(cfg.Log.Level)

	switch target {
	case logFile:
		l, closer, err := logger.OpenFile(cfg.Log.File, cfg.Log.Format, level)
		if err != nil {
			return nil, err
		}
		e.log = l
		e.closers = append(e.closers, closer)
	default:
		e.log = logger.New(logger.Config{Writer: os.Stderr, Format: cfg.Log.Format, Level: level})
	}

	if cfg.Database.Path != memoryDB {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			e.Close()
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.store = s
	e.closers = append(e.closers, s)

	e.svc = catalog.New(s, catalog.WithLogger(e.log))
	e.log.Debug("environment ready", "database", cfg.Database.Path, "config", ro.ConfigPath)
	return e, nil
}

// Close releases the store and log file, newest first. Subscriptions
// still open at this point were leaked by a caller.
func (e *env) Close() {
	if e.svc != nil && e.log != nil {
		if n := e.svc.Subscribers(); n > 0 {
			e.log.Warn("closing with open subscriptions", "count", n)
		}
	}
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && e.log != nil {
			e.log.Warn("closing resource", "error", err)
		}
	}
	e.closers = nil
}
