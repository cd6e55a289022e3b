package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/remote"
	"tableflip.dev/moodlog/pkg/store"
)

// env is what a command needs to reach the journal.
type env struct {
	Config  store.Config
	Logger  *slog.Logger
	Store   store.Store
	Service *app.Service

	closers []io.Closer
}

// openEnv loads the config and opens the configured store, logging to w.
func openEnv(w io.Writer) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	return openEnvWith(cfg, w)
}

func openEnvWith(cfg store.Config, w io.Writer) (*env, error) {
	e := &env{Config: cfg, Logger: newLogger(w, cfg.LogLevel())}

	s, err := store.Open(cfg, store.WithLogger(e.Logger))
	if err != nil {
		return nil, err
	}
	e.Store = s
	e.closers = append(e.closers, s)

	e.Service = &app.Service{Store: s}
	if src := newRemote(cfg, e.Logger); src != nil {
		e.Service.Remote = src
	}
	return e, nil
}

// Close releases the store and any log file.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
}

// openLogFile opens <path>/moodlog.log for appending. The full screen UI
// owns the terminal, so it logs there instead of to stderr.
func openLogFile(cfg store.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.BasePath(), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(cfg.BasePath(), "moodlog.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

func newRemote(cfg store.Config, logger *slog.Logger) remote.Source {
	url := strings.TrimSpace(cfg.RemoteURL())
	if url == "" {
		return nil
	}
	return remote.NewHTTP(url, cfg.RemoteTimeout(), logger)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}
