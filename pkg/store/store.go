// Package store persists mood entries and streams the full history to
// observers whenever it changes.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"tableflip.dev/moodlog/pkg/mood"
)

// ErrNotFound is returned when an entry id is not in the store.
var ErrNotFound = errors.New("store: entry not found")

var errClosed = errors.New("store: closed")

// Store is the persistence contract for mood entries.
//
// Insert replaces an entry with the same id. Update fails with ErrNotFound when
// the id is absent. Delete of an absent id is not an error. ObserveAll sends
// the current history first and then one snapshot per change, newest first,
// until ctx is done; a slow reader only ever sees the latest snapshot.
type Store interface {
	Insert(ctx context.Context, e mood.Entry) error
	Update(ctx context.Context, e mood.Entry) error
	Delete(ctx context.Context, e mood.Entry) error
	Get(ctx context.Context, id string) (mood.Entry, error)
	List(ctx context.Context) ([]mood.Entry, error)
	ObserveAll(ctx context.Context) (<-chan []mood.Entry, error)
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendDiskv  Backend = "diskv"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Option configures a Store.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for background failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open creates the Store selected by cfg.
func Open(cfg Config, opts ...Option) (Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	switch b := Backend(strings.ToLower(cfg.Backend())); b {
	case "", BackendDiskv:
		return Load(cfg, opts...)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(cfg.BasePath(), sqliteFile), opts...)
	case BackendMemory:
		return NewMemory(nil, opts...), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", b)
	}
}

var errInvalidID = errors.New("store: invalid entry id")

// validID reports whether id can name an entry file. Ids are file names under
// the entries directory, so separators and dot prefixes are refused.
func validID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("store: entry id required")
	}
	if strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return fmt.Errorf("%w %q", errInvalidID, id)
	}
	return nil
}

func validateEntry(e mood.Entry) error {
	if err := validID(e.ID); err != nil {
		return err
	}
	return mood.Validate(e.Mood)
}
