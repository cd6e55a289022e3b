package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/moodlog/pkg/mood"
)

const entriesDir = "entries"

// Disk is a Store backed by one JSON file per entry, laid out as
// <path>/entries/<id[:2]>/<id>.
//
// Writes from one Disk are serialized. Another process writing the same
// directory can still race an Update against its Delete.
type Disk struct {
	d        *diskv.Diskv
	basePath string
	logger   *slog.Logger
	feed     *feed

	writeMu sync.Mutex

	mu       sync.Mutex
	watching bool
	cancel   context.CancelFunc
}

// Load creates a Disk store rooted at cfg.BasePath().
func Load(cfg Config, opts ...Option) (*Disk, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if cfg.BasePath() == "" {
		return nil, errors.New("store: base path unknown")
	}
	basePath := filepath.Join(cfg.BasePath(), entriesDir)
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	o := buildOptions(opts)
	p := &Disk{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      0, // other processes write here too
		}),
		basePath: basePath,
		logger:   o.logger,
	}
	p.feed = newFeed(p.List, o.logger)
	return p, nil
}

func (p *Disk) read(key string) (mood.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return mood.Entry{}, ErrNotFound
		}
		return mood.Entry{}, err
	}
	e := mood.Entry{}
	if err := json.Unmarshal(val, &e); err != nil {
		return mood.Entry{}, fmt.Errorf("store: decode %s: %w", key, err)
	}
	e.ID = key
	if e.Activities == nil {
		e.Activities = []string{}
	}
	return e, nil
}

func (p *Disk) write(e mood.Entry) error {
	if e.Activities == nil {
		e.Activities = []string{}
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := p.d.Write(e.ID, data); err != nil {
		return fmt.Errorf("store: write %s: %w", e.ID, err)
	}
	return nil
}

func (p *Disk) Insert(ctx context.Context, e mood.Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	p.writeMu.Lock()
	err := p.write(e)
	p.writeMu.Unlock()
	if err != nil {
		return err
	}
	p.feed.publish()
	return nil
}

func (p *Disk) Update(ctx context.Context, e mood.Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	p.writeMu.Lock()
	if !p.d.Has(e.ID) {
		p.writeMu.Unlock()
		return ErrNotFound
	}
	err := p.write(e)
	p.writeMu.Unlock()
	if err != nil {
		return err
	}
	p.feed.publish()
	return nil
}

func (p *Disk) Delete(ctx context.Context, e mood.Entry) error {
	if validID(e.ID) != nil {
		return nil
	}
	p.writeMu.Lock()
	if !p.d.Has(e.ID) {
		p.writeMu.Unlock()
		return nil
	}
	err := p.d.Erase(e.ID)
	p.writeMu.Unlock()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", e.ID, err)
	}
	p.feed.publish()
	return nil
}

func (p *Disk) Get(ctx context.Context, id string) (mood.Entry, error) {
	if validID(id) != nil {
		return mood.Entry{}, ErrNotFound
	}
	return p.read(id)
}

func (p *Disk) List(ctx context.Context) ([]mood.Entry, error) {
	all := make([]mood.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			p.logger.Warn("store: skip unreadable entry", "key", key, "error", err)
			continue
		}
		all = append(all, e)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mood.Sort(all)
	return all, nil
}

// ObserveAll also picks up files written by other processes through Watch.
func (p *Disk) ObserveAll(ctx context.Context) (<-chan []mood.Entry, error) {
	p.startWatch()
	return p.feed.subscribe(ctx)
}

func (p *Disk) startWatch() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.watching {
		return
	}
	watchCtx, cancel := context.WithCancel(context.Background())
	events, err := p.Watch(watchCtx)
	if err != nil {
		cancel()
		p.logger.Warn("store: watch disabled", "error", err)
		return
	}
	p.watching = true
	p.cancel = cancel
	go func() {
		for range events {
			p.feed.publish()
		}
	}()
}

func (p *Disk) Close() error {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()
	p.feed.close()
	return nil
}

func keyToPathTransform(key string) *diskv.PathKey {
	bucket := key
	if len(bucket) > 2 {
		bucket = bucket[:2]
	}
	return &diskv.PathKey{
		Path:     []string{bucket},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
