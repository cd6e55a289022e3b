package store

import (
	"context"
	"sync"

	"tableflip.dev/moodlog/pkg/mood"
)

// Memory is a Store held entirely in memory.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]mood.Entry
	feed    *feed
}

// NewMemory returns a Memory store seeded with entries.
func NewMemory(entries []mood.Entry, opts ...Option) *Memory {
	o := buildOptions(opts)
	m := &Memory{entries: make(map[string]mood.Entry, len(entries))}
	for _, e := range entries {
		m.entries[e.ID] = e.Clone()
	}
	m.feed = newFeed(m.List, o.logger)
	return m
}

func (m *Memory) Insert(ctx context.Context, e mood.Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[e.ID] = e.Clone()
	m.mu.Unlock()
	m.feed.publish()
	return nil
}

func (m *Memory) Update(ctx context.Context, e mood.Entry) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	m.mu.Lock()
	if _, ok := m.entries[e.ID]; !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	m.entries[e.ID] = e.Clone()
	m.mu.Unlock()
	m.feed.publish()
	return nil
}

func (m *Memory) Delete(ctx context.Context, e mood.Entry) error {
	m.mu.Lock()
	_, ok := m.entries[e.ID]
	delete(m.entries, e.ID)
	m.mu.Unlock()
	if ok {
		m.feed.publish()
	}
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (mood.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return mood.Entry{}, ErrNotFound
	}
	return e.Clone(), nil
}

func (m *Memory) List(ctx context.Context) ([]mood.Entry, error) {
	m.mu.RLock()
	out := make([]mood.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Clone())
	}
	m.mu.RUnlock()
	mood.Sort(out)
	return out, nil
}

func (m *Memory) ObserveAll(ctx context.Context) (<-chan []mood.Entry, error) {
	return m.feed.subscribe(ctx)
}

func (m *Memory) Close() error {
	m.feed.close()
	return nil
}
