package store

import (
	"context"
	"log/slog"
	"sync"

	"tableflip.dev/moodlog/pkg/broadcast"
	"tableflip.dev/moodlog/pkg/mood"
)

// feed fans snapshots out to observers. Each observer owns a channel with a
// buffer of one; publishing replaces an unread snapshot instead of blocking.
type feed struct {
	mu     sync.Mutex
	load   func(ctx context.Context) ([]mood.Entry, error)
	logger *slog.Logger
	subs   map[int]chan []mood.Entry
	next   int
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

func newFeed(load func(ctx context.Context) ([]mood.Entry, error), logger *slog.Logger) *feed {
	return &feed{
		load:   load,
		logger: logger,
		subs:   make(map[int]chan []mood.Entry),
		done:   make(chan struct{}),
	}
}

// subscribe registers an observer and delivers the current snapshot to it.
// The channel is closed once ctx is done or the feed is closed.
func (f *feed) subscribe(ctx context.Context) (<-chan []mood.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, errClosed
	}
	snapshot, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	ch := make(chan []mood.Entry, 1)
	ch <- snapshot
	id := f.next
	f.next++
	f.subs[id] = ch

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		select {
		case <-ctx.Done():
		case <-f.done:
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if c, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(c)
		}
	}()
	return ch, nil
}

// publish loads a fresh snapshot and hands it to every observer.
func (f *feed) publish() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || len(f.subs) == 0 {
		return
	}
	snapshot, err := f.load(context.Background())
	if err != nil {
		f.logger.Warn("store: reload snapshot", "error", err)
		return
	}
	for _, ch := range f.subs {
		broadcast.Offer(ch, mood.CloneEntries(snapshot))
	}
}

// close ends every subscription and waits for the watchers to exit.
func (f *feed) close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	close(f.done)
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
	f.mu.Unlock()
	f.wg.Wait()
}
