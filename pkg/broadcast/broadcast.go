// Package broadcast hands the latest value of a state to any number of
// subscribers without ever blocking the publisher.
package broadcast

import "sync"

// Hub keeps the latest published value. Each subscriber gets a channel with a
// buffer of one; an unread value is replaced by a newer one.
type Hub[T any] struct {
	mu     sync.RWMutex
	latest T
	clone  func(T) T
	subs   map[int]chan T
	next   int
	closed bool
}

// New creates a Hub holding initial. clone, when non-nil, copies each value
// handed out so subscribers never share memory.
func New[T any](initial T, clone func(T) T) *Hub[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Hub[T]{
		latest: initial,
		clone:  clone,
		subs:   make(map[int]chan T),
	}
}

// Latest returns a copy of the most recent value.
func (h *Hub[T]) Latest() T {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clone(h.latest)
}

// Publish stores v and offers it to every subscriber.
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.latest = h.clone(v)
	for _, ch := range h.subs {
		Offer(ch, h.clone(v))
	}
}

// Subscribe returns a channel primed with the latest value and a func that
// cancels the subscription. The channel is closed on cancel or Close.
func (h *Hub[T]) Subscribe() (<-chan T, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan T, 1)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	ch <- h.clone(h.latest)
	id := h.next
	h.next++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
}

// Close closes every subscriber channel. Later publishes are ignored.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// Offer performs a latest-value send on a channel with a buffer of one.
func Offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
