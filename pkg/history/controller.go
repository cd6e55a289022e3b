// Package history owns the state of the mood history screen: the merged list
// of local and remote entries, the active filters and edit/delete progress.
//
// A Controller is an event loop. Intents, store snapshots and the results of
// background store and remote calls are applied one at a time by Run, and
// every change is published as an immutable State.
package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tableflip.dev/moodlog/pkg/broadcast"
	"tableflip.dev/moodlog/pkg/filter"
	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/remote"
	"tableflip.dev/moodlog/pkg/store"
)

// ErrStopped is returned by Dispatch once Run has returned.
var ErrStopped = errors.New("history: controller stopped")

// Controller drives the history screen.
type Controller struct {
	store  store.Store
	remote remote.Source
	logger *slog.Logger

	intents chan Intent
	results chan func(*Controller)
	done    chan struct{}
	hub     *broadcast.Hub[State]

	// Owned by Run.
	state    State
	local    []mood.Entry
	overlay  []mood.Entry
	loaded   bool
	fetching int
	updating int
}

// Option configures a Controller.
type Option func(*Controller)

// WithRemote merges entries from src into the history.
func WithRemote(src remote.Source) Option {
	return func(c *Controller) { c.remote = src }
}

// WithLogger sets the logger for store and remote failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Controller over s. Call Run to start it.
func New(s store.Store, opts ...Option) *Controller {
	c := &Controller{
		store:   s,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		intents: make(chan Intent, 64),
		results: make(chan func(*Controller), 64),
		done:    make(chan struct{}),
		state:   initialState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.hub = broadcast.New(c.state, State.Clone)
	return c
}

// State returns the latest published state.
func (c *Controller) State() State {
	return c.hub.Latest()
}

// Subscribe streams published states, starting with the current one. Only the
// newest unread state is kept for a slow reader. The channel closes when the
// returned cancel func is called or Run returns.
func (c *Controller) Subscribe() (<-chan State, func()) {
	return c.hub.Subscribe()
}

// Dispatch queues an intent for Run.
func (c *Controller) Dispatch(ctx context.Context, in Intent) error {
	select {
	case <-c.done:
		return ErrStopped
	default:
	}
	select {
	case c.intents <- in:
		return nil
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes events until ctx is done. It must be called exactly once.
func (c *Controller) Run(ctx context.Context) error {
	defer c.hub.Close()
	defer close(c.done)

	snapshots, err := c.store.ObserveAll(ctx)
	if err != nil {
		c.logger.Warn("history: observe store", "error", err)
		c.loaded = true
		c.state.ErrorMessage = fmt.Sprintf("Failed to load entries: %v", err)
	}
	if c.remote != nil {
		c.startFetch(ctx)
	}
	c.refresh()
	c.publish()

	for {
		select {
		case <-ctx.Done():
			return nil
		case entries, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			c.local = entries
			c.loaded = true
			c.refresh()
		case in := <-c.intents:
			c.handle(ctx, in)
		case apply := <-c.results:
			apply(c)
		}
		c.publish()
	}
}

func (c *Controller) publish() {
	c.state.Loading = !c.loaded || c.fetching > 0
	c.state.Updating = c.updating > 0
	c.hub.Publish(c.state)
}

// refresh rebuilds AllEntries from the store snapshot and remote overlay, then
// reapplies the filters.
func (c *Controller) refresh() {
	c.state.AllEntries = merge(c.local, c.overlay)
	c.applyFilters()
}

func (c *Controller) applyFilters() {
	c.state.FilteredEntries = filter.Apply(c.state.AllEntries, c.state.SearchText, c.state.SelectedMood)
}

// merge concatenates local then remote entries, keeps the first occurrence of
// each id and sorts newest first.
func merge(local, remote []mood.Entry) []mood.Entry {
	out := make([]mood.Entry, 0, len(local)+len(remote))
	seen := make(map[string]struct{}, len(local)+len(remote))
	for _, list := range [][]mood.Entry{local, remote} {
		for _, e := range list {
			if _, dup := seen[e.ID]; dup {
				continue
			}
			seen[e.ID] = struct{}{}
			out = append(out, e.Clone())
		}
	}
	mood.Sort(out)
	return out
}

func (c *Controller) handle(ctx context.Context, in Intent) {
	switch in := in.(type) {
	case SearchTextChanged:
		c.state.SearchText = in.Text
		c.applyFilters()
	case MoodFilterSelected:
		c.state.SelectedMood = in.Mood
		c.state.DropdownExpanded = false
		c.applyFilters()
	case ToggleDropdown:
		c.state.DropdownExpanded = !c.state.DropdownExpanded
	case ToggleFiltersSection:
		c.state.FiltersExpanded = !c.state.FiltersExpanded
	case ClearFilters:
		c.state.SearchText = ""
		c.state.SelectedMood = mood.All
		c.applyFilters()
	case SelectEntry:
		e := in.Entry.Clone()
		c.state.SelectedEntry = &e
	case CancelUpdate:
		c.state.SelectedEntry = nil
	case UpdateEntry:
		c.update(ctx, in.Entry)
	case DeleteEntry:
		c.delete(ctx, in.ID)
	case DismissError:
		c.state.ErrorMessage = ""
	case RefreshRemote:
		if c.remote != nil && c.fetching == 0 {
			c.startFetch(ctx)
		}
	default:
		c.logger.Warn("history: unknown intent", "intent", fmt.Sprintf("%T", in))
	}
}

func (c *Controller) update(ctx context.Context, e mood.Entry) {
	if !mood.Valid(e.Mood) {
		c.state.ErrorMessage = "Invalid mood selection"
		return
	}
	e = e.Clone()
	if e.MoodImage == "" || strings.HasPrefix(e.MoodImage, "local:") {
		e.MoodImage = mood.Image(e.Mood)
	}
	if e.Activities == nil {
		e.Activities = []string{}
	}

	// An entry that only exists remotely is saved locally on first edit.
	write := c.store.Update
	if !containsID(c.local, e.ID) && containsID(c.overlay, e.ID) {
		e.Origin = mood.OriginLocal
		write = c.store.Insert
	}

	c.updating++
	c.background(ctx, func() func(*Controller) {
		err := write(ctx, e)
		return func(c *Controller) {
			c.updating--
			if err != nil {
				c.logger.Warn("history: update entry", "id", e.ID, "error", err)
				c.state.ErrorMessage = fmt.Sprintf("Failed to update entry: %v", err)
				return
			}
			c.state.SelectedEntry = nil
		}
	})
}

func (c *Controller) delete(ctx context.Context, id string) {
	e, ok := c.state.Lookup(id)
	if !ok {
		return
	}
	c.background(ctx, func() func(*Controller) {
		err := c.store.Delete(ctx, e)
		return func(c *Controller) {
			if err != nil {
				c.logger.Warn("history: delete entry", "id", id, "error", err)
				c.state.ErrorMessage = fmt.Sprintf("Failed to delete entry: %v", err)
				return
			}
			if containsID(c.overlay, id) {
				c.overlay = removeID(c.overlay, id)
				c.refresh()
			}
		}
	})
}

func (c *Controller) startFetch(ctx context.Context) {
	c.fetching++
	src := c.remote
	c.background(ctx, func() func(*Controller) {
		entries, err := src.FetchAll(ctx)
		return func(c *Controller) {
			c.fetching--
			if err != nil {
				c.logger.Warn("history: fetch remote entries", "error", err)
				c.state.ErrorMessage = fmt.Sprintf("Failed to fetch entries: %v", err)
				return
			}
			c.overlay = entries
			c.refresh()
		}
	})
}

// background runs work off the loop and hands its result back to Run.
func (c *Controller) background(ctx context.Context, work func() func(*Controller)) {
	go func() {
		apply := work()
		select {
		case c.results <- apply:
		case <-ctx.Done():
		}
	}()
}

func containsID(entries []mood.Entry, id string) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

func removeID(entries []mood.Entry, id string) []mood.Entry {
	out := make([]mood.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
