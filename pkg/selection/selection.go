// Package selection drives the "record today's mood" screen on top of a
// draft.Builder.
package selection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"tableflip.dev/moodlog/pkg/broadcast"
	"tableflip.dev/moodlog/pkg/draft"
	"tableflip.dev/moodlog/pkg/mood"
)

// ErrStopped is returned by Dispatch once Run has returned.
var ErrStopped = errors.New("selection: controller stopped")

// State is the published view of the selection screen.
type State struct {
	CurrentDate        string
	SelectedMood       string
	MoodOptions        []string
	AllActivities      []string
	SelectedActivities []string
	MaxActivities      int
	Saving             bool
	NavigateToHistory  bool
	ErrorMessage       string
	Saved              *mood.Entry
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.MoodOptions = append([]string(nil), s.MoodOptions...)
	out.AllActivities = append([]string(nil), s.AllActivities...)
	out.SelectedActivities = mood.CloneActivities(s.SelectedActivities)
	if s.Saved != nil {
		e := s.Saved.Clone()
		out.Saved = &e
	}
	return out
}

// IsSelected reports whether activity is in SelectedActivities.
func (s State) IsSelected(activity string) bool {
	return indexOf(s.SelectedActivities, activity) >= 0
}

// Intent is a user action sent to the Controller.
type Intent interface{ isIntent() }

// MoodSelected picks the mood for the draft.
type MoodSelected struct{ Mood string }

// ActivityToggled adds or removes one activity.
type ActivityToggled struct{ Activity string }

// InitWithExisting seeds the screen with previously chosen values.
type InitWithExisting struct {
	Mood       string
	Activities []string
}

// SaveClicked commits the draft.
type SaveClicked struct{}

// NavigationHandled acknowledges NavigateToHistory.
type NavigationHandled struct{}

// DismissError clears the error message.
type DismissError struct{}

func (MoodSelected) isIntent()      {}
func (ActivityToggled) isIntent()   {}
func (InitWithExisting) isIntent()  {}
func (SaveClicked) isIntent()       {}
func (NavigationHandled) isIntent() {}
func (DismissError) isIntent()      {}

// Controller owns the selection screen state.
type Controller struct {
	builder *draft.Builder
	logger  *slog.Logger
	now     func() time.Time

	intents chan Intent
	results chan func(*Controller)
	done    chan struct{}
	hub     *broadcast.Hub[State]

	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for save failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the clock used for CurrentDate.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithActivities replaces the default activity catalogue.
func WithActivities(activities []string) Option {
	return func(c *Controller) { c.state.AllActivities = append([]string(nil), activities...) }
}

// New creates a Controller around b. Call Run to start it.
func New(b *draft.Builder, opts ...Option) *Controller {
	c := &Controller{
		builder: b,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		intents: make(chan Intent, 64),
		results: make(chan func(*Controller), 8),
		done:    make(chan struct{}),
		state: State{
			MoodOptions:        mood.Labels(),
			AllActivities:      mood.DefaultActivities(),
			SelectedActivities: []string{},
			MaxActivities:      mood.MaxActivities,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state.CurrentDate = mood.FormatDate(c.now())
	c.syncFromDraft()
	c.hub = broadcast.New(c.state, State.Clone)
	return c
}

// State returns the latest published state.
func (c *Controller) State() State { return c.hub.Latest() }

// Subscribe streams published states with latest-value delivery.
func (c *Controller) Subscribe() (<-chan State, func()) { return c.hub.Subscribe() }

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

// Run processes intents until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	defer c.hub.Close()
	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			return nil
		case in := <-c.intents:
			c.handle(ctx, in)
		case apply := <-c.results:
			apply(c)
		}
		c.hub.Publish(c.state)
	}
}

func (c *Controller) handle(ctx context.Context, in Intent) {
	switch in := in.(type) {
	case MoodSelected:
		if err := c.builder.SelectMood(in.Mood); err != nil {
			c.state.ErrorMessage = "Invalid mood selection"
			return
		}
		c.state.SelectedMood = in.Mood
	case ActivityToggled:
		c.toggle(in.Activity)
	case InitWithExisting:
		if in.Mood != "" {
			if err := c.builder.SelectMood(in.Mood); err != nil {
				c.state.ErrorMessage = "Invalid mood selection"
				return
			}
		}
		activities := in.Activities
		if len(activities) > mood.MaxActivities {
			activities = activities[:mood.MaxActivities]
		}
		c.builder.SelectActivities(activities)
		c.syncFromDraft()
	case SaveClicked:
		c.save(ctx)
	case NavigationHandled:
		c.state.NavigateToHistory = false
	case DismissError:
		c.state.ErrorMessage = ""
	default:
		c.logger.Warn("selection: unknown intent", "intent", fmt.Sprintf("%T", in))
	}
}

func (c *Controller) toggle(activity string) {
	next, ok := mood.ToggleActivity(c.state.SelectedActivities, activity, c.state.MaxActivities)
	if !ok {
		return
	}
	c.state.SelectedActivities = next
	c.builder.SelectActivities(next)
}

func (c *Controller) save(ctx context.Context) {
	if c.state.Saving {
		return
	}
	if c.state.SelectedMood == "" {
		c.state.ErrorMessage = "No mood selected"
		return
	}
	c.state.Saving = true
	c.state.ErrorMessage = ""
	b := c.builder
	go func() {
		saved, err := b.Commit(ctx)
		apply := func(c *Controller) {
			c.state.Saving = false
			if err != nil {
				c.logger.Warn("selection: save entry", "error", err)
				c.state.ErrorMessage = fmt.Sprintf("Failed to save mood: %v", err)
				return
			}
			c.state.Saved = &saved
			c.state.NavigateToHistory = true
			c.syncFromDraft()
		}
		select {
		case c.results <- apply:
		case <-ctx.Done():
		}
	}()
}

// syncFromDraft mirrors the builder's draft into the published state.
func (c *Controller) syncFromDraft() {
	d := c.builder.Current()
	c.state.SelectedMood = d.Mood
	c.state.SelectedActivities = mood.CloneActivities(d.Activities)
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
