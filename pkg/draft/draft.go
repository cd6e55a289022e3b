// Package draft accumulates a mood and activities across steps and commits
// them as one new entry.
package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/store"
)

// ErrNoDraft is returned by Commit when no mood has been selected.
var ErrNoDraft = errors.New("draft: no mood data to save")

// Inserter is the part of store.Store a Builder writes through.
type Inserter interface {
	Insert(ctx context.Context, e mood.Entry) error
}

var _ Inserter = store.Store(nil)

// Draft is the in-progress selection.
type Draft struct {
	Mood       string
	MoodImage  string
	Activities []string
}

// Empty reports whether no mood has been chosen yet.
func (d Draft) Empty() bool { return d.Mood == "" }

// Builder is safe for concurrent use.
type Builder struct {
	store Inserter
	now   func() time.Time
	newID func() string

	mu         sync.Mutex
	draft      Draft
	generation uint64
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(b *Builder) { b.newID = gen }
}

// New returns a Builder that commits into s.
func New(s Inserter, opts ...Option) *Builder {
	b := &Builder{
		store: s,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SelectMood records label and its image, replacing any earlier choice.
func (b *Builder) SelectMood(label string) error {
	if err := mood.Validate(label); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.Mood = label
	b.draft.MoodImage = mood.Image(label)
	b.generation++
	return nil
}

// SelectActivities replaces the recorded activity list.
func (b *Builder) SelectActivities(activities []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.Activities = mood.CloneActivities(activities)
	b.generation++
}

// Load seeds the draft from an existing entry.
func (b *Builder) Load(e mood.Entry) error {
	if err := mood.Validate(e.Mood); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft = Draft{
		Mood:       e.Mood,
		MoodImage:  mood.Image(e.Mood),
		Activities: mood.CloneActivities(e.Activities),
	}
	b.generation++
	return nil
}

// Reset discards the draft.
func (b *Builder) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft = Draft{}
	b.generation++
}

// Current returns a copy of the draft.
func (b *Builder) Current() Draft {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := b.draft
	d.Activities = mood.CloneActivities(d.Activities)
	return d
}

// Commit inserts the draft as a new entry dated today. The draft is cleared
// only when the insert succeeds and nothing changed it in the meantime.
func (b *Builder) Commit(ctx context.Context) (mood.Entry, error) {
	b.mu.Lock()
	if b.draft.Empty() {
		b.mu.Unlock()
		return mood.Entry{}, ErrNoDraft
	}
	e := mood.New(b.newID(), b.draft.Mood, b.draft.Activities, b.now())
	gen := b.generation
	b.mu.Unlock()

	if b.store == nil {
		return mood.Entry{}, errors.New("draft: no store configured")
	}
	if err := b.store.Insert(ctx, e); err != nil {
		return mood.Entry{}, fmt.Errorf("draft: save entry: %w", err)
	}

	b.mu.Lock()
	if b.generation == gen {
		b.draft = Draft{}
		b.generation++
	}
	b.mu.Unlock()
	return e, nil
}
