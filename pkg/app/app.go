// Package app provides the non-interactive mood operations shared by the CLI
// runners and the MCP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/moodlog/pkg/draft"
	"tableflip.dev/moodlog/pkg/filter"
	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/remote"
	"tableflip.dev/moodlog/pkg/store"
)

// Service wraps a store and an optional remote source.
type Service struct {
	Store  store.Store
	Remote remote.Source

	// DraftOptions are passed to the draft.Builder used by Add.
	DraftOptions []draft.Option
}

var (
	ErrNoStore    = errors.New("app: no store configured")
	ErrNoRemote   = errors.New("app: no remote source configured")
	ErrNotFound   = errors.New("app: entry not found")
	ErrTooManyAct = fmt.Errorf("app: at most %d activities allowed", mood.MaxActivities)
)

// Add records a new entry for label with activities, dated today.
func (s *Service) Add(ctx context.Context, label string, activities []string) (mood.Entry, error) {
	if s.Store == nil {
		return mood.Entry{}, ErrNoStore
	}
	activities = cleanActivities(activities)
	if len(activities) > mood.MaxActivities {
		return mood.Entry{}, ErrTooManyAct
	}
	b := draft.New(s.Store, s.DraftOptions...)
	if label != "" {
		if err := b.SelectMood(label); err != nil {
			return mood.Entry{}, err
		}
	}
	b.SelectActivities(activities)
	return b.Commit(ctx)
}

// Entries lists stored entries that match search and category, newest first.
func (s *Service) Entries(ctx context.Context, search, category string) ([]mood.Entry, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	all, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(all, search, category), nil
}

// Get returns the entry with id.
func (s *Service) Get(ctx context.Context, id string) (mood.Entry, error) {
	if s.Store == nil {
		return mood.Entry{}, ErrNoStore
	}
	e, err := s.Store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return mood.Entry{}, ErrNotFound
	}
	return e, err
}

// EditOptions lists the fields to change. Nil fields are left alone.
type EditOptions struct {
	Mood       *string
	Activities *[]string
}

// Edit changes the mood and/or activities of entry id.
func (s *Service) Edit(ctx context.Context, id string, opts EditOptions) (mood.Entry, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return mood.Entry{}, err
	}
	if opts.Mood != nil {
		if err := mood.Validate(*opts.Mood); err != nil {
			return mood.Entry{}, err
		}
		e.Mood = *opts.Mood
		if e.Origin != mood.OriginRemote || e.MoodImage == "" {
			e.MoodImage = mood.Image(e.Mood)
		}
	}
	if opts.Activities != nil {
		activities := cleanActivities(*opts.Activities)
		if len(activities) > mood.MaxActivities {
			return mood.Entry{}, ErrTooManyAct
		}
		e.Activities = activities
	}
	if err := s.Store.Update(ctx, e); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return mood.Entry{}, ErrNotFound
		}
		return mood.Entry{}, err
	}
	return e, nil
}

// Delete removes entry id. Unlike the store, a missing id is reported.
func (s *Service) Delete(ctx context.Context, id string) (mood.Entry, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return mood.Entry{}, err
	}
	if err := s.Store.Delete(ctx, e); err != nil {
		return mood.Entry{}, err
	}
	return e, nil
}

// ImportReport summarizes an Import.
type ImportReport struct {
	Fetched  int          `json:"fetched"`
	Imported []mood.Entry `json:"imported"`
	Skipped  int          `json:"skipped"`
}

// Import copies remote entries whose id is not stored yet into the store.
func (s *Service) Import(ctx context.Context) (ImportReport, error) {
	if s.Store == nil {
		return ImportReport{}, ErrNoStore
	}
	if s.Remote == nil {
		return ImportReport{}, ErrNoRemote
	}

	var (
		local   []mood.Entry
		fetched []mood.Entry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		local, err = s.Store.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		fetched, err = s.Remote.FetchAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return ImportReport{}, err
	}

	known := make(map[string]struct{}, len(local))
	for _, e := range local {
		known[e.ID] = struct{}{}
	}
	report := ImportReport{Fetched: len(fetched), Imported: []mood.Entry{}}
	for _, e := range fetched {
		if _, ok := known[e.ID]; ok {
			report.Skipped++
			continue
		}
		e.Origin = mood.OriginRemote
		if e.Created.IsZero() {
			if day, ok := e.Day(); ok {
				e.Created = mood.Timestamp{Time: day}
			} else {
				e.Created = mood.Timestamp{Time: time.Now()}
			}
		}
		if err := s.Store.Insert(ctx, e); err != nil {
			return report, fmt.Errorf("app: import %s: %w", e.ID, err)
		}
		known[e.ID] = struct{}{}
		report.Imported = append(report.Imported, e)
	}
	return report, nil
}

// ParseActivities splits a comma separated list.
func ParseActivities(v string) []string {
	if strings.TrimSpace(v) == "" {
		return []string{}
	}
	return cleanActivities(strings.Split(v, ","))
}

func cleanActivities(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
