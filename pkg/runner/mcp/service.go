// Package mcp provides the Model Context Protocol server integration for moodlog.
package mcp

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/mood"
)

// Service adapts app.Service to the shapes the MCP tools and resources return.
type Service struct {
	App *app.Service
}

// ErrEntryNotFound is returned when an entry cannot be located in the store.
var ErrEntryNotFound = errors.New("entry not found")

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"`
	Mood       string   `json:"mood"`
	MoodImage  string   `json:"moodImageResId"`
	Rank       int      `json:"rank"`
	Activities []string `json:"activities"`
	Origin     string   `json:"origin,omitempty"`
	CreatedISO string   `json:"created,omitempty"`
}

// NewService builds a service wrapper around a.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// ListEntries returns entries matching search and category, newest first.
// A limit of zero or less returns everything.
func (s *Service) ListEntries(ctx context.Context, search, category string, limit int) ([]EntryDTO, error) {
	if s.App == nil {
		return nil, app.ErrNoStore
	}
	if category == "" {
		category = mood.All
	}
	if category != mood.All && !mood.Valid(category) {
		return nil, mood.Validate(category)
	}
	entries, err := s.App.Entries(ctx, strings.TrimSpace(search), category)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return toDTOs(entries), nil
}

// EntryByID fetches a single entry.
func (s *Service) EntryByID(ctx context.Context, id string) (*EntryDTO, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// AddEntry records a new entry for today.
func (s *Service) AddEntry(ctx context.Context, label string, activities []string) (*EntryDTO, error) {
	if s.App == nil {
		return nil, app.ErrNoStore
	}
	if err := mood.Validate(label); err != nil {
		return nil, err
	}
	e, err := s.App.Add(ctx, label, activities)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// UpdateEntry changes the mood and/or activities of an entry.
func (s *Service) UpdateEntry(ctx context.Context, id string, opts app.EditOptions) (*EntryDTO, error) {
	if s.App == nil {
		return nil, app.ErrNoStore
	}
	if opts.Mood == nil && opts.Activities == nil {
		return nil, errors.New("nothing to update, set mood or activities")
	}
	e, err := s.App.Edit(ctx, id, opts)
	if errors.Is(err, app.ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// DeleteEntry removes an entry and returns what was removed.
func (s *Service) DeleteEntry(ctx context.Context, id string) (*EntryDTO, error) {
	if s.App == nil {
		return nil, app.ErrNoStore
	}
	e, err := s.App.Delete(ctx, id)
	if errors.Is(err, app.ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// Stats summarizes the entries matching search and category.
func (s *Service) Stats(ctx context.Context, search, category string) (app.Stats, error) {
	if s.App == nil {
		return app.Stats{}, app.ErrNoStore
	}
	if category == "" {
		category = mood.All
	}
	entries, err := s.App.Entries(ctx, search, category)
	if err != nil {
		return app.Stats{}, err
	}
	return app.Summarize(entries), nil
}

func (s *Service) get(ctx context.Context, id string) (mood.Entry, error) {
	if s.App == nil {
		return mood.Entry{}, app.ErrNoStore
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return mood.Entry{}, errors.New("id is required")
	}
	e, err := s.App.Get(ctx, id)
	if errors.Is(err, app.ErrNotFound) {
		return mood.Entry{}, ErrEntryNotFound
	}
	return e, err
}

func toDTOs(entries []mood.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	return out
}

func toDTO(e mood.Entry) EntryDTO {
	dto := EntryDTO{
		ID:         e.ID,
		Date:       e.Date,
		Mood:       e.Mood,
		MoodImage:  e.MoodImage,
		Rank:       mood.Rank(e.Mood),
		Activities: mood.CloneActivities(e.Activities),
		Origin:     string(e.Origin),
	}
	if !e.Created.IsZero() {
		dto.CreatedISO = e.Created.String()
	}
	return dto
}
