// Package remote fetches mood entries published by a read-only HTTP endpoint.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tableflip.dev/moodlog/pkg/mood"
)

// Source supplies entries that live outside the local store.
type Source interface {
	FetchAll(ctx context.Context) ([]mood.Entry, error)
}

// maxBodyBytes bounds a single response.
const maxBodyBytes int64 = 8 << 20

// HTTP fetches a JSON array of entries with a single GET.
type HTTP struct {
	url        string
	httpClient *http.Client
	log        *slog.Logger
	maxBody    int64
}

// NewHTTP creates an HTTP source for url. A zero timeout means no client timeout.
func NewHTTP(url string, timeout time.Duration, logger *slog.Logger) *HTTP {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HTTP{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "remote"),
		maxBody:    maxBodyBytes,
	}
}

type apiEntry struct {
	ID         string          `json:"id"`
	Date       string          `json:"date"`
	Mood       string          `json:"mood"`
	MoodImage  json.RawMessage `json:"moodImageResId"`
	Activities []string        `json:"activities"`
}

// FetchAll returns every valid entry served at the source URL, tagged as
// remote. Entries without an id or with an unknown mood are dropped.
func (h *HTTP) FetchAll(ctx context.Context) ([]mood.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("remote: read body: %w", err)
	}
	if int64(len(body)) > h.maxBody {
		return nil, fmt.Errorf("remote: response larger than %d bytes", h.maxBody)
	}

	var payload []apiEntry
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("remote: decode json: %w", err)
	}

	out := make([]mood.Entry, 0, len(payload))
	for _, a := range payload {
		e, ok := a.toEntry()
		if !ok {
			h.log.WarnContext(ctx, "remote entry dropped", slog.String("id", a.ID), slog.String("mood", a.Mood))
			continue
		}
		out = append(out, e)
	}
	h.log.DebugContext(ctx, "remote fetch", slog.Int("received", len(payload)), slog.Int("kept", len(out)))
	return out, nil
}

func (a apiEntry) toEntry() (mood.Entry, bool) {
	if strings.TrimSpace(a.ID) == "" || !mood.Valid(a.Mood) {
		return mood.Entry{}, false
	}
	return mood.Entry{
		ID:         a.ID,
		Date:       a.Date,
		Mood:       a.Mood,
		MoodImage:  imageHandle(a.MoodImage, a.Mood),
		Activities: mood.CloneActivities(a.Activities),
		Origin:     mood.OriginRemote,
	}, true
}

// imageHandle keeps a string handle (usually a URL) and falls back to the
// static image for numeric or missing values.
func imageHandle(raw json.RawMessage, label string) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}
	return mood.Image(label)
}
