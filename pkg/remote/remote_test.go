package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tableflip.dev/moodlog/pkg/mood"
)

func TestFetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"r1","date":"01.02.2025","mood":"Happy","moodImageResId":"https://example.com/happy.png","activities":["Work"]},
			{"id":"r2","date":"02.02.2025","mood":"Sad","moodImageResId":42},
			{"id":"","date":"03.02.2025","mood":"Good"},
			{"id":"r4","date":"04.02.2025","mood":"Furious","activities":["Games"]}
		]`))
	}))
	defer srv.Close()

	src := NewHTTP(srv.URL, time.Second, nil)
	entries, err := src.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 valid entries, got %d: %v", len(entries), entries)
	}
	if entries[0].MoodImage != "https://example.com/happy.png" {
		t.Fatalf("expected url handle, got %q", entries[0].MoodImage)
	}
	if entries[1].MoodImage != mood.Image(mood.Sad) {
		t.Fatalf("expected static image fallback, got %q", entries[1].MoodImage)
	}
	if entries[1].Activities == nil {
		t.Fatalf("expected non-nil activities")
	}
	for _, e := range entries {
		if e.Origin != mood.OriginRemote {
			t.Fatalf("expected remote origin, got %q", e.Origin)
		}
	}
}

func TestFetchAllStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewHTTP(srv.URL, time.Second, nil).FetchAll(context.Background()); err == nil {
		t.Fatalf("expected error for 503")
	}
}

func TestFetchAllBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	if _, err := NewHTTP(srv.URL, time.Second, nil).FetchAll(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFetchAllBodyLimit(t *testing.T) {
	body := `[{"id":"r1","date":"01.02.2025","mood":"Happy","activities":[]}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	h := NewHTTP(srv.URL, time.Second, nil)
	h.maxBody = int64(len(body))
	if entries, err := h.FetchAll(context.Background()); err != nil || len(entries) != 1 {
		t.Fatalf("expected a body at the limit to decode, got %v %v", entries, err)
	}

	h.maxBody = int64(len(body)) - 1
	_, err := h.FetchAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "larger than") {
		t.Fatalf("expected size error, got %v", err)
	}
}
