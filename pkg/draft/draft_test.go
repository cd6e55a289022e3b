package draft

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/store"
)

type recordingInserter struct {
	mu      sync.Mutex
	entries []mood.Entry
	err     error
	entered chan struct{}
	block   chan struct{}
}

func (r *recordingInserter) Insert(ctx context.Context, e mood.Entry) error {
	if r.entered != nil {
		close(r.entered)
	}
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *recordingInserter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func fixedClock() time.Time {
	return time.Date(2025, time.May, 4, 18, 0, 0, 0, time.Local)
}

func newBuilder(s Inserter) *Builder {
	n := 0
	return New(s,
		WithClock(fixedClock),
		WithIDGenerator(func() string {
			n++
			return "id-" + string(rune('0'+n))
		}),
	)
}

func TestCommitWithoutMood(t *testing.T) {
	rec := &recordingInserter{}
	b := newBuilder(rec)
	b.SelectActivities([]string{"Sport"})

	if _, err := b.Commit(context.Background()); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
	if rec.count() != 0 {
		t.Fatalf("expected no store writes")
	}
}

func TestCommitBuildsEntry(t *testing.T) {
	s := store.NewMemory(nil)
	b := newBuilder(s)
	if err := b.SelectMood(mood.Good); err != nil {
		t.Fatalf("select mood: %v", err)
	}
	b.SelectActivities([]string{"Sport", "Friends"})

	e, err := b.Commit(context.Background())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if e.ID != "id-1" || e.Date != "04.05.2025" || e.Mood != mood.Good || e.MoodImage != mood.Image(mood.Good) {
		t.Fatalf("unexpected entry %+v", e)
	}
	if len(e.Activities) != 2 || e.Activities[0] != "Sport" || e.Activities[1] != "Friends" {
		t.Fatalf("unexpected activities %v", e.Activities)
	}

	stored, err := s.Get(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Mood != mood.Good {
		t.Fatalf("stored mood mismatch: %q", stored.Mood)
	}
	if !b.Current().Empty() {
		t.Fatalf("expected draft cleared after commit")
	}
	if _, err := b.Commit(context.Background()); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected second commit to fail with ErrNoDraft, got %v", err)
	}
}

func TestCommitWithoutActivities(t *testing.T) {
	rec := &recordingInserter{}
	b := newBuilder(rec)
	_ = b.SelectMood(mood.Neutral)
	e, err := b.Commit(context.Background())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if e.Activities == nil || len(e.Activities) != 0 {
		t.Fatalf("expected empty activities, got %#v", e.Activities)
	}
}

func TestCommitFailureKeepsDraft(t *testing.T) {
	rec := &recordingInserter{err: errors.New("disk full")}
	b := newBuilder(rec)
	_ = b.SelectMood(mood.Bad)
	b.SelectActivities([]string{"Work"})

	if _, err := b.Commit(context.Background()); err == nil {
		t.Fatalf("expected commit error")
	}
	d := b.Current()
	if d.Mood != mood.Bad || len(d.Activities) != 1 {
		t.Fatalf("expected draft kept, got %+v", d)
	}
}

func TestSelectMoodRejectsUnknown(t *testing.T) {
	b := newBuilder(&recordingInserter{})
	if err := b.SelectMood("Elated"); !errors.Is(err, mood.ErrUnknownMood) {
		t.Fatalf("expected ErrUnknownMood, got %v", err)
	}
	if !b.Current().Empty() {
		t.Fatalf("expected draft untouched")
	}
}

func TestSelectOverwrites(t *testing.T) {
	b := newBuilder(&recordingInserter{})
	_ = b.SelectMood(mood.Happy)
	_ = b.SelectMood(mood.Sad)
	b.SelectActivities([]string{"Games"})
	b.SelectActivities([]string{"Cooking", "Cooking"})

	d := b.Current()
	if d.Mood != mood.Sad || d.MoodImage != mood.Image(mood.Sad) {
		t.Fatalf("expected last mood to win, got %+v", d)
	}
	if len(d.Activities) != 2 || d.Activities[0] != "Cooking" {
		t.Fatalf("expected replaced activities with duplicates kept, got %v", d.Activities)
	}
}

func TestEditDuringCommitSurvives(t *testing.T) {
	rec := &recordingInserter{entered: make(chan struct{}), block: make(chan struct{})}
	b := newBuilder(rec)
	_ = b.SelectMood(mood.Happy)

	done := make(chan error, 1)
	go func() {
		_, err := b.Commit(context.Background())
		done <- err
	}()

	select {
	case <-rec.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("commit never reached the store")
	}

	_ = b.SelectMood(mood.Sad)
	close(rec.block)
	if err := <-done; err != nil {
		t.Fatalf("commit: %v", err)
	}
	if d := b.Current(); d.Mood != mood.Sad {
		t.Fatalf("expected newer selection kept, got %+v", d)
	}
	if rec.count() != 1 || rec.entries[0].Mood != mood.Happy {
		t.Fatalf("expected the original draft committed, got %v", rec.entries)
	}
}

func TestLoadSeedsDraft(t *testing.T) {
	b := newBuilder(&recordingInserter{})
	if err := b.Load(mood.Entry{Mood: mood.Good, Activities: []string{"Date"}}); err != nil {
		t.Fatalf("load: %v", err)
	}
	d := b.Current()
	if d.Mood != mood.Good || len(d.Activities) != 1 {
		t.Fatalf("unexpected draft %+v", d)
	}
}
