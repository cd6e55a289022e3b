package selection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/moodlog/pkg/draft"
	"tableflip.dev/moodlog/pkg/mood"
)

type fakeInserter struct {
	mu      sync.Mutex
	err     error
	entries []mood.Entry
}

func (f *fakeInserter) Insert(ctx context.Context, e mood.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeInserter) inserted() []mood.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mood.Entry(nil), f.entries...)
}

func clock() time.Time { return time.Date(2025, time.July, 14, 20, 0, 0, 0, time.Local) }

func start(t *testing.T, ins draft.Inserter) *Controller {
	t.Helper()
	b := draft.New(ins, draft.WithClock(clock), draft.WithIDGenerator(func() string { return "fixed-id" }))
	c := New(b, WithClock(clock))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return c
}

func dispatch(t *testing.T, c *Controller, in Intent) {
	t.Helper()
	if err := c.Dispatch(context.Background(), in); err != nil {
		t.Fatalf("dispatch %T: %v", in, err)
	}
}

func waitState(t *testing.T, c *Controller, cond func(State) bool) State {
	t.Helper()
	ch, cancel := c.Subscribe()
	defer cancel()
	deadline := time.After(3 * time.Second)
	var last State
	for {
		select {
		case st, ok := <-ch:
			if !ok {
				t.Fatal("state stream closed")
			}
			last = st
			if cond(st) {
				return st
			}
		case <-deadline:
			t.Fatalf("timed out waiting for state; last: %+v", last)
		}
	}
}

func TestInitialState(t *testing.T) {
	c := start(t, &fakeInserter{})
	st := c.State()
	if st.CurrentDate != "14.07.2025" {
		t.Fatalf("unexpected date %q", st.CurrentDate)
	}
	if st.MaxActivities != 4 || len(st.AllActivities) != 15 || len(st.MoodOptions) != 5 {
		t.Fatalf("unexpected catalogue %+v", st)
	}
	if st.SelectedMood != "" || len(st.SelectedActivities) != 0 {
		t.Fatalf("expected empty selection")
	}
}

func TestActivityCap(t *testing.T) {
	c := start(t, &fakeInserter{})
	for _, a := range []string{"Reading", "Movie", "Sport", "Family", "Friends"} {
		dispatch(t, c, ActivityToggled{Activity: a})
	}
	dispatch(t, c, ActivityToggled{Activity: "Games"})
	st := waitState(t, c, func(st State) bool { return len(st.SelectedActivities) == 4 })
	if st.IsSelected("Friends") || st.IsSelected("Games") {
		t.Fatalf("toggles past the cap must be ignored, got %v", st.SelectedActivities)
	}

	dispatch(t, c, ActivityToggled{Activity: "Movie"})
	st = waitState(t, c, func(st State) bool { return len(st.SelectedActivities) == 3 })
	if st.IsSelected("Movie") {
		t.Fatalf("expected Movie removed, got %v", st.SelectedActivities)
	}

	dispatch(t, c, ActivityToggled{Activity: "Games"})
	st = waitState(t, c, func(st State) bool { return st.IsSelected("Games") })
	want := []string{"Reading", "Sport", "Family", "Games"}
	for i, a := range want {
		if st.SelectedActivities[i] != a {
			t.Fatalf("expected %v, got %v", want, st.SelectedActivities)
		}
	}
}

func TestSaveWithoutMood(t *testing.T) {
	ins := &fakeInserter{}
	c := start(t, ins)
	dispatch(t, c, ActivityToggled{Activity: "Work"})
	dispatch(t, c, SaveClicked{})
	st := waitState(t, c, func(st State) bool { return st.ErrorMessage != "" })
	if st.Saving || st.NavigateToHistory {
		t.Fatalf("unexpected flags %+v", st)
	}
	if len(ins.inserted()) != 0 {
		t.Fatalf("expected no insert")
	}
}

func TestSaveSuccessNavigates(t *testing.T) {
	ins := &fakeInserter{}
	c := start(t, ins)
	dispatch(t, c, MoodSelected{Mood: mood.Bad})
	dispatch(t, c, ActivityToggled{Activity: "Work"})
	dispatch(t, c, ActivityToggled{Activity: "Cleaning"})
	dispatch(t, c, SaveClicked{})

	st := waitState(t, c, func(st State) bool { return st.NavigateToHistory })
	if st.Saving {
		t.Fatalf("expected saving cleared")
	}
	if st.SelectedMood != "" || len(st.SelectedActivities) != 0 {
		t.Fatalf("expected selection reset after save, got %+v", st)
	}
	got := ins.inserted()
	if len(got) != 1 {
		t.Fatalf("expected exactly one insert, got %d", len(got))
	}
	e := got[0]
	if e.Mood != mood.Bad || len(e.Activities) != 2 || e.Activities[0] != "Work" || e.Activities[1] != "Cleaning" || e.ID == "" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if st.Saved == nil || st.Saved.ID != e.ID {
		t.Fatalf("expected saved entry in state")
	}

	dispatch(t, c, NavigationHandled{})
	waitState(t, c, func(st State) bool { return !st.NavigateToHistory })
}

func TestSaveFailure(t *testing.T) {
	ins := &fakeInserter{err: errors.New("locked")}
	c := start(t, ins)
	dispatch(t, c, MoodSelected{Mood: mood.Good})
	dispatch(t, c, SaveClicked{})

	st := waitState(t, c, func(st State) bool { return st.ErrorMessage != "" && !st.Saving })
	if st.NavigateToHistory {
		t.Fatalf("failed save must not navigate")
	}
	if st.SelectedMood != mood.Good {
		t.Fatalf("expected draft kept, got %q", st.SelectedMood)
	}

	dispatch(t, c, DismissError{})
	waitState(t, c, func(st State) bool { return st.ErrorMessage == "" })
}

func TestInvalidMood(t *testing.T) {
	c := start(t, &fakeInserter{})
	dispatch(t, c, MoodSelected{Mood: "Sleepy"})
	st := waitState(t, c, func(st State) bool { return st.ErrorMessage != "" })
	if st.SelectedMood != "" {
		t.Fatalf("invalid mood must not be selected")
	}
}

func TestInitWithExisting(t *testing.T) {
	c := start(t, &fakeInserter{})
	dispatch(t, c, InitWithExisting{Mood: mood.Happy, Activities: []string{"Date", "Walking"}})
	st := waitState(t, c, func(st State) bool { return st.SelectedMood == mood.Happy })
	if len(st.SelectedActivities) != 2 || !st.IsSelected("Walking") {
		t.Fatalf("unexpected activities %v", st.SelectedActivities)
	}
}
