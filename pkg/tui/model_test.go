package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/moodlog/pkg/history"
	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/selection"
)

type fakeHistory struct {
	state   history.State
	ch      chan history.State
	intents []history.Intent
}

func (f *fakeHistory) State() history.State { return f.state }
func (f *fakeHistory) Subscribe() (<-chan history.State, func()) {
	return f.ch, func() {}
}
func (f *fakeHistory) Dispatch(ctx context.Context, in history.Intent) error {
	f.intents = append(f.intents, in)
	return nil
}

type fakeSelection struct {
	state   selection.State
	ch      chan selection.State
	intents []selection.Intent
}

func (f *fakeSelection) State() selection.State { return f.state }
func (f *fakeSelection) Subscribe() (<-chan selection.State, func()) {
	return f.ch, func() {}
}
func (f *fakeSelection) Dispatch(ctx context.Context, in selection.Intent) error {
	f.intents = append(f.intents, in)
	return nil
}

func entry(id, label string, day int, activities ...string) mood.Entry {
	return mood.New(id, label, activities, time.Date(2025, time.August, day, 9, 0, 0, 0, time.Local))
}

func newModel(entries ...mood.Entry) (Model, *fakeHistory, *fakeSelection) {
	h := &fakeHistory{
		state: history.State{
			AllEntries:      entries,
			FilteredEntries: entries,
			SelectedMood:    mood.All,
			MoodOptions:     mood.Options(),
		},
		ch: make(chan history.State, 1),
	}
	s := &fakeSelection{
		state: selection.State{
			MoodOptions:        mood.Labels(),
			AllActivities:      mood.DefaultActivities(),
			SelectedActivities: []string{},
			MaxActivities:      mood.MaxActivities,
		},
		ch: make(chan selection.State, 1),
	}
	return New(context.Background(), h, s), h, s
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestSearchDispatchesEachChange(t *testing.T) {
	m, h, _ := newModel(entry("a", mood.Happy, 1, "Reading"))

	m = press(m, "/", "r", "e")
	if m.mode != modeSearch {
		t.Fatalf("expected search mode, got %v", m.mode)
	}
	var texts []string
	for _, in := range h.intents {
		if s, ok := in.(history.SearchTextChanged); ok {
			texts = append(texts, s.Text)
		}
	}
	if len(texts) != 2 || texts[0] != "r" || texts[1] != "re" {
		t.Fatalf("unexpected search intents %v", texts)
	}
	if _, ok := h.intents[0].(history.ToggleFiltersSection); !ok {
		t.Fatalf("expected filters to open first, got %T", h.intents[0])
	}

	m = press(m, "esc")
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after esc")
	}
}

func TestMoodDropdownSelects(t *testing.T) {
	m, h, _ := newModel()
	m = press(m, "m")
	if _, ok := h.intents[len(h.intents)-1].(history.ToggleDropdown); !ok {
		t.Fatalf("expected ToggleDropdown, got %#v", h.intents)
	}

	st := h.state
	st.DropdownExpanded = true
	m = update(m, historyStateMsg(st))
	m = press(m, "down", "down", "enter")

	got, ok := h.intents[len(h.intents)-1].(history.MoodFilterSelected)
	if !ok || got.Mood != mood.Options()[2] {
		t.Fatalf("expected MoodFilterSelected %q, got %#v", mood.Options()[2], h.intents[len(h.intents)-1])
	}
}

func TestEnterSelectsEntryAndOpensEditor(t *testing.T) {
	e := entry("a", mood.Sad, 2, "Work")
	m, h, _ := newModel(entry("b", mood.Happy, 3), e)

	m = press(m, "j", "enter")
	sel, ok := h.intents[len(h.intents)-1].(history.SelectEntry)
	if !ok || sel.Entry.ID != "a" {
		t.Fatalf("expected SelectEntry a, got %#v", h.intents)
	}

	st := h.state
	st.SelectedEntry = &e
	m = update(m, historyStateMsg(st))
	if m.screen != screenEdit {
		t.Fatalf("expected edit screen")
	}

	// Sad -> Bad, then toggle the first activity on.
	m = press(m, "l", " ", "enter")
	up, ok := h.intents[len(h.intents)-1].(history.UpdateEntry)
	if !ok {
		t.Fatalf("expected UpdateEntry, got %T", h.intents[len(h.intents)-1])
	}
	if up.Entry.Mood != mood.Bad || len(up.Entry.Activities) != 2 {
		t.Fatalf("unexpected update %+v", up.Entry)
	}

	st.SelectedEntry = nil
	m = update(m, historyStateMsg(st))
	if m.screen != screenHistory {
		t.Fatalf("expected history screen once the selection clears")
	}
}

func TestEditorCancel(t *testing.T) {
	e := entry("a", mood.Good, 2)
	m, h, _ := newModel(e)
	st := h.state
	st.SelectedEntry = &e
	m = update(m, historyStateMsg(st))

	press(m, "esc")
	if _, ok := h.intents[len(h.intents)-1].(history.CancelUpdate); !ok {
		t.Fatalf("expected CancelUpdate, got %T", h.intents[len(h.intents)-1])
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, h, _ := newModel(entry("a", mood.Good, 2))

	m = press(m, "d", "n")
	if len(h.intents) != 0 {
		t.Fatalf("expected no intents after cancel, got %#v", h.intents)
	}
	press(m, "d", "y")
	del, ok := h.intents[len(h.intents)-1].(history.DeleteEntry)
	if !ok || del.ID != "a" {
		t.Fatalf("expected DeleteEntry a, got %#v", h.intents)
	}
}

func TestSelectScreenFlow(t *testing.T) {
	m, _, s := newModel()

	m = press(m, "a")
	if m.screen != screenSelect {
		t.Fatalf("expected select screen")
	}
	m = press(m, "l", "l", "j", " ", "enter")

	want := []selection.Intent{
		selection.MoodSelected{Mood: mood.Happy},
		selection.MoodSelected{Mood: mood.Good},
		selection.ActivityToggled{Activity: mood.DefaultActivities()[1]},
		selection.SaveClicked{},
	}
	if len(s.intents) != len(want) {
		t.Fatalf("got intents %#v", s.intents)
	}
	for i := range want {
		if s.intents[i] != want[i] {
			t.Fatalf("intent %d: got %#v want %#v", i, s.intents[i], want[i])
		}
	}

	saved := entry("n", mood.Good, 4)
	st := s.state
	st.NavigateToHistory = true
	st.Saved = &saved
	m = update(m, selectionStateMsg(st))
	if m.screen != screenHistory {
		t.Fatalf("expected to navigate back to history")
	}
	if _, ok := s.intents[len(s.intents)-1].(selection.NavigationHandled); !ok {
		t.Fatalf("expected NavigationHandled, got %T", s.intents[len(s.intents)-1])
	}
	if !strings.Contains(m.status, "Saved Good") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestAddLikeThisInitializesDraft(t *testing.T) {
	m, _, s := newModel(entry("a", mood.Neutral, 1, "Work", "Cooking"))
	m = press(m, "A")
	if m.screen != screenSelect {
		t.Fatalf("expected select screen")
	}
	in, ok := s.intents[0].(selection.InitWithExisting)
	if !ok || in.Mood != mood.Neutral || len(in.Activities) != 2 {
		t.Fatalf("unexpected intent %#v", s.intents)
	}
}

func TestCursorClampsOnSmallerSnapshot(t *testing.T) {
	m, h, _ := newModel(entry("a", mood.Good, 3), entry("b", mood.Good, 2), entry("c", mood.Good, 1))
	m = press(m, "G")
	if m.cursor != 2 {
		t.Fatalf("expected cursor at the end, got %d", m.cursor)
	}
	st := h.state
	st.FilteredEntries = st.FilteredEntries[:1]
	m = update(m, historyStateMsg(st))
	if m.cursor != 0 {
		t.Fatalf("expected cursor clamped, got %d", m.cursor)
	}
}

func TestViewShowsEntriesAndError(t *testing.T) {
	m, h, _ := newModel(entry("a", mood.Happy, 3, "Reading"))
	st := h.state
	st.ErrorMessage = "Failed to delete entry: boom"
	m = update(m, historyStateMsg(st))

	out := m.View()
	for _, want := range []string{"Mood history", "03.08.2025", "Reading", "Failed to delete entry: boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view:\n%s", want, out)
		}
	}
}

func TestHistoryStoppedQuits(t *testing.T) {
	m, _, _ := newModel()
	_, cmd := m.Update(historyStoppedMsg{})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestWindow(t *testing.T) {
	tests := map[string]struct {
		n, cursor, h int
		start, end   int
	}{
		"fits":   {n: 3, cursor: 2, h: 10, start: 0, end: 3},
		"top":    {n: 30, cursor: 1, h: 10, start: 0, end: 10},
		"middle": {n: 30, cursor: 15, h: 10, start: 10, end: 20},
		"bottom": {n: 30, cursor: 29, h: 10, start: 20, end: 30},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			start, end := window(tc.n, tc.cursor, tc.h)
			if start != tc.start || end != tc.end {
				t.Fatalf("got [%d,%d) want [%d,%d)", start, end, tc.start, tc.end)
			}
		})
	}
}

func TestTrend(t *testing.T) {
	if _, ok := Average(nil); ok {
		t.Fatalf("expected no average for empty input")
	}
	avg, ok := Average([]mood.Entry{entry("a", mood.Happy, 1), entry("b", mood.Neutral, 2)})
	if !ok || avg != 1 {
		t.Fatalf("unexpected average %v %v", avg, ok)
	}
	if got := Nearest(avg); got != mood.Good {
		t.Fatalf("expected Good, got %s", got)
	}
	for avg, label := range map[float64]string{0: mood.Happy, 4: mood.Bad} {
		got, err := colorful.Hex(TrendColor(avg))
		if err != nil {
			t.Fatalf("bad hex: %v", err)
		}
		want, _ := colorful.Hex(moodColors[label])
		if d := got.DistanceLab(want); d > 0.01 {
			t.Fatalf("avg %v: expected the %s color, got %s", avg, label, got.Hex())
		}
	}
}
