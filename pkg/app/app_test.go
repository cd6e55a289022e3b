package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/moodlog/pkg/draft"
	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/store"
)

type staticRemote struct {
	entries []mood.Entry
	err     error
}

func (r staticRemote) FetchAll(ctx context.Context) ([]mood.Entry, error) {
	return mood.CloneEntries(r.entries), r.err
}

func newService(entries ...mood.Entry) *Service {
	n := 0
	return &Service{
		Store: store.NewMemory(entries),
		DraftOptions: []draft.Option{
			draft.WithClock(func() time.Time { return time.Date(2025, time.August, 2, 8, 0, 0, 0, time.Local) }),
			draft.WithIDGenerator(func() string {
				n++
				return "new-" + string(rune('0'+n))
			}),
		},
	}
}

func entry(id, label string, day int, activities ...string) mood.Entry {
	return mood.New(id, label, activities, time.Date(2025, time.August, day, 8, 0, 0, 0, time.Local))
}

func TestServiceAdd(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	e, err := svc.Add(ctx, mood.Happy, []string{" Reading ", "", "Walking"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.ID != "new-1" || e.Date != "02.08.2025" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if len(e.Activities) != 2 || e.Activities[0] != "Reading" {
		t.Fatalf("expected trimmed activities, got %v", e.Activities)
	}

	if _, err := svc.Add(ctx, "", nil); !errors.Is(err, draft.ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
	if _, err := svc.Add(ctx, "Hungry", nil); !errors.Is(err, mood.ErrUnknownMood) {
		t.Fatalf("expected ErrUnknownMood, got %v", err)
	}
	if _, err := svc.Add(ctx, mood.Good, []string{"a", "b", "c", "d", "e"}); !errors.Is(err, ErrTooManyAct) {
		t.Fatalf("expected ErrTooManyAct, got %v", err)
	}
	all, _ := svc.Entries(ctx, "", "")
	if len(all) != 1 {
		t.Fatalf("expected only the valid entry stored, got %d", len(all))
	}
}

func TestServiceEntriesFilters(t *testing.T) {
	svc := newService(
		entry("a", mood.Happy, 1, "Reading"),
		entry("b", mood.Sad, 2, "Work"),
		entry("c", mood.Happy, 3, "Work"),
	)
	got, err := svc.Entries(context.Background(), "work", mood.Happy)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestServiceEditAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(entry("a", mood.Neutral, 1, "Work"))

	label := mood.Good
	acts := []string{"Relax"}
	e, err := svc.Edit(ctx, "a", EditOptions{Mood: &label, Activities: &acts})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if e.Mood != mood.Good || e.MoodImage != mood.Image(mood.Good) || e.Activities[0] != "Relax" {
		t.Fatalf("unexpected edit result %+v", e)
	}

	bad := "Tired"
	if _, err := svc.Edit(ctx, "a", EditOptions{Mood: &bad}); !errors.Is(err, mood.ErrUnknownMood) {
		t.Fatalf("expected ErrUnknownMood, got %v", err)
	}
	if _, err := svc.Edit(ctx, "zzz", EditOptions{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := svc.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestServiceImport(t *testing.T) {
	ctx := context.Background()
	svc := newService(entry("dup", mood.Happy, 1))
	svc.Remote = staticRemote{entries: []mood.Entry{
		{ID: "dup", Date: "01.08.2025", Mood: mood.Sad},
		{ID: "r1", Date: "05.08.2025", Mood: mood.Good, MoodImage: "https://img/good.png", Activities: []string{}},
	}}

	report, err := svc.Import(ctx)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Fetched != 2 || report.Skipped != 1 || len(report.Imported) != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	got, err := svc.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("get imported: %v", err)
	}
	if got.Origin != mood.OriginRemote || got.Created.IsZero() {
		t.Fatalf("unexpected imported entry %+v", got)
	}
	if dup, _ := svc.Get(ctx, "dup"); dup.Mood != mood.Happy {
		t.Fatalf("import must not overwrite local entries")
	}

	again, err := svc.Import(ctx)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if len(again.Imported) != 0 || again.Skipped != 2 {
		t.Fatalf("expected second import to skip everything, got %+v", again)
	}
}

func TestServiceImportErrors(t *testing.T) {
	svc := newService()
	if _, err := svc.Import(context.Background()); !errors.Is(err, ErrNoRemote) {
		t.Fatalf("expected ErrNoRemote, got %v", err)
	}
	svc.Remote = staticRemote{err: errors.New("boom")}
	if _, err := svc.Import(context.Background()); err == nil {
		t.Fatalf("expected fetch error")
	}
	if _, err := (&Service{}).Entries(context.Background(), "", ""); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	st := Summarize([]mood.Entry{
		entry("a", mood.Happy, 1, "Work", "Work", "Sport"),
		entry("b", mood.Happy, 3, "Sport"),
		entry("c", mood.Bad, 2, "Cooking"),
	})
	if st.Total != 3 || st.First != "01.08.2025" || st.Last != "03.08.2025" {
		t.Fatalf("unexpected totals %+v", st)
	}
	if st.Moods[0].Mood != mood.Happy || st.Moods[0].Count != 2 || st.Moods[4].Count != 1 {
		t.Fatalf("unexpected mood counts %+v", st.Moods)
	}
	if st.Activities[0].Activity != "Sport" || st.Activities[0].Count != 2 {
		t.Fatalf("unexpected top activity %+v", st.Activities)
	}
	if st.Activities[1].Activity != "Cooking" || st.Activities[2].Activity != "Work" || st.Activities[2].Count != 1 {
		t.Fatalf("expected ties broken alphabetically, got %+v", st.Activities)
	}
}

func TestParseActivities(t *testing.T) {
	got := ParseActivities("Reading, Walking,,  ")
	if len(got) != 2 || got[1] != "Walking" {
		t.Fatalf("unexpected %v", got)
	}
	if got := ParseActivities(""); got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %#v", got)
	}
}
