package filter

import (
	"reflect"
	"testing"

	"tableflip.dev/moodlog/pkg/mood"
)

func sample() []mood.Entry {
	return []mood.Entry{
		{ID: "1", Date: "03.01.2025", Mood: mood.Happy, Activities: []string{"Reading", "Sport"}},
		{ID: "2", Date: "02.01.2025", Mood: mood.Sad, Activities: []string{"Work"}},
		{ID: "3", Date: "01.01.2025", Mood: mood.Happy, Activities: []string{"Movie"}},
		{ID: "4", Date: "01.01.2025", Mood: mood.Neutral, Activities: []string{}},
	}
}

func ids(entries []mood.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		category string
		want     []string
	}{
		{name: "no filters", want: []string{"1", "2", "3", "4"}},
		{name: "all category", category: mood.All, want: []string{"1", "2", "3", "4"}},
		{name: "mood only", category: mood.Happy, want: []string{"1", "3"}},
		{name: "search case insensitive", search: "READ", want: []string{"1"}},
		{name: "search substring", search: "o", want: []string{"1", "2", "3"}},
		{name: "search and mood", search: "o", category: mood.Happy, want: []string{"1", "3"}},
		{name: "mood is case sensitive", category: "happy", want: []string{}},
		{name: "empty activities never match text", search: "a", category: mood.Neutral, want: []string{}},
		{name: "no match", search: "xyz", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(sample(), tt.search, tt.category))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestApplyEmptyInput(t *testing.T) {
	if got := Apply(nil, "x", mood.Sad); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestApplyIsSubsetInOrder(t *testing.T) {
	in := sample()
	out := Apply(in, "", mood.Happy)
	j := 0
	for _, e := range out {
		for j < len(in) && in[j].ID != e.ID {
			j++
		}
		if j == len(in) {
			t.Fatalf("entry %s out of order or not in input", e.ID)
		}
	}
}

func TestApplyIdempotent(t *testing.T) {
	once := Apply(sample(), "o", mood.Happy)
	twice := Apply(once, "o", mood.Happy)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestApplyWithoutFiltersReturnsCopy(t *testing.T) {
	in := sample()
	out := Apply(in, "", "")
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("expected equal copy")
	}
	out[0].Activities[0] = "Games"
	if in[0].Activities[0] != "Reading" {
		t.Fatalf("output shares storage with input")
	}
}

func TestMatches(t *testing.T) {
	e := mood.Entry{Mood: mood.Good, Activities: []string{"Walking"}}
	if !Matches(e, "walk", mood.Good) {
		t.Fatalf("expected match")
	}
	if Matches(e, "walk", mood.Bad) {
		t.Fatalf("expected mood mismatch")
	}
}

func TestApplyComposition(t *testing.T) {
	for _, search := range []string{"", "o", "read", "zzz"} {
		for _, category := range mood.Options() {
			joint := Apply(sample(), search, category)
			staged := Apply(Apply(sample(), "", mood.All), search, category)
			if !reflect.DeepEqual(ids(joint), ids(staged)) {
				t.Fatalf("search=%q category=%q: joint %v != staged %v", search, category, ids(joint), ids(staged))
			}
			for _, e := range joint {
				if !Matches(e, search, category) {
					t.Fatalf("entry %s does not satisfy the predicate", e.ID)
				}
			}
		}
	}
}
