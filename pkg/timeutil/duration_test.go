package timeutil

import (
	"testing"
	"time"

	"tableflip.dev/moodlog/pkg/mood"
)

func TestParseWindowEmpty(t *testing.T) {
	dur, label, err := ParseWindow("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 0 || label != "" {
		t.Fatalf("expected no window, got %v %q", dur, label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	dur, label, err := ParseWindow("1mo 2w3days")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (30 + 14 + 3) * day
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1mo2w3d" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3h", "0d", "2w x"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestFormatWindow(t *testing.T) {
	tests := map[time.Duration]string{
		time.Hour: "0d",
		day:       "1d",
		10 * day:  "1w3d",
		400 * day: "1y1mo5d",
		365 * day: "1y",
		60 * day:  "2mo",
	}
	for in, want := range tests {
		if got := FormatWindow(in); got != want {
			t.Errorf("FormatWindow(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestWithin(t *testing.T) {
	now := time.Date(2025, time.August, 10, 18, 0, 0, 0, time.Local)
	at := func(id string, d int) mood.Entry {
		return mood.New(id, mood.Good, nil, time.Date(2025, time.August, d, 9, 0, 0, 0, time.Local))
	}
	entries := []mood.Entry{at("a", 10), at("b", 4), at("c", 3), {ID: "d", Date: "garbage", Mood: mood.Good}}

	got := Within(entries, 7*day, now)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected window %+v", got)
	}
	if got := Within(entries, 0, now); len(got) != len(entries) {
		t.Fatalf("expected everything without a window")
	}
	if got := Within(entries, day, now); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only today, got %+v", got)
	}
}
