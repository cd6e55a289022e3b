package ui

import (
	"fmt"
	"time"

	"tableflip.dev/moodlog/pkg/mood"
)

// StaticDemo returns two weeks of sample entries ending on now.
func StaticDemo(now time.Time) []mood.Entry {
	days := []struct {
		mood       string
		activities []string
	}{
		{mood.Good, []string{"Work", "Cooking"}},
		{mood.Happy, []string{"Friends", "Movie"}},
		{mood.Neutral, []string{"Work"}},
		{mood.Sad, []string{"Sleeping"}},
		{mood.Good, []string{"Sport", "Walking", "Relax"}},
		{mood.Happy, []string{"Family", "Date"}},
		{mood.Bad, []string{"Work", "Cleaning"}},
		{mood.Neutral, []string{"Studying", "Reading"}},
		{mood.Good, []string{"Games", "Friends"}},
		{mood.Happy, []string{"Walking", "Reading", "Relax", "Cooking"}},
		{mood.Sad, []string{}},
		{mood.Neutral, []string{"Shopping"}},
		{mood.Good, []string{"Sport"}},
		{mood.Happy, []string{"Family", "Movie"}},
	}

	out := make([]mood.Entry, 0, len(days))
	for i, d := range days {
		at := now.AddDate(0, 0, -i)
		out = append(out, mood.New(fmt.Sprintf("demo-%02d", i+1), d.mood, d.activities, at))
	}
	return out
}
