// Package filter narrows a mood history by activity text and mood category.
package filter

import (
	"strings"

	"tableflip.dev/moodlog/pkg/mood"
)

// Apply returns the entries that match both search and category, in input order.
//
// An entry matches search when search is empty or any of its activities
// contains search, ignoring case. It matches category when category is empty,
// mood.All, or exactly the entry's mood.
func Apply(entries []mood.Entry, search, category string) []mood.Entry {
	out := make([]mood.Entry, 0, len(entries))
	needle := strings.ToLower(search)
	for _, e := range entries {
		if matchMood(e, category) && matchActivity(e, needle) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Matches reports whether e passes the filter.
func Matches(e mood.Entry, search, category string) bool {
	return matchMood(e, category) && matchActivity(e, strings.ToLower(search))
}

func matchMood(e mood.Entry, category string) bool {
	return category == "" || category == mood.All || e.Mood == category
}

func matchActivity(e mood.Entry, needle string) bool {
	if needle == "" {
		return true
	}
	for _, a := range e.Activities {
		if strings.Contains(strings.ToLower(a), needle) {
			return true
		}
	}
	return false
}
