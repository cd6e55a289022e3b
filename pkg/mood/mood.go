// Package mood holds the journal entry model and the fixed set of moods an
// entry can record.
package mood

import (
	"errors"
	"fmt"
)

// The five mood labels, from best to worst.
const (
	Happy   = "Happy"
	Good    = "Good"
	Neutral = "Neutral"
	Sad     = "Sad"
	Bad     = "Bad"
)

// All is the filter category that matches every mood.
const All = "All"

// MaxActivities caps how many activities the selection screen lets a user pick.
const MaxActivities = 4

// ErrUnknownMood is returned when a label is not one of the five moods.
var ErrUnknownMood = errors.New("mood: unknown mood")

var labels = []string{Happy, Good, Neutral, Sad, Bad}

// images binds each mood to its presentation handle.
var images = map[string]string{
	Happy:   "local:icon_happy_mood",
	Good:    "local:icon_good_mood",
	Neutral: "local:icon_neutral_mood",
	Sad:     "local:icon_sad_mood",
	Bad:     "local:icon_bad_mood",
}

var defaultActivities = []string{
	"Reading", "Movie", "Sport", "Family", "Friends",
	"Studying", "Date", "Sleeping", "Shopping", "Relax",
	"Games", "Cleaning", "Work", "Cooking", "Walking",
}

// Labels returns the five mood labels in display order.
func Labels() []string {
	return append([]string(nil), labels...)
}

// Options returns the filter categories: All followed by every mood label.
func Options() []string {
	return append([]string{All}, labels...)
}

// DefaultActivities returns the activity catalogue offered when recording a mood.
func DefaultActivities() []string {
	return append([]string(nil), defaultActivities...)
}

// Valid reports whether label is one of the five moods. Matching is case-sensitive.
func Valid(label string) bool {
	_, ok := images[label]
	return ok
}

// Validate returns ErrUnknownMood wrapped with the offending label.
func Validate(label string) error {
	if Valid(label) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownMood, label)
}

// Image returns the presentation handle for label, or "" for an unknown label.
func Image(label string) string {
	return images[label]
}

// Rank orders moods from Happy (0) to Bad (4). Unknown labels rank last.
func Rank(label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return len(labels)
}

// ToggleActivity removes activity from selected if present, otherwise appends
// it. ok is false when appending would exceed max. selected is never modified.
func ToggleActivity(selected []string, activity string, max int) (out []string, ok bool) {
	for i, s := range selected {
		if s == activity {
			out = make([]string, 0, len(selected)-1)
			out = append(out, selected[:i]...)
			return append(out, selected[i+1:]...), true
		}
	}
	if len(selected) >= max {
		return selected, false
	}
	out = make([]string, 0, len(selected)+1)
	out = append(out, selected...)
	return append(out, activity), true
}
