package app

import (
	"sort"

	"tableflip.dev/moodlog/pkg/mood"
)

// MoodCount is the number of entries recorded with one mood.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// ActivityCount is the number of entries an activity appears in.
type ActivityCount struct {
	Activity string `json:"activity"`
	Count    int    `json:"count"`
}

// Stats aggregates a set of entries.
type Stats struct {
	Total      int             `json:"total"`
	Moods      []MoodCount     `json:"moods"`
	Activities []ActivityCount `json:"activities"`
	First      string          `json:"first,omitempty"`
	Last       string          `json:"last,omitempty"`
}

// Summarize counts entries per mood (all five moods, Happy first) and the
// activities by frequency, ties broken alphabetically. An activity repeated in
// one entry counts once.
func Summarize(entries []mood.Entry) Stats {
	st := Stats{Total: len(entries)}

	byMood := make(map[string]int)
	byActivity := make(map[string]int)
	for _, e := range entries {
		byMood[e.Mood]++
		seen := make(map[string]bool, len(e.Activities))
		for _, a := range e.Activities {
			if seen[a] {
				continue
			}
			seen[a] = true
			byActivity[a]++
		}
	}

	for _, l := range mood.Labels() {
		st.Moods = append(st.Moods, MoodCount{Mood: l, Count: byMood[l]})
	}

	st.Activities = make([]ActivityCount, 0, len(byActivity))
	for a, n := range byActivity {
		st.Activities = append(st.Activities, ActivityCount{Activity: a, Count: n})
	}
	sort.Slice(st.Activities, func(i, j int) bool {
		if st.Activities[i].Count != st.Activities[j].Count {
			return st.Activities[i].Count > st.Activities[j].Count
		}
		return st.Activities[i].Activity < st.Activities[j].Activity
	})

	if len(entries) > 0 {
		sorted := mood.CloneEntries(entries)
		mood.Sort(sorted)
		st.Last = sorted[0].Date
		st.First = sorted[len(sorted)-1].Date
	}
	return st
}
