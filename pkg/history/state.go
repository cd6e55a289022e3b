package history

import "tableflip.dev/moodlog/pkg/mood"

// State is the published view of the history screen.
type State struct {
	AllEntries       []mood.Entry
	FilteredEntries  []mood.Entry
	SearchText       string
	SelectedMood     string
	MoodOptions      []string
	DropdownExpanded bool
	FiltersExpanded  bool
	Loading          bool
	Updating         bool
	SelectedEntry    *mood.Entry
	ErrorMessage     string
}

func initialState() State {
	return State{
		AllEntries:      []mood.Entry{},
		FilteredEntries: []mood.Entry{},
		SelectedMood:    mood.All,
		MoodOptions:     mood.Options(),
		Loading:         true,
	}
}

// Clone returns a deep copy that shares nothing with s.
func (s State) Clone() State {
	out := s
	out.AllEntries = mood.CloneEntries(s.AllEntries)
	out.FilteredEntries = mood.CloneEntries(s.FilteredEntries)
	out.MoodOptions = append([]string(nil), s.MoodOptions...)
	if s.SelectedEntry != nil {
		e := s.SelectedEntry.Clone()
		out.SelectedEntry = &e
	}
	return out
}

// Lookup finds id among AllEntries.
func (s State) Lookup(id string) (mood.Entry, bool) {
	for _, e := range s.AllEntries {
		if e.ID == id {
			return e, true
		}
	}
	return mood.Entry{}, false
}
