package history

import "tableflip.dev/moodlog/pkg/mood"

// Intent is a user action sent to the Controller.
type Intent interface {
	isIntent()
}

// SearchTextChanged sets the activity search text.
type SearchTextChanged struct{ Text string }

// MoodFilterSelected sets the mood category and closes the dropdown.
type MoodFilterSelected struct{ Mood string }

// ToggleDropdown opens or closes the mood dropdown.
type ToggleDropdown struct{}

// ToggleFiltersSection shows or hides the filter controls.
type ToggleFiltersSection struct{}

// ClearFilters resets search text and mood category.
type ClearFilters struct{}

// SelectEntry marks an entry as being edited.
type SelectEntry struct{ Entry mood.Entry }

// CancelUpdate drops the edit selection.
type CancelUpdate struct{}

// UpdateEntry writes a modified entry.
type UpdateEntry struct{ Entry mood.Entry }

// DeleteEntry removes the entry with ID.
type DeleteEntry struct{ ID string }

// DismissError clears the error message.
type DismissError struct{}

// RefreshRemote fetches the remote source again.
type RefreshRemote struct{}

func (SearchTextChanged) isIntent()    {}
func (MoodFilterSelected) isIntent()   {}
func (ToggleDropdown) isIntent()       {}
func (ToggleFiltersSection) isIntent() {}
func (ClearFilters) isIntent()         {}
func (SelectEntry) isIntent()          {}
func (CancelUpdate) isIntent()         {}
func (UpdateEntry) isIntent()          {}
func (DeleteEntry) isIntent()          {}
func (DismissError) isIntent()         {}
func (RefreshRemote) isIntent()        {}
