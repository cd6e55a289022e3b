package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/moodlog/pkg/history"
	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/selection"
	"tableflip.dev/moodlog/pkg/tips"
)

func (m *Model) handleHistoryKey(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case modeHelp:
		m.mode = modeNormal
		return nil
	case modeConfirmDelete:
		if msg.String() == "y" {
			if e, ok := m.current(); ok {
				m.dispatchHistory(history.DeleteEntry{ID: e.ID})
				m.status = "Deleted " + e.Date
			}
		} else {
			m.status = "Delete cancelled"
		}
		m.mode = modeNormal
		return nil
	case modeSearch:
		switch msg.String() {
		case "enter", "esc":
			m.mode = modeNormal
			m.search.Blur()
			return nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if after := m.search.Value(); after != before {
			m.dispatchHistory(history.SearchTextChanged{Text: after})
			m.cursor = 0
		}
		return cmd
	}

	if m.hs.DropdownExpanded {
		switch msg.String() {
		case "up", "k":
			if m.moodCursor > 0 {
				m.moodCursor--
			}
			return nil
		case "down", "j":
			if m.moodCursor < len(m.hs.MoodOptions)-1 {
				m.moodCursor++
			}
			return nil
		case "enter":
			if m.moodCursor < len(m.hs.MoodOptions) {
				m.dispatchHistory(history.MoodFilterSelected{Mood: m.hs.MoodOptions[m.moodCursor]})
				m.cursor = 0
			}
			return nil
		case "esc", "m":
			m.dispatchHistory(history.ToggleDropdown{})
			return nil
		}
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.hs.FilteredEntries)-1 {
			m.cursor++
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		if n := len(m.hs.FilteredEntries); n > 0 {
			m.cursor = n - 1
		}
	case "enter", "e":
		if e, ok := m.current(); ok {
			m.dispatchHistory(history.SelectEntry{Entry: e})
		}
	case "/":
		if !m.hs.FiltersExpanded {
			m.dispatchHistory(history.ToggleFiltersSection{})
		}
		m.mode = modeSearch
		return m.search.Focus()
	case "f":
		m.dispatchHistory(history.ToggleFiltersSection{})
	case "m":
		m.moodCursor = indexOf(m.hs.MoodOptions, m.hs.SelectedMood)
		if m.moodCursor < 0 {
			m.moodCursor = 0
		}
		m.dispatchHistory(history.ToggleDropdown{})
	case "c":
		m.search.Reset()
		m.dispatchHistory(history.ClearFilters{})
		m.cursor = 0
	case "d", "delete":
		if _, ok := m.current(); ok {
			m.mode = modeConfirmDelete
		}
	case "a":
		m.screen = screenSelect
	case "A":
		// Log a new entry that starts from the highlighted one.
		if e, ok := m.current(); ok {
			m.dispatchSelection(selection.InitWithExisting{Mood: e.Mood, Activities: e.Activities})
			m.screen = screenSelect
		}
	case "r":
		m.dispatchHistory(history.RefreshRemote{})
		m.status = "Refreshing"
	case "x":
		m.dispatchHistory(history.DismissError{})
	case "t":
		m.screen = screenTips
		m.tips = ""
		return m.renderTips(tips.ListMarkdown())
	case "?":
		m.mode = modeHelp
	}
	return nil
}

func (m *Model) handleSelectKey(msg tea.KeyMsg) {
	options := m.ss.MoodOptions
	activities := m.ss.AllActivities

	switch k := msg.String(); k {
	case "esc", "q":
		m.screen = screenHistory
	case "left", "h":
		m.stepMood(-1)
	case "right", "l":
		m.stepMood(1)
	case "1", "2", "3", "4", "5":
		n, _ := strconv.Atoi(k)
		if n <= len(options) {
			m.ss.SelectedMood = options[n-1]
			m.dispatchSelection(selection.MoodSelected{Mood: options[n-1]})
		}
	case "up", "k":
		if m.actCursor > 0 {
			m.actCursor--
		}
	case "down", "j":
		if m.actCursor < len(activities)-1 {
			m.actCursor++
		}
	case " ", "space":
		if m.actCursor < len(activities) {
			m.dispatchSelection(selection.ActivityToggled{Activity: activities[m.actCursor]})
		}
	case "enter", "s":
		m.dispatchSelection(selection.SaveClicked{})
	case "x":
		m.dispatchSelection(selection.DismissError{})
	}
}

// stepMood moves the selected mood by delta, wrapping around. The local state
// is updated right away so repeated keys keep stepping.
func (m *Model) stepMood(delta int) {
	options := m.ss.MoodOptions
	if len(options) == 0 {
		return
	}
	cur := indexOf(options, m.ss.SelectedMood)
	next := 0
	switch {
	case cur < 0 && delta < 0:
		next = len(options) - 1
	case cur >= 0:
		next = (cur + delta + len(options)) % len(options)
	}
	m.ss.SelectedMood = options[next]
	m.dispatchSelection(selection.MoodSelected{Mood: options[next]})
}

func (m *Model) handleEditKey(msg tea.KeyMsg) {
	labels := mood.Labels()
	e := &m.edit

	switch msg.String() {
	case "esc", "q":
		m.dispatchHistory(history.CancelUpdate{})
	case "left", "h":
		e.moodIdx = (e.moodIdx + len(labels) - 1) % len(labels)
		e.entry.Mood = labels[e.moodIdx]
	case "right", "l":
		e.moodIdx = (e.moodIdx + 1) % len(labels)
		e.entry.Mood = labels[e.moodIdx]
	case "up", "k":
		if e.actCursor > 0 {
			e.actCursor--
		}
	case "down", "j":
		if e.actCursor < len(e.options)-1 {
			e.actCursor++
		}
	case " ", "space":
		if e.actCursor < len(e.options) {
			next, ok := mood.ToggleActivity(e.entry.Activities, e.options[e.actCursor], mood.MaxActivities)
			if !ok {
				m.status = "At most " + strconv.Itoa(mood.MaxActivities) + " activities"
				return
			}
			e.entry.Activities = next
		}
	case "enter", "s":
		m.dispatchHistory(history.UpdateEntry{Entry: e.entry.Clone()})
	case "x":
		m.dispatchHistory(history.DismissError{})
	}
}

func (m *Model) handleTipsKey(msg tea.KeyMsg) tea.Cmd {
	switch k := msg.String(); k {
	case "esc", "q", "t":
		m.screen = screenHistory
	case "0", "backspace":
		return m.renderTips(tips.ListMarkdown())
	default:
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil
		}
		tip, err := tips.Get(n)
		if err != nil {
			return nil
		}
		return m.renderTips(tips.DetailMarkdown(tip))
	}
	return nil
}
