package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/moodlog/pkg/mood"
)

const helpText = "j/k move  enter edit  a add  A add like this  d delete  / search  m mood  f filters  c clear  r refresh  t tips  x dismiss  q quit"

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var body string
	switch m.screen {
	case screenSelect:
		body = m.selectView()
	case screenEdit:
		body = m.editView()
	case screenTips:
		body = m.tipsView()
	default:
		body = m.historyView()
	}
	return body + "\n" + m.theme.Status.Render(m.status)
}

func (m Model) historyView() string {
	var b strings.Builder
	t := m.theme
	st := m.hs

	b.WriteString(t.Title.Render("Mood history"))
	if avg, ok := Average(st.FilteredEntries); ok {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(TrendColor(avg))).Render("  ")
		fmt.Fprintf(&b, "   %s %s", swatch, t.Subtle.Render("mostly "+Nearest(avg)))
	}
	if st.Loading {
		b.WriteString(t.Subtle.Render("   loading…"))
	}
	if st.Updating {
		b.WriteString(t.Subtle.Render("   saving…"))
	}
	b.WriteString("\n\n")

	if st.FiltersExpanded {
		search := m.search.View()
		if m.mode != modeSearch && st.SearchText == "" {
			search = t.Subtle.Render("(press / to search)")
		}
		arrow := "▾"
		if st.DropdownExpanded {
			arrow = "▴"
		}
		fmt.Fprintf(&b, "Search: %s   Mood: %s %s\n", search, m.filterLabel(st.SelectedMood), arrow)
		if st.DropdownExpanded {
			for i, o := range st.MoodOptions {
				prefix := "   "
				if i == m.moodCursor {
					prefix = t.Cursor.Render(" → ")
				}
				b.WriteString(prefix + m.filterLabel(o) + "\n")
			}
		}
		b.WriteString("\n")
	} else if st.SearchText != "" || (st.SelectedMood != "" && st.SelectedMood != mood.All) {
		b.WriteString(t.Subtle.Render(fmt.Sprintf("filtered: %q %s (f to show filters)", st.SearchText, st.SelectedMood)) + "\n\n")
	}

	b.WriteString(m.entryRows())

	if st.ErrorMessage != "" {
		b.WriteString("\n" + t.Error.Render(st.ErrorMessage) + t.Subtle.Render("  (x to dismiss)") + "\n")
	}
	switch m.mode {
	case modeConfirmDelete:
		if e, ok := m.current(); ok {
			b.WriteString("\n" + t.Error.Render(fmt.Sprintf("Delete %s %s? (y/n)", e.Date, e.Mood)) + "\n")
		}
	case modeHelp:
		b.WriteString("\n" + t.Help.Render(helpText) + "\n")
	}
	return b.String()
}

func (m Model) filterLabel(label string) string {
	if label == mood.All || label == "" {
		return mood.All
	}
	return m.theme.Mood(label)
}

func (m Model) entryRows() string {
	t := m.theme
	entries := m.hs.FilteredEntries
	if len(entries) == 0 {
		if m.hs.Loading {
			return ""
		}
		return t.Subtle.Render("  none") + "\n"
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	actWidth := width - len("  01.01.2025  Neutral  ")
	if actWidth < 10 {
		actWidth = 10
	}

	start, end := window(len(entries), m.cursor, m.listHeight())
	var b strings.Builder
	for i := start; i < end; i++ {
		e := entries[i]
		prefix := "  "
		if i == m.cursor {
			prefix = t.Cursor.Render("› ")
		}
		label := lipgloss.NewStyle().Width(len("Neutral")).Render(t.Mood(e.Mood))
		activities := truncate.StringWithTail(strings.Join(e.Activities, ", "), uint(actWidth), "…")
		if e.Origin == mood.OriginRemote {
			activities += t.Subtle.Render(" ☁")
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n", prefix, e.Date, label, activities)
	}
	if end < len(entries) {
		b.WriteString(t.Subtle.Render(fmt.Sprintf("  … %d more", len(entries)-end)) + "\n")
	}
	return b.String()
}

func (m Model) listHeight() int {
	if m.height <= 0 {
		return 20
	}
	h := m.height - 8
	if m.hs.FiltersExpanded {
		h -= 2
	}
	if m.hs.DropdownExpanded {
		h -= len(m.hs.MoodOptions)
	}
	if h < 3 {
		h = 3
	}
	return h
}

// window returns the [start, end) range of n rows of height h that keeps
// cursor visible.
func window(n, cursor, h int) (int, int) {
	if n <= h {
		return 0, n
	}
	start := cursor - h/2
	if start < 0 {
		start = 0
	}
	if start+h > n {
		start = n - h
	}
	return start, start + h
}

func (m Model) moodRow(selected string) string {
	parts := make([]string, 0, len(mood.Labels()))
	for i, l := range mood.Labels() {
		text := fmt.Sprintf("%d %s", i+1, l)
		if l == selected {
			parts = append(parts, m.theme.Selected.Render(m.theme.Mood(text)))
		} else {
			parts = append(parts, m.theme.Subtle.Render(text))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) activityList(options, selected []string, cursor int) string {
	var b strings.Builder
	start, end := window(len(options), cursor, m.listHeight()-4)
	for i := start; i < end; i++ {
		a := options[i]
		prefix := "  "
		if i == cursor {
			prefix = m.theme.Cursor.Render("› ")
		}
		box := "[ ]"
		if indexOf(selected, a) >= 0 {
			box = m.theme.Cursor.Render("[x]")
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, box, a)
	}
	return b.String()
}

func (m Model) selectView() string {
	t := m.theme
	st := m.ss
	var b strings.Builder

	b.WriteString(t.Title.Render("How are you feeling today?"))
	b.WriteString("  " + t.Subtle.Render(st.CurrentDate) + "\n\n")
	b.WriteString(m.moodRow(st.SelectedMood) + "\n\n")
	fmt.Fprintf(&b, "Activities %s\n", t.Subtle.Render(fmt.Sprintf("(%d/%d)", len(st.SelectedActivities), st.MaxActivities)))
	b.WriteString(m.activityList(st.AllActivities, st.SelectedActivities, m.actCursor))

	if st.Saving {
		b.WriteString("\n" + t.Subtle.Render("saving…") + "\n")
	}
	if st.ErrorMessage != "" {
		b.WriteString("\n" + t.Error.Render(st.ErrorMessage) + t.Subtle.Render("  (x to dismiss)") + "\n")
	}
	b.WriteString("\n" + t.Help.Render("h/l or 1-5 mood  j/k move  space toggle  enter save  esc back") + "\n")
	return b.String()
}

func (m Model) editView() string {
	t := m.theme
	e := m.edit
	var b strings.Builder

	b.WriteString(t.Title.Render("Update entry") + "  " + t.Subtle.Render(e.entry.Date) + "\n\n")
	b.WriteString(m.moodRow(e.entry.Mood) + "\n\n")
	fmt.Fprintf(&b, "Activities %s\n", t.Subtle.Render(fmt.Sprintf("(%d/%d)", len(e.entry.Activities), mood.MaxActivities)))
	b.WriteString(m.activityList(e.options, e.entry.Activities, e.actCursor))

	if m.hs.Updating {
		b.WriteString("\n" + t.Subtle.Render("saving…") + "\n")
	}
	if m.hs.ErrorMessage != "" {
		b.WriteString("\n" + t.Error.Render(m.hs.ErrorMessage) + "\n")
	}
	b.WriteString("\n" + t.Help.Render("h/l mood  j/k move  space toggle  enter save  esc cancel") + "\n")
	return t.Modal.Render(b.String())
}

func (m Model) tipsView() string {
	body := m.tips
	if body == "" {
		body = m.theme.Subtle.Render("loading tips…")
	}
	return body + "\n" + m.theme.Help.Render("1-5 open a tip  0 list  esc back") + "\n"
}
