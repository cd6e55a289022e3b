package tui

import (
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/moodlog/pkg/mood"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
	Modal    lipgloss.Style
	Moods    map[string]lipgloss.Style
}

// moodColors are shared with the trend swatch.
var moodColors = map[string]string{
	mood.Happy:   "#50fa7b",
	mood.Good:    "#8be9fd",
	mood.Neutral: "#f1fa8c",
	mood.Sad:     "#6272a4",
	mood.Bad:     "#ff5555",
}

// DefaultTheme returns the built-in theme used across the UI.
func DefaultTheme() Theme {
	moods := make(map[string]lipgloss.Style, len(moodColors))
	for label, c := range moodColors {
		moods[label] = lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true)
	}
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Underline(true),
		Subtle:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "241"}),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Bold(true),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Selected: lipgloss.NewStyle().Reverse(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(1, 2),
		Moods: moods,
	}
}

// Mood renders label in its color.
func (t Theme) Mood(label string) string {
	if s, ok := t.Moods[label]; ok {
		return s.Render(label)
	}
	return t.Subtle.Render(label)
}
