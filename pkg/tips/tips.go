// Package tips holds the static mood tips and renders them as markdown.
package tips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Tip is one suggestion for lifting a mood.
type Tip struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

var all = []Tip{
	{Title: "Try meditation", Detail: "Sit comfortably, close your eyes and follow your breath for five minutes. When your mind wanders, notice it and come back to the breath."},
	{Title: "Take a walk outside", Detail: "Fresh air and daylight help. Leave the phone in your pocket and look around."},
	{Title: "Talk to a friend", Detail: "Call or message someone you trust. You do not have to talk about how you feel."},
	{Title: "Listen to your favorite music", Detail: "Put on an album you love and listen to it from start to finish."},
	{Title: "Write down your thoughts", Detail: "Write whatever comes to mind for ten minutes without editing. Then record today's mood with `moodlog add`."},
}

// All returns every tip in display order.
func All() []Tip {
	return append([]Tip(nil), all...)
}

// Get returns tip n, counting from 1.
func Get(n int) (Tip, error) {
	if n < 1 || n > len(all) {
		return Tip{}, fmt.Errorf("tips: no tip %d (choose 1-%d)", n, len(all))
	}
	return all[n-1], nil
}

// ListMarkdown renders the numbered list of tip titles.
func ListMarkdown() string {
	var b strings.Builder
	b.WriteString("# Mood tips\n\n")
	for i, t := range all {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.Title)
	}
	return b.String()
}

// DetailMarkdown renders a single tip.
func DetailMarkdown(t Tip) string {
	return fmt.Sprintf("# %s\n\n%s\n", t.Title, t.Detail)
}

// Render turns markdown into styled terminal output wrapped at width. When
// plain is set the markdown is returned as is.
func Render(md string, width int, plain bool) (string, error) {
	if plain {
		return md, nil
	}
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
