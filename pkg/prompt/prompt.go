// Package prompt asks for a mood and activities on the terminal.
package prompt

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/moodlog/pkg/mood"
)

// Prompter runs promptui prompts against In and Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

type choice struct {
	Name     string
	Selected bool
	Done     bool
}

func (p Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	return io.NopCloser(p.In)
}

func (p Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	return nopCloser{p.Out}
}

// Mood asks for one of the five moods.
func (p Prompter) Mood() (string, error) {
	labels := mood.Labels()

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ . | bold }}",
		Inactive: "   {{ . }}",
		Selected: "Mood: {{ . | bold | green }}",
	}

	sel := promptui.Select{
		HideHelp:  true,
		Label:     "How are you feeling",
		Items:     labels,
		Templates: templates,
		Size:      len(labels),
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}

	i, _, err := sel.Run()
	if err != nil {
		return "", err
	}
	return labels[i], nil
}

// Activities lets the user toggle up to max of the options. It returns once
// "Done" is chosen.
func (p Prompter) Activities(options []string, max int) ([]string, error) {
	selected := []string{}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "➜ {{ if .Done }}{{ .Name | bold | green }}{{ else }}{{ if .Selected }}{{ \"[x]\" | green }}{{ else }}[ ]{{ end }} {{ .Name | bold }}{{ end }}",
		Inactive: "  {{ if .Done }}{{ .Name | faint | green }}{{ else }}{{ if .Selected }}{{ \"[x]\" | green }}{{ else }}[ ]{{ end }} {{ .Name }}{{ end }}",
		Selected: "{{ if .Done }}{{ \"Activities picked\" | bold }}{{ else }}{{ .Name }}{{ end }}",
	}

	cursor := 0
	for {
		items := choices(options, selected)

		searcher := func(input string, index int) bool {
			name := strings.ToLower(items[index].Name)
			return strings.Contains(name, strings.ToLower(strings.TrimSpace(input)))
		}

		sel := promptui.Select{
			HideHelp:  true,
			Label:     fmt.Sprintf("Activities (%d/%d)", len(selected), max),
			Items:     items,
			Templates: templates,
			Size:      10,
			CursorPos: cursor,
			Searcher:  searcher,
			Stdin:     p.stdin(),
			Stdout:    p.stdout(),
		}

		i, _, err := sel.Run()
		if err != nil {
			return nil, err
		}
		if items[i].Done {
			return selected, nil
		}
		cursor = i

		var ok bool
		selected, ok = mood.ToggleActivity(selected, items[i].Name, max)
		if !ok && p.Out != nil {
			_, _ = fmt.Fprintf(p.Out, "at most %d activities\n", max)
		}
	}
}

// Confirm asks a yes/no question. Anything but yes is false.
func (p Prompter) Confirm(label string) bool {
	c := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	_, err := c.Run()
	return err == nil
}

func choices(options, selected []string) []choice {
	out := make([]choice, 0, len(options)+1)
	out = append(out, choice{Name: "Done", Done: true})
	for _, o := range options {
		c := choice{Name: o}
		for _, s := range selected {
			if s == o {
				c.Selected = true
				break
			}
		}
		out = append(out, c)
	}
	return out
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
