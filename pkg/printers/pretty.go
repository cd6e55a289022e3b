package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/mood"
)

type PrettyPrint struct {
	ShowID bool

	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("0f8fad5b-d9cb-469f-a165-70867728950e  "))
)

// MoodColor is the color a mood label is printed in.
func MoodColor(label string) *color.Color {
	switch label {
	case mood.Happy:
		return color.New(color.FgHiGreen, color.Bold)
	case mood.Good:
		return color.New(color.FgGreen)
	case mood.Neutral:
		return color.New(color.FgYellow)
	case mood.Sad:
		return color.New(color.FgBlue)
	case mood.Bad:
		return color.New(color.FgRed)
	default:
		return color.New(color.Faint)
	}
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Entries prints one row per entry: date, mood and activities.
func (pp *PrettyPrint) Entries(entries ...mood.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range entries {
		date, label, activities := e.Row()
		if activities == "" {
			activities = f.Sprint("-")
		}
		if e.Origin == mood.OriginRemote {
			activities += f.Sprint("  (remote)")
		}
		if pp.ShowID {
			tbl.AddRow(y.Sprint(e.ID), date, MoodColor(label).Sprint(label), activities)
		} else {
			tbl.AddRow(date, MoodColor(label).Sprint(label), activities)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Entry prints a single entry with its details.
func (pp *PrettyPrint) Entry(e mood.Entry) {
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(b.Sprint("id"), e.ID)
	tbl.AddRow(b.Sprint("date"), e.Date)
	tbl.AddRow(b.Sprint("mood"), MoodColor(e.Mood).Sprint(e.Mood))
	if len(e.Activities) == 0 {
		tbl.AddRow(b.Sprint("activities"), f.Sprint("-"))
	} else {
		tbl.AddRow(b.Sprint("activities"), strings.Join(e.Activities, ", "))
	}
	if e.Origin != "" {
		tbl.AddRow(b.Sprint("origin"), string(e.Origin))
	}
	if !e.Created.IsZero() {
		tbl.AddRow(b.Sprint("created"), f.Sprint(e.Created.Local().Format("2006-01-02 15:04")))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Stats prints the mood distribution as a bar chart and the top activities.
func (pp *PrettyPrint) Stats(st app.Stats, top int) {
	pp.TitleWithCount("Moods", st.Total)
	if st.Total == 0 {
		pp.none()
		return
	}
	if st.First != "" {
		_, _ = color.New(color.Faint, color.Italic).Fprintf(pp.out(), "%s - %s\n", st.First, st.Last)
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, mc := range st.Moods {
		bar := strings.Repeat("█", barWidth(mc.Count, st.Total, 30))
		c := MoodColor(mc.Mood)
		tbl.AddRow(c.Sprint(mc.Mood), fmt.Sprintf("%3d", mc.Count), c.Sprint(bar))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	activities := st.Activities
	if top > 0 && len(activities) > top {
		activities = activities[:top]
	}
	pp.TitleWithCount("Activities", len(st.Activities))
	if len(activities) == 0 {
		pp.none()
		return
	}
	tbl = uitable.New()
	tbl.Separator = "  "
	for _, ac := range activities {
		tbl.AddRow(ac.Activity, fmt.Sprintf("%3d", ac.Count))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func barWidth(n, total, width int) int {
	if total == 0 || n == 0 {
		return 0
	}
	w := n * width / total
	if w == 0 {
		w = 1
	}
	return w
}
