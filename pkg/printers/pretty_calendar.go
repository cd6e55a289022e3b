package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/moodlog/pkg/mood"
)

const width = len("11 12 13 14 15 16 17") // an example week

// MonthMoods maps each day of then's month to the mood of the newest entry on
// that day. Days without entries are "".
func MonthMoods(then time.Time, entries ...mood.Entry) []string {
	days := make([]string, DaysIn(then))
	sorted := mood.CloneEntries(entries)
	mood.Sort(sorted)
	for _, e := range sorted {
		day, ok := e.Day()
		if !ok || day.Year() != then.Year() || day.Month() != then.Month() {
			continue
		}
		if days[day.Day()-1] == "" {
			days[day.Day()-1] = e.Mood
		}
	}
	return days
}

// Calendar prints then's month with each day colored by its mood.
func (pp *PrettyPrint) Calendar(then time.Time, entries ...mood.Entry) {
	pp.PrintMonthMoods(then, MonthMoods(then, entries...))
}

// CalendarYear prints the twelve months of then's year.
func (pp *PrettyPrint) CalendarYear(then time.Time, entries ...mood.Entry) {
	m := time.Date(then.Year(), time.January, 1, 1, 0, 0, 0, time.Local)
	for i := 0; i < 12; i++ {
		pp.Calendar(m, entries...)
		m = NextMonth(m)
	}
}

func (pp *PrettyPrint) PrintMonthMoods(then time.Time, moods []string) {
	out := pp.out()
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	title := fmt.Sprintf("%s %d", then.Month().String(), then.Year())
	mid := (width - len(title)) / 2
	_, _ = tf.Fprintf(out, "%s%s%s\n", strings.Repeat(" ", mid), title, strings.Repeat(" ", width-mid-len(title)))

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(out, "   ")
	}

	empty := color.New(color.Faint, color.FgWhite)

	for i := 0; i < DaysIn(then); i++ {
		c := empty
		if i < len(moods) && moods[i] != "" {
			c = MoodColor(moods[i])
		}
		_, _ = c.Fprintf(out, "%2d ", i+1)

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(out, "\n")
		}
	}
	_, _ = fmt.Fprint(out, "\n\n")
}

// Legend prints each mood in its calendar color.
func (pp *PrettyPrint) Legend() {
	parts := make([]string, 0, len(mood.Labels()))
	for _, l := range mood.Labels() {
		parts = append(parts, MoodColor(l).Sprint(l))
	}
	_, _ = fmt.Fprintln(pp.out(), strings.Join(parts, "  "))
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
