package list

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/printers"
	"tableflip.dev/moodlog/pkg/timeutil"
)

// List prints the stored history, newest first.
type List struct {
	Service *app.Service

	Search string
	Mood   string
	ShowID bool
	JSON   bool

	// Since limits the history to the most recent days. Zero keeps everything.
	Since time.Duration
}

func (l *List) Do(ctx context.Context) error {
	entries, err := l.Service.Entries(ctx, l.Search, l.Mood)
	if err != nil {
		return err
	}
	entries = timeutil.Within(entries, l.Since, time.Now())
	if l.JSON {
		return printers.JSON(entries)
	}

	pp := printers.PrettyPrint{ShowID: l.ShowID}
	pp.TitleWithCount(Title(l.Search, l.Mood), len(entries))
	pp.Entries(entries...)
	return nil
}

// Title describes the active filters.
func Title(search, category string) string {
	title := "History"
	if category != "" && category != mood.All {
		title += " " + category
	}
	if search != "" {
		title += fmt.Sprintf(" matching %q", search)
	}
	return title
}
