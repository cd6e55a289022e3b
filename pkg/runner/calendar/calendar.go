package calendar

import (
	"context"
	"time"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/printers"
)

// Calendar prints a month, or a whole year, colored by mood.
type Calendar struct {
	Service *app.Service

	On   time.Time
	Year bool
}

func (c *Calendar) Do(ctx context.Context) error {
	entries, err := c.Service.Entries(ctx, "", mood.All)
	if err != nil {
		return err
	}
	on := c.On
	if on.IsZero() {
		on = time.Now()
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	if c.Year {
		pp.CalendarYear(on, entries...)
	} else {
		pp.Calendar(on, entries...)
	}
	pp.Legend()
	return nil
}
