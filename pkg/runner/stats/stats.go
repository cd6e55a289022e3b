package stats

import (
	"context"
	"time"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/printers"
	"tableflip.dev/moodlog/pkg/timeutil"
)

// Stats prints the mood distribution of the (filtered) history.
type Stats struct {
	Service *app.Service

	Search string
	Mood   string
	Top    int
	JSON   bool

	// Since limits the history to the most recent days. Zero keeps everything.
	Since time.Duration
}

func (s *Stats) Do(ctx context.Context) error {
	entries, err := s.Service.Entries(ctx, s.Search, s.Mood)
	if err != nil {
		return err
	}
	entries = timeutil.Within(entries, s.Since, time.Now())
	st := app.Summarize(entries)
	if s.JSON {
		return printers.JSON(st)
	}
	pp := printers.PrettyPrint{}
	pp.Stats(st, s.Top)
	return nil
}
