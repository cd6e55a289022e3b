package sync

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/printers"
)

// Sync imports remote entries that are not stored locally yet.
type Sync struct {
	Service *app.Service

	ShowID bool
	JSON   bool
}

func (s *Sync) Do(ctx context.Context) error {
	report, err := s.Service.Import(ctx)
	if err != nil {
		return err
	}
	if s.JSON {
		return printers.JSON(report)
	}

	f := color.New(color.Faint)
	_, _ = f.Fprintf(color.Output, "%s\n\n", Summary(report))

	pp := printers.PrettyPrint{ShowID: s.ShowID}
	pp.TitleWithCount("Imported", len(report.Imported))
	pp.Entries(report.Imported...)
	return nil
}

// Summary is a one line description of r.
func Summary(r app.ImportReport) string {
	return fmt.Sprintf("fetched %d, imported %d, skipped %d", r.Fetched, len(r.Imported), r.Skipped)
}
