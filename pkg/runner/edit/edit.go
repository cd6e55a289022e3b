package edit

import (
	"context"
	"errors"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/printers"
)

// Edit changes the mood or activities of one entry.
type Edit struct {
	Service *app.Service

	ID      string
	Options app.EditOptions
	JSON    bool
}

func (e *Edit) Do(ctx context.Context) error {
	if e.Options.Mood == nil && e.Options.Activities == nil {
		return errors.New("nothing to change, set --mood or --activities")
	}
	updated, err := e.Service.Edit(ctx, e.ID, e.Options)
	if err != nil {
		return err
	}
	if e.JSON {
		return printers.JSON(updated)
	}
	pp := printers.PrettyPrint{}
	pp.Title("Updated")
	pp.Entry(updated)
	return nil
}
