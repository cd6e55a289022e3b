package remove

import (
	"context"
	"fmt"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/printers"
)

// Remove deletes one entry.
type Remove struct {
	Service *app.Service

	ID string
	// Confirm is asked before deleting when set.
	Confirm func(e fmt.Stringer) bool
	JSON    bool
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Confirm != nil {
		e, err := r.Service.Get(ctx, r.ID)
		if err != nil {
			return err
		}
		if !r.Confirm(e) {
			return nil
		}
	}
	e, err := r.Service.Delete(ctx, r.ID)
	if err != nil {
		return err
	}
	if r.JSON {
		return printers.JSON(e)
	}
	pp := printers.PrettyPrint{}
	pp.Title("Deleted")
	pp.Entry(e)
	return nil
}
