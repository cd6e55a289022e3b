package ui

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/moodlog/pkg/draft"
	"tableflip.dev/moodlog/pkg/history"
	"tableflip.dev/moodlog/pkg/remote"
	"tableflip.dev/moodlog/pkg/selection"
	"tableflip.dev/moodlog/pkg/store"
	"tableflip.dev/moodlog/pkg/tui"
)

// UI runs the interactive history and selection screens.
type UI struct {
	Store  store.Store
	Remote remote.Source
	Logger *slog.Logger
}

func (u *UI) Do(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hopts := []history.Option{history.WithLogger(u.Logger)}
	if u.Remote != nil {
		hopts = append(hopts, history.WithRemote(u.Remote))
	}
	hist := history.New(u.Store, hopts...)
	sel := selection.New(draft.New(u.Store), selection.WithLogger(u.Logger))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hist.Run(gctx) })
	g.Go(func() error { return sel.Run(gctx) })

	err := tui.Run(tui.New(gctx, hist, sel))
	cancel()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	return err
}
