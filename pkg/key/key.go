// Package key prints the reference of moods and suggested activities.
package key

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/printers"
)

type Key struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (k *Key) Do(ctx context.Context) error {
	k.Moods(ctx)
	k.Activities(ctx)
	return nil
}

// Moods prints every mood with its rank and image handle, best first.
func (k *Key) Moods(ctx context.Context) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Rank"), bold.Sprint("Mood"), bold.Sprint("Image"))
	for _, l := range mood.Labels() {
		tbl.AddRow(strconv.Itoa(mood.Rank(l)+1), printers.MoodColor(l).Sprint(l), mood.Image(l))
	}

	_, _ = fmt.Fprintln(k.out(), color.New(color.Bold, color.Underline).Sprint("\nMoods"))
	_, _ = fmt.Fprintln(k.out(), tbl)
}

// Activities prints the suggested activities and the per entry limit.
func (k *Key) Activities(ctx context.Context) {
	tbl := uitable.New()
	tbl.MaxColWidth = 72
	tbl.Wrap = true
	tbl.AddRow(strings.Join(mood.DefaultActivities(), ", "))

	_, _ = fmt.Fprintln(k.out(), color.New(color.Bold, color.Underline).Sprint("\nActivities"))
	_, _ = fmt.Fprintln(k.out(), tbl)
	_, _ = fmt.Fprintf(k.out(), "At most %d per entry. Any other text works too.\n", mood.MaxActivities)
}

func (k *Key) out() io.Writer {
	if k.Out != nil {
		return k.Out
	}
	return color.Output
}
