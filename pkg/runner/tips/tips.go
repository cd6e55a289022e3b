package tips

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/moodlog/pkg/printers"
	"tableflip.dev/moodlog/pkg/tips"
)

// Tips shows the list of mood tips, or one of them.
type Tips struct {
	// N selects a single tip, counting from 1. Zero lists them all.
	N     int
	Width int
	JSON  bool
}

func (t *Tips) Do(ctx context.Context) error {
	if t.JSON {
		if t.N == 0 {
			return printers.JSON(tips.All())
		}
		tip, err := tips.Get(t.N)
		if err != nil {
			return err
		}
		return printers.JSON(tip)
	}

	md := tips.ListMarkdown()
	if t.N != 0 {
		tip, err := tips.Get(t.N)
		if err != nil {
			return err
		}
		md = tips.DetailMarkdown(tip)
	}

	plain := !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
	out, err := tips.Render(md, t.Width, plain)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(color.Output, out)
	return nil
}
