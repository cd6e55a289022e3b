package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/timeutil"
)

// FilterOptions narrows the history the same way the history screen does.
type FilterOptions struct {
	Search string
	Mood   string
	Since  string

	// Window is Since parsed by Validate.
	Window time.Duration
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only entries with an activity containing this text, case-insensitive.")
	cmd.Flags().StringVarP(&o.Mood, "mood", "m", mood.All,
		fmt.Sprintf("Only entries with this mood. One of %s.", strings.Join(mood.Options(), ", ")))
	cmd.Flags().StringVar(&o.Since, "since", "",
		"Only entries from this recent window, for example 3d, 2w or 1mo.")
	_ = cmd.RegisterFlagCompletionFunc("mood", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return mood.Options(), cobra.ShellCompDirectiveNoFileComp
	})
}

// Validate canonicalizes the mood flag and parses the window.
func (o *FilterOptions) Validate() error {
	window, _, err := timeutil.ParseWindow(o.Since)
	if err != nil {
		return err
	}
	o.Window = window

	if o.Mood == "" || strings.EqualFold(o.Mood, mood.All) {
		o.Mood = mood.All
		return nil
	}
	label, err := CanonicalMood(o.Mood)
	if err != nil {
		return err
	}
	o.Mood = label
	return nil
}

// CanonicalMood matches v against the mood labels ignoring case.
func CanonicalMood(v string) (string, error) {
	for _, l := range mood.Labels() {
		if strings.EqualFold(l, strings.TrimSpace(v)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", mood.ErrUnknownMood, v)
}
