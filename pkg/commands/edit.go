package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/prompt"
	"tableflip.dev/moodlog/pkg/runner/edit"
	"tableflip.dev/moodlog/pkg/runner/remove"
)

func addEdit(topLevel *cobra.Command) {
	var (
		label      string
		activities string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "change the mood or activities of an entry",
		Long: `Change the mood and/or activities of an entry. Find ids with "moodlog list --ids".
Flags that are not set leave the field alone; --activities "" clears the list.`,
		Example: `
moodlog edit 0f6c2a --mood good
moodlog edit 0f6c2a --activities "Reading, Family"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := edit.Edit{ID: args[0], JSON: oo.JSON}
			if cmd.Flags().Changed("mood") {
				m, err := options.CanonicalMood(label)
				if err != nil {
					return oo.HandleError(err)
				}
				r.Options.Mood = &m
			}
			if cmd.Flags().Changed("activities") {
				acts := app.ParseActivities(activities)
				r.Options.Activities = &acts
			}

			e, err := openEnv(os.Stderr)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()
			r.Service = e.Service

			err = r.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&label, "mood", "m", "", "New mood for the entry.")
	cmd.Flags().StringVarP(&activities, "activities", "a", "", "Comma separated activities replacing the current ones.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "delete an entry",
		Example: `
moodlog delete 0f6c2a
moodlog rm 0f6c2a --yes
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(os.Stderr)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()

			r := remove.Remove{Service: e.Service, ID: args[0], JSON: oo.JSON}
			if !yes && !oo.JSON {
				p := prompt.Prompter{In: os.Stdin, Out: os.Stdout}
				r.Confirm = func(s fmt.Stringer) bool {
					return p.Confirm("Delete " + s.String())
				}
			}
			err = r.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
