package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/prompt"
	"tableflip.dev/moodlog/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}
	var activities string

	long := strings.Builder{}
	long.WriteString("Record today's mood.\n\n")
	fmt.Fprintf(&long, "Moods: %s\n", strings.Join(mood.Labels(), ", "))
	fmt.Fprintf(&long, "Suggested activities: %s\n", strings.Join(mood.DefaultActivities(), ", "))
	fmt.Fprintf(&long, "At most %d activities per entry.\n", mood.MaxActivities)

	cmd := &cobra.Command{
		Use:   "add [mood] [activity...]",
		Short: "record today's mood",
		Long:  long.String(),
		Example: `
moodlog add happy reading walking
moodlog add sad --activities "Work, Cleaning"
moodlog add -i
`,
		ValidArgs: mood.Labels(),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !i.Interactive {
				return errors.New("a mood is required, or use --interactive")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := add.Add{JSON: oo.JSON}
			if len(args) > 0 {
				label, err := options.CanonicalMood(args[0])
				if err != nil {
					return oo.HandleError(err)
				}
				a.Mood = label
				a.Activities = append(a.Activities, args[1:]...)
			}
			a.Activities = append(a.Activities, app.ParseActivities(activities)...)
			if i.Interactive {
				a.Prompt = &prompt.Prompter{In: os.Stdin, Out: os.Stdout}
			}

			e, err := openEnv(os.Stderr)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()
			a.Service = e.Service

			err = a.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&activities, "activities", "a", "",
		"Comma separated activities to record with the mood.")
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
