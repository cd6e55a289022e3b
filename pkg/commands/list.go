package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "history"},
		Short:   "list recorded moods, newest first",
		Example: `
moodlog list
moodlog list --mood sad
moodlog list --search walk --ids
moodlog list --since 2w
`,
		ValidArgs: []string{},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return fo.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(os.Stderr)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()

			l := list.List{
				Service: e.Service,
				Search:  fo.Search,
				Mood:    fo.Mood,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
				Since:   fo.Window,
			}
			err = l.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
