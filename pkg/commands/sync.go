package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/runner/stats"
	"tableflip.dev/moodlog/pkg/runner/sync"
)

func addSync(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "import entries from the configured remote",
		Long: `Fetches entries from remote.url and stores the ones whose id is not known
locally. Existing entries are never overwritten.`,
		Example: `
MOODLOG_REMOTE_URL=https://example.com/moods moodlog sync
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(os.Stderr)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()

			s := sync.Sync{Service: e.Service, ShowID: io.ShowID, JSON: oo.JSON}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addStats(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	var top int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "count moods and the most frequent activities",
		Example: `
moodlog stats
moodlog stats --search work --top 3
moodlog stats --since 1mo
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

			s := stats.Stats{
				Service: e.Service,
				Search:  fo.Search,
				Mood:    fo.Mood,
				Top:     top,
				JSON:    oo.JSON,
				Since:   fo.Window,
			}
			err = s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	cmd.Flags().IntVar(&top, "top", 5, "Number of activities to show.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
