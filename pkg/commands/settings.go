package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
	runsettings "tableflip.dev/moodlog/pkg/runner/settings"
	"tableflip.dev/moodlog/pkg/settings"
	"tableflip.dev/moodlog/pkg/store"
)

func addSettings(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "show the user preferences",
		Example: `
moodlog settings
moodlog settings set sounds false
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := store.LoadConfig(); err != nil {
				return oo.HandleError(err)
			}
			s := runsettings.Settings{Store: settings.New(nil, store.ConfigFile()), JSON: oo.JSON}
			err := s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}
	options.AddOutputArg(cmd, oo)

	set := &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "change a preference",
		Args:      cobra.ExactArgs(2),
		ValidArgs: settings.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := store.LoadConfig(); err != nil {
				return oo.HandleError(err)
			}
			s := runsettings.Settings{
				Store: settings.New(nil, store.ConfigFile()),
				Key:   args[0],
				Value: args[1],
				JSON:  oo.JSON,
			}
			err := s.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}
	options.AddOutputArg(set, oo)
	cmd.AddCommand(set)

	topLevel.AddCommand(cmd)
}
