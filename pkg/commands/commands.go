package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/moodlog/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "moodlog",
		Short: base.Wrap80("Mood journaling on the command line."),
		Long: base.Wrap80("Record how you feel each day together with what you did, " +
			"then browse, filter and edit the history from the terminal."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addDemo(topLevel)
	addKey(topLevel)
	addAdd(topLevel)
	addList(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addSync(topLevel)
	addStats(topLevel)
	addCalendar(topLevel)
	addTips(topLevel)
	addSettings(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
