package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/runner/tips"
)

func addTips(topLevel *cobra.Command) {
	var width int

	cmd := &cobra.Command{
		Use:   "tips [n]",
		Short: "suggestions for lifting a low mood",
		Example: `
moodlog tips
moodlog tips 2
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := tips.Tips{Width: width, JSON: oo.JSON}
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return oo.HandleError(fmt.Errorf("tip number expected, got %q", args[0]))
				}
				t.N = n
			}
			err := t.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 80, "Wrap the rendered text at this width.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
