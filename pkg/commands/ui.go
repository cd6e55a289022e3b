package commands

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/runner/ui"
	"tableflip.dev/moodlog/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
moodlog ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			f, err := openLogFile(cfg)
			if err != nil {
				return err
			}
			e, err := openEnvWith(cfg, f)
			if err != nil {
				_ = f.Close()
				return err
			}
			e.closers = append([]io.Closer{f}, e.closers...)
			defer e.Close()

			i := ui.UI{Store: e.Store, Remote: e.Service.Remote, Logger: e.Logger}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}

func addDemo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "open the user interface over two weeks of sample entries",
		Long: `Runs the user interface against an in-memory journal seeded with sample
entries. Nothing is written to disk.`,
		Example: `
moodlog demo
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.NewMemory(ui.StaticDemo(time.Now()))
			defer s.Close()

			i := ui.UI{Store: s, Logger: newLogger(nil, "")}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
