package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	var (
		month string
		year  bool
	)

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "show a month colored by mood",
		Example: `
moodlog calendar
moodlog calendar --month 2025-08
moodlog cal --year
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseMonth(month, time.Now())
			if err != nil {
				return err
			}

			e, err := openEnv(os.Stderr)
			if err != nil {
				return err
			}
			defer e.Close()

			c := calendar.Calendar{Service: e.Service, On: on, Year: year}
			return c.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to show as YYYY-MM, defaults to the current month.")
	cmd.Flags().BoolVar(&year, "year", false, "Show the whole year.")

	topLevel.AddCommand(cmd)
}

// parseMonth reads YYYY-MM. An empty value means the month of now.
func parseMonth(v string, now time.Time) (time.Time, error) {
	if v == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01", v, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", v)
	}
	return t, nil
}
