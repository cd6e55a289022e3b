package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/moodlog/pkg/printers"
	"tableflip.dev/moodlog/pkg/settings"
)

// Settings shows the preferences, or changes one when Key is set.
type Settings struct {
	Store *settings.Store

	Key   string
	Value string
	JSON  bool
}

func (s *Settings) Do(ctx context.Context) error {
	current := s.Store.Load()
	if s.Key != "" {
		var err error
		if current, err = s.Store.Set(s.Key, s.Value); err != nil {
			return err
		}
	}
	if s.JSON {
		return printers.JSON(current)
	}

	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Setting"), bold.Sprint("Value"))
	tbl.AddRow(settings.KeyNotifications, strconv.FormatBool(current.Notifications))
	tbl.AddRow(settings.KeySounds, strconv.FormatBool(current.Sounds))
	tbl.AddRow(settings.KeyLanguage, current.Language)
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
	return nil
}
