package add

import (
	"context"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/mood"
	"tableflip.dev/moodlog/pkg/printers"
	"tableflip.dev/moodlog/pkg/prompt"
)

// Add records today's mood.
type Add struct {
	Service *app.Service

	Mood       string
	Activities []string

	// Prompt, when set, asks for whatever Mood and Activities leave out.
	Prompt *prompt.Prompter
	JSON   bool
}

func (a *Add) Do(ctx context.Context) error {
	if a.Prompt != nil {
		if a.Mood == "" {
			m, err := a.Prompt.Mood()
			if err != nil {
				return err
			}
			a.Mood = m
		}
		if len(a.Activities) == 0 {
			acts, err := a.Prompt.Activities(mood.DefaultActivities(), mood.MaxActivities)
			if err != nil {
				return err
			}
			a.Activities = acts
		}
	}

	e, err := a.Service.Add(ctx, a.Mood, a.Activities)
	if err != nil {
		return err
	}

	if a.JSON {
		return printers.JSON(e)
	}
	pp := printers.PrettyPrint{}
	pp.Title("Saved")
	pp.Entry(e)
	return nil
}
