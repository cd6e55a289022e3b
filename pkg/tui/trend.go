package tui

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/moodlog/pkg/mood"
)

// Average is the mean mood rank of entries, 0 for Happy up to 4 for Bad.
// ok is false when no entry has a known mood.
func Average(entries []mood.Entry) (avg float64, ok bool) {
	n := 0
	sum := 0
	for _, e := range entries {
		if !mood.Valid(e.Mood) {
			continue
		}
		sum += mood.Rank(e.Mood)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// TrendColor blends from the Happy color to the Bad color by avg.
func TrendColor(avg float64) string {
	best, err := colorful.Hex(moodColors[mood.Happy])
	if err != nil {
		return moodColors[mood.Neutral]
	}
	worst, err := colorful.Hex(moodColors[mood.Bad])
	if err != nil {
		return moodColors[mood.Neutral]
	}
	last := float64(len(mood.Labels()) - 1)
	t := avg / last
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return best.BlendLab(worst, t).Clamped().Hex()
}

// Nearest is the mood label closest to avg.
func Nearest(avg float64) string {
	labels := mood.Labels()
	i := int(avg + 0.5)
	if i < 0 {
		i = 0
	}
	if i >= len(labels) {
		i = len(labels) - 1
	}
	return labels[i]
}
