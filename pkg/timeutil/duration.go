// Package timeutil parses the day based windows used to limit the history to
// recent entries.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/moodlog/pkg/mood"
)

const day = 24 * time.Hour

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]time.Duration{
		"d":      day,
		"day":    day,
		"days":   day,
		"w":      7 * day,
		"wk":     7 * day,
		"wks":    7 * day,
		"week":   7 * day,
		"weeks":  7 * day,
		"mo":     30 * day,
		"month":  30 * day,
		"months": 30 * day,
		"y":      365 * day,
		"yr":     365 * day,
		"year":   365 * day,
		"years":  365 * day,
	}
)

// ParseWindow parses a window such as "3d", "2w" or "1mo2w" and returns it
// with its canonical spelling. An empty input is no window: zero and "".
// Entries are dated by day, so a day is the smallest unit.
func ParseWindow(input string) (time.Duration, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, "", nil
	}

	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		unit, ok := unitMap[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q", matches[2])
		}
		total += time.Duration(value) * unit
		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("window must be at least one day")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders a window using year/month/week/day tokens.
func FormatWindow(d time.Duration) string {
	if d < day {
		return "0d"
	}

	units := []struct {
		label string
		value time.Duration
	}{
		{"y", 365 * day},
		{"mo", 30 * day},
		{"w", 7 * day},
		{"d", day},
	}

	var b strings.Builder
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		fmt.Fprintf(&b, "%d%s", count, u.label)
	}
	return b.String()
}

// Cutoff is the first day inside a window ending today. A one week window
// starts six days before now.
func Cutoff(now time.Time, window time.Duration) time.Time {
	days := int(window / day)
	if days < 1 {
		days = 1
	}
	y, m, d := now.In(time.Local).Date()
	return time.Date(y, m, d-(days-1), 0, 0, 0, 0, time.Local)
}

// Within keeps the entries dated inside window, in input order. A zero window
// keeps everything. Entries with an unreadable date are dropped.
func Within(entries []mood.Entry, window time.Duration, now time.Time) []mood.Entry {
	if window <= 0 {
		return entries
	}
	cutoff := Cutoff(now, window)
	out := make([]mood.Entry, 0, len(entries))
	for _, e := range entries {
		if t, ok := e.Day(); ok && !t.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}
