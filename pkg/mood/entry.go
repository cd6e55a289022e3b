package mood

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Origin marks where an entry came from.
type Origin string

const (
	// OriginLocal entries were written to the local store.
	OriginLocal Origin = "local"
	// OriginRemote entries were fetched from the remote source.
	OriginRemote Origin = "remote"
)

// Entry is one recorded mood.
type Entry struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	Mood       string    `json:"mood"`
	MoodImage  string    `json:"moodImageResId"`
	Activities []string  `json:"activities"`
	Origin     Origin    `json:"origin,omitempty"`
	Created    Timestamp `json:"created"`
}

// New builds a local entry for label recorded at now. Activities are copied;
// nil becomes an empty list.
func New(id, label string, activities []string, now time.Time) Entry {
	return Entry{
		ID:         id,
		Date:       FormatDate(now),
		Mood:       label,
		MoodImage:  Image(label),
		Activities: CloneActivities(activities),
		Origin:     OriginLocal,
		Created:    Timestamp{Time: now},
	}
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	e.Activities = CloneActivities(e.Activities)
	return e
}

// Day parses Date. ok is false when Date is not in DateLayout.
func (e Entry) Day() (t time.Time, ok bool) {
	t, err := ParseDate(e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Row returns the display columns date, mood and activities.
func (e Entry) Row() (string, string, string) {
	return e.Date, e.Mood, strings.Join(e.Activities, ", ")
}

func (e Entry) String() string {
	if len(e.Activities) == 0 {
		return fmt.Sprintf("%s  %s", e.Date, e.Mood)
	}
	return fmt.Sprintf("%s  %s  %s", e.Date, e.Mood, strings.Join(e.Activities, ", "))
}

// CloneActivities copies in, returning an empty non-nil slice for nil input.
func CloneActivities(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// CloneEntries deep copies a list of entries. nil stays nil.
func CloneEntries(in []Entry) []Entry {
	if in == nil {
		return nil
	}
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

// Sort orders entries newest first: by Date, then Created, then ID.
// Entries with an unparseable date go last.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
}

// Less reports whether left sorts before right in newest-first order.
func Less(left, right Entry) bool {
	ld, lok := left.Day()
	rd, rok := right.Day()
	switch {
	case lok && !rok:
		return true
	case !lok && rok:
		return false
	case lok && rok && !ld.Equal(rd):
		return ld.After(rd)
	}
	lt := left.Created.Time
	rt := right.Created.Time
	switch {
	case lt.IsZero() && rt.IsZero():
		return left.ID < right.ID
	case lt.IsZero():
		return false
	case rt.IsZero():
		return true
	case lt.Equal(rt):
		return left.ID < right.ID
	default:
		return lt.After(rt)
	}
}
