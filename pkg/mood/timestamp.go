package mood

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the day.month.year layout entries carry.
const DateLayout = "02.01.2006"

// FormatDate renders t in DateLayout using local time.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// ParseDate parses a DateLayout string in local time.
func ParseDate(v string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, v, time.Local)
}

// Timestamp is a time that serializes as RFC3339 and as "" when zero.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.UTC().Format(time.RFC3339Nano))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}
