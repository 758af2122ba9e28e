// Package timex holds time helpers shared by configuration and storage.
package timex

import (
	"encoding/json"
	"errors"
	"time"
)

// Duration wraps time.Duration so that it can be read from JSON either as
// a string understood by time.ParseDuration ("5s", "1m30s") or as an
// integer number of nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// FormatTimestamp renders t as stored in the database: UTC, RFC3339 with
// nanoseconds. Lexical order of the result matches chronological order.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(RFC3339NanoFixed)
}

// ParseTimestamp is the inverse of FormatTimestamp. Plain RFC3339 values
// with any offset are accepted too, as is SQLite's CURRENT_TIMESTAMP form.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t2, err2 := time.Parse(sqliteDateTime, s)
		if err2 != nil {
			return time.Time{}, err
		}
		t = t2
	}
	return t.UTC(), nil
}

const sqliteDateTime = "2006-01-02 15:04:05"

// RFC3339NanoFixed always prints nine fractional digits, unlike
// time.RFC3339Nano which trims trailing zeros and breaks lexical ordering.
const RFC3339NanoFixed = "2006-01-02T15:04:05.000000000Z07:00"
