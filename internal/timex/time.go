// Package timex holds small time helpers shared by config parsing and the
// journal date model.
package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Duration wraps time.Duration so JSON configs can specify intervals either
// as strings like "5s" or as integer nanoseconds.
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

// ISODateLayout is the canonical layout for journal entry dates.
const ISODateLayout = "2006-01-02"

// ParseISODate parses an ISO journal date ("2006-01-02") in UTC.
func ParseISODate(date string) (time.Time, error) {
	t, err := time.Parse(ISODateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// MonthOf returns the year and 1-based month an ISO date belongs to.
func MonthOf(date string) (int, int, error) {
	t, err := ParseISODate(date)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), int(t.Month()), nil
}

// Today formats now as an ISO journal date in the local timezone.
func Today(now time.Time) string {
	return now.Format(ISODateLayout)
}
