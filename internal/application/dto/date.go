package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire layout of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date. It unmarshals from "2006-01-02" or RFC 3339 and
// marshals as "2006-01-02". The zero Date marshals as null.
type Date struct {
	time.Time
}

// NewDate wraps t.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// UnmarshalJSON accepts null, "", a date or an RFC 3339 timestamp.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	for _, layout := range []string{DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Date{Time: t.UTC()}
			return nil
		}
	}
	return fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
}

// MarshalJSON renders the date as "2006-01-02".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}
