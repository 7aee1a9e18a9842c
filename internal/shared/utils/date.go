package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates (birthDate, publishedDate).
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate accepts an ISO-8601 date or date-time and returns the calendar date at UTC midnight.
// Date-times with an offset are converted to UTC first.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.UTC().Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not an ISO-8601 date", s)
}

// ParseOptionalDate parses s when present; nil and blank stay absent.
func ParseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders a nullable date in DateLayout.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// IsDate is an ozzo-validation compatible rule body for optional ISO-8601 date strings.
func IsDate(value interface{}) error {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		if _, err := ParseDate(v); err != nil {
			return fmt.Errorf("must be a valid ISO 8601 date string")
		}
	case *string:
		if v == nil {
			return nil
		}
		return IsDate(*v)
	}
	return nil
}
