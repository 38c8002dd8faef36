package dto

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// FormatDate renders an optional date, returning nil when unset.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate parses an optional YYYY-MM-DD value; blank yields nil.
func ParseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
