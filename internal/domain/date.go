package domain

import (
	"errors"
	"strings"
	"time"
)

// DisplayDateLayout renders dates as "Mon Jan 02 2006".
const DisplayDateLayout = "Mon Jan 02 2006"

var ErrInvalidDate = errors.New("invalid date")

// Accepted input layouts, tried in order. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DisplayDateLayout,
}

// ParseDate parses a caller supplied date. An empty value yields fallback.
func ParseDate(value string, fallback time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ParseOptionalDate parses a query bound. An empty value yields nil.
func ParseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(value, time.Time{})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders t in UTC using DisplayDateLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DisplayDateLayout)
}
