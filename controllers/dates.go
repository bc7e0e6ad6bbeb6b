package controllers

import (
	"fmt"
	"time"
)

// parseDate accepts plain dates and RFC3339 timestamps, the two formats
// the clients send.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
}

// parseDateRange reads start/end query parameters, defaulting to the
// last 30 days when absent.
func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -30)
	end := now

	var err error
	if startStr != "" {
		if start, err = parseDate(startStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if endStr != "" {
		if end, err = parseDate(endStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date is before start date")
	}
	return start, end, nil
}
