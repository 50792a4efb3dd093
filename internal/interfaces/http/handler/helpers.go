package handler

import "time"

// timeFormat is the timestamp layout used in API responses
const timeFormat = time.RFC3339

// dateFormat is the layout for expiry and manufacture dates
const dateFormat = "2006-01-02"

// parseDate parses a date string, accepting a bare date or a full
// RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateFormat, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// formatTimePtr formats an optional timestamp, returning "" for nil
func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeFormat)
}
