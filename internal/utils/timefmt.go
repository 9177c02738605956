package utils

import (
	"time"
)

const dateLayout = "2006-01-02"

// FormatDate returns the calendar date of value in the local time zone.
func FormatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(time.Local).Format(dateLayout)
}
