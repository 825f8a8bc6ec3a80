package repository

import (
	"fmt"
	"time"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// Stored timestamps are RFC3339 with optional fractional seconds; plain
// dates come from older rows and imports.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339Nano, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// storedTimeLayout is RFC3339 with a fixed nine-digit fractional second.
// RFC3339Nano drops trailing zeros, and mixed-precision strings do not sort
// lexicographically in date order ("...T23:59:59Z" > "...T23:59:59.999Z"),
// which would break the SQL range filters and ORDER BY on the date column.
// Fixed width keeps string order identical to chronological order.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders a timestamp for storage in UTC at fixed width.
func FormatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}
