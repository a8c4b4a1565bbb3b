package domain

import (
	"strconv"
	"strings"
)

// ReleaseDate is a release date at whatever granularity the catalog returned:
// full date, year-month, or year only. Absent components stay nil and are
// never defaulted.
type ReleaseDate struct {
	Year  *int
	Month *int
	Day   *int
}

// ParseReleaseDate parses "2021", "2021-05" or "2021-05-17". The second
// return value is false when the string is empty or the year is not numeric.
func ParseReleaseDate(raw string) (ReleaseDate, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ReleaseDate{}, false
	}

	parts := strings.Split(raw, "-")
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return ReleaseDate{}, false
	}

	rd := ReleaseDate{Year: &year}
	if len(parts) > 1 {
		if month, err := strconv.Atoi(parts[1]); err == nil {
			rd.Month = &month
		}
	}
	if len(parts) > 2 {
		if day, err := strconv.Atoi(parts[2]); err == nil {
			rd.Day = &day
		}
	}
	return rd, true
}
