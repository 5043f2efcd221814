package dateutil

import (
	"fmt"
	"time"
)

// DisplayLayout is the dd-MM-yyyy HH:mm layout used for printed timestamps
const DisplayLayout = "02-01-2006 15:04"

// KeyLayout is the layout of date keys (YYYY-MM-DD)
const KeyLayout = "2006-01-02"

// leapYear is any leap year, used to bound month/day pairs that are valid in some year
const leapYear = 2000

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// AddDays moves the date by n calendar days and resets the clock to the given hour and minute
func AddDays(date time.Time, n, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day()+n, hour, minute, 0, 0, date.Location())
}

// TimeOfDay returns the wall-clock offset of date from its midnight
func TimeOfDay(date time.Time) time.Duration {
	return time.Duration(date.Hour())*time.Hour +
		time.Duration(date.Minute())*time.Minute +
		time.Duration(date.Second())*time.Second +
		time.Duration(date.Nanosecond())
}

// SubMinute returns the seconds and nanoseconds past the start of the date's minute
func SubMinute(date time.Time) time.Duration {
	return time.Duration(date.Second())*time.Second + time.Duration(date.Nanosecond())
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// DateKey returns the YYYY-MM-DD key of the date, ignoring the time of day
func DateKey(date time.Time) string {
	return date.Format(KeyLayout)
}

// DaysInMonth returns the number of days of month in year
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MaxDaysInMonth returns the number of days of month in a leap year
func MaxDaysInMonth(month time.Month) int {
	return DaysInMonth(leapYear, month)
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		DisplayLayout,
		"02-01-2006",
		KeyLayout,
		"02.01.2006",
		"2006-01-02 15:04",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %q", dateStr)
}
