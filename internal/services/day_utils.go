package services

import "time"

const dayFormat = "2006-01-02"

// DateOnly truncates a timestamp to its calendar date in the same location.
func DateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

// DayKey renders a calendar date as its canonical YYYY-MM-DD key.
func DayKey(value time.Time) string {
	return value.Format(dayFormat)
}

// DaysBetween counts whole calendar days from a to b.
func DaysBetween(a time.Time, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

func sameCalendarDay(a time.Time, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}
