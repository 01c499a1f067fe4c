package utils

import (
	"strings"
	"time"
)

const (
	layoutDate   = "2006-01-02"
	layoutPeriod = "Jan 2006"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// PeriodLabel renders the billing period of a date, e.g. "Mar 2025".
func PeriodLabel(t time.Time) string {
	return t.Format(layoutPeriod)
}

// AddMonthClamped advances t by one calendar month, keeping the
// day-of-month where the target month has enough days and clamping to
// the last day otherwise: Jan 31 -> Feb 28 (29 in leap years),
// Mar 31 -> Apr 30. time.AddDate would overflow Jan 31 into Mar 2/3,
// which is never a sensible rent period boundary.
func AddMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
