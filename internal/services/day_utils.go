package services

import (
	"strings"
	"time"
)

const calendarDayLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDay keeps the wall-clock date of value and drops everything else.
// Calendar days are stored and compared as UTC midnight.
func CalendarDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func Today(now time.Time, location *time.Location) time.Time {
	return CalendarDay(DateAtLocation(now, location))
}

func DayRange(value time.Time) (time.Time, time.Time) {
	start := CalendarDay(value)
	return start, start.AddDate(0, 0, 1)
}

func ParseCalendarDay(raw string) (time.Time, error) {
	parsed, err := time.Parse(calendarDayLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return CalendarDay(parsed), nil
}

func FormatCalendarDay(value time.Time) string {
	return CalendarDay(value).Format(calendarDayLayout)
}

func daysBetween(from time.Time, to time.Time) int {
	return int(CalendarDay(to).Sub(CalendarDay(from)).Hours() / 24)
}

func addDays(value time.Time, days int) time.Time {
	return CalendarDay(value).AddDate(0, 0, days)
}

func dayPointer(value time.Time) *time.Time {
	day := CalendarDay(value)
	return &day
}
