// Package calendar classifies calendar days for attendance reconciliation.
// It is pure: inputs are passed in by the caller and nothing here touches
// storage, so day-type resolution is testable in isolation.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

type DayType int

const (
	DayOrdinary DayType = iota
	DayWeeklyOff
	DayOtherHoliday
	DayGovtHoliday
)

func (d DayType) String() string {
	switch d {
	case DayGovtHoliday:
		return "GOVT_HOLIDAY"
	case DayOtherHoliday:
		return "OTHER_HOLIDAY"
	case DayWeeklyOff:
		return "WEEKLY_OFF"
	default:
		return "ORDINARY"
	}
}

type HolidayKind string

const (
	HolidayGovt  HolidayKind = "GOVT"
	HolidayOther HolidayKind = "OTHER"
)

// Holiday is the resolver's view of a holiday record.
type Holiday struct {
	Date   time.Time
	Kind   HolidayKind
	Active bool
}

// WeeklyOffOverride replaces the standing weekly-off set for days inside its
// inclusive [StartDate, EndDate] window.
type WeeklyOffOverride struct {
	StartDate time.Time
	EndDate   time.Time
	Days      []time.Weekday
	Active    bool
}

// DefaultWeeklyOff applies when no active office schedule exists.
var DefaultWeeklyOff = []time.Weekday{time.Friday, time.Saturday}

// Truncate normalizes a timestamp to midnight UTC so all day comparisons use
// date equality.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInRange returns every calendar day from start to end inclusive. The
// slice is finite and position-independent, so callers can restart a partially
// processed range from the beginning.
func DaysInRange(start, end time.Time) []time.Time {
	start = Truncate(start)
	end = Truncate(end)
	if end.Before(start) {
		return nil
	}

	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// InclusiveDays is the day span used as a leave's TotalDays.
func InclusiveDays(start, end time.Time) int {
	return len(DaysInRange(start, end))
}

// ParseWeekdays converts stored weekday names ("Friday") to time.Weekday.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, err := parseWeekday(name)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday name: %q", name)
}
