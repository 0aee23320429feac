package calendar_test

import (
	"testing"
	"time"

	"github.com/sohada-a2it/A2itHRMServer/internal/calendar"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysInRange(t *testing.T) {
	t.Run("inclusive span", func(t *testing.T) {
		days := calendar.DaysInRange(day(2024, 5, 1), day(2024, 5, 5))
		assert.Len(t, days, 5)
		assert.Equal(t, day(2024, 5, 1), days[0])
		assert.Equal(t, day(2024, 5, 5), days[4])
	})

	t.Run("single day", func(t *testing.T) {
		days := calendar.DaysInRange(day(2024, 5, 1), day(2024, 5, 1))
		assert.Len(t, days, 1)
	})

	t.Run("end before start is empty", func(t *testing.T) {
		assert.Empty(t, calendar.DaysInRange(day(2024, 5, 2), day(2024, 5, 1)))
	})

	t.Run("normalizes time of day", func(t *testing.T) {
		start := time.Date(2024, 5, 1, 13, 45, 0, 0, time.UTC)
		end := time.Date(2024, 5, 2, 1, 0, 0, 0, time.UTC)
		days := calendar.DaysInRange(start, end)
		assert.Len(t, days, 2)
		assert.Equal(t, day(2024, 5, 1), days[0])
	})
}

func TestResolveDayType_Holidays(t *testing.T) {
	holidays := []calendar.Holiday{
		{Date: day(2024, 5, 1), Kind: calendar.HolidayGovt, Active: true},
		{Date: day(2024, 5, 2), Kind: calendar.HolidayOther, Active: true},
		{Date: day(2024, 5, 6), Kind: calendar.HolidayGovt, Active: false},
	}

	t.Run("government holiday", func(t *testing.T) {
		got := calendar.ResolveDayType(day(2024, 5, 1), holidays, nil, calendar.DefaultWeeklyOff)
		assert.Equal(t, calendar.DayGovtHoliday, got)
	})

	t.Run("other holiday", func(t *testing.T) {
		got := calendar.ResolveDayType(day(2024, 5, 2), holidays, nil, calendar.DefaultWeeklyOff)
		assert.Equal(t, calendar.DayOtherHoliday, got)
	})

	t.Run("inactive holiday is ignored", func(t *testing.T) {
		// 2024-05-06 is a Monday, not weekly-off
		got := calendar.ResolveDayType(day(2024, 5, 6), holidays, nil, calendar.DefaultWeeklyOff)
		assert.Equal(t, calendar.DayOrdinary, got)
	})

	t.Run("holiday beats weekly off", func(t *testing.T) {
		// 2024-05-03 is a Friday, part of the default weekly-off set
		fridayHoliday := []calendar.Holiday{
			{Date: day(2024, 5, 3), Kind: calendar.HolidayGovt, Active: true},
		}
		got := calendar.ResolveDayType(day(2024, 5, 3), fridayHoliday, nil, calendar.DefaultWeeklyOff)
		assert.Equal(t, calendar.DayGovtHoliday, got)
	})
}

func TestResolveDayType_WeeklyOff(t *testing.T) {
	t.Run("default weekly off", func(t *testing.T) {
		// 2024-05-03 is a Friday
		got := calendar.ResolveDayType(day(2024, 5, 3), nil, nil, calendar.DefaultWeeklyOff)
		assert.Equal(t, calendar.DayWeeklyOff, got)
	})

	t.Run("ordinary weekday", func(t *testing.T) {
		// 2024-05-06 is a Monday
		got := calendar.ResolveDayType(day(2024, 5, 6), nil, nil, calendar.DefaultWeeklyOff)
		assert.Equal(t, calendar.DayOrdinary, got)
	})

	t.Run("empty standing set means no weekly off", func(t *testing.T) {
		// A schedule deliberately configured without off days keeps every
		// Friday ordinary; the Friday/Saturday fallback belongs to the
		// schedule lookup, not here.
		got := calendar.ResolveDayType(day(2024, 5, 3), nil, nil, nil)
		assert.Equal(t, calendar.DayOrdinary, got)
	})
}

func TestResolveDayType_OverrideWindow(t *testing.T) {
	overrides := []calendar.WeeklyOffOverride{
		{
			StartDate: day(2024, 5, 1),
			EndDate:   day(2024, 5, 7),
			Days:      []time.Weekday{time.Sunday},
			Active:    true,
		},
	}

	t.Run("override suppresses standing friday", func(t *testing.T) {
		// 2024-05-03 is a Friday but the override set is {Sunday}
		got := calendar.ResolveDayType(day(2024, 5, 3), nil, overrides, calendar.DefaultWeeklyOff)
		assert.Equal(t, calendar.DayOrdinary, got)
	})

	t.Run("override marks sunday off", func(t *testing.T) {
		// 2024-05-05 is a Sunday
		got := calendar.ResolveDayType(day(2024, 5, 5), nil, overrides, calendar.DefaultWeeklyOff)
		assert.Equal(t, calendar.DayWeeklyOff, got)
	})

	t.Run("outside window the standing set applies", func(t *testing.T) {
		// 2024-05-10 is a Friday, after the override window
		got := calendar.ResolveDayType(day(2024, 5, 10), nil, overrides, calendar.DefaultWeeklyOff)
		assert.Equal(t, calendar.DayWeeklyOff, got)
	})

	t.Run("inactive override is ignored", func(t *testing.T) {
		inactive := []calendar.WeeklyOffOverride{
			{
				StartDate: day(2024, 5, 1),
				EndDate:   day(2024, 5, 7),
				Days:      []time.Weekday{time.Sunday},
				Active:    false,
			},
		}
		got := calendar.ResolveDayType(day(2024, 5, 3), nil, inactive, calendar.DefaultWeeklyOff)
		assert.Equal(t, calendar.DayWeeklyOff, got)
	})
}

func TestParseWeekdays(t *testing.T) {
	t.Run("valid names", func(t *testing.T) {
		days, err := calendar.ParseWeekdays([]string{"Friday", "saturday"})
		assert.NoError(t, err)
		assert.Equal(t, []time.Weekday{time.Friday, time.Saturday}, days)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := calendar.ParseWeekdays([]string{"Freitag"})
		assert.Error(t, err)
	})
}
