package calendar

import "time"

// ResolveDayType classifies a single day. Holidays take strict priority over
// weekly-off: a Friday that is also a government holiday reports as the
// holiday. An active override whose window contains the day replaces the
// standing weekly-off set entirely; otherwise defaultWeeklyOff applies as
// given, an empty set included. The no-schedule fallback to DefaultWeeklyOff
// happens in the schedule lookup, not here.
func ResolveDayType(
	day time.Time,
	holidays []Holiday,
	overrides []WeeklyOffOverride,
	defaultWeeklyOff []time.Weekday,
) DayType {
	day = Truncate(day)

	for _, h := range holidays {
		if !h.Active {
			continue
		}
		if Truncate(h.Date).Equal(day) {
			if h.Kind == HolidayGovt {
				return DayGovtHoliday
			}
			return DayOtherHoliday
		}
	}

	effective := defaultWeeklyOff
	for _, o := range overrides {
		if !o.Active {
			continue
		}
		if !day.Before(Truncate(o.StartDate)) && !day.After(Truncate(o.EndDate)) {
			effective = o.Days
			break
		}
	}

	for _, wd := range effective {
		if day.Weekday() == wd {
			return DayWeeklyOff
		}
	}

	return DayOrdinary
}
