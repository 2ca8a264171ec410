package domain

import (
	"time"

	"github.com/smallbiznis/debitplan/pkg/caldate"
)

// Inspect evaluates one date against the zone. A weekend that is also a holiday
// reports both flags.
func (z *HolidayZone) Inspect(date time.Time) DayVerdict {
	date = caldate.Normalize(date)
	verdict := DayVerdict{
		IsWeekend: caldate.IsWeekend(date, z.Weekend()),
	}
	if h, ok := matchHoliday(z.Holidays, date); ok {
		verdict.IsHoliday = true
		verdict.HolidayName = h.Name
	}
	verdict.IsBusinessDay = !verdict.IsWeekend && !verdict.IsHoliday
	return verdict
}

// NearestBusinessDay returns date itself when it is a business day, otherwise
// walks in direction for at most MaxShiftDays days.
func (z *HolidayZone) NearestBusinessDay(date time.Time, direction Direction) (time.Time, error) {
	if direction != DirectionForward && direction != DirectionBackward {
		return time.Time{}, ErrInvalidDirection
	}
	current := caldate.Normalize(date)
	for i := 0; i <= MaxShiftDays; i++ {
		if z.Inspect(current).IsBusinessDay {
			return current, nil
		}
		current = caldate.AddDays(current, direction.Step())
	}
	return time.Time{}, ErrNoBusinessDayFound
}

// Exact dates take precedence over recurring ones so the more specific name is reported.
func matchHoliday(holidays []Holiday, date time.Time) (Holiday, bool) {
	var recurring *Holiday
	for i := range holidays {
		h := &holidays[i]
		hd := caldate.Normalize(h.Date)
		if !h.Recurring && hd.Equal(date) {
			return *h, true
		}
		if h.Recurring && recurring == nil && caldate.SameMonthDay(hd, date) {
			recurring = h
		}
	}
	if recurring != nil {
		return *recurring, true
	}
	return Holiday{}, false
}
