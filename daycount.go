package dcf

import "time"

// DaysInYear is the default denominator used to convert a day count into a
// year fraction. 365.25 accounts for leap years on average, matching the
// library's default day-count convention.
var DaysInYear = 365.25

// Period is a signed, calendar-aware step (years, months, days) that can be
// added to or subtracted from a Date. It plays the role the source
// library's BusinessPeriod plays for DateCurve arithmetic, without the
// holiday-calendar machinery that collaborator owns.
type Period struct {
	Years  int
	Months int
	Days   int
}

// Negate returns the period stepped in the opposite direction.
func (p Period) Negate() Period {
	return Period{Years: -p.Years, Months: -p.Months, Days: -p.Days}
}

// Date is an opaque, ordered point in time. It wraps time.Time rather than
// exposing it directly so callers go through the comparison and arithmetic
// methods instead of reaching for calendar-arithmetic helpers this library
// does not own.
type Date struct {
	t time.Time
}

// NewDate wraps a time.Time as a Date, forcing UTC.
func NewDate(t time.Time) Date {
	return Date{t: t.UTC()}
}

// ParseDate builds a Date from one or two human-friendly period strings,
// taking the midpoint of the period(s) described. See [StringToTime] for the
// supported formats.
func ParseDate(periods ...string) (Date, error) {
	t, err := StringToTime(periods...)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

// Time returns the underlying time.Time, in UTC.
func (d Date) Time() time.Time { return d.t }

// Before reports whether d occurs strictly before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// Equal reports whether d and other denote the same instant.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// After reports whether d occurs strictly after other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// AddPeriod returns d stepped by p.
func (d Date) AddPeriod(p Period) Date {
	return NewDate(d.t.AddDate(p.Years, p.Months, p.Days))
}

// DiffDays returns the signed number of days from other to d.
func (d Date) DiffDays(other Date) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

// DayCount is a year-fraction function τ(s, e) between two dates.
type DayCount func(s, e Date) float64

// Act365 is the library's default day-count convention:
// τ(s, e) = (e - s).days / DaysInYear.
func Act365(s, e Date) float64 {
	return e.t.Sub(s.t).Hours() / 24 / DaysInYear
}

// CalendarYears counts whole calendar years between s and e, then expresses
// the remainder as a fraction of the partial year's actual length. It is an
// alternate, calendar-aware day-count convention retained for callers who
// need exact leap-year-aware year counting (e.g. bond accrual conventions
// that are anchored to anniversaries) rather than the library's flat
// Act365 default.
func CalendarYears(s, e Date) float64 {
	return yearsBetween(s.t, e.t)
}

// yearsBetween counts whole anniversaries of s up to e, plus the remainder
// divided by the length of the year that follows the last anniversary.
func yearsBetween(s, e time.Time) float64 {
	if e.Before(s) {
		return -yearsBetween(e, s)
	}
	years := e.Year() - s.Year()
	anniv := s.AddDate(years, 0, 0)
	if anniv.After(e) {
		years--
		anniv = s.AddDate(years, 0, 0)
	}
	next := s.AddDate(years+1, 0, 0)
	return float64(years) + e.Sub(anniv).Hours()/next.Sub(anniv).Hours()
}
