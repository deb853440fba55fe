// Package dateutil provides small date-arithmetic helpers shared by the
// calendar, day-count, date-interval, and schedule packages, built
// directly on time.Time rather than a hand-rolled serial-day epoch: Go's
// proleptic Gregorian arithmetic already round-trips a date through its
// year/month/day components exactly.
package dateutil

import (
	"sort"
	"time"
)

// Midnight truncates t to UTC midnight, the canonical representation for
// every date value handled by this module.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MDY is the proleptic-Gregorian (year, month, day) tuple.
type MDY struct {
	Year  int
	Month time.Month
	Day   int
}

// DateToMDY decomposes a date into its (year, month, day) tuple.
func DateToMDY(t time.Time) MDY {
	y, m, d := t.Date()
	return MDY{Year: y, Month: m, Day: d}
}

// MDYToDate reconstructs a date from its (year, month, day) tuple.
func MDYToDate(mdy MDY) time.Time {
	return time.Date(mdy.Year, mdy.Month, mdy.Day, 0, 0, 0, 0, time.UTC)
}

// SortDates sorts a slice of time.Time in ascending order.
func SortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}

// IsAscending reports whether dates is strictly increasing.
func IsAscending(dates []time.Time) bool {
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			return false
		}
	}
	return true
}

// AdjacentDates returns the two dates from a sorted date slice that bracket
// target. It assumes dates is sorted in ascending order and has at least two
// elements. If target is outside the provided range, it returns the nearest
// boundary pair.
func AdjacentDates(target time.Time, dates []time.Time) (time.Time, time.Time) {
	if len(dates) < 2 {
		panic("dateutil.AdjacentDates: need at least 2 dates")
	}

	// First index with dates[i] >= target.
	i := sort.Search(len(dates), func(i int) bool {
		return !dates[i].Before(target)
	})

	if i <= 0 {
		return dates[0], dates[1]
	}
	if i >= len(dates) {
		return dates[len(dates)-2], dates[len(dates)-1]
	}
	return dates[i-1], dates[i]
}

// Days returns the actual day count between two dates (end − start), signed.
func Days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// MonthInt returns the numeric month.
func MonthInt(t time.Time) int {
	return int(t.Month())
}

// IsLeapYear reports whether year is a leap year under the proleptic
// Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month of year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EndOfMonth returns the last calendar day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), DaysInMonth(t.Year(), t.Month()), 0, 0, 0, 0, time.UTC)
}

// IsLastDayOfMonth reports whether t falls on the last calendar day of its
// month (the roll convention for "EOM" date intervals).
func IsLastDayOfMonth(t time.Time) bool {
	return t.Day() == DaysInMonth(t.Year(), t.Month())
}

// AddMonth behaves like Excel's EDATE, avoiding Go's AddDate month-overflow
// normalization (e.g. Jan 31 + 1M must land on Feb 28/29, not Mar 3).
func AddMonth(t time.Time, months int) time.Time {
	target := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	naive := t.AddDate(0, months, 0)
	if target.Month() == naive.Month() {
		return naive
	}

	d := naive
	origMonth := MonthInt(d)
	for MonthInt(d) == origMonth {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// NthWeekday returns the date of the n-th occurrence (1-based) of weekday in
// the given year/month — e.g. NthWeekday(2024, time.June, time.Friday, 3) is
// the third Friday of June 2024, used for the "T" (3rd-Friday) date-interval
// kind.
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	day := 1 + offset + 7*(n-1)
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// RoundTo rounds a float to the specified number of decimal places.
func RoundTo(val float64, decimals int) float64 {
	pow := 1.0
	for i := 0; i < decimals; i++ {
		pow *= 10
	}
	rounded := val * pow
	if rounded >= 0 {
		rounded += 0.5
	} else {
		rounded -= 0.5
	}
	return float64(int64(rounded)) / pow
}
