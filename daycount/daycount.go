package daycount

import (
	"fmt"
	"time"

	"github.com/meenmo/cdsmodel/dateutil"
)

// Convention is an accrual day-count convention, spelled the way the
// rest of this model's market-data conventions are (a named string type
// over its canonical code).
type Convention string

const (
	Act365F    Convention = "ACT/365F"
	Act360     Convention = "ACT/360"
	Thirty360  Convention = "30/360"
	Thirty360E Convention = "30E/360"
	ActActISDA Convention = "ACT/ACT"
	Effective  Convention = "EFFECTIVE"
)

// ParseConvention parses a day-count code, accepting the handful of
// common market aliases (e.g. "ACT/365" for the ISDA actual/actual
// convention, "BOND" for 30/360).
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "ACT/365F", "ACT365F":
		return Act365F, nil
	case "ACT/360", "ACT360":
		return Act360, nil
	case "30/360", "BOND", "30360":
		return Thirty360, nil
	case "30E/360", "30E360":
		return Thirty360E, nil
	case "ACT/ACT", "ACT/365", "ACTACTISDA":
		return ActActISDA, nil
	case "EFFECTIVE":
		return Effective, nil
	default:
		return "", fmt.Errorf("daycount.ParseConvention: unknown convention %q", s)
	}
}

// YearFraction computes the accrual fraction of a year between start and
// end under conv. It is antisymmetric: YearFraction(conv, b, a) ==
// -YearFraction(conv, a, b).
func YearFraction(conv Convention, start, end time.Time) (float64, error) {
	start = dateutil.Midnight(start)
	end = dateutil.Midnight(end)

	switch conv {
	case Act365F:
		return dateutil.Days(start, end) / 365.0, nil
	case Act360:
		return dateutil.Days(start, end) / 360.0, nil
	case Effective:
		if start.Equal(end) {
			return 0, nil
		}
		if start.Before(end) {
			return 1.0, nil
		}
		return -1.0, nil
	}

	if start.Equal(end) {
		return 0, nil
	}

	sign := 1.0
	d1, d2 := start, end
	if d1.After(d2) {
		sign = -1.0
		d1, d2 = d2, d1
	}

	switch conv {
	case Thirty360:
		days, err := thirty360Days(d1, d2, false)
		if err != nil {
			return 0, err
		}
		return sign * float64(days) / 360.0, nil
	case Thirty360E:
		days, err := thirty360Days(d1, d2, true)
		if err != nil {
			return 0, err
		}
		return sign * float64(days) / 360.0, nil
	case ActActISDA:
		return sign * actActISDA(d1, d2), nil
	default:
		return 0, fmt.Errorf("daycount.YearFraction: unsupported convention %q", conv)
	}
}

// thirty360Days computes the bond-basis day-count numerator. When
// european is false this is 30/360 (JPMCDS_B30_360): D2 only collapses
// to 30 when D2==31 AND D1==30. When european is true this is 30E/360
// (JPMCDS_B30E_360): D2 collapses to 30 whenever D2==31, independent of
// D1. d1 must not be after d2.
func thirty360Days(d1, d2 time.Time, european bool) (int, error) {
	y1, m1, day1 := d1.Year(), int(d1.Month()), d1.Day()
	y2, m2, day2 := d2.Year(), int(d2.Month()), d2.Day()

	if day1 == 31 {
		day1 = 30
	}
	if european {
		if day2 == 31 {
			day2 = 30
		}
	} else {
		if day2 == 31 && day1 == 30 {
			day2 = 30
		}
	}

	return (y2-y1)*360 + (m2-m1)*30 + (day2 - day1), nil
}

// actActISDA computes the ISDA actual/actual year fraction: for each
// calendar year the accrual period overlaps, the days falling in that
// year are divided by 366 (leap) or 365 (non-leap), and the per-year
// fractions are summed. d1 must not be after d2.
func actActISDA(d1, d2 time.Time) float64 {
	if d1.Year() == d2.Year() {
		denom := 365.0
		if dateutil.IsLeapYear(d1.Year()) {
			denom = 366.0
		}
		return dateutil.Days(d1, d2) / denom
	}

	var leapDays, nonLeapDays float64

	yearEnd1 := time.Date(d1.Year()+1, 1, 1, 0, 0, 0, 0, time.UTC)
	firstYearDays := dateutil.Days(d1, yearEnd1)
	if dateutil.IsLeapYear(d1.Year()) {
		leapDays += firstYearDays
	} else {
		nonLeapDays += firstYearDays
	}

	for y := d1.Year() + 1; y < d2.Year(); y++ {
		if dateutil.IsLeapYear(y) {
			leapDays += 366
		} else {
			nonLeapDays += 365
		}
	}

	yearStart2 := time.Date(d2.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	lastYearDays := dateutil.Days(yearStart2, d2)
	if dateutil.IsLeapYear(d2.Year()) {
		leapDays += lastYearDays
	} else {
		nonLeapDays += lastYearDays
	}

	return leapDays/366.0 + nonLeapDays/365.0
}
