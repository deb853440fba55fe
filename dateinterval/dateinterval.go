package dateinterval

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meenmo/cdsmodel/dateutil"
)

// Unit is the single-character period unit of an interval token.
type Unit byte

const (
	UnitDay     Unit = 'D'
	UnitWeek    Unit = 'W'
	UnitMonth   Unit = 'M'
	UnitQuarter Unit = 'Q'
	UnitSemi    Unit = 'S'
	UnitYear    Unit = 'Y'
)

// Flag is an optional roll-rule modifier riding along with a unit.
type Flag byte

const (
	// FlagNone applies no special roll rule.
	FlagNone Flag = 0
	// FlagEOM rolls to the end of the resulting month whenever the base
	// date is itself the last day of its month.
	FlagEOM Flag = 'E'
	// FlagFRN ("floating rate note") behaves like plain date math; carried
	// for parser compatibility with the reference token set.
	FlagFRN Flag = 'F'
	// FlagIMM rolls to the next quarterly IMM date (3rd Wednesday of
	// Mar/Jun/Sep/Dec) on or after the naive result.
	FlagIMM Flag = 'I'
	// FlagIMMMonthly rolls to the next monthly IMM date (3rd Wednesday of
	// any month) on or after the naive result.
	FlagIMMMonthly Flag = 'J'
	// FlagThirdFriday rolls to the 3rd Friday of the resulting month.
	FlagThirdFriday Flag = 'T'
	// FlagNoAdjust suppresses the unit's normal end-of-month/IMM roll,
	// even on inputs that would otherwise trigger it.
	FlagNoAdjust Flag = 'U'
)

// Interval is a parsed tenor token, e.g. "5Y", "3ME", "1QI".
type Interval struct {
	Count int
	Unit  Unit
	Flag  Flag
}

// Parse parses a date-interval token of the form <count><unit>[<flag>],
// e.g. "3M", "10Y", "2QI", "-5D".
func Parse(token string) (Interval, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return Interval{}, fmt.Errorf("dateinterval.Parse: empty token")
	}

	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	start := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start || i == 0 {
		return Interval{}, fmt.Errorf("dateinterval.Parse: %q has no numeric count", s)
	}
	count, err := strconv.Atoi(s[:i])
	if err != nil {
		return Interval{}, fmt.Errorf("dateinterval.Parse: %q: %w", s, err)
	}
	if i >= len(s) {
		return Interval{}, fmt.Errorf("dateinterval.Parse: %q is missing a unit letter", s)
	}

	unit := Unit(upper(s[i]))
	switch unit {
	case UnitDay, UnitWeek, UnitMonth, UnitQuarter, UnitSemi, UnitYear:
	default:
		return Interval{}, fmt.Errorf("dateinterval.Parse: %q has unknown unit %q", s, string(s[i]))
	}
	i++

	var flag Flag
	if i < len(s) {
		f := Flag(upper(s[i]))
		switch f {
		case FlagEOM, FlagFRN, FlagIMM, FlagIMMMonthly, FlagThirdFriday, FlagNoAdjust:
			flag = f
		default:
			return Interval{}, fmt.Errorf("dateinterval.Parse: %q has unknown flag %q", s, string(s[i]))
		}
		i++
	}
	if i != len(s) {
		return Interval{}, fmt.Errorf("dateinterval.Parse: %q has trailing characters", s)
	}

	return Interval{Count: count, Unit: unit, Flag: flag}, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// String renders the interval back to its canonical token form.
func (iv Interval) String() string {
	s := strconv.Itoa(iv.Count) + string(iv.Unit)
	if iv.Flag != FlagNone {
		s += string(iv.Flag)
	}
	return s
}

// monthsPerUnit gives the calendar-month count of one unit of Month,
// Quarter, Semi, or Year; zero for Day/Week, which advance by days.
func monthsPerUnit(u Unit) int {
	switch u {
	case UnitMonth:
		return 1
	case UnitQuarter:
		return 3
	case UnitSemi:
		return 6
	case UnitYear:
		return 12
	default:
		return 0
	}
}

// Add applies iv to base, returning the resulting date. Day and Week
// units advance by calendar days; Month/Quarter/Semi/Year units advance
// by calendar months (using EDATE-style arithmetic so e.g. Jan 31 + 1M
// lands on Feb 28/29, never Mar 3) and then apply iv.Flag's roll rule,
// unless FlagNoAdjust is set.
func Add(iv Interval, base time.Time) time.Time {
	base = dateutil.Midnight(base)

	var naive time.Time
	wasEOM := dateutil.IsLastDayOfMonth(base)

	switch iv.Unit {
	case UnitDay:
		naive = base.AddDate(0, 0, iv.Count)
	case UnitWeek:
		naive = base.AddDate(0, 0, 7*iv.Count)
	default:
		naive = dateutil.AddMonth(base, monthsPerUnit(iv.Unit)*iv.Count)
	}

	if iv.Flag == FlagNoAdjust {
		return naive
	}

	switch iv.Flag {
	case FlagEOM:
		if wasEOM {
			return dateutil.EndOfMonth(naive)
		}
		return naive
	case FlagIMM:
		return nextQuarterlyIMM(naive)
	case FlagIMMMonthly:
		return nextMonthlyIMM(naive)
	case FlagThirdFriday:
		return dateutil.NthWeekday(naive.Year(), naive.Month(), time.Friday, 3)
	default:
		return naive
	}
}

// nextMonthlyIMM returns the 3rd Wednesday of d's month if it falls on or
// after d, otherwise the 3rd Wednesday of the following month.
func nextMonthlyIMM(d time.Time) time.Time {
	imm := dateutil.NthWeekday(d.Year(), d.Month(), time.Wednesday, 3)
	if !imm.Before(d) {
		return imm
	}
	next := dateutil.AddMonth(d, 1)
	return dateutil.NthWeekday(next.Year(), next.Month(), time.Wednesday, 3)
}

// nextQuarterlyIMM returns the next quarterly IMM date (3rd Wednesday of
// March, June, September, or December) on or after target.
func nextQuarterlyIMM(target time.Time) time.Time {
	cursor := target
	for {
		if isIMMMonth(cursor.Month()) {
			imm := dateutil.NthWeekday(cursor.Year(), cursor.Month(), time.Wednesday, 3)
			if !imm.Before(target) {
				return imm
			}
		}
		cursor = dateutil.AddMonth(cursor, 1)
	}
}

func isIMMMonth(m time.Month) bool {
	return m == time.March || m == time.June || m == time.September || m == time.December
}
