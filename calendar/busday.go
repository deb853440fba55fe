package calendar

import (
	"sort"
	"time"

	"github.com/meenmo/cdsmodel/dateutil"
)

// Convention is a business-day adjustment rule, identified by a
// single-character code.
type Convention byte

const (
	// None applies no adjustment.
	None Convention = 'N'
	// Following rolls forward to the next business day.
	Following Convention = 'F'
	// Previous rolls backward to the prior business day.
	Previous Convention = 'P'
	// ModifiedFollowing rolls forward unless that crosses a month
	// boundary, in which case it rolls backward instead.
	ModifiedFollowing Convention = 'M'
)

// ParseConvention parses a single-character (case-insensitive) bad-day
// convention code.
func ParseConvention(s string) (Convention, error) {
	if len(s) != 1 {
		return 0, newErr(InvalidInput, "ParseConvention", "convention %q must be a single character", s)
	}
	switch c := Convention(upperByte(s[0])); c {
	case None, Following, Previous, ModifiedFollowing:
		return c, nil
	default:
		return 0, newErr(InvalidInput, "ParseConvention", "unknown bad-day convention %q", s)
	}
}

func upperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// IsBusinessDay reports whether d is neither a holiday nor a masked
// weekend day on cal.
func IsBusinessDay(cal *Calendar, d time.Time) bool {
	d = dateutil.Midnight(d)
	if cal.Weekend.IsWeekend(d.Weekday()) {
		return false
	}
	return !isHoliday(cal, d)
}

func isHoliday(cal *Calendar, d time.Time) bool {
	i := sort.Search(len(cal.Holidays), func(i int) bool {
		return !cal.Holidays[i].Before(d)
	})
	return i < len(cal.Holidays) && cal.Holidays[i].Equal(d)
}

// Adjust applies the given bad-day convention to d on cal.
func Adjust(d time.Time, conv Convention, cal *Calendar) time.Time {
	d = dateutil.Midnight(d)
	switch conv {
	case None:
		return d
	case Following:
		return rollForward(d, cal)
	case Previous:
		return rollBackward(d, cal)
	case ModifiedFollowing:
		adjusted := rollForward(d, cal)
		if adjusted.Month() != d.Month() {
			return rollBackward(d, cal)
		}
		return adjusted
	default:
		return d
	}
}

func rollForward(d time.Time, cal *Calendar) time.Time {
	for !IsBusinessDay(cal, d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func rollBackward(d time.Time, cal *Calendar) time.Time {
	for !IsBusinessDay(cal, d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// mondayIndex maps a time.Weekday to a Monday-first ordinal (Monday=0 ..
// Sunday=6), matching the row/column order of the historical ISDA
// business-day tables below.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// offsetTable[dayOfWeek][nDays] is the number of calendar days to add to a
// date to advance nDays (0..4) business days forward, for the standard
// Saturday+Sunday weekend with no holidays.
var offsetTable = [7][5]int{
	/* Monday    */ {0, 1, 2, 3, 4},
	/* Tuesday   */ {0, 1, 2, 3, 6},
	/* Wednesday */ {0, 1, 2, 5, 6},
	/* Thursday  */ {0, 1, 4, 5, 6},
	/* Friday    */ {0, 3, 4, 5, 6},
	/* Saturday  */ {-1, 2, 3, 4, 5},
	/* Sunday    */ {-2, 1, 2, 3, 4},
}

// fwdDiffTable and bwdDiffTable give the number of business days between
// two weekdays within the same calendar week, for the standard weekend.
// They are deliberately NOT negations of one another: counting forward
// from Friday to Monday and counting backward from Monday to Friday
// don't pass through the same intervening weekend in a symmetric way,
// and this table preserves that asymmetry rather than "correcting" it.
var fwdDiffTable = [7][7]int{
	/*            Mo  Tu  We  Th  Fr  Sa  Su */
	/* Monday */ {0, 1, 2, 3, 4, 4, 4},
	/* Tuesday */ {4, 0, 1, 2, 3, 3, 3},
	/* Wednesday */ {3, 4, 0, 1, 2, 2, 2},
	/* Thursday */ {2, 3, 4, 0, 1, 1, 1},
	/* Friday */ {1, 2, 3, 4, 0, 0, 0},
	/* Saturday */ {1, 2, 3, 4, 5, 0, 0},
	/* Sunday */ {1, 2, 3, 4, 5, 5, 0},
}

var bwdDiffTable = [7][7]int{
	/*            Mo  Tu  We  Th  Fr  Sa  Su */
	/* Monday */ {0, -1, -2, -3, -4, -5, -5},
	/* Tuesday */ {-4, 0, -1, -2, -3, -4, -4},
	/* Wednesday */ {-3, -4, 0, -1, -2, -3, -3},
	/* Thursday */ {-2, -3, -4, 0, -1, -2, -2},
	/* Friday */ {-1, -2, -3, -4, 0, -1, -1},
	/* Saturday */ {0, -1, -2, -3, -4, 0, 0},
	/* Sunday */ {0, -1, -2, -3, -4, -5, 0},
}

// AddBusinessDays advances d by n business days on cal (n may be
// negative). When cal has no holidays and no weekend mask at all, this is
// exactly d+n days. When cal has the standard Saturday+Sunday weekend,
// no holidays, and n is non-negative, the 7x5 offset table above is used
// to jump whole weeks at a time. Every other combination walks day by day
// — correct for arbitrary weekend masks and holiday sets, at the cost of
// the fast path's O(1) table lookup.
func AddBusinessDays(cal *Calendar, d time.Time, n int) time.Time {
	d = dateutil.Midnight(d)

	if len(cal.Holidays) == 0 && cal.Weekend == NoWeekend {
		return d.AddDate(0, 0, n)
	}

	if len(cal.Holidays) == 0 && cal.Weekend == StandardWeekend && n >= 0 {
		weeks := n / 5
		rem := n % 5
		return d.AddDate(0, 0, 7*weeks+offsetTable[mondayIndex(d.Weekday())][rem])
	}

	step := 1
	remaining := n
	if n < 0 {
		step = -1
		remaining = -n
	}
	cur := d
	for remaining > 0 {
		cur = cur.AddDate(0, 0, step)
		if IsBusinessDay(cal, cur) {
			remaining--
		}
	}
	return cur
}

// BusinessDaysBetween returns the signed number of business days between a
// and b on cal, with sign equal to sign(b-a). It first computes a
// closed-form weekday count via the (asymmetric) forward/backward tables
// above, then subtracts the count of weekday holidays found by binary
// search into cal.Holidays.
func BusinessDaysBetween(cal *Calendar, a, b time.Time) int {
	a = dateutil.Midnight(a)
	b = dateutil.Midnight(b)
	if a.Equal(b) {
		return 0
	}

	signum := 1
	if b.Before(a) {
		signum = -1
	}

	var raw int
	switch {
	case cal.Weekend == StandardWeekend:
		diffDays := int(dateutil.Days(a, b))
		weeks := diffDays / 7 // truncation toward zero, matching the C integer division
		cur := a.AddDate(0, 0, 7*weeks)
		if cur.After(b) {
			raw = weeks*5 + bwdDiffTable[mondayIndex(b.Weekday())][mondayIndex(a.Weekday())]
		} else {
			raw = weeks*5 + fwdDiffTable[mondayIndex(a.Weekday())][mondayIndex(b.Weekday())]
		}
	case cal.Weekend == NoWeekend:
		raw = int(dateutil.Days(a, b))
	default:
		busDaysPerWeek := cal.Weekend.BusinessDaysPerWeek()
		diffDays := int(dateutil.Days(a, b))
		weeks := diffDays / 7
		if weeks < 0 {
			weeks = -weeks
		}
		cur := a.AddDate(0, 0, 7*weeks*signum)
		extra := 0
		for !cur.Equal(b) {
			cur = cur.AddDate(0, 0, signum)
			if !cal.Weekend.IsWeekend(cur.Weekday()) {
				extra++
			}
		}
		raw = (weeks*busDaysPerWeek + extra) * signum
	}

	numHolidays := countWeekdayHolidays(cal, a, b, signum)
	return raw - numHolidays*signum
}

// countWeekdayHolidays counts the holidays after the earlier of a and b up
// to and including the later one, the order given by signum (all stored
// holidays are already non-weekend,
// per the Calendar invariant).
func countWeekdayHolidays(cal *Calendar, a, b time.Time, signum int) int {
	if len(cal.Holidays) == 0 {
		return 0
	}
	var lo, hi time.Time
	if signum > 0 {
		lo, hi = a, b
	} else {
		lo, hi = b, a
	}
	lower := sort.Search(len(cal.Holidays), func(i int) bool {
		return cal.Holidays[i].After(lo)
	})
	upper := sort.Search(len(cal.Holidays), func(i int) bool {
		return cal.Holidays[i].After(hi)
	})
	return upper - lower
}

// NextBusinessDayMulti advances d in the given direction (+1 or -1) until
// it is a business day on every calendar in cals. A day is good only if
// it is good in every calendar; whenever the candidate is bad in some
// calendar it is stepped once and rescanned from calendar 0.
func NextBusinessDayMulti(d time.Time, direction int, cals []*Calendar) time.Time {
	d = dateutil.Midnight(d)
	if direction == 0 {
		direction = 1
	}
	n := 0
	for n < len(cals) {
		if IsBusinessDay(cals[n], d) {
			n++
			continue
		}
		d = d.AddDate(0, 0, direction)
		n = 0
	}
	return d
}
