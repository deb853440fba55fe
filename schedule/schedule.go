package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/cdsmodel/calendar"
	"github.com/meenmo/cdsmodel/dateinterval"
	"github.com/meenmo/cdsmodel/dateutil"
)

// StubPosition says whether the short/long period sits at the front or
// back of the schedule.
type StubPosition int

const (
	StubFront StubPosition = iota
	StubBack
)

// StubLength says whether the stub period is merged into a neighboring
// regular period (Long) or kept separate (Short).
type StubLength int

const (
	StubShort StubLength = iota
	StubLong
)

// StubMethod combines a position and a length, parsed from standard
// stub codes: "F" (front, short), "F/L" (front, long), "B" (back,
// short), "B/L" (back, long), etc.
type StubMethod struct {
	Position StubPosition
	Length   StubLength
}

// ParseStubMethod parses a stub-method code. A bare "F" or "B" means a
// short stub at that position; "F/S"/"B/S" are explicit synonyms; "F/L"
// and "B/L" select a long stub.
func ParseStubMethod(s string) (StubMethod, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	parts := strings.Split(s, "/")

	var pos StubPosition
	switch parts[0] {
	case "F":
		pos = StubFront
	case "B":
		pos = StubBack
	default:
		return StubMethod{}, fmt.Errorf("schedule.ParseStubMethod: unknown stub position in %q", s)
	}

	length := StubShort
	if len(parts) == 2 {
		switch parts[1] {
		case "S":
			length = StubShort
		case "L":
			length = StubLong
		default:
			return StubMethod{}, fmt.Errorf("schedule.ParseStubMethod: unknown stub length in %q", s)
		}
	} else if len(parts) > 2 {
		return StubMethod{}, fmt.Errorf("schedule.ParseStubMethod: malformed stub method %q", s)
	}

	return StubMethod{Position: pos, Length: length}, nil
}

// Period is one accrual period of a coupon schedule.
type Period struct {
	AccrualStart time.Time // never business-day adjusted
	AccrualEnd   time.Time // never business-day adjusted
	PayDate      time.Time // business-day adjusted
}

// Generate builds the coupon schedule between effective and maturity,
// rolling on couponInterval (typically "3M" for standard CDS), applying
// stubMethod when the span does not divide evenly, business-day
// adjusting only the payment dates on cal with the given convention.
//
// The accrual dates exactly tile [effective, maturity] with no gaps or
// overlaps: Period[0].AccrualStart == effective and
// Period[len-1].AccrualEnd == maturity always hold.
func Generate(effective, maturity time.Time, couponInterval dateinterval.Interval, stubMethod StubMethod, cal *calendar.Calendar, payConv calendar.Convention) ([]Period, error) {
	effective = dateutil.Midnight(effective)
	maturity = dateutil.Midnight(maturity)
	if !effective.Before(maturity) {
		return nil, fmt.Errorf("schedule.Generate: effective %s must be before maturity %s",
			effective.Format("2006-01-02"), maturity.Format("2006-01-02"))
	}

	var accrualDates []time.Time
	if stubMethod.Position == StubBack {
		accrualDates = rollForwardDates(effective, maturity, couponInterval)
	} else {
		accrualDates = rollBackwardDates(effective, maturity, couponInterval)
	}

	accrualDates = mergeStub(accrualDates, stubMethod, couponInterval)

	periods := make([]Period, 0, len(accrualDates)-1)
	for i := 0; i < len(accrualDates)-1; i++ {
		start := accrualDates[i]
		end := accrualDates[i+1]
		payDate := calendar.Adjust(end, payConv, cal)
		periods = append(periods, Period{AccrualStart: start, AccrualEnd: end, PayDate: payDate})
	}
	return periods, nil
}

// rollForwardDates generates unadjusted roll dates starting at effective
// and stepping forward by couponInterval until maturity is reached or
// passed; the final entry is always exactly maturity.
func rollForwardDates(effective, maturity time.Time, interval dateinterval.Interval) []time.Time {
	dates := []time.Time{effective}
	cur := effective
	for {
		next := dateinterval.Add(interval, cur)
		if !next.Before(maturity) {
			break
		}
		dates = append(dates, next)
		cur = next
	}
	dates = append(dates, maturity)
	return dates
}

// rollBackwardDates generates unadjusted roll dates starting at maturity
// and stepping backward by couponInterval until effective is reached or
// passed; the first entry is always exactly effective.
func rollBackwardDates(effective, maturity time.Time, interval dateinterval.Interval) []time.Time {
	backInterval := interval
	backInterval.Count = -backInterval.Count

	var dates []time.Time
	cur := maturity
	for cur.After(effective) {
		dates = append([]time.Time{cur}, dates...)
		cur = dateinterval.Add(backInterval, cur)
	}
	dates = append([]time.Time{effective}, dates...)
	return dates
}

// mergeStub collapses the short boundary period into its neighbor when
// stubMethod.Length is StubLong, producing a single long stub period
// instead of two periods (one short, one regular). When the span divides
// evenly by interval there is no short period and dates is returned as is.
func mergeStub(dates []time.Time, stubMethod StubMethod, interval dateinterval.Interval) []time.Time {
	if stubMethod.Length != StubLong || len(dates) < 3 {
		return dates
	}
	if stubMethod.Position == StubFront {
		back := interval
		back.Count = -back.Count
		if dateinterval.Add(back, dates[1]).Equal(dates[0]) {
			return dates
		}
		// Drop the second date, merging period[0] and period[1] into one
		// long front stub.
		merged := make([]time.Time, 0, len(dates)-1)
		merged = append(merged, dates[0])
		merged = append(merged, dates[2:]...)
		return merged
	}
	// StubBack: drop the second-to-last date.
	if dateinterval.Add(interval, dates[len(dates)-2]).Equal(dates[len(dates)-1]) {
		return dates
	}
	merged := make([]time.Time, 0, len(dates)-1)
	merged = append(merged, dates[:len(dates)-2]...)
	merged = append(merged, dates[len(dates)-1])
	return merged
}
