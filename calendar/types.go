package calendar

import (
	"time"

	"github.com/meenmo/cdsmodel/dateutil"
)

// WeekendMask is a bitmask over the seven days of the week, bit i set
// meaning time.Weekday(i) is a non-business day. The standard mask is
// Saturday+Sunday; a calendar can mask any subset (or none).
type WeekendMask uint8

// bit returns the WeekendMask bit for the given weekday.
func bit(w time.Weekday) WeekendMask { return 1 << WeekendMask(w) }

const (
	weekendBitSunday    WeekendMask = 1 << 0
	weekendBitMonday    WeekendMask = 1 << 1
	weekendBitTuesday   WeekendMask = 1 << 2
	weekendBitWednesday WeekendMask = 1 << 3
	weekendBitThursday  WeekendMask = 1 << 4
	weekendBitFriday    WeekendMask = 1 << 5
	weekendBitSaturday  WeekendMask = 1 << 6
)

const (
	// StandardWeekend masks Saturday and Sunday.
	StandardWeekend = weekendBitSaturday | weekendBitSunday
	// NoWeekend masks nothing.
	NoWeekend = WeekendMask(0)
)

// IsWeekend reports whether weekday w is masked as a weekend day.
func (m WeekendMask) IsWeekend(w time.Weekday) bool {
	return m&bit(w) != 0
}

// Set returns m with weekday w added to the mask.
func (m WeekendMask) Set(w time.Weekday) WeekendMask { return m | bit(w) }

// Clear returns m with weekday w removed from the mask.
func (m WeekendMask) Clear(w time.Weekday) WeekendMask { return m &^ bit(w) }

// BusinessDaysPerWeek returns how many of the seven weekdays are NOT masked.
func (m WeekendMask) BusinessDaysPerWeek() int {
	n := 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if !m.IsWeekend(d) {
			n++
		}
	}
	return n
}

// Calendar pairs an ascending, weekend-disjoint set of holiday dates with a
// weekend mask. The zero value is not valid; construct with New.
type Calendar struct {
	Name     string
	Holidays []time.Time // strictly ascending, UTC midnight, no weekend dates
	Weekend  WeekendMask
}

// NameNone and NameNoWeekends identify the two calendars that always exist.
const (
	NameNone       = "NONE"
	NameNoWeekends = "NO_WEEKENDS"
)

// New constructs a Calendar, deduplicating, sorting, and filtering out
// any supplied holiday that falls on a masked weekend day — a holiday
// already covered by the weekend mask carries no additional information
// and only costs a wasted lookup if kept.
func New(name string, holidays []time.Time, weekend WeekendMask) *Calendar {
	cleaned := make([]time.Time, 0, len(holidays))
	seen := make(map[int64]bool, len(holidays))
	for _, h := range holidays {
		h = dateutil.Midnight(h)
		if weekend.IsWeekend(h.Weekday()) {
			continue
		}
		key := h.Unix()
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, h)
	}
	dateutil.SortDates(cleaned)
	return &Calendar{Name: name, Holidays: cleaned, Weekend: weekend}
}

// None is the standard calendar with no holidays and a Saturday+Sunday
// weekend.
func None() *Calendar { return New(NameNone, nil, StandardWeekend) }

// NoWeekends is the standard calendar with no holidays and no weekend days
// at all (every day is a business day).
func NoWeekends() *Calendar { return New(NameNoWeekends, nil, NoWeekend) }
