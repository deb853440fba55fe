package calendar_test

import (
	"testing"
	"time"

	"github.com/meenmo/cdsmodel/calendar"
)

func mustDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsBusinessDay_StandardWeekend(t *testing.T) {
	t.Parallel()
	cal := calendar.None()

	if !calendar.IsBusinessDay(cal, mustDate(2026, 7, 29)) { // Wednesday
		t.Fatal("expected Wednesday to be a business day")
	}
	if calendar.IsBusinessDay(cal, mustDate(2026, 8, 1)) { // Saturday
		t.Fatal("expected Saturday to not be a business day")
	}
	if calendar.IsBusinessDay(cal, mustDate(2026, 8, 2)) { // Sunday
		t.Fatal("expected Sunday to not be a business day")
	}
}

func TestIsBusinessDay_Holiday(t *testing.T) {
	t.Parallel()
	holiday := mustDate(2026, 7, 30) // Thursday
	cal := calendar.New("TEST", []time.Time{holiday}, calendar.StandardWeekend)

	if calendar.IsBusinessDay(cal, holiday) {
		t.Fatal("expected holiday to not be a business day")
	}
}

func TestNew_FiltersWeekendHolidays(t *testing.T) {
	t.Parallel()
	// A "holiday" that falls on a Saturday should be dropped silently —
	// it carries no independent information once the weekend mask
	// already excludes it.
	saturday := mustDate(2026, 8, 1)
	cal := calendar.New("TEST", []time.Time{saturday}, calendar.StandardWeekend)
	if len(cal.Holidays) != 0 {
		t.Fatalf("expected weekend holiday to be filtered, got %v", cal.Holidays)
	}
}

func TestAddBusinessDays_RoundTrip(t *testing.T) {
	t.Parallel()
	cal := calendar.None()
	start := mustDate(2026, 7, 29)
	for n := -10; n <= 10; n++ {
		forward := calendar.AddBusinessDays(cal, start, n)
		back := calendar.AddBusinessDays(cal, forward, -n)
		if !back.Equal(start) {
			t.Fatalf("n=%d: round trip failed, got %s want %s", n, back.Format("2006-01-02"), start.Format("2006-01-02"))
		}
	}
}

func TestAddBusinessDays_FastPathMatchesWalk(t *testing.T) {
	t.Parallel()
	cal := calendar.New("TEST", []time.Time{mustDate(2026, 8, 19)}, calendar.StandardWeekend)
	start := mustDate(2026, 8, 17) // Monday

	got := calendar.AddBusinessDays(cal, start, 5)

	// Walk day by day manually as an oracle, since this calendar has a
	// holiday and therefore takes the slow path already — cross-check
	// against the no-holiday fast path plus a manual adjustment.
	noHolidayCal := calendar.None()
	fastPath := calendar.AddBusinessDays(noHolidayCal, start, 6) // one extra business day to skip the holiday
	if !got.Equal(fastPath) {
		t.Fatalf("got %s want %s", got.Format("2006-01-02"), fastPath.Format("2006-01-02"))
	}
}

func TestBusinessDaysBetween_SameDayIsZero(t *testing.T) {
	t.Parallel()
	cal := calendar.None()
	d := mustDate(2026, 7, 29)
	if got := calendar.BusinessDaysBetween(cal, d, d); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestBusinessDaysBetween_AntisymmetricRawTablesButHolidayAdjustedConsistent(t *testing.T) {
	t.Parallel()
	cal := calendar.None()
	a := mustDate(2026, 7, 27) // Monday
	b := mustDate(2026, 7, 31) // Friday

	fwd := calendar.BusinessDaysBetween(cal, a, b)
	bwd := calendar.BusinessDaysBetween(cal, b, a)
	if fwd != 4 {
		t.Fatalf("forward count: got %d want 4", fwd)
	}
	if bwd != -4 {
		t.Fatalf("backward count: got %d want -4", bwd)
	}
}

func TestAdjust_ModifiedFollowingCrossesMonthBoundary(t *testing.T) {
	t.Parallel()
	cal := calendar.None()
	// 2026-05-31 is a Sunday; Following would roll to Monday 2026-06-01,
	// crossing into June, so ModifiedFollowing must instead roll back to
	// Friday 2026-05-29.
	d := mustDate(2026, 5, 31)
	got := calendar.Adjust(d, calendar.ModifiedFollowing, cal)
	want := mustDate(2026, 5, 29)
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestAdjust_FollowingAndPrevious(t *testing.T) {
	t.Parallel()
	cal := calendar.None()
	d := mustDate(2026, 8, 1) // Saturday

	if got, want := calendar.Adjust(d, calendar.Following, cal), mustDate(2026, 8, 3); !got.Equal(want) {
		t.Fatalf("Following: got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	if got, want := calendar.Adjust(d, calendar.Previous, cal), mustDate(2026, 7, 31); !got.Equal(want) {
		t.Fatalf("Previous: got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	if got := calendar.Adjust(d, calendar.None, cal); !got.Equal(d) {
		t.Fatalf("None: got %s want %s", got.Format("2006-01-02"), d.Format("2006-01-02"))
	}
}

func TestNextBusinessDayMulti_UnionOfCalendars(t *testing.T) {
	t.Parallel()
	calA := calendar.New("A", []time.Time{mustDate(2026, 7, 30)}, calendar.StandardWeekend)
	calB := calendar.New("B", []time.Time{mustDate(2026, 7, 31)}, calendar.StandardWeekend)

	got := calendar.NextBusinessDayMulti(mustDate(2026, 7, 30), 1, []*calendar.Calendar{calA, calB})
	want := mustDate(2026, 8, 3) // Monday, after both Thu and Fri holidays plus the weekend
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestParseConvention(t *testing.T) {
	t.Parallel()
	cases := map[string]calendar.Convention{
		"N": calendar.None, "n": calendar.None,
		"F": calendar.Following, "f": calendar.Following,
		"P": calendar.Previous, "p": calendar.Previous,
		"M": calendar.ModifiedFollowing, "m": calendar.ModifiedFollowing,
	}
	for s, want := range cases {
		got, err := calendar.ParseConvention(s)
		if err != nil {
			t.Fatalf("ParseConvention(%q): %v", s, err)
		}
		if got != want {
			t.Fatalf("ParseConvention(%q): got %v want %v", s, got, want)
		}
	}
	if _, err := calendar.ParseConvention("X"); err == nil {
		t.Fatal("expected error for unknown convention code")
	}
}
