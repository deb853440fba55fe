package dateutil_test

import (
	"testing"
	"time"

	"github.com/meenmo/cdsmodel/dateutil"
)

func TestMDYRoundTrip(t *testing.T) {
	t.Parallel()
	dates := []time.Time{
		time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1900, time.February, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		got := dateutil.MDYToDate(dateutil.DateToMDY(d))
		if !got.Equal(d) {
			t.Fatalf("round trip for %v: got %v", d, got)
		}
	}
}

func TestIsAscending(t *testing.T) {
	t.Parallel()
	asc := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	if !dateutil.IsAscending(asc) {
		t.Fatal("expected ascending")
	}
	notAsc := []time.Time{asc[1], asc[0]}
	if dateutil.IsAscending(notAsc) {
		t.Fatal("expected non-ascending")
	}
}

func TestAddMonth_EndOfMonthClamps(t *testing.T) {
	t.Parallel()
	jan31 := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	got := dateutil.AddMonth(jan31, 1)
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestAddMonth_NonLeapFebruary(t *testing.T) {
	t.Parallel()
	jan31 := time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC)
	got := dateutil.AddMonth(jan31, 1)
	want := time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestNthWeekday_ThirdFriday(t *testing.T) {
	t.Parallel()
	got := dateutil.NthWeekday(2024, time.June, time.Friday, 3)
	want := time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestAdjacentDates_OutOfRangeClampsToBoundary(t *testing.T) {
	t.Parallel()
	dates := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	}
	before := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	lo, hi := dateutil.AdjacentDates(before, dates)
	if !lo.Equal(dates[0]) || !hi.Equal(dates[1]) {
		t.Fatalf("got (%v, %v)", lo, hi)
	}

	after := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	lo, hi = dateutil.AdjacentDates(after, dates)
	if !lo.Equal(dates[1]) || !hi.Equal(dates[2]) {
		t.Fatalf("got (%v, %v)", lo, hi)
	}
}

func TestIsLeapYear(t *testing.T) {
	t.Parallel()
	cases := map[int]bool{2000: true, 1900: false, 2024: true, 2023: false}
	for year, want := range cases {
		if got := dateutil.IsLeapYear(year); got != want {
			t.Fatalf("IsLeapYear(%d) = %v want %v", year, got, want)
		}
	}
}

func TestRoundTo(t *testing.T) {
	t.Parallel()
	if got := dateutil.RoundTo(2.5, 0); got != 3 {
		t.Fatalf("got %v want 3", got)
	}
	if got := dateutil.RoundTo(-2.5, 0); got != -3 {
		t.Fatalf("got %v want -3", got)
	}
	if got := dateutil.RoundTo(3.14159, 2); got != 3.14 {
		t.Fatalf("got %v want 3.14", got)
	}
}
