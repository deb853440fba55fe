package dateinterval_test

import (
	"testing"
	"time"

	"github.com/meenmo/cdsmodel/dateinterval"
)

func mustDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	t.Parallel()
	cases := map[string]dateinterval.Interval{
		"5Y":  {Count: 5, Unit: dateinterval.UnitYear, Flag: dateinterval.FlagNone},
		"3M":  {Count: 3, Unit: dateinterval.UnitMonth, Flag: dateinterval.FlagNone},
		"1QI": {Count: 1, Unit: dateinterval.UnitQuarter, Flag: dateinterval.FlagIMM},
		"10D": {Count: 10, Unit: dateinterval.UnitDay, Flag: dateinterval.FlagNone},
		"-5D": {Count: -5, Unit: dateinterval.UnitDay, Flag: dateinterval.FlagNone},
		"2ME": {Count: 2, Unit: dateinterval.UnitMonth, Flag: dateinterval.FlagEOM},
	}
	for token, want := range cases {
		got, err := dateinterval.Parse(token)
		if err != nil {
			t.Fatalf("Parse(%q): %v", token, err)
		}
		if got != want {
			t.Fatalf("Parse(%q): got %+v want %+v", token, got, want)
		}
	}

	for _, bad := range []string{"", "Y5", "5X", "5Y!", "M"} {
		if _, err := dateinterval.Parse(bad); err == nil {
			t.Fatalf("Parse(%q): expected error", bad)
		}
	}
}

func TestParse_StringRoundTrip(t *testing.T) {
	t.Parallel()
	for _, token := range []string{"5Y", "3M", "1QI", "10D", "2ME"} {
		iv, err := dateinterval.Parse(token)
		if err != nil {
			t.Fatalf("Parse(%q): %v", token, err)
		}
		if iv.String() != token {
			t.Fatalf("String() round trip: got %q want %q", iv.String(), token)
		}
	}
}

func TestAdd_Years(t *testing.T) {
	t.Parallel()
	iv, _ := dateinterval.Parse("5Y")
	got := dateinterval.Add(iv, mustDate(2026, 7, 29))
	want := mustDate(2031, 7, 29)
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestAdd_MonthEndOfMonthOverflow(t *testing.T) {
	t.Parallel()
	// Jan 31 + 1M must land on Feb 28 (2026 is not a leap year), not Mar 3.
	iv, _ := dateinterval.Parse("1M")
	got := dateinterval.Add(iv, mustDate(2026, 1, 31))
	want := mustDate(2026, 2, 28)
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestAdd_EOMFlagStaysAtMonthEnd(t *testing.T) {
	t.Parallel()
	// Base date is end-of-month (Feb 28, 2026 non-leap); EOM flag must
	// keep the result pinned to end-of-month even when the naive target
	// month has more days.
	iv, _ := dateinterval.Parse("1ME")
	got := dateinterval.Add(iv, mustDate(2026, 2, 28))
	want := mustDate(2026, 3, 31)
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestAdd_QuarterlyIMM(t *testing.T) {
	t.Parallel()
	iv, _ := dateinterval.Parse("1QI")
	// Base date is 2026-07-29 (Wednesday); 1Q naive lands 2026-10-29.
	// October is not an IMM month, so the roll moves forward to the
	// nearest IMM month, December 2026.
	got := dateinterval.Add(iv, mustDate(2026, 7, 29))
	want := mustDate(2026, 12, 16) // 3rd Wednesday of December 2026
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestAdd_ThirdFriday(t *testing.T) {
	t.Parallel()
	iv, _ := dateinterval.Parse("1MT")
	got := dateinterval.Add(iv, mustDate(2026, 7, 29))
	want := mustDate(2026, 8, 21) // 3rd Friday of August 2026
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestAdd_NoAdjustSuppressesRoll(t *testing.T) {
	t.Parallel()
	iv, _ := dateinterval.Parse("1MU")
	got := dateinterval.Add(iv, mustDate(2026, 1, 31))
	want := mustDate(2026, 2, 28) // still EDATE-style, just without any roll-rule flag applied
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}
