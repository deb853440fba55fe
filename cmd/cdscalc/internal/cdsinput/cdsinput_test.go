package cdsinput_test

import (
	"testing"

	"github.com/meenmo/cdsmodel/cmd/cdscalc/internal/cdsinput"
)

func TestParseDate_RoundTrip(t *testing.T) {
	t.Parallel()
	d, err := cdsinput.ParseDate("2026-07-29")
	if err != nil {
		t.Fatal(err)
	}
	if got := cdsinput.FormatDate(d); got != "2026-07-29" {
		t.Fatalf("got %q want 2026-07-29", got)
	}
}

func TestParseDate_RejectsMalformed(t *testing.T) {
	t.Parallel()
	if _, err := cdsinput.ParseDate("not-a-date"); err == nil {
		t.Fatal("expected an error for a malformed date")
	}
}

func TestResolveCalendar_BuiltIns(t *testing.T) {
	t.Parallel()
	none, err := cdsinput.ResolveCalendar("NONE")
	if err != nil {
		t.Fatal(err)
	}
	if none.Name != "NONE" {
		t.Fatalf("got %q want NONE", none.Name)
	}

	noWeekends, err := cdsinput.ResolveCalendar("NO_WEEKENDS")
	if err != nil {
		t.Fatal(err)
	}
	if noWeekends.Name != "NO_WEEKENDS" {
		t.Fatalf("got %q want NO_WEEKENDS", noWeekends.Name)
	}
}

func TestResolveConventions_AppliesRecoveryOverride(t *testing.T) {
	t.Parallel()
	override := 0.30
	conv, err := cdsinput.ResolveConventions("NA_CORP", &override)
	if err != nil {
		t.Fatal(err)
	}
	if conv.RecoveryRate != 0.30 {
		t.Fatalf("got %v want 0.30", conv.RecoveryRate)
	}
}

func TestResolveConventions_RejectsUnknown(t *testing.T) {
	t.Parallel()
	if _, err := cdsinput.ResolveConventions("BOGUS", nil); err == nil {
		t.Fatal("expected an error for an unknown conventions name")
	}
}

func TestDiscountInput_Build(t *testing.T) {
	t.Parallel()
	input := cdsinput.DiscountInput{
		TradeDate:    "2026-07-29",
		Calendar:     "NONE",
		DayCount:     "ACT360",
		SwapInterval: "3M",
		Quotes: []cdsinput.DiscountQuoteInput{
			{Type: "MM", Tenor: "1M", Rate: 0.03},
			{Type: "MM", Tenor: "3M", Rate: 0.031},
		},
	}
	curve, err := input.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(curve.Dates) != 3 { // base date plus one node per quote
		t.Fatalf("expected 3 nodes, got %d", len(curve.Dates))
	}
}

func TestDiscountInput_Build_RejectsEmptyQuotes(t *testing.T) {
	t.Parallel()
	input := cdsinput.DiscountInput{TradeDate: "2026-07-29"}
	if _, err := input.Build(); err == nil {
		t.Fatal("expected an error when no quotes are supplied")
	}
}
