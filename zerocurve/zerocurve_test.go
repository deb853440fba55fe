package zerocurve_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/cdsmodel/calendar"
	"github.com/meenmo/cdsmodel/dateinterval"
	"github.com/meenmo/cdsmodel/daycount"
	"github.com/meenmo/cdsmodel/zerocurve"
)

func mustDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testParams(t *testing.T, tradeDate time.Time) zerocurve.BootstrapParams {
	t.Helper()
	quarterly, err := dateinterval.Parse("3M")
	if err != nil {
		t.Fatal(err)
	}
	return zerocurve.BootstrapParams{
		TradeDate:    tradeDate,
		SpotLagDays:  2,
		Cal:          calendar.None(),
		SwapInterval: quarterly,
		DayCount:     daycount.Act360,
	}
}

func TestBootstrap_MoneyMarketOnly(t *testing.T) {
	t.Parallel()
	tradeDate := mustDate(2026, 7, 29)
	quotes := []zerocurve.Quote{
		{Type: zerocurve.MoneyMarket, Tenor: "3M", Rate: 0.05},
		{Type: zerocurve.MoneyMarket, Tenor: "6M", Rate: 0.052},
	}
	curve, err := zerocurve.Bootstrap(quotes, testParams(t, tradeDate))
	if err != nil {
		t.Fatal(err)
	}
	if len(curve.Dates) != 3 { // base + two MM nodes
		t.Fatalf("expected 3 nodes, got %d", len(curve.Dates))
	}
	if curve.DF(curve.BaseDate) != 1.0 {
		t.Fatalf("DF at base date must be 1.0, got %v", curve.DF(curve.BaseDate))
	}
	for i := 1; i < len(curve.DFs); i++ {
		if curve.DFs[i] >= curve.DFs[i-1] {
			t.Fatalf("discount factors must decrease with maturity: %v", curve.DFs)
		}
	}
}

func TestBootstrap_SwapPhaseSolvesMaturityDiscountFactor(t *testing.T) {
	t.Parallel()
	tradeDate := mustDate(2026, 7, 29)
	quotes := []zerocurve.Quote{
		{Type: zerocurve.MoneyMarket, Tenor: "3M", Rate: 0.05},
		{Type: zerocurve.Swap, Tenor: "2Y", Rate: 0.048},
	}
	curve, err := zerocurve.Bootstrap(quotes, testParams(t, tradeDate))
	if err != nil {
		t.Fatal(err)
	}

	maturity := curve.Dates[len(curve.Dates)-1]
	dfAtMaturity := curve.DFs[len(curve.DFs)-1]
	if dfAtMaturity <= 0 || dfAtMaturity >= 1 {
		t.Fatalf("discount factor out of range: %v", dfAtMaturity)
	}
	if maturity.Before(tradeDate) {
		t.Fatalf("swap maturity %s precedes trade date", maturity.Format("2006-01-02"))
	}
}

func TestZeroRateAt_FlatExtrapolation(t *testing.T) {
	t.Parallel()
	tradeDate := mustDate(2026, 7, 29)
	quotes := []zerocurve.Quote{
		{Type: zerocurve.MoneyMarket, Tenor: "3M", Rate: 0.05},
		{Type: zerocurve.MoneyMarket, Tenor: "1Y", Rate: 0.055},
	}
	curve, err := zerocurve.Bootstrap(quotes, testParams(t, tradeDate))
	if err != nil {
		t.Fatal(err)
	}

	farFuture := curve.Dates[len(curve.Dates)-1].AddDate(10, 0, 0)
	lastZero := curve.ZeroRateAt(curve.Dates[len(curve.Dates)-1])
	farZero := curve.ZeroRateAt(farFuture)
	if math.Abs(lastZero-farZero) > 1e-9 {
		t.Fatalf("expected flat extrapolation, got last=%v far=%v", lastZero, farZero)
	}
}
