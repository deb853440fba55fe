package zerocurve

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/cdsmodel/calendar"
	"github.com/meenmo/cdsmodel/dateinterval"
	"github.com/meenmo/cdsmodel/daycount"
	"github.com/meenmo/cdsmodel/dateutil"
	"github.com/meenmo/cdsmodel/errorlog"
	"github.com/meenmo/cdsmodel/schedule"
	"github.com/meenmo/cdsmodel/solver"
)

// InstrumentType distinguishes a money-market deposit from a par swap
// instrument in a curve's input quote list.
type InstrumentType string

const (
	MoneyMarket InstrumentType = "MM"
	Swap        InstrumentType = "SWAP"
)

// Quote is one input rate used to bootstrap the curve: a money-market
// deposit rate or a par swap rate, quoted to a given maturity tenor.
type Quote struct {
	Type  InstrumentType
	Tenor string  // e.g. "3M", "1Y", "5Y"
	Rate  float64 // decimal, e.g. 0.045 for 4.5%
}

// DiscountCurve provides discount factors and continuously-compounded
// zero rates for valuation — the minimal contract any rates-based
// pricer needs from a curve.
type DiscountCurve interface {
	DF(t time.Time) float64
	ZeroRateAt(t time.Time) float64
}

// ZeroCurve is a bootstrapped curve of (date, discount factor) nodes,
// linearly interpolated on the zero rate (flat beyond the first/last
// node) between nodes. It implements DiscountCurve.
type ZeroCurve struct {
	BaseDate time.Time
	Dates    []time.Time
	DFs      []float64
	dayCount daycount.Convention
}

// BootstrapParams configures zero-curve construction.
type BootstrapParams struct {
	TradeDate    time.Time
	SpotLagDays  int
	Cal          *calendar.Calendar
	SwapInterval dateinterval.Interval // coupon frequency for the swap phase, e.g. quarterly
	DayCount     daycount.Convention
}

// Bootstrap builds a ZeroCurve from a set of money-market and swap
// quotes: money-market deposits give discount factors directly by
// simple-interest inversion; swap quotes are bootstrapped sequentially,
// solving for the discount factor at each swap's maturity that makes its
// fixed leg price to par given the already-known shorter discount
// factors.
func Bootstrap(quotes []Quote, p BootstrapParams) (*ZeroCurve, error) {
	if len(quotes) == 0 {
		return nil, fmt.Errorf("zerocurve.Bootstrap: no quotes supplied")
	}
	spot := calendar.AddBusinessDays(p.Cal, p.TradeDate, p.SpotLagDays)

	curve := &ZeroCurve{
		BaseDate: spot,
		Dates:    []time.Time{spot},
		DFs:      []float64{1.0},
		dayCount: p.DayCount,
	}

	for _, q := range quotes {
		interval, err := dateinterval.Parse(q.Tenor)
		if err != nil {
			return nil, fmt.Errorf("zerocurve.Bootstrap: tenor %q: %w", q.Tenor, err)
		}
		maturity := calendar.Adjust(dateinterval.Add(interval, spot), calendar.ModifiedFollowing, p.Cal)

		switch q.Type {
		case MoneyMarket:
			yf, err := daycount.YearFraction(p.DayCount, spot, maturity)
			if err != nil {
				return nil, err
			}
			df := 1.0 / (1.0 + q.Rate*yf)
			curve.appendNode(maturity, df)

		case Swap:
			df, err := curve.solveSwapDF(spot, maturity, q.Rate, p)
			if err != nil {
				errorlog.Errorf("zerocurve.Bootstrap: swap tenor %q failed to solve: %v", q.Tenor, err)
				return nil, fmt.Errorf("zerocurve.Bootstrap: swap tenor %q: %w", q.Tenor, err)
			}
			curve.appendNode(maturity, df)

		default:
			return nil, fmt.Errorf("zerocurve.Bootstrap: unknown instrument type %q", q.Type)
		}
	}

	return curve, nil
}

// appendNode inserts (date, df) keeping Dates ascending; if date already
// exists (e.g. duplicate tenor) the discount factor is overwritten.
func (c *ZeroCurve) appendNode(date time.Time, df float64) {
	for i, d := range c.Dates {
		if d.Equal(date) {
			c.DFs[i] = df
			return
		}
	}
	c.Dates = append(c.Dates, date)
	c.DFs = append(c.DFs, df)
}

// solveSwapDF finds the discount factor at maturity that prices the
// fixed leg of a par swap (running at rate) to 1.0 against the
// already-known shorter-dated discount factors on c, root-solving via
// solver.FindRoot the way this model's credit-curve bootstrap
// root-solves for each node's survival probability.
func (c *ZeroCurve) solveSwapDF(spot, maturity time.Time, rate float64, p BootstrapParams) (float64, error) {
	stub, _ := schedule.ParseStubMethod("F")
	periods, err := schedule.Generate(spot, maturity, p.SwapInterval, stub, p.Cal, calendar.ModifiedFollowing)
	if err != nil {
		return 0, err
	}

	objective := func(dfAtMaturity float64) (float64, error) {
		var fixedLegPV float64
		for i, period := range periods {
			yf, err := daycount.YearFraction(p.DayCount, period.AccrualStart, period.AccrualEnd)
			if err != nil {
				return 0, err
			}
			var df float64
			if i == len(periods)-1 {
				df = dfAtMaturity
			} else {
				df = c.interpolatedDFWithTrial(period.PayDate, maturity, dfAtMaturity)
			}
			fixedLegPV += rate * yf * df
		}
		fixedLegPV += c.interpolatedDFWithTrial(maturity, maturity, dfAtMaturity) // principal redemption at maturity
		return fixedLegPV - 1.0, nil
	}

	lastDF := c.DFs[len(c.DFs)-1]
	guess := lastDF * math.Exp(-rate*dateutil.Days(c.Dates[len(c.Dates)-1], maturity)/365.0)

	return solver.FindRoot(objective, solver.Params{
		BoundLo: 1e-6, BoundHi: 1.5, Guess: clamp(guess, 1e-6, 1.5),
		NumIterations: 100, Xacc: 1e-12, Facc: 1e-12,
	})
}

// interpolatedDFWithTrial returns the discount factor at t, treating
// trialMaturity as an as-yet-unrecorded curve node with discount factor
// trialDF — used while solving for that very node during bootstrap.
func (c *ZeroCurve) interpolatedDFWithTrial(t, trialMaturity time.Time, trialDF float64) float64 {
	if t.Equal(trialMaturity) {
		return trialDF
	}
	last := c.Dates[len(c.Dates)-1]
	if !t.After(last) || !t.Before(trialMaturity) {
		return c.DF(t)
	}
	// Between the last recorded node and the trial node, interpolate the
	// zero rate linearly exactly as DF will once the node is appended.
	zLast := c.zeroAtNode(len(c.Dates) - 1)
	zTrial := -math.Log(trialDF) / (dateutil.Days(c.BaseDate, trialMaturity) / 365.0)
	frac := dateutil.Days(last, t) / dateutil.Days(last, trialMaturity)
	z := zLast + frac*(zTrial-zLast)
	return math.Exp(-z * dateutil.Days(c.BaseDate, t) / 365.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DF returns the discount factor at t, linearly interpolating the zero
// rate between bracketing nodes (flat extrapolation beyond the first and
// last node).
func (c *ZeroCurve) DF(t time.Time) float64 {
	z := c.zeroRateAt(t)
	yf := dateutil.Days(c.BaseDate, t) / 365.0
	return math.Exp(-z * yf)
}

// ZeroRateAt returns the continuously-compounded zero rate (decimal, not
// percent) applicable at t.
func (c *ZeroCurve) ZeroRateAt(t time.Time) float64 {
	return c.zeroRateAt(t)
}

// Knots returns the curve's own bootstrapped node dates, including
// BaseDate — the grid a pricer splices its own sub-interval integration
// against so it never treats this curve as log-linear across one of its
// actual segments.
func (c *ZeroCurve) Knots() []time.Time {
	return c.Dates
}

func (c *ZeroCurve) zeroRateAt(t time.Time) float64 {
	if t.Equal(c.BaseDate) {
		return c.zeroAtNode(0)
	}
	if !t.After(c.Dates[0]) {
		return c.zeroAtNode(0)
	}
	if !t.Before(c.Dates[len(c.Dates)-1]) {
		return c.zeroAtNode(len(c.Dates) - 1)
	}

	lo, hi := dateutil.AdjacentDates(t, c.Dates)
	var loIdx, hiIdx int
	for i, d := range c.Dates {
		if d.Equal(lo) {
			loIdx = i
		}
		if d.Equal(hi) {
			hiIdx = i
		}
	}
	zLo := c.zeroAtNode(loIdx)
	zHi := c.zeroAtNode(hiIdx)
	if lo.Equal(hi) {
		return zLo
	}
	frac := dateutil.Days(lo, t) / dateutil.Days(lo, hi)
	return zLo + frac*(zHi-zLo)
}

func (c *ZeroCurve) zeroAtNode(i int) float64 {
	if c.Dates[i].Equal(c.BaseDate) {
		return 0
	}
	yf := dateutil.Days(c.BaseDate, c.Dates[i]) / 365.0
	return -math.Log(c.DFs[i]) / yf
}
