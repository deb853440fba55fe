package credit

import (
	"fmt"
	"time"

	"github.com/meenmo/cdsmodel/calendar"
	"github.com/meenmo/cdsmodel/dateinterval"
	"github.com/meenmo/cdsmodel/errorlog"
	"github.com/meenmo/cdsmodel/schedule"
	"github.com/meenmo/cdsmodel/solver"
)

// ParSpreadQuote is one par-CDS input quote to the bootstrap: the
// running market spread (decimal, e.g. 0.012 for 120bp) observed for a
// CDS maturing at the given tenor from the curve's effective date.
type ParSpreadQuote struct {
	Tenor  string
	Spread float64
}

// recoveryFloor is the lower bound the recovery-decrement retry in
// BootstrapCreditCurve will not cross: the retry backs off recovery by 1
// percentage point on a failed solve, but never down to or below zero.
const recoveryFloor = 0.0

// BootstrapCreditCurve builds a CreditCurve node by node, one maturity
// at a time, by solving for the hazard rate over the newest segment that
// prices that maturity's par CDS to zero upfront given the
// already-bootstrapped shorter segments — the same incremental structure
// as zerocurve.Bootstrap's swap phase. If a segment fails to solve at the
// requested recovery rate, the rate is decremented by one percentage
// point and the segment is retried, for as long as the rate stays above
// recoveryFloor.
func BootstrapCreditCurve(effective time.Time, quotes []ParSpreadQuote, disc DiscountCurve, conv Conventions) (*CreditCurve, error) {
	if len(quotes) == 0 {
		return nil, fmt.Errorf("credit.BootstrapCreditCurve: no quotes supplied")
	}

	curve := &CreditCurve{BaseDate: effective}
	recovery := conv.RecoveryRate

	for _, q := range quotes {
		interval, err := dateinterval.Parse(q.Tenor)
		if err != nil {
			return nil, fmt.Errorf("credit.BootstrapCreditCurve: tenor %q: %w", q.Tenor, err)
		}
		maturity := calendar.Adjust(dateinterval.Add(interval, effective), conv.BadDayConvention, conv.Calendar)

		periods, err := schedule.Generate(effective, maturity, conv.CouponInterval, conv.StubMethod, conv.Calendar, conv.BadDayConvention)
		if err != nil {
			return nil, fmt.Errorf("credit.BootstrapCreditCurve: tenor %q: %w", q.Tenor, err)
		}

		survival, usedRecovery, err := solveNodeWithRetry(curve, disc, effective, maturity, periods, q.Spread, recovery, conv)
		if err != nil {
			return nil, fmt.Errorf("credit.BootstrapCreditCurve: tenor %q: %w", q.Tenor, err)
		}
		recovery = usedRecovery
		curve.appendNode(maturity, survival)
	}

	return curve, nil
}

// solveNodeWithRetry solves for the survival probability at maturity
// that prices a par CDS (struck at parSpread) to zero upfront, retrying
// at a reduced recovery rate if the solve fails to converge.
func solveNodeWithRetry(curve *CreditCurve, disc DiscountCurve, effective, maturity time.Time, periods []schedule.Period, parSpread, recovery float64, conv Conventions) (survival, usedRecovery float64, err error) {
	for recovery > recoveryFloor {
		survival, err = solveNodeSurvival(curve, disc, effective, maturity, periods, parSpread, recovery, conv)
		if err == nil {
			return survival, recovery, nil
		}
		errorlog.Errorf("credit.BootstrapCreditCurve: solve failed at recovery %.4f, retrying at %.4f: %v", recovery, recovery-0.01, err)
		recovery -= 0.01
	}
	return 0, 0, fmt.Errorf("exhausted recovery-rate retries, last error: %w", err)
}

// solveNodeSurvival root-solves for the trial survival probability at
// maturity — holding every previously bootstrapped segment fixed — that
// makes the par CDS struck at parSpread price to zero upfront.
func solveNodeSurvival(curve *CreditCurve, disc DiscountCurve, effective, maturity time.Time, periods []schedule.Period, parSpread, recovery float64, conv Conventions) (float64, error) {
	trial := &CreditCurve{
		BaseDate: curve.BaseDate,
		Dates:    append([]time.Time(nil), curve.Dates...),
		Hazards:  append([]float64(nil), curve.Hazards...),
	}

	objective := func(survivalGuess float64) (float64, error) {
		trial.Dates = trial.Dates[:len(curve.Dates)]
		trial.Hazards = trial.Hazards[:len(curve.Hazards)]
		trial.appendNode(maturity, survivalGuess)

		trialConv := conv
		trialConv.RecoveryRate = recovery
		upfront, err := UpfrontCharge(trial, disc, effective, effective, effective, maturity, periods, parSpread, trialConv)
		if err != nil {
			return 0, err
		}
		return upfront, nil
	}

	result, err := solver.FindRoot(objective, solver.Params{
		BoundLo: 1e-6, BoundHi: 1.0, Guess: 0.99,
		InitialXStep: 0.0001, NumIterations: 100, Xacc: 1e-10, Facc: 1e-10,
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

// SpreadFromUpfront converts a quoted upfront charge into its equivalent
// flat par spread at the given running coupon: a single-quote flat
// credit curve is bootstrapped at a trial spread, the resulting CDS
// (running at runningCoupon) is priced, and the trial spread is
// root-solved until its upfront charge matches targetUpfront.
func SpreadFromUpfront(effective, maturity time.Time, targetUpfront, runningCoupon float64, disc DiscountCurve, conv Conventions) (float64, error) {
	periods, err := schedule.Generate(effective, maturity, conv.CouponInterval, conv.StubMethod, conv.Calendar, conv.BadDayConvention)
	if err != nil {
		return 0, err
	}

	objective := func(trialSpread float64) (float64, error) {
		curve, err := BootstrapCreditCurve(effective, []ParSpreadQuote{{Tenor: tenorBetween(effective, maturity), Spread: trialSpread}}, disc, conv)
		if err != nil {
			return 0, err
		}
		upfront, err := UpfrontCharge(curve, disc, effective, effective, effective, maturity, periods, runningCoupon, conv)
		if err != nil {
			return 0, err
		}
		return upfront - targetUpfront, nil
	}

	// Xacc/Facc are tightened below the 1e-8 round-trip tolerance this
	// solve's result is checked against, so the root-find's own residual
	// error doesn't eat into that budget.
	return solver.FindRoot(objective, solver.Params{
		BoundLo: 0, BoundHi: 1.0, Guess: 0.01,
		InitialXStep: 0.0001, NumIterations: 100, Xacc: 1e-10, Facc: 1e-10,
	})
}

// tenorBetween renders the whole-month span from start to end as an "nM"
// token, the coarsest interval BootstrapCreditCurve's single-quote
// trial curves need.
func tenorBetween(start, end time.Time) string {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 1 {
		months = 1
	}
	return fmt.Sprintf("%dM", months)
}
