package credit

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meenmo/cdsmodel/daycount"
	"github.com/meenmo/cdsmodel/dateutil"
	"github.com/meenmo/cdsmodel/schedule"
)

// DiscountCurve is the discounting contract the pricer needs — satisfied
// by *zerocurve.ZeroCurve without an explicit import. Knots reports the
// curve's own node dates, the grid the closed-form leg integrals splice
// against so Z is only ever treated as log-linear within one of its own
// segments, never across a node.
type DiscountCurve interface {
	DF(t time.Time) float64
	Knots() []time.Time
}

// curveKnots returns the sorted, de-duplicated dates strictly between
// from and to at which either curve or disc carries a node, bracketed by
// from and to themselves — the sub-interval grid on which the credit
// curve is exactly log-linear and the discount curve is taken as
// log-linear, so the protection- and accrued-on-default integrals below
// have a closed form. For a *zerocurve.ZeroCurve, whose zero rate is
// linear in time between nodes, that log-linear Z is an approximation.
func curveKnots(from, to time.Time, curve *CreditCurve, disc DiscountCurve) []time.Time {
	seen := make(map[time.Time]bool)
	var interior []time.Time
	add := func(d time.Time) {
		if d.After(from) && d.Before(to) && !seen[d] {
			seen[d] = true
			interior = append(interior, d)
		}
	}
	for _, d := range curve.Dates {
		add(d)
	}
	for _, d := range disc.Knots() {
		add(d)
	}
	sort.Slice(interior, func(i, j int) bool { return interior[i].Before(interior[j]) })

	knots := make([]time.Time, 0, len(interior)+2)
	knots = append(knots, from)
	knots = append(knots, interior...)
	knots = append(knots, to)
	return knots
}

// subIntervalRates returns Z(a), S(a), and the locally-constant forward
// discount rate r and forward hazard rate h implied by log-linearity of
// Z and S between a and b, tau years apart.
func subIntervalRates(curve *CreditCurve, disc DiscountCurve, a, b time.Time, tau float64) (Za, Sa, r, h float64) {
	Za = disc.DF(a)
	Sa = curve.Survival(a)
	Zb := disc.DF(b)
	Sb := curve.Survival(b)
	r = -math.Log(Zb/Za) / tau
	h = -math.Log(Sb/Sa) / tau
	return Za, Sa, r, h
}

// survivalWeight is the closed-form integral_0^tau exp(-(r+h)x)*h dx —
// h/(r+h)*(1-exp(-(r+h)tau)), taking its r+h -> 0 limit of h*tau rather
// than dividing by (near-)zero.
func survivalWeight(r, h, tau float64) float64 {
	k := r + h
	if math.Abs(k) < 1e-12 {
		return h * tau
	}
	return h / k * (1 - math.Exp(-k*tau))
}

// integrateLoss accumulates (1-R)*S(a)*Z(a)*survivalWeight(r,h,tau) over
// every sub-interval of the discount/credit knot union inside [from,to] —
// the closed-form protection-leg integral.
func integrateLoss(curve *CreditCurve, disc DiscountCurve, from, to time.Time, recovery float64) float64 {
	if !from.Before(to) {
		return 0
	}
	knots := curveKnots(from, to, curve, disc)
	var pv float64
	for i := 0; i+1 < len(knots); i++ {
		a, b := knots[i], knots[i+1]
		tau := dateutil.Days(a, b) / 365.0
		if tau <= 0 {
			continue
		}
		Za, Sa, r, h := subIntervalRates(curve, disc, a, b, tau)
		pv += Sa * Za * survivalWeight(r, h, tau)
	}
	return (1 - recovery) * pv
}

// timeWeightedIntegrals returns integral_0^tau exp(-k x) dx and
// integral_0^tau x*exp(-k x) dx, the two building blocks the
// accrued-on-default closed form is assembled from.
func timeWeightedIntegrals(k, tau float64) (i0, i1 float64) {
	if math.Abs(k) < 1e-12 {
		return tau, tau * tau / 2
	}
	i0 = (1 - math.Exp(-k*tau)) / k
	i1 = (1 - math.Exp(-k*tau)*(1+k*tau)) / (k * k)
	return i0, i1
}

// integrateAccruedOnDefault computes integral_a^b ((u-s)/(e-s)) * Z(u) *
// dQ(u) over [max(s, stepin), e] — the expected fraction of the period's
// accrual paid when default falls at u — in closed form, on the same
// log-linear Z/S sub-interval grid as the protection leg.
func integrateAccruedOnDefault(curve *CreditCurve, disc DiscountCurve, s, e, stepin time.Time) float64 {
	from := s
	if stepin.After(from) {
		from = stepin
	}
	if !from.Before(e) {
		return 0
	}
	denom := dateutil.Days(s, e) / 365.0
	if denom <= 0 {
		return 0
	}

	knots := curveKnots(from, e, curve, disc)
	var pv float64
	for i := 0; i+1 < len(knots); i++ {
		a, b := knots[i], knots[i+1]
		tau := dateutil.Days(a, b) / 365.0
		if tau <= 0 {
			continue
		}
		Za, Sa, r, h := subIntervalRates(curve, disc, a, b, tau)
		aOffset := dateutil.Days(s, a) / 365.0
		i0, i1 := timeWeightedIntegrals(r+h, tau)
		pv += Za * Sa * h / denom * (aOffset*i0 + i1)
	}
	return pv
}

// ProtectionLegPV computes the present value (per unit notional, valued
// to settle) of the protection leg: (1-recovery) times the
// probability-weighted, discounted expected loss over
// [max(stepin, today), maturity], integrated in closed form over the
// union of the credit curve's and discount curve's knot dates and
// divided by Z(settle) to value to the settlement date.
func ProtectionLegPV(curve *CreditCurve, disc DiscountCurve, today, stepin, settle, maturity time.Time, recovery float64) float64 {
	from := stepin
	if today.After(from) {
		from = today
	}
	pv := integrateLoss(curve, disc, from, maturity, recovery)
	return pv / disc.DF(settle)
}

// PremiumLegPV computes the present value (per unit notional, per unit
// running coupon, valued to settle) of the premium leg: the
// survival-weighted discounted coupon payment for each period whose pay
// date is strictly after stepin, plus — when payAccruedOnDefault is set —
// the closed-form accrued-on-default contribution for every period,
// computed on the same sub-interval split as the protection leg.
func PremiumLegPV(curve *CreditCurve, disc DiscountCurve, periods []schedule.Period, couponRate float64, payAccruedOnDefault bool, stepin, settle time.Time, dc daycount.Convention) (float64, error) {
	var pv float64
	for _, p := range periods {
		yf, err := daycount.YearFraction(dc, p.AccrualStart, p.AccrualEnd)
		if err != nil {
			return 0, err
		}

		if p.PayDate.After(stepin) {
			survivalEnd := curve.Survival(p.AccrualEnd)
			pv += couponRate * yf * disc.DF(p.PayDate) * survivalEnd
		}

		if payAccruedOnDefault {
			pv += couponRate * yf * integrateAccruedOnDefault(curve, disc, p.AccrualStart, p.AccrualEnd, stepin)
		}
	}
	return pv / disc.DF(settle), nil
}

// RiskyAnnuity is PremiumLegPV per unit running coupon (couponRate=1),
// the quantity a par spread is divided by.
func RiskyAnnuity(curve *CreditCurve, disc DiscountCurve, periods []schedule.Period, payAccruedOnDefault bool, stepin, settle time.Time, dc daycount.Convention) (float64, error) {
	return PremiumLegPV(curve, disc, periods, 1.0, payAccruedOnDefault, stepin, settle, dc)
}

// ParSpread computes the running coupon that prices this CDS to zero
// upfront: ProtectionLegPV / RiskyAnnuity, both valued to settle.
func ParSpread(curve *CreditCurve, disc DiscountCurve, today, stepin, settle, maturity time.Time, periods []schedule.Period, conv Conventions) (float64, error) {
	protection := ProtectionLegPV(curve, disc, today, stepin, settle, maturity, conv.RecoveryRate)
	annuity, err := RiskyAnnuity(curve, disc, periods, conv.PayAccruedOnDefault, stepin, settle, conv.AccrualDayCount)
	if err != nil {
		return 0, err
	}
	if annuity <= 0 {
		return 0, fmt.Errorf("credit.ParSpread: non-positive risky annuity %v", annuity)
	}
	return protection / annuity, nil
}

// UpfrontCharge computes the amount (per unit notional, valued to
// settle) the protection buyer pays the seller at trade inception for a
// contract running at couponRate: ProtectionLegPV -
// PremiumLegPV(couponRate), positive when the coupon is below the par
// spread. A standard CDS traded at its par spread has zero upfront
// charge.
func UpfrontCharge(curve *CreditCurve, disc DiscountCurve, today, stepin, settle, maturity time.Time, periods []schedule.Period, couponRate float64, conv Conventions) (float64, error) {
	premium, err := PremiumLegPV(curve, disc, periods, couponRate, conv.PayAccruedOnDefault, stepin, settle, conv.AccrualDayCount)
	if err != nil {
		return 0, err
	}
	protection := ProtectionLegPV(curve, disc, today, stepin, settle, maturity, conv.RecoveryRate)
	return protection - premium, nil
}

// AccruedInterest returns the running coupon accrued from the start of
// the current accrual period up to (but not including) asOf.
func AccruedInterest(periods []schedule.Period, asOf time.Time, couponRate float64, dc daycount.Convention) (float64, error) {
	for _, p := range periods {
		if !asOf.Before(p.AccrualStart) && asOf.Before(p.AccrualEnd) {
			yf, err := daycount.YearFraction(dc, p.AccrualStart, asOf)
			if err != nil {
				return 0, err
			}
			return couponRate * yf, nil
		}
	}
	return 0, nil
}

// CleanPrice and DirtyPrice express the contract's value (per 100 of
// notional) the way a bond-equivalent quote would: CleanPrice is 100
// minus the upfront points; DirtyPrice additionally subtracts accrued
// interest since the start of the current period (matching the bond
// market convention that the buyer of protection, like a bond seller,
// is compensated for coupon already accrued).
func CleanPrice(upfrontCharge float64) float64 {
	return 100 * (1 - upfrontCharge)
}

func DirtyPrice(upfrontCharge, accruedInterest float64) float64 {
	return CleanPrice(upfrontCharge) - 100*accruedInterest
}
