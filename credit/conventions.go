package credit

import (
	"github.com/meenmo/cdsmodel/calendar"
	"github.com/meenmo/cdsmodel/daycount"
	"github.com/meenmo/cdsmodel/dateinterval"
	"github.com/meenmo/cdsmodel/schedule"
)

// Conventions bundles the fixed trading conventions of a standard CDS
// contract, the way an IRS/OIS leg bundles its own fixed trading
// conventions into a single preset value.
type Conventions struct {
	CouponInterval      dateinterval.Interval
	AccrualDayCount     daycount.Convention
	StubMethod          schedule.StubMethod
	BadDayConvention    calendar.Convention
	Calendar            *calendar.Calendar
	PayAccruedOnDefault bool
	RecoveryRate        float64
}

// StandardNorthAmericanCorporate is the standard contract for North
// American single-name corporate CDS: quarterly (3M) coupons rolled back
// from maturity, ACT/360 accrual, front-short stub, modified following
// adjustment, accrued-on-default, 40% recovery. Coupon dates are not
// pinned to the 20th of Mar/Jun/Sep/Dec.
var StandardNorthAmericanCorporate = Conventions{
	CouponInterval:      mustInterval("3M"),
	AccrualDayCount:     daycount.Act360,
	StubMethod:          schedule.StubMethod{Position: schedule.StubFront, Length: schedule.StubShort},
	BadDayConvention:    calendar.ModifiedFollowing,
	Calendar:            calendar.None(),
	PayAccruedOnDefault: true,
	RecoveryRate:        0.40,
}

// StandardSovereign mirrors StandardNorthAmericanCorporate but with the
// 25% recovery rate conventionally quoted for sovereign credits.
var StandardSovereign = Conventions{
	CouponInterval:      mustInterval("3M"),
	AccrualDayCount:     daycount.Act360,
	StubMethod:          schedule.StubMethod{Position: schedule.StubFront, Length: schedule.StubShort},
	BadDayConvention:    calendar.ModifiedFollowing,
	Calendar:            calendar.None(),
	PayAccruedOnDefault: true,
	RecoveryRate:        0.25,
}

// StandardCoupons lists the two fixed running coupons (in decimal, e.g.
// 0.01 for 100bp) standard CDS contracts are quoted at — 100bp for
// investment grade, 500bp for high yield/distressed names.
var StandardCoupons = struct {
	InvestmentGrade float64
	HighYield       float64
}{
	InvestmentGrade: 0.0100,
	HighYield:       0.0500,
}

func mustInterval(token string) dateinterval.Interval {
	iv, err := dateinterval.Parse(token)
	if err != nil {
		panic("credit: invalid built-in interval token " + token)
	}
	return iv
}
