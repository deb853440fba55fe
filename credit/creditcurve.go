package credit

import (
	"math"
	"time"

	"github.com/meenmo/cdsmodel/dateutil"
)

// CreditCurve is a piecewise-constant (in forward hazard rate),
// continuously-compounded survival-probability curve, anchored at
// BaseDate where Survival == 1.
type CreditCurve struct {
	BaseDate time.Time
	Dates    []time.Time // strictly ascending, all after BaseDate
	Hazards  []float64   // Hazards[i] applies on (Dates[i-1], Dates[i]], Dates[-1]==BaseDate
}

// Survival returns the probability of no default occurring between
// BaseDate and t.
func (c *CreditCurve) Survival(t time.Time) float64 {
	if !t.After(c.BaseDate) {
		return 1.0
	}
	cumulative := 0.0
	segStart := c.BaseDate
	for i, segEnd := range c.Dates {
		if !t.After(segEnd) {
			cumulative += c.Hazards[i] * dateutil.Days(segStart, t) / 365.0
			return math.Exp(-cumulative)
		}
		cumulative += c.Hazards[i] * dateutil.Days(segStart, segEnd) / 365.0
		segStart = segEnd
	}
	// Beyond the last node: flat-extrapolate the final hazard rate.
	lastHazard := c.Hazards[len(c.Hazards)-1]
	cumulative += lastHazard * dateutil.Days(segStart, t) / 365.0
	return math.Exp(-cumulative)
}

// appendNode adds a new node at the end of the curve, inferring the
// piecewise-constant forward hazard rate over (lastDate, date] needed to
// reach the given cumulative survival probability survivalAtDate.
func (c *CreditCurve) appendNode(date time.Time, survivalAtDate float64) {
	segStart := c.BaseDate
	if len(c.Dates) > 0 {
		segStart = c.Dates[len(c.Dates)-1]
	}
	priorSurvival := c.Survival(segStart)
	yf := dateutil.Days(segStart, date) / 365.0

	var hazard float64
	if yf > 0 {
		hazard = -math.Log(survivalAtDate/priorSurvival) / yf
	}

	c.Dates = append(c.Dates, date)
	c.Hazards = append(c.Hazards, hazard)
}
