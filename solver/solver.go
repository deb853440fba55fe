package solver

import (
	"fmt"
	"math"
)

// onePercent is the fraction of (boundHi - boundLo) used to pick a
// default step size, and to nudge a degenerate guess off a bound.
const onePercent = 0.01

// Func is the scalar objective function being root-found: f(x) = 0.
type Func func(x float64) (float64, error)

// Params configures FindRoot. A typical caller choice is 100 iterations
// with 1e-8 tolerances; this package does not impose a default, callers
// set it explicitly.
type Params struct {
	BoundLo       float64
	BoundHi       float64
	Guess         float64
	InitialXStep  float64 // 0 means "1% of (BoundHi-BoundLo)"
	InitialFDeriv float64 // 0 means "no derivative known, step by InitialXStep"
	NumIterations int
	Xacc          float64
	Facc          float64
}

// FindRoot finds x such that f(x) == 0 (to within Xacc/Facc) in
// [p.BoundLo, p.BoundHi], starting from p.Guess: try the guess, take one
// secant/Newton step, run the secant method until the root is found or
// bracketed, fall back to evaluating the bounds directly if secant never
// brackets it, and finish with Brent's method once three points bracket
// the root.
func FindRoot(f Func, p Params) (float64, error) {
	if p.BoundLo >= p.BoundHi {
		return 0, fmt.Errorf("solver.FindRoot: lower bound (%g) >= upper bound (%g)", p.BoundLo, p.BoundHi)
	}
	if p.Guess < p.BoundLo || p.Guess > p.BoundHi {
		return 0, fmt.Errorf("solver.FindRoot: guess (%g) is out of range [%g, %g]", p.Guess, p.BoundLo, p.BoundHi)
	}

	x := [3]float64{p.Guess, 0, 0}
	y := [3]float64{}

	y0, err := f(x[0])
	if err != nil {
		return 0, fmt.Errorf("solver.FindRoot: function failed at guess %g: %w", x[0], err)
	}
	y[0] = y0

	if closeEnough(y[0], p.Facc, p.BoundLo-x[0], p.BoundHi-x[0], p.Xacc) {
		return x[0], nil
	}

	boundSpread := p.BoundHi - p.BoundLo
	xStep := p.InitialXStep
	if xStep == 0 {
		xStep = onePercent * boundSpread
	}

	if p.InitialFDeriv == 0 {
		x[2] = x[0] + xStep
	} else {
		x[2] = x[0] - y[0]/p.InitialFDeriv
	}

	if x[2] < p.BoundLo || x[2] > p.BoundHi {
		x[2] = x[0] - xStep
		if x[2] < p.BoundLo {
			x[2] = p.BoundLo
		}
		if x[2] > p.BoundHi {
			x[2] = p.BoundHi
		}
		if x[2] == x[0] {
			if x[2] == p.BoundLo {
				x[2] = p.BoundLo + onePercent*boundSpread
			} else {
				x[2] = p.BoundHi - onePercent*boundSpread
			}
		}
	}

	y2, err := f(x[2])
	if err != nil {
		return 0, fmt.Errorf("solver.FindRoot: function failed at point %g: %w", x[2], err)
	}
	y[2] = y2

	if closeEnoughSimple(y[2], p.Facc, x[2]-x[0], p.Xacc) {
		return x[2], nil
	}

	foundIt, bracketed, solution, err := secantMethod(f, p.NumIterations, p.Xacc, p.Facc, p.BoundLo, p.BoundHi, &x, &y)
	if err != nil {
		return 0, err
	}
	if foundIt {
		return solution, nil
	}
	if !bracketed {
		var ok bool
		solution, ok, err = tryBounds(f, p, &x, &y)
		if err != nil {
			return 0, err
		}
		if ok {
			return solution, nil
		}

		x[1] = 0.5 * (x[0] + x[2])
		y1, err := f(x[1])
		if err != nil {
			return 0, fmt.Errorf("solver.FindRoot: function failed at midpoint %g: %w", x[1], err)
		}
		y[1] = y1
		if closeEnoughSimple(y[1], p.Facc, x[1]-x[0], p.Xacc) {
			return x[1], nil
		}
	}

	return brentMethod(f, p.NumIterations, p.Xacc, p.Facc, x, y)
}

// tryBounds evaluates f at the two bounds when the secant method failed
// to bracket the root. The returned bool reports whether a root was
// found exactly at one of the bounds (in which case solution is valid
// and the caller returns immediately); otherwise x/y are updated in
// place so x[0] and x[2] bracket the root ready for Brent's method.
func tryBounds(f Func, p Params, x, y *[3]float64) (float64, bool, error) {
	fLo, err := f(p.BoundLo)
	if err != nil {
		return 0, false, fmt.Errorf("solver.FindRoot: function failed at lower bound %g: %w", p.BoundLo, err)
	}
	if closeEnoughSimple(fLo, p.Facc, p.BoundLo-x[0], p.Xacc) {
		return p.BoundLo, true, nil
	}

	if y[0]*fLo < 0 {
		x[2] = x[0]
		x[0] = p.BoundLo
		y[2] = y[0]
		y[0] = fLo
		return 0, false, nil
	}

	fHi, err := f(p.BoundHi)
	if err != nil {
		return 0, false, fmt.Errorf("solver.FindRoot: function failed at upper bound %g: %w", p.BoundHi, err)
	}
	if closeEnoughSimple(fHi, p.Facc, p.BoundHi-x[0], p.Xacc) {
		return p.BoundHi, true, nil
	}

	if y[0]*fHi < 0 {
		x[2] = p.BoundHi
		y[2] = fHi
		return 0, false, nil
	}

	return 0, false, fmt.Errorf("solver.FindRoot: function values (%g, %g) at bounds (%g, %g) imply no root exists",
		fLo, fHi, p.BoundLo, p.BoundHi)
}

// secantMethod repeatedly takes a secant step, stopping when the root is
// found (within tolerance), when it is bracketed by x[0] and x[2], when
// the next point falls outside the bounds, or when numIterations is
// exhausted. Ported from rtbrent.c's secantMethod.
func secantMethod(f Func, numIterations int, xacc, facc, boundLo, boundHi float64, x, y *[3]float64) (foundIt, bracketed bool, solution float64, err error) {
	for j := numIterations; j > 0; j-- {
		if math.Abs(y[0]) > math.Abs(y[2]) {
			x[0], x[2] = x[2], x[0]
			y[0], y[2] = y[2], y[0]
		}

		var dx float64
		if math.Abs(y[0]-y[2]) <= facc {
			if y[0]-y[2] > 0 {
				dx = -y[0] * (x[0] - x[2]) / facc
			} else {
				dx = y[0] * (x[0] - x[2]) / facc
			}
		} else {
			dx = (x[2] - x[0]) * y[0] / (y[0] - y[2])
		}
		x[1] = x[0] + dx

		if x[1] < boundLo || x[1] > boundHi {
			return false, false, 0, nil
		}

		y1, ferr := f(x[1])
		if ferr != nil {
			return false, false, 0, fmt.Errorf("solver: function failed at point %g: %w", x[1], ferr)
		}
		y[1] = y1

		if closeEnoughSimple(y[1], facc, x[1]-x[0], xacc) {
			return true, true, x[1], nil
		}

		allNegative := y[0] < 0 && y[1] < 0 && y[2] < 0
		allPositive := y[0] > 0 && y[1] > 0 && y[2] > 0
		if allNegative || allPositive {
			if math.Abs(y[0]) > math.Abs(y[1]) {
				x[2], y[2] = x[0], y[0]
				x[0], y[0] = x[1], y[1]
			} else {
				x[2], y[2] = x[1], y[1]
			}
			continue
		}

		if y[0]*y[2] > 0 {
			if x[1] < x[0] {
				x[0], x[1] = x[1], x[0]
				y[0], y[1] = y[1], y[0]
			} else {
				x[1], x[2] = x[2], x[1]
				y[1], y[2] = y[2], y[1]
			}
		}
		return false, true, 0, nil
	}
	return false, false, 0, nil
}

// brentMethod finds the root given three points where two of them
// bracket it, combining inverse quadratic interpolation with bisection.
// Ported from rtbrent.c's brentMethod.
func brentMethod(f Func, numIterations int, xacc, facc float64, x, y [3]float64) (float64, error) {
	x1, x2, x3 := x[0], x[1], x[2]
	f1, f2, f3 := y[0], y[1], y[2]

	for j := 1; j <= numIterations; j++ {
		if f2*f1 > 0.0 {
			x1, x3 = x3, x1
			f1, f3 = f3, f1
		}
		f21 := f2 - f1
		f32 := f3 - f2
		f31 := f3 - f1
		x21 := x2 - x1
		x31 := x3 - x1

		ratio := (x3 - x1) / (x2 - x1)
		if f3*f31 < ratio*f2*f21 || f21 == 0 || f31 == 0 || f32 == 0 {
			x3 = x2
			f3 = f2
		} else {
			xm := x1 - (f1/f21)*x21 + ((f1*f2)/(f31*f32))*x31 - ((f1*f2)/(f21*f32))*x21
			fm, err := f(xm)
			if err != nil {
				return 0, fmt.Errorf("solver: function failed at point %g: %w", xm, err)
			}
			if closeEnoughSimple(fm, facc, xm-x1, xacc) {
				return xm, nil
			}
			if fm*f1 < 0.0 {
				x3, f3 = xm, fm
			} else {
				x1, f1 = xm, fm
				x3, f3 = x2, f2
			}
		}

		x2 = 0.5 * (x1 + x3)
		var err error
		f2, err = f(x2)
		if err != nil {
			return 0, fmt.Errorf("solver: function failed at point %g: %w", x2, err)
		}
		if closeEnoughSimple(f2, facc, x2-x1, xacc) {
			return x2, nil
		}
	}

	return 0, fmt.Errorf("solver.FindRoot: maximum number of iterations (%d) exceeded", numIterations)
}

// closeEnough reports whether y is an acceptable root value: either
// exactly zero, or within facc of zero while x is within xacc of either
// bound. loDiff/hiDiff are (bound - x) for the low/high bounds.
func closeEnough(y, facc, loDiff, hiDiff, xacc float64) bool {
	if y == 0 {
		return true
	}
	return math.Abs(y) <= facc && (math.Abs(loDiff) <= xacc || math.Abs(hiDiff) <= xacc)
}

// closeEnoughSimple is closeEnough's single-reference-point form, used
// once the candidate is being judged against its own originating point
// rather than against the two bounds.
func closeEnoughSimple(y, facc, xDiff, xacc float64) bool {
	if y == 0 {
		return true
	}
	return math.Abs(y) <= facc && math.Abs(xDiff) <= xacc
}
