// Package solver implements a bracketed root finder: a combination of
// the secant method, bisection, and inverse-quadratic (Brent)
// interpolation. It is the workhorse behind zero-curve swap bootstrapping
// and credit-curve hazard-rate bootstrapping, both of which need to
// invert a pricing function with no closed-form solution.
package solver
