// Package credit implements credit-curve bootstrapping and CDS pricing
// together, in one package, because bootstrapping a credit curve
// requires repeatedly pricing a trial CDS against it, and pricing a CDS
// requires a CreditCurve type — keeping them separate would force an
// import cycle.
//
// CreditCurve models survival probability as piecewise-constant forward
// hazard rates between curve nodes, continuously compounded. This module's
// zero curve differs: it interpolates linearly on the zero rate between
// its nodes.
package credit
