// Package zerocurve implements a risk-free discount-curve engine:
// bootstrapping a discount curve from money-market deposit rates and par
// swap rates, and interpolating zero rates / discount factors off it.
package zerocurve
