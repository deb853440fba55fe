// Package schedule generates coupon schedules: given an effective date,
// a maturity date, a coupon interval, and a stub method, it produces the
// sequence of accrual periods a CDS premium leg pays on. Accrual period
// boundaries are never business-day adjusted — only the payment date is
// — mirroring the fixed-coupon-date convention of a standard CDS
// contract.
package schedule
