// Package daycount implements six accrual day-count conventions (ACT/365F,
// ACT/360, 30/360, 30E/360, ACT/ACT ISDA, and "Effective"), parsing of
// their canonical string codes, and the year-fraction calculation
// between two dates.
package daycount
