// Package calendar implements a holiday-calendar / business-day engine:
// named holiday calendars with configurable weekend masks, business-day
// tests, the four standard adjustment conventions, business-day
// offsetting, and an asymmetric forward/backward business-day-count
// table.
//
// Two calendars always exist and cannot be deleted: NONE (no holidays,
// Saturday+Sunday weekend) and NO_WEEKENDS (no holidays, no weekend days
// at all). Everything else is loaded lazily, by name, from a holiday file
// on first reference and cached for the life of the process.
package calendar
