// Package cdsinput holds the JSON input types and resolution helpers
// shared by cdscalc's subcommands (curve, credit, price, convert), so
// date parsing, calendar/convention resolution, and discount-curve
// construction aren't duplicated four times over.
package cdsinput

import (
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/cdsmodel/calendar"
	"github.com/meenmo/cdsmodel/credit"
	"github.com/meenmo/cdsmodel/dateinterval"
	"github.com/meenmo/cdsmodel/daycount"
	"github.com/meenmo/cdsmodel/zerocurve"
)

const dateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" input date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ResolveCalendar maps a calendar name to a *calendar.Calendar, special-casing
// the two built-ins that never touch disk.
func ResolveCalendar(name string) (*calendar.Calendar, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", calendar.NameNone:
		return calendar.None(), nil
	case calendar.NameNoWeekends:
		return calendar.NoWeekends(), nil
	default:
		return calendar.Get(name)
	}
}

// DiscountQuoteInput is one JSON-serializable zero-curve input quote.
type DiscountQuoteInput struct {
	Type  string  `json:"type"`  // "MM" or "SWAP"
	Tenor string  `json:"tenor"` // e.g. "3M", "5Y"
	Rate  float64 `json:"rate"`  // decimal, e.g. 0.045
}

// DiscountInput is the JSON-serializable description of a discount
// (zero) curve to bootstrap.
type DiscountInput struct {
	TradeDate    string               `json:"trade_date"`
	SpotLagDays  int                  `json:"spot_lag_days"`
	Calendar     string               `json:"calendar"`
	DayCount     string               `json:"day_count"`
	SwapInterval string               `json:"swap_interval"`
	Quotes       []DiscountQuoteInput `json:"quotes"`
}

// Build bootstraps a *zerocurve.ZeroCurve from d.
func (d DiscountInput) Build() (*zerocurve.ZeroCurve, error) {
	tradeDate, err := ParseDate(d.TradeDate)
	if err != nil {
		return nil, fmt.Errorf("trade_date: %w", err)
	}
	cal, err := ResolveCalendar(d.Calendar)
	if err != nil {
		return nil, fmt.Errorf("calendar: %w", err)
	}
	dc, err := daycount.ParseConvention(defaultString(d.DayCount, "ACT360"))
	if err != nil {
		return nil, fmt.Errorf("day_count: %w", err)
	}
	swapInterval, err := dateinterval.Parse(defaultString(d.SwapInterval, "3M"))
	if err != nil {
		return nil, fmt.Errorf("swap_interval: %w", err)
	}
	if len(d.Quotes) == 0 {
		return nil, fmt.Errorf("quotes: at least one MM or SWAP quote is required")
	}

	quotes := make([]zerocurve.Quote, 0, len(d.Quotes))
	for _, q := range d.Quotes {
		instType, err := parseInstrumentType(q.Type)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, zerocurve.Quote{Type: instType, Tenor: q.Tenor, Rate: q.Rate})
	}

	return zerocurve.Bootstrap(quotes, zerocurve.BootstrapParams{
		TradeDate:    tradeDate,
		SpotLagDays:  d.SpotLagDays,
		Cal:          cal,
		SwapInterval: swapInterval,
		DayCount:     dc,
	})
}

func parseInstrumentType(s string) (zerocurve.InstrumentType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MM", "MONEYMARKET":
		return zerocurve.MoneyMarket, nil
	case "SWAP", "S":
		return zerocurve.Swap, nil
	default:
		return "", fmt.Errorf("unknown instrument type %q (want MM or SWAP)", s)
	}
}

// ParSpreadQuoteInput is one JSON-serializable credit-curve input quote.
type ParSpreadQuoteInput struct {
	Tenor  string  `json:"tenor"`
	Spread float64 `json:"spread"` // decimal, e.g. 0.012 for 120bp
}

// ResolveConventions maps a convention name ("NA_CORP" or "SOVEREIGN") to
// the model's preset Conventions, applying recoveryOverride when non-nil.
func ResolveConventions(name string, recoveryOverride *float64) (credit.Conventions, error) {
	var conv credit.Conventions
	switch strings.ToUpper(strings.TrimSpace(defaultString(name, "NA_CORP"))) {
	case "NA_CORP", "CORPORATE", "":
		conv = credit.StandardNorthAmericanCorporate
	case "SOVEREIGN":
		conv = credit.StandardSovereign
	default:
		return credit.Conventions{}, fmt.Errorf("unknown conventions %q (want NA_CORP or SOVEREIGN)", name)
	}
	if recoveryOverride != nil {
		conv.RecoveryRate = *recoveryOverride
	}
	return conv, nil
}

func defaultString(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
