// Package pricecmd implements cdscalc's "price" subcommand: bootstrap a
// discount curve and a clean-spread credit curve, then price a single
// CDS contract against them, reporting par spread, upfront charge,
// accrued interest, and clean/dirty price.
package pricecmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/cdsmodel/cmd/cdscalc/internal/cdsinput"
	"github.com/meenmo/cdsmodel/credit"
	"github.com/meenmo/cdsmodel/schedule"
)

// Input is the JSON input schema for the price subcommand. TodayDate,
// StepinDate, and SettleDate all default to EffectiveDate when omitted,
// matching a trade priced and settled as of its own effective date.
type Input struct {
	EffectiveDate string                         `json:"effective_date"`
	MaturityDate  string                         `json:"maturity_date"`
	TodayDate     string                         `json:"today_date,omitempty"`
	StepinDate    string                         `json:"stepin_date,omitempty"`
	SettleDate    string                         `json:"settle_date"`
	CouponBP      float64                        `json:"coupon_bp"`
	Conventions   string                         `json:"conventions"`
	RecoveryRate  *float64                       `json:"recovery_rate,omitempty"`
	Discount      cdsinput.DiscountInput         `json:"discount"`
	CreditQuotes  []cdsinput.ParSpreadQuoteInput `json:"credit_quotes"`
}

// Output is the JSON output schema for the price subcommand.
type Output struct {
	ParSpread       float64 `json:"par_spread"`
	UpfrontCharge   float64 `json:"upfront_charge"`
	AccruedInterest float64 `json:"accrued_interest"`
	CleanPrice      float64 `json:"clean_price"`
	DirtyPrice      float64 `json:"dirty_price"`
	Error           string  `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("price", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("input", "", "JSON input path (optional; if set, ignores stdin)")
	help := fs.Bool("h", false, "Show help")
	fs.BoolVar(help, "help", false, "Show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		usage(stderr)
		return 0
	}

	inputBytes, err := readInput(stdin, strings.TrimSpace(*inputPath))
	if err != nil {
		return writeError(stdout, fmt.Sprintf("failed to read input: %v", err))
	}

	var input Input
	if err := json.Unmarshal(inputBytes, &input); err != nil {
		return writeError(stdout, fmt.Sprintf("failed to parse JSON input: %v", err))
	}

	output, err := price(input)
	if err != nil {
		return writeError(stdout, err.Error())
	}

	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func price(input Input) (*Output, error) {
	effective, err := cdsinput.ParseDate(input.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("effective_date: %w", err)
	}
	maturity, err := cdsinput.ParseDate(input.MaturityDate)
	if err != nil {
		return nil, fmt.Errorf("maturity_date: %w", err)
	}
	settle := effective
	if strings.TrimSpace(input.SettleDate) != "" {
		settle, err = cdsinput.ParseDate(input.SettleDate)
		if err != nil {
			return nil, fmt.Errorf("settle_date: %w", err)
		}
	}
	today := effective
	if strings.TrimSpace(input.TodayDate) != "" {
		today, err = cdsinput.ParseDate(input.TodayDate)
		if err != nil {
			return nil, fmt.Errorf("today_date: %w", err)
		}
	}
	stepin := effective
	if strings.TrimSpace(input.StepinDate) != "" {
		stepin, err = cdsinput.ParseDate(input.StepinDate)
		if err != nil {
			return nil, fmt.Errorf("stepin_date: %w", err)
		}
	}

	conv, err := cdsinput.ResolveConventions(input.Conventions, input.RecoveryRate)
	if err != nil {
		return nil, err
	}
	disc, err := input.Discount.Build()
	if err != nil {
		return nil, fmt.Errorf("discount: %w", err)
	}
	if len(input.CreditQuotes) == 0 {
		return nil, fmt.Errorf("credit_quotes: at least one par-spread quote is required")
	}

	quotes := make([]credit.ParSpreadQuote, 0, len(input.CreditQuotes))
	for _, q := range input.CreditQuotes {
		quotes = append(quotes, credit.ParSpreadQuote{Tenor: q.Tenor, Spread: q.Spread})
	}
	curve, err := credit.BootstrapCreditCurve(effective, quotes, disc, conv)
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap credit curve: %w", err)
	}

	periods, err := schedule.Generate(effective, maturity, conv.CouponInterval, conv.StubMethod, conv.Calendar, conv.BadDayConvention)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}

	couponRate := input.CouponBP / 10000.0

	parSpread, err := credit.ParSpread(curve, disc, today, stepin, settle, maturity, periods, conv)
	if err != nil {
		return nil, fmt.Errorf("failed to compute par spread: %w", err)
	}
	upfront, err := credit.UpfrontCharge(curve, disc, today, stepin, settle, maturity, periods, couponRate, conv)
	if err != nil {
		return nil, fmt.Errorf("failed to compute upfront charge: %w", err)
	}
	accrued, err := credit.AccruedInterest(periods, settle, couponRate, conv.AccrualDayCount)
	if err != nil {
		return nil, fmt.Errorf("failed to compute accrued interest: %w", err)
	}

	clean := credit.CleanPrice(upfront)
	return &Output{
		ParSpread:       parSpread,
		UpfrontCharge:   upfront,
		AccruedInterest: accrued,
		CleanPrice:      clean,
		DirtyPrice:      credit.DirtyPrice(upfront, accrued),
	}, nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cdscalc price < input.json")
	fmt.Fprintln(w, "  cdscalc price -input /path/to/input.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bootstrap curves and price a single CDS contract.")
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func writeError(stdout io.Writer, msg string) int {
	output := Output{Error: msg}
	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 1
}
