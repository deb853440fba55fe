// Package convertcmd implements cdscalc's "convert" subcommand: the
// standard-coupon upfront⇄par-spread conversion, root-solved through
// credit.SpreadFromUpfront.
package convertcmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/meenmo/cdsmodel/cmd/cdscalc/internal/cdsinput"
	"github.com/meenmo/cdsmodel/credit"
	"github.com/meenmo/cdsmodel/schedule"
)

// Input is the JSON input schema for the convert subcommand. Exactly
// one of UpfrontCharge or ParSpread must be set; the other is solved for.
type Input struct {
	EffectiveDate string                 `json:"effective_date"`
	MaturityDate  string                 `json:"maturity_date"`
	CouponBP      float64                `json:"coupon_bp"`
	Conventions   string                 `json:"conventions"`
	RecoveryRate  *float64               `json:"recovery_rate,omitempty"`
	Discount      cdsinput.DiscountInput `json:"discount"`
	UpfrontCharge *float64               `json:"upfront_charge,omitempty"`
	ParSpread     *float64               `json:"par_spread,omitempty"`
}

// Output is the JSON output schema for the convert subcommand.
type Output struct {
	UpfrontCharge float64 `json:"upfront_charge"`
	ParSpread     float64 `json:"par_spread"`
	Error         string  `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
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

	output, err := convert(input)
	if err != nil {
		return writeError(stdout, err.Error())
	}

	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func convert(input Input) (*Output, error) {
	if (input.UpfrontCharge == nil) == (input.ParSpread == nil) {
		return nil, fmt.Errorf("exactly one of upfront_charge or par_spread is required")
	}

	effective, err := cdsinput.ParseDate(input.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("effective_date: %w", err)
	}
	maturity, err := cdsinput.ParseDate(input.MaturityDate)
	if err != nil {
		return nil, fmt.Errorf("maturity_date: %w", err)
	}
	conv, err := cdsinput.ResolveConventions(input.Conventions, input.RecoveryRate)
	if err != nil {
		return nil, err
	}
	disc, err := input.Discount.Build()
	if err != nil {
		return nil, fmt.Errorf("discount: %w", err)
	}
	runningCoupon := input.CouponBP / 10000.0

	if input.ParSpread != nil {
		curve, err := credit.BootstrapCreditCurve(effective, []credit.ParSpreadQuote{{
			Tenor:  tenorToken(effective, maturity),
			Spread: *input.ParSpread,
		}}, disc, conv)
		if err != nil {
			return nil, fmt.Errorf("failed to bootstrap curve from par_spread: %w", err)
		}
		periods, err := schedulePeriods(effective, maturity, conv)
		if err != nil {
			return nil, err
		}
		upfront, err := credit.UpfrontCharge(curve, disc, effective, effective, effective, maturity, periods, runningCoupon, conv)
		if err != nil {
			return nil, fmt.Errorf("failed to compute upfront charge: %w", err)
		}
		return &Output{UpfrontCharge: upfront, ParSpread: *input.ParSpread}, nil
	}

	spread, err := credit.SpreadFromUpfront(effective, maturity, *input.UpfrontCharge, runningCoupon, disc, conv)
	if err != nil {
		return nil, fmt.Errorf("failed to solve for par spread: %w", err)
	}
	return &Output{UpfrontCharge: *input.UpfrontCharge, ParSpread: spread}, nil
}

func schedulePeriods(effective, maturity time.Time, conv credit.Conventions) ([]schedule.Period, error) {
	return schedule.Generate(effective, maturity, conv.CouponInterval, conv.StubMethod, conv.Calendar, conv.BadDayConvention)
}

// tenorToken renders the whole-month span from effective to maturity as
// an "nM" token — the single-quote tenor BootstrapCreditCurve needs when
// building a flat trial curve from one quoted par spread.
func tenorToken(effective, maturity time.Time) string {
	months := (maturity.Year()-effective.Year())*12 + int(maturity.Month()) - int(effective.Month())
	if months < 1 {
		months = 1
	}
	return fmt.Sprintf("%dM", months)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cdscalc convert < input.json")
	fmt.Fprintln(w, "  cdscalc convert -input /path/to/input.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert between par spread and upfront charge for a standard-coupon CDS.")
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
