// Package creditcmd implements cdscalc's "credit" subcommand:
// bootstrap a clean-spread (hazard) credit curve from a par-CDS quote
// term structure against a discount curve, and report the resulting
// hazard rates and survival probabilities at each benchmark maturity.
package creditcmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/cdsmodel/cmd/cdscalc/internal/cdsinput"
	"github.com/meenmo/cdsmodel/credit"
)

// Input is the JSON input schema for the credit subcommand.
type Input struct {
	EffectiveDate string                         `json:"effective_date"`
	Conventions   string                         `json:"conventions"` // "NA_CORP" or "SOVEREIGN"
	RecoveryRate  *float64                       `json:"recovery_rate,omitempty"`
	Discount      cdsinput.DiscountInput         `json:"discount"`
	Quotes        []cdsinput.ParSpreadQuoteInput `json:"quotes"`
}

// NodeOutput is one bootstrapped credit-curve node.
type NodeOutput struct {
	Date     string  `json:"date"`
	Hazard   float64 `json:"hazard_rate"`
	Survival float64 `json:"survival_probability"`
}

// Output is the JSON output schema for the credit subcommand.
type Output struct {
	EffectiveDate string       `json:"effective_date"`
	Nodes         []NodeOutput `json:"nodes"`
	Error         string       `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("credit", flag.ContinueOnError)
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

	output, err := build(input)
	if err != nil {
		return writeError(stdout, err.Error())
	}

	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func build(input Input) (*Output, error) {
	effective, err := cdsinput.ParseDate(input.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("effective_date: %w", err)
	}
	conv, err := cdsinput.ResolveConventions(input.Conventions, input.RecoveryRate)
	if err != nil {
		return nil, err
	}
	disc, err := input.Discount.Build()
	if err != nil {
		return nil, fmt.Errorf("discount: %w", err)
	}
	if len(input.Quotes) == 0 {
		return nil, fmt.Errorf("quotes: at least one par-spread quote is required")
	}

	quotes := make([]credit.ParSpreadQuote, 0, len(input.Quotes))
	for _, q := range input.Quotes {
		quotes = append(quotes, credit.ParSpreadQuote{Tenor: q.Tenor, Spread: q.Spread})
	}

	curve, err := credit.BootstrapCreditCurve(effective, quotes, disc, conv)
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap credit curve: %w", err)
	}

	out := &Output{EffectiveDate: cdsinput.FormatDate(effective)}
	for i, d := range curve.Dates {
		out.Nodes = append(out.Nodes, NodeOutput{
			Date:     cdsinput.FormatDate(d),
			Hazard:   curve.Hazards[i],
			Survival: curve.Survival(d),
		})
	}
	return out, nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cdscalc credit < input.json")
	fmt.Fprintln(w, "  cdscalc credit -input /path/to/input.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bootstrap a clean-spread credit curve from par-CDS quotes.")
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
