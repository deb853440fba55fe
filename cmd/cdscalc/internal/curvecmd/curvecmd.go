// Package curvecmd implements cdscalc's "curve" subcommand: bootstrap a
// zero-coupon discount curve from money-market and swap quotes and
// report discount factors at the curve's own nodes, plus discount
// factors and zero rates at caller-supplied query dates.
package curvecmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/cdsmodel/cmd/cdscalc/internal/cdsinput"
)

// Input is the JSON input schema for the curve subcommand.
type Input struct {
	cdsinput.DiscountInput
	QueryDates []string `json:"query_dates"`
}

// NodeOutput is one bootstrapped curve node.
type NodeOutput struct {
	Date           string  `json:"date"`
	DiscountFactor float64 `json:"discount_factor"`
}

// QueryOutput is a discount factor / zero rate reported at a caller-supplied date.
type QueryOutput struct {
	Date           string  `json:"date"`
	DiscountFactor float64 `json:"discount_factor"`
	ZeroRate       float64 `json:"zero_rate"`
}

// Output is the JSON output schema for the curve subcommand.
type Output struct {
	BaseDate string        `json:"base_date"`
	Nodes    []NodeOutput  `json:"nodes"`
	Queries  []QueryOutput `json:"queries,omitempty"`
	Error    string        `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("curve", flag.ContinueOnError)
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
	curve, err := input.DiscountInput.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap curve: %w", err)
	}

	out := &Output{BaseDate: cdsinput.FormatDate(curve.BaseDate)}
	for i, d := range curve.Dates {
		out.Nodes = append(out.Nodes, NodeOutput{Date: cdsinput.FormatDate(d), DiscountFactor: curve.DFs[i]})
	}
	for _, qd := range input.QueryDates {
		t, err := cdsinput.ParseDate(qd)
		if err != nil {
			return nil, fmt.Errorf("query_dates: %w", err)
		}
		out.Queries = append(out.Queries, QueryOutput{
			Date:           cdsinput.FormatDate(t),
			DiscountFactor: curve.DF(t),
			ZeroRate:       curve.ZeroRateAt(t),
		})
	}
	return out, nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cdscalc curve < input.json")
	fmt.Fprintln(w, "  cdscalc curve -input /path/to/input.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bootstrap a zero curve from MM/SWAP quotes and report discount factors.")
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
