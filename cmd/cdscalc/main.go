package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/cdsmodel/cmd/cdscalc/internal/convertcmd"
	"github.com/meenmo/cdsmodel/cmd/cdscalc/internal/creditcmd"
	"github.com/meenmo/cdsmodel/cmd/cdscalc/internal/curvecmd"
	"github.com/meenmo/cdsmodel/cmd/cdscalc/internal/pricecmd"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "curve":
		return curvecmd.Run(args[1:], stdin, stdout, stderr)
	case "credit":
		return creditcmd.Run(args[1:], stdin, stdout, stderr)
	case "price":
		return pricecmd.Run(args[1:], stdin, stdout, stderr)
	case "convert":
		return convertcmd.Run(args[1:], stdin, stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cdscalc <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  curve    Bootstrap a zero curve from MM/SWAP quotes")
	fmt.Fprintln(w, "  credit   Bootstrap a clean-spread credit curve from par-CDS quotes")
	fmt.Fprintln(w, "  price    Price a single CDS contract")
	fmt.Fprintln(w, "  convert  Convert between par spread and upfront charge")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run `cdscalc <command> -h` for command-specific help.")
}
