package convertcmd_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/meenmo/cdsmodel/cmd/cdscalc/internal/convertcmd"
)

const discountBlock = `{
	"trade_date": "2026-07-29",
	"calendar": "NONE",
	"day_count": "ACT360",
	"swap_interval": "3M",
	"quotes": [{"type":"MM","tenor":"1M","rate":0.03}]
}`

func TestRun_ParSpreadToUpfrontAndBack(t *testing.T) {
	t.Parallel()
	forward := `{
		"effective_date": "2026-07-29",
		"maturity_date": "2031-07-29",
		"coupon_bp": 100,
		"conventions": "NA_CORP",
		"discount": ` + discountBlock + `,
		"par_spread": 0.018
	}`
	var stdout, stderr bytes.Buffer
	code := convertcmd.Run(nil, strings.NewReader(forward), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("got exit code %d, stderr=%q stdout=%q", code, stderr.String(), stdout.String())
	}

	var fwdOut convertcmd.Output
	if err := json.Unmarshal(stdout.Bytes(), &fwdOut); err != nil {
		t.Fatal(err)
	}

	backward := `{
		"effective_date": "2026-07-29",
		"maturity_date": "2031-07-29",
		"coupon_bp": 100,
		"conventions": "NA_CORP",
		"discount": ` + discountBlock + `,
		"upfront_charge": ` + jsonFloat(fwdOut.UpfrontCharge) + `
	}`
	var stdout2, stderr2 bytes.Buffer
	code2 := convertcmd.Run(nil, strings.NewReader(backward), &stdout2, &stderr2)
	if code2 != 0 {
		t.Fatalf("got exit code %d, stderr=%q stdout=%q", code2, stderr2.String(), stdout2.String())
	}

	var backOut convertcmd.Output
	if err := json.Unmarshal(stdout2.Bytes(), &backOut); err != nil {
		t.Fatal(err)
	}
	if diff := backOut.ParSpread - 0.018; diff > 1e-4 || diff < -1e-4 {
		t.Fatalf("round-trip spread mismatch: got %v want ~0.018", backOut.ParSpread)
	}
}

func TestRun_RejectsBothFieldsSet(t *testing.T) {
	t.Parallel()
	input := `{
		"effective_date": "2026-07-29",
		"maturity_date": "2031-07-29",
		"coupon_bp": 100,
		"discount": ` + discountBlock + `,
		"par_spread": 0.02,
		"upfront_charge": 0.01
	}`
	var stdout, stderr bytes.Buffer
	code := convertcmd.Run(nil, strings.NewReader(input), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("got exit code %d want 1", code)
	}
}

func jsonFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}
