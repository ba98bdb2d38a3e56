package report

import (
	"strings"
	"testing"

	"perpscope/internal/aggregate"
	"perpscope/internal/model"
)

func TestConsoleReport(t *testing.T) {
	stats := aggregate.Stats{
		UnixTime:                    1_700_000_000,
		TotalPoolValue:              5_000_000,
		NumPositions:                3,
		NumLongs:                    2,
		NumWinning:                  1,
		CumulativePositions:         150_000,
		CumulativePositionsAtEntry:  140_000,
		CumulativeLong:              100_000,
		CumulativeCollateral:        30_000,
		CumulativeCollateralAtEntry: 28_000,
		CumulativeFees:              1_234.5,
		CumulativePnl:               10_000,
		MostProfitable: aggregate.Trade{
			Address:    model.Address{1},
			Pnl:        9_000,
			EntryPrice: 88.5,
			Side:       model.SideLong,
			Mint:       model.Address{2},
		},
	}

	out := Console(stats)

	for _, want := range []string{
		"Unix time: 1700000000",
		"Total pool value: $5,000,000",
		"Total traders unrealized paper P&L: $10,000",
		"Total traders fees: $1,235",
		"Total traders unrealized real P&L: $8,766",
		"Long trades: 2 ($100,000)",
		"Short trades: 1 ($50,000)",
		"Winning trades: 1 Losing trades: 2",
		"Entry Price $88.50 Side: Long",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleReportNoPositions(t *testing.T) {
	out := Console(aggregate.Stats{UnixTime: 1})

	if !strings.Contains(out, "Average leverage at entry: NaN") {
		t.Fatalf("undefined leverage must render as NaN:\n%s", out)
	}
}
