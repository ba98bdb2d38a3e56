package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"perpscope/internal/aggregate"
)

// Console renders the aggregate snapshot as a multi-line summary.
func Console(stats aggregate.Stats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Unix time: %d\n", stats.UnixTime)
	fmt.Fprintf(&b, "Total pool value: $%s\n", dollars(stats.TotalPoolValue))
	fmt.Fprintf(&b, "Total traders unrealized paper P&L: $%s\n", dollars(stats.CumulativePnl))
	fmt.Fprintf(&b, "Total traders fees: $%s\n", dollars(stats.CumulativeFees))
	fmt.Fprintf(&b, "Total traders unrealized real P&L: $%s\n", dollars(stats.RealPnl()))
	fmt.Fprintf(&b, "Total value of positions: $%s\n", dollars(stats.CumulativePositions))
	fmt.Fprintf(&b, "Total value of collateral: $%s\n", dollars(stats.CumulativeCollateral))
	fmt.Fprintf(&b, "Average leverage at entry: %.4f\n", stats.AvgLeverageAtEntry())
	fmt.Fprintf(&b, "Average effective leverage: %.4f\n", stats.AvgEffectiveLeverage())
	fmt.Fprintf(&b, "Long trades: %d ($%s)\n", stats.NumLongs, dollars(stats.CumulativeLong))
	fmt.Fprintf(&b, "Short trades: %d ($%s)\n", stats.NumShorts(), dollars(stats.ShortValue()))
	fmt.Fprintf(&b, "L/S ratio: %.4f (%.4f)\n", stats.LongShortRatio(), stats.LongShortValueRatio())
	fmt.Fprintf(&b, "Winning trades: %d Losing trades: %d\n", stats.NumWinning, stats.NumLosing())

	fmt.Fprintf(&b, "Most profitable open trade: %s\n", tradeLine(stats.MostProfitable))
	fmt.Fprintf(&b, "Most unprofitable open trade: %s", tradeLine(stats.LeastProfitable))

	return b.String()
}

func tradeLine(trade aggregate.Trade) string {
	return fmt.Sprintf("%s Open P&L: $%s Entry Price $%.2f Side: %s Mint: %s",
		trade.Address, dollars(trade.Pnl), trade.EntryPrice, trade.Side, trade.Mint)
}

func dollars(value float64) string {
	if math.IsNaN(value) {
		return "NaN"
	}
	return humanize.Comma(int64(math.Round(value)))
}
