package aggregate

import (
	"math"

	"perpscope/internal/model"
)

// Trade identifies one extremal open position.
type Trade struct {
	Address    model.Address
	Pnl        float64
	EntryPrice float64
	Side       model.Side
	Mint       model.Address
}

// Stats is the running aggregate over all active positions in one scan.
type Stats struct {
	UnixTime       uint64
	TotalPoolValue float64

	NumPositions uint64
	NumLongs     uint64
	NumWinning   uint64

	CumulativePositions         float64
	CumulativePositionsAtEntry  float64
	CumulativeLong              float64
	CumulativeCollateral        float64
	CumulativeCollateralAtEntry float64
	CumulativeFees              float64
	CumulativePnl               float64

	MostProfitable  Trade
	LeastProfitable Trade
}

// NumShorts derives the short position count.
func (s Stats) NumShorts() uint64 {
	return s.NumPositions - s.NumLongs
}

// NumLosing derives the count of positions with non-positive paper PnL.
func (s Stats) NumLosing() uint64 {
	return s.NumPositions - s.NumWinning
}

// ShortValue derives the current value held in short positions.
func (s Stats) ShortValue() float64 {
	return s.CumulativePositions - s.CumulativeLong
}

// RealPnl is paper PnL net of all fees.
func (s Stats) RealPnl() float64 {
	return s.CumulativePnl - s.CumulativeFees
}

// AvgLeverageAtEntry is cumulative entry value over cumulative entry
// collateral. NaN when there are no active positions.
func (s Stats) AvgLeverageAtEntry() float64 {
	if s.CumulativeCollateralAtEntry == 0 {
		return math.NaN()
	}
	return s.CumulativePositionsAtEntry / s.CumulativeCollateralAtEntry
}

// AvgEffectiveLeverage is cumulative current value over cumulative current
// collateral. NaN when there are no active positions.
func (s Stats) AvgEffectiveLeverage() float64 {
	if s.CumulativeCollateral == 0 {
		return math.NaN()
	}
	return s.CumulativePositions / s.CumulativeCollateral
}

// LongShortRatio is long count over short count.
func (s Stats) LongShortRatio() float64 {
	return float64(s.NumLongs) / float64(s.NumShorts())
}

// LongShortValueRatio is long value over short value.
func (s Stats) LongShortValueRatio() float64 {
	return s.CumulativeLong / s.ShortValue()
}

// Snapshot flattens the stats into the fixed 12-field log row.
func (s Stats) Snapshot() model.Snapshot {
	return model.Snapshot{
		UnixTime:             s.UnixTime,
		TotalPoolValue:       s.TotalPoolValue,
		UnrealizedPnl:        s.CumulativePnl,
		TotalFees:            s.CumulativeFees,
		PositionValue:        s.CumulativePositions,
		CollateralValue:      s.CumulativeCollateral,
		AvgLeverageAtEntry:   s.AvgLeverageAtEntry(),
		AvgEffectiveLeverage: s.AvgEffectiveLeverage(),
		LongTrades:           s.NumLongs,
		LongValue:            s.CumulativeLong,
		ShortTrades:          s.NumShorts(),
		ShortValue:           s.ShortValue(),
	}
}
