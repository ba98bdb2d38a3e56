package aggregate

import (
	"fmt"

	"go.uber.org/zap"

	"perpscope/internal/model"
)

// Aggregator folds open positions into running aggregate statistics. The
// custody map, rate table, and mint price map must be fully built before
// the first Add call; the fold itself is order-independent.
type Aggregator struct {
	custodies  map[model.Address]model.Custody
	rates      RateTable
	mintPrices map[model.Address]float64
	entryBps   float64
	now        int64
	logger     *zap.Logger

	stats   Stats
	skipped uint64

	highestProfit float64
	deepestLoss   float64
}

// NewAggregator builds an Aggregator over one scan's materialized tables.
// now is the scan timestamp in unix seconds.
func NewAggregator(
	pool model.Pool,
	custodies map[model.Address]model.Custody,
	rates RateTable,
	mintPrices map[model.Address]float64,
	now int64,
	logger *zap.Logger,
) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		custodies:  custodies,
		rates:      rates,
		mintPrices: mintPrices,
		entryBps:   float64(pool.IncreasePositionBps),
		now:        now,
		logger:     logger,
		stats: Stats{
			UnixTime:       uint64(now),
			TotalPoolValue: model.UIAmount(pool.AumUsd),
		},
	}
}

// Add folds one position into the running totals. Closed positions
// (SizeUsd == 0) are skipped. A position referencing a custody absent from
// the scan's snapshot is a data-consistency error and aborts the run.
func (a *Aggregator) Add(address model.Address, position model.Position) error {
	if position.SizeUsd == 0 {
		a.skipped++
		return nil
	}

	custody, ok := a.custodies[position.Custody]
	if !ok {
		return fmt.Errorf("position %s: custody %s: %w", address, position.Custody, model.ErrMissingRelation)
	}
	price, ok := a.mintPrices[custody.Mint]
	if !ok {
		return fmt.Errorf("position %s: mint %s: %w", address, custody.Mint, model.ErrUnknownMint)
	}
	borrowRate, ok := a.rates[position.CollateralCustody]
	if !ok {
		return fmt.Errorf("position %s: collateral custody %s: %w", address, position.CollateralCustody, model.ErrMissingRelation)
	}

	entryPrice := model.UIAmount(position.Price)
	entryValue := model.UIAmount(position.SizeUsd)
	entryCollateral := model.UIAmount(position.CollateralUsd)
	amount := entryValue / entryPrice
	elapsedHours := float64(a.now-position.UpdateTime) / 3600

	currentValue := amount * price
	entryFees := entryValue * a.entryBps / 10_000
	borrowFees := borrowRate * elapsedHours * entryValue / 10_000

	sign := 1.0
	if position.Side == model.SideShort {
		sign = -1.0
	} else {
		a.stats.NumLongs++
		a.stats.CumulativeLong += currentValue
	}

	currentCollateral := entryCollateral + amount*(price-entryPrice)*sign
	pnl := (currentValue - entryValue) * sign

	a.stats.NumPositions++
	a.stats.CumulativePositionsAtEntry += entryValue
	a.stats.CumulativeCollateralAtEntry += entryCollateral
	a.stats.CumulativePositions += currentValue
	a.stats.CumulativeCollateral += currentCollateral
	a.stats.CumulativePnl += pnl
	a.stats.CumulativeFees += entryFees*2 + borrowFees

	trade := Trade{
		Address:    address,
		Pnl:        pnl,
		EntryPrice: entryPrice,
		Side:       position.Side,
		Mint:       custody.Mint,
	}

	// Strict inequalities: ties keep the first-seen record, and a position
	// with zero PnL never becomes an extremal holder.
	if pnl > 0 {
		a.stats.NumWinning++
		if pnl > a.highestProfit {
			a.highestProfit = pnl
			a.stats.MostProfitable = trade
		}
	}
	if pnl < a.deepestLoss {
		a.deepestLoss = pnl
		a.stats.LeastProfitable = trade
	}

	return nil
}

// Stats returns the aggregate accumulated so far.
func (a *Aggregator) Stats() Stats {
	return a.stats
}

// Skipped returns the count of closed positions excluded from the fold.
func (a *Aggregator) Skipped() uint64 {
	return a.skipped
}
