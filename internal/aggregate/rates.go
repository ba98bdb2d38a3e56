package aggregate

import (
	"fmt"

	"perpscope/internal/model"
	"perpscope/internal/oracle"
)

// RateTable maps a custody address to its derived hourly borrow rate.
type RateTable map[model.Address]float64

// BuildRateTable derives a borrow rate per custody and collects a mint to
// unit price map for the volatile custodies. The table must be complete
// before any position is evaluated.
//
// Volatile custodies rate from their own utilization times the configured
// hourly funding. Stable custodies are coupled: each receives the identical
// pooled utilization of all stable custodies, computed on raw fixed-point
// sums.
func BuildRateTable(custodies map[model.Address]model.Custody, quotes map[model.Address]oracle.Quote) (RateTable, map[model.Address]float64, error) {
	rates := make(RateTable, len(custodies))
	mintPrices := make(map[model.Address]float64)

	var stableCustodies []model.Address
	var stableOwned, stableLocked uint64

	for address, custody := range custodies {
		quote, ok := quotes[address]
		if !ok {
			return nil, nil, fmt.Errorf("custody %s: %w", address, model.ErrMissingRelation)
		}

		if quote.Stable {
			stableCustodies = append(stableCustodies, address)
			stableOwned += custody.Owned
			stableLocked += custody.Locked
			continue
		}

		if custody.Owned == 0 {
			return nil, nil, fmt.Errorf("custody %s: %w", address, model.ErrInsufficientLiquidity)
		}
		utilization := model.UIAmount(custody.Locked) / model.UIAmount(custody.Owned)
		rates[address] = utilization * float64(custody.HourlyFundingBps)
		mintPrices[custody.Mint] = quote.Price
	}

	if len(stableCustodies) > 0 {
		if stableOwned == 0 {
			return nil, nil, fmt.Errorf("stable custodies: %w", model.ErrInsufficientLiquidity)
		}
		rate := float64(stableLocked) / float64(stableOwned)
		for _, address := range stableCustodies {
			rates[address] = rate
		}
	}

	return rates, mintPrices, nil
}
