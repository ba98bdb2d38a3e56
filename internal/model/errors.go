package model

import "errors"

// Failure classes for one scan. Any of these aborts the run; a torn read
// across the multi-step account fetch is reported, never approximated.
var (
	// ErrDecode marks a malformed or unexpected account layout.
	ErrDecode = errors.New("account decode failed")

	// ErrOracleUnavailable marks a price account that could not be read.
	ErrOracleUnavailable = errors.New("oracle price unavailable")

	// ErrMissingRelation marks a reference to an address absent from the
	// snapshot fetched in the same scan.
	ErrMissingRelation = errors.New("referenced account missing from snapshot")

	// ErrUnknownMint marks a position whose mint has no resolved price.
	ErrUnknownMint = errors.New("no price for mint")

	// ErrInsufficientLiquidity marks a custody whose utilization is
	// undefined (zero owned assets).
	ErrInsufficientLiquidity = errors.New("insufficient liquidity data")
)
