package model

import "fmt"

// Side is the direction of a leveraged position.
type Side uint8

const (
	SideLong  Side = 1
	SideShort Side = 2
)

// String renders the side for reports.
func (s Side) String() string {
	switch s {
	case SideLong:
		return "Long"
	case SideShort:
		return "Short"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

// MarshalText encodes the side as its name.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Pool is the protocol-wide singleton account.
type Pool struct {
	AumUsd              uint64 `json:"aum_usd"`
	IncreasePositionBps uint64 `json:"increase_position_bps"`
}

// Custody tracks one collateral asset's balances and funding parameters.
type Custody struct {
	Mint             Address `json:"mint"`
	Oracle           Address `json:"oracle"`
	Owned            uint64  `json:"owned"`
	Locked           uint64  `json:"locked"`
	HourlyFundingBps uint64  `json:"hourly_funding_bps"`
}

// Position is one trader's leveraged exposure against a custody.
// SizeUsd == 0 means the position is closed.
type Position struct {
	Custody           Address `json:"custody"`
	CollateralCustody Address `json:"collateral_custody"`
	SizeUsd           uint64  `json:"size_usd"`
	Price             uint64  `json:"price"`
	CollateralUsd     uint64  `json:"collateral_usd"`
	Side              Side    `json:"side"`
	UpdateTime        int64   `json:"update_time"`
}

// AccountRecord is the normalized representation of a decoded account for
// JSONL export. Exactly one of the payload fields is set.
type AccountRecord struct {
	Address  Address   `json:"address"`
	Kind     string    `json:"kind"`
	Pool     *Pool     `json:"pool,omitempty"`
	Custody  *Custody  `json:"custody,omitempty"`
	Position *Position `json:"position,omitempty"`
}

// DecodeFailure records a decode failure for one fetched account.
type DecodeFailure struct {
	Address string `json:"address"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
}
