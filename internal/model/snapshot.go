package model

// Snapshot is one scan's aggregate row, appended to the CSV log or upserted
// into Postgres. Field order matches the fixed 12-column log header.
type Snapshot struct {
	UnixTime             uint64  `json:"unix_time"`
	TotalPoolValue       float64 `json:"total_pool_value"`
	UnrealizedPnl        float64 `json:"unrealized_pnl"`
	TotalFees            float64 `json:"total_fees"`
	PositionValue        float64 `json:"position_value"`
	CollateralValue      float64 `json:"collateral_value"`
	AvgLeverageAtEntry   float64 `json:"avg_leverage_at_entry"`
	AvgEffectiveLeverage float64 `json:"avg_effective_leverage"`
	LongTrades           uint64  `json:"long_trades"`
	LongValue            float64 `json:"long_value"`
	ShortTrades          uint64  `json:"short_trades"`
	ShortValue           float64 `json:"short_value"`
}
