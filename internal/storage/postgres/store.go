package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"perpscope/internal/model"
)

// Store provides Postgres persistence for scan snapshots.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertSnapshot inserts or updates one scan snapshot keyed by unix time.
func (s *Store) UpsertSnapshot(ctx context.Context, snapshot model.Snapshot) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO perp_snapshots (
			unix_time, total_pool_value, unrealized_pnl, total_fees,
			position_value, collateral_value, avg_leverage_at_entry,
			avg_effective_leverage, long_trades, long_value, short_trades,
			short_value, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now(),now())
		ON CONFLICT (unix_time)
		DO UPDATE SET
			total_pool_value = EXCLUDED.total_pool_value,
			unrealized_pnl = EXCLUDED.unrealized_pnl,
			total_fees = EXCLUDED.total_fees,
			position_value = EXCLUDED.position_value,
			collateral_value = EXCLUDED.collateral_value,
			avg_leverage_at_entry = EXCLUDED.avg_leverage_at_entry,
			avg_effective_leverage = EXCLUDED.avg_effective_leverage,
			long_trades = EXCLUDED.long_trades,
			long_value = EXCLUDED.long_value,
			short_trades = EXCLUDED.short_trades,
			short_value = EXCLUDED.short_value,
			updated_at = now()
	`,
		int64(snapshot.UnixTime),
		snapshot.TotalPoolValue,
		snapshot.UnrealizedPnl,
		snapshot.TotalFees,
		snapshot.PositionValue,
		snapshot.CollateralValue,
		snapshot.AvgLeverageAtEntry,
		snapshot.AvgEffectiveLeverage,
		int64(snapshot.LongTrades),
		snapshot.LongValue,
		int64(snapshot.ShortTrades),
		snapshot.ShortValue,
	)
	return err
}
