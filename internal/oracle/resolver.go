package oracle

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"perpscope/internal/model"
)

// AccountReader reads raw account data by address.
type AccountReader interface {
	AccountData(ctx context.Context, address model.Address) ([]byte, error)
}

// Quote is a resolved unit price, valid for one scan.
type Quote struct {
	Price  float64
	Stable bool
}

// Resolver maps a custody's oracle account to a current unit price.
type Resolver struct {
	reader AccountReader
	logger *zap.Logger
}

// NewResolver builds a Resolver over an account reader.
func NewResolver(reader AccountReader, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{reader: reader, logger: logger}
}

// Resolve reads the custody's oracle account and classifies the asset.
func (r *Resolver) Resolve(ctx context.Context, custody model.Custody) (Quote, error) {
	if r.reader == nil {
		return Quote{}, fmt.Errorf("account reader is nil")
	}

	data, err := r.reader.AccountData(ctx, custody.Oracle)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: oracle %s: %v", model.ErrOracleUnavailable, custody.Oracle, err)
	}

	price, err := ParsePrice(data)
	if err != nil {
		return Quote{}, fmt.Errorf("oracle %s: %w", custody.Oracle, err)
	}

	r.logger.Debug("resolved price",
		zap.String("oracle", custody.Oracle.String()),
		zap.String("mint", custody.Mint.String()),
		zap.Float64("price", price),
	)

	return Quote{Price: price, Stable: IsStable(price)}, nil
}

// IsStable classifies an asset as a stablecoin. The rule is exact: the
// rounded price must equal 1.0. There is no configurable threshold.
func IsStable(price float64) bool {
	return math.Round(price) == 1.0
}
