package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"perpscope/internal/aggregate"
	"perpscope/internal/chain"
	"perpscope/internal/config"
	"perpscope/internal/decode"
	"perpscope/internal/model"
	"perpscope/internal/oracle"
	"perpscope/internal/report"
	"perpscope/internal/storage/postgres"
)

func runScan(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadScan(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}

	program, err := model.ParseAddress(cfg.Program)
	if err != nil {
		return fmt.Errorf("parse program: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer client.Close()

	logger.Info("scan start",
		zap.String("rpc", cfg.RPCURL),
		zap.String("program", program.String()),
		zap.String("csv", cfg.CSVPath),
		zap.Bool("silent", cfg.Silent),
	)

	stats, skipped, err := runPipeline(ctx, client, program, time.Now().Unix(), logger)
	if err != nil {
		return err
	}

	if !cfg.Silent {
		fmt.Println(report.Console(stats))
	}

	if cfg.CSVPath != "" {
		if err := report.NewCSVLog(cfg.CSVPath).Append(stats.Snapshot()); err != nil {
			return fmt.Errorf("append csv: %w", err)
		}
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.UpsertSnapshot(ctx, stats.Snapshot()); err != nil {
			return fmt.Errorf("upsert snapshot: %w", err)
		}
	}

	logger.Info("scan complete",
		zap.Uint64("positions", stats.NumPositions),
		zap.Uint64("longs", stats.NumLongs),
		zap.Uint64("shorts", stats.NumShorts()),
		zap.Uint64("skipped", skipped),
		zap.Float64("pool_value", stats.TotalPoolValue),
	)

	return nil
}

// runPipeline executes the full decode-and-aggregate pass: pool, custodies
// and prices, borrow-rate table, then one fold over all positions.
func runPipeline(ctx context.Context, client *chain.Client, program model.Address, now int64, logger *zap.Logger) (aggregate.Stats, uint64, error) {
	poolAccounts, err := client.ProgramAccounts(ctx, program, decode.PoolDiscriminator)
	if err != nil {
		return aggregate.Stats{}, 0, fmt.Errorf("fetch pools: %w", err)
	}
	if len(poolAccounts) == 0 {
		return aggregate.Stats{}, 0, fmt.Errorf("no pool account found for program %s", program)
	}
	pool, err := decode.Pool(poolAccounts[0].Data)
	if err != nil {
		return aggregate.Stats{}, 0, fmt.Errorf("decode pool %s: %w", poolAccounts[0].Address, err)
	}

	custodyAccounts, err := client.ProgramAccounts(ctx, program, decode.CustodyDiscriminator)
	if err != nil {
		return aggregate.Stats{}, 0, fmt.Errorf("fetch custodies: %w", err)
	}

	resolver := oracle.NewResolver(client, logger)
	custodies := make(map[model.Address]model.Custody, len(custodyAccounts))
	quotes := make(map[model.Address]oracle.Quote, len(custodyAccounts))
	for _, account := range custodyAccounts {
		custody, err := decode.Custody(account.Data)
		if err != nil {
			return aggregate.Stats{}, 0, fmt.Errorf("decode custody %s: %w", account.Address, err)
		}
		quote, err := resolver.Resolve(ctx, custody)
		if err != nil {
			return aggregate.Stats{}, 0, fmt.Errorf("resolve custody %s: %w", account.Address, err)
		}
		custodies[account.Address] = custody
		quotes[account.Address] = quote
	}

	rates, mintPrices, err := aggregate.BuildRateTable(custodies, quotes)
	if err != nil {
		return aggregate.Stats{}, 0, fmt.Errorf("build rate table: %w", err)
	}

	positionAccounts, err := client.ProgramAccounts(ctx, program, decode.PositionDiscriminator)
	if err != nil {
		return aggregate.Stats{}, 0, fmt.Errorf("fetch positions: %w", err)
	}

	agg := aggregate.NewAggregator(pool, custodies, rates, mintPrices, now, logger)
	for _, account := range positionAccounts {
		position, err := decode.Position(account.Data)
		if err != nil {
			return aggregate.Stats{}, 0, fmt.Errorf("decode position %s: %w", account.Address, err)
		}
		if err := agg.Add(account.Address, position); err != nil {
			return aggregate.Stats{}, 0, fmt.Errorf("aggregate position: %w", err)
		}
	}

	return agg.Stats(), agg.Skipped(), nil
}
