package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"perpscope/internal/chain"
	"perpscope/internal/config"
	"perpscope/internal/decode"
	"perpscope/internal/model"
	"perpscope/internal/storage"
)

func runDump(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadDump(cfgFile, cmd.Flags())
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

	logger.Info("dump start",
		zap.String("rpc", cfg.RPCURL),
		zap.String("program", program.String()),
		zap.String("out", cfg.Out),
		zap.String("errors", cfg.Errors),
	)

	var records []model.AccountRecord
	var failures []model.DecodeFailure

	kinds := []struct {
		name string
		tag  []byte
	}{
		{"pool", decode.PoolDiscriminator},
		{"custody", decode.CustodyDiscriminator},
		{"position", decode.PositionDiscriminator},
	}

	for _, kind := range kinds {
		accounts, err := client.ProgramAccounts(ctx, program, kind.tag)
		if err != nil {
			return fmt.Errorf("fetch %s accounts: %w", kind.name, err)
		}
		for _, account := range accounts {
			record, err := decodeRecord(kind.name, account)
			if err != nil {
				failures = append(failures, model.DecodeFailure{
					Address: account.Address.String(),
					Kind:    kind.name,
					Error:   err.Error(),
				})
				continue
			}
			records = append(records, record)
		}
	}

	if err := storage.NewJsonlStorage(cfg.Out).PutAccountBatch(records); err != nil {
		return fmt.Errorf("write accounts: %w", err)
	}
	if len(failures) > 0 {
		if err := storage.NewJsonlStorage(cfg.Errors).PutFailureBatch(failures); err != nil {
			return fmt.Errorf("write failures: %w", err)
		}
	}

	logger.Info("dump complete",
		zap.Int("decoded", len(records)),
		zap.Int("failed", len(failures)),
	)

	return nil
}

func decodeRecord(kind string, account chain.KeyedAccount) (model.AccountRecord, error) {
	record := model.AccountRecord{Address: account.Address, Kind: kind}
	switch kind {
	case "pool":
		pool, err := decode.Pool(account.Data)
		if err != nil {
			return model.AccountRecord{}, err
		}
		record.Pool = &pool
	case "custody":
		custody, err := decode.Custody(account.Data)
		if err != nil {
			return model.AccountRecord{}, err
		}
		record.Custody = &custody
	case "position":
		position, err := decode.Position(account.Data)
		if err != nil {
			return model.AccountRecord{}, err
		}
		record.Position = &position
	default:
		return model.AccountRecord{}, fmt.Errorf("unknown account kind: %s", kind)
	}
	return record, nil
}
