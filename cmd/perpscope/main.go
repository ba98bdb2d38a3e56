package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// defaultProgram is the perpetuals program scanned when --program is not set.
const defaultProgram = "PERPHjGBqRHArX4DySjwM6UJHiR3sWAatqfdBS2qQJu"

func main() {
	root := &cobra.Command{
		Use:          "perpscope",
		Short:        "Point-in-time analytics for a perpetual-futures protocol",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan all protocol accounts and report aggregate statistics",
		RunE:  runScan,
	}

	scanCmd.Flags().String("rpc", "", "Solana RPC URL")
	scanCmd.Flags().String("program", defaultProgram, "perpetuals program address")
	scanCmd.Flags().String("csv", "", "CSV time series path (append one row per scan)")
	scanCmd.Flags().String("pg-dsn", "", "Postgres DSN for snapshot upserts")
	scanCmd.Flags().Bool("silent", false, "suppress the console report")
	scanCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(scanCmd)

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Fetch and decode all protocol accounts into JSONL",
		RunE:  runDump,
	}

	dumpCmd.Flags().String("rpc", "", "Solana RPC URL")
	dumpCmd.Flags().String("program", defaultProgram, "perpetuals program address")
	dumpCmd.Flags().String("out", "./data/accounts.jsonl", "output JSONL path")
	dumpCmd.Flags().String("errors", "./data/dump_errors.jsonl", "decode errors JSONL path")
	dumpCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(dumpCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
