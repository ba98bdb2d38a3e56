package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ScanConfig holds configuration for the scan command, loaded from flags,
// environment variables, or a config file.
type ScanConfig struct {
	RPCURL   string
	Program  string
	CSVPath  string
	PGDSN    string
	Silent   bool
	LogLevel string
}

// LoadScan merges config file, environment variables, and flags into
// ScanConfig.
func LoadScan(cfgFile string, flags *pflag.FlagSet) (ScanConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"log-level": "info",
	})
	if err != nil {
		return ScanConfig{}, err
	}

	cfg := ScanConfig{
		RPCURL:   v.GetString("rpc"),
		Program:  v.GetString("program"),
		CSVPath:  v.GetString("csv"),
		PGDSN:    v.GetString("pg-dsn"),
		Silent:   v.GetBool("silent"),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}

// DumpConfig holds configuration for the dump command.
type DumpConfig struct {
	RPCURL   string
	Program  string
	Out      string
	Errors   string
	LogLevel string
}

// LoadDump merges config file, environment variables, and flags into
// DumpConfig.
func LoadDump(cfgFile string, flags *pflag.FlagSet) (DumpConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"out":       "./data/accounts.jsonl",
		"errors":    "./data/dump_errors.jsonl",
		"log-level": "info",
	})
	if err != nil {
		return DumpConfig{}, err
	}

	cfg := DumpConfig{
		RPCURL:   v.GetString("rpc"),
		Program:  v.GetString("program"),
		Out:      v.GetString("out"),
		Errors:   v.GetString("errors"),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("PERPSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}
