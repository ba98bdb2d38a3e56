package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"perpscope/internal/model"
)

// csvHeader is the fixed 12-column time series header, written exactly once
// when the log file is newly created or empty.
var csvHeader = []string{
	"Unix Time",
	"Total Pool Value",
	"Unrealized Paper P&L",
	"Total Fees",
	"Total Value of Positions",
	"Total Value of Collateral",
	"Average Leverage At Entry",
	"Average Effective Leverage",
	"Long Trades",
	"Long Value",
	"Short Trades",
	"Short Value",
}

// CSVLog appends scan snapshots to a delimited time series file.
type CSVLog struct {
	path string
	mu   sync.Mutex
}

// NewCSVLog builds a CSV log for the given path.
func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

// Append writes one snapshot row, preceded by the header if the file is
// empty.
func (l *CSVLog) Append(snapshot model.Snapshot) error {
	dir := filepath.Dir(l.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}

	writer := csv.NewWriter(file)
	if stat.Size() == 0 {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("write log header: %w", err)
		}
	}

	row := []string{
		strconv.FormatUint(snapshot.UnixTime, 10),
		formatFloat(snapshot.TotalPoolValue),
		formatFloat(snapshot.UnrealizedPnl),
		formatFloat(snapshot.TotalFees),
		formatFloat(snapshot.PositionValue),
		formatFloat(snapshot.CollateralValue),
		formatFloat(snapshot.AvgLeverageAtEntry),
		formatFloat(snapshot.AvgEffectiveLeverage),
		strconv.FormatUint(snapshot.LongTrades, 10),
		formatFloat(snapshot.LongValue),
		strconv.FormatUint(snapshot.ShortTrades, 10),
		formatFloat(snapshot.ShortValue),
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("write log row: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush log: %w", err)
	}
	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
