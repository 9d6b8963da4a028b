// Package cmd implements the CLI application to run the portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	trade "github.com/ygoncloud/YG-trade"
	"github.com/ygoncloud/YG-trade/date"
	"github.com/ygoncloud/YG-trade/marketdata"
)

// Commands lists every subcommand for registration by the main package.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&processCmd{},
	&dailyCmd{},
	&fetchCmd{},
	&logCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", ".", "Directory holding the portfolio CSV files")
var configFile = flag.String("config", "", "Path to config.yaml (default <data-dir>/config.yaml)")
var asof = flag.String("asof", "", "Run as of this date (YYYY-MM-DD) instead of today")
var quiet = flag.Bool("quiet", false, "Suppress provider fallback logging")
var threads = flag.Int("threads", 0, "Hint for concurrent provider connections")

// opt are the market data options for this run.
func opt() marketdata.Options { return marketdata.Options{Quiet: *quiet, Threads: *threads} }

func portfolioPath() string { return filepath.Join(*dataDir, "portfolio.csv") }
func tradeLogPath() string  { return filepath.Join(*dataDir, "tradelog.csv") }

// appClock builds the run's clock from the -asof flag.
func appClock() (date.Clock, error) {
	if *asof == "" {
		return date.System(), nil
	}
	d, err := date.Parse(*asof)
	if err != nil {
		return nil, fmt.Errorf("invalid -asof date %q: %w", *asof, err)
	}
	return date.At(d), nil
}

// appConfig loads config.yaml from -config or the data directory.
func appConfig() (*trade.Config, error) {
	path := *configFile
	if path == "" {
		path = filepath.Join(*dataDir, "config.yaml")
	}
	cfg, err := trade.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// appFetcher assembles the market data fetcher for this run.
func appFetcher(clock date.Clock, cfg *trade.Config) *marketdata.Fetcher {
	return marketdata.NewFetcher(clock, cfg.Symbols, nil)
}

// DecodeSnapshots reads the full portfolio snapshot history. A missing file
// is an empty history.
func DecodeSnapshots(cfg *trade.Config) ([]trade.SnapshotRow, error) {
	f, err := os.Open(portfolioPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return trade.DecodeSnapshots(f, cfg.Currency)
}

// EncodeSnapshots writes the full snapshot history back.
func EncodeSnapshots(rows []trade.SnapshotRow) error {
	f, err := os.Create(portfolioPath())
	if err != nil {
		return err
	}
	defer f.Close()
	return trade.EncodeSnapshots(f, rows)
}

// DecodeLedger rebuilds the current ledger from the latest snapshot day.
func DecodeLedger(cfg *trade.Config) (*trade.Ledger, []trade.SnapshotRow, error) {
	rows, err := DecodeSnapshots(cfg)
	if err != nil {
		return nil, nil, err
	}
	ledger, _, err := trade.LatestLedger(rows, cfg.StartingCash())
	if err != nil {
		return nil, nil, err
	}
	return ledger, rows, nil
}

// DecodeTradeLog reads the trade log. A missing file is an empty log.
func DecodeTradeLog(cfg *trade.Config) ([]trade.TradeLogRecord, error) {
	f, err := os.Open(tradeLogPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return trade.DecodeTradeLog(f, cfg.Currency)
}

// AppendTradeLog appends the records to the trade log file.
func AppendTradeLog(cfg *trade.Config, records ...trade.TradeLogRecord) error {
	existing, err := DecodeTradeLog(cfg)
	if err != nil {
		return err
	}
	f, err := os.Create(tradeLogPath())
	if err != nil {
		return err
	}
	defer f.Close()
	return trade.EncodeTradeLog(f, append(existing, records...))
}

// fail prints the error and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
