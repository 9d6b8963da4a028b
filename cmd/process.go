package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	trade "github.com/ygoncloud/YG-trade"
	"github.com/ygoncloud/YG-trade/date"
)

type processCmd struct{}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "mark the book to market and sweep stop losses" }
func (*processCmd) Usage() string {
	return `ygt process

  Marks every position to market for the last trading day, sells positions
  whose stop loss was touched, and appends the day's snapshot (one row per
  position plus the TOTAL row) to portfolio.csv. Re-running the same day
  replaces that day's rows.
`
}

func (*processCmd) SetFlags(*flag.FlagSet) {}

func (p *processCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	clock, err := appClock()
	if err != nil {
		return fail(err)
	}
	cfg, err := appConfig()
	if err != nil {
		return fail(err)
	}
	ledger, rows, err := DecodeLedger(cfg)
	if err != nil {
		return fail(err)
	}

	day := date.LastTradingDay(clock.Today())
	quoter := appFetcher(clock, cfg)
	fresh, fills := trade.ProcessDay(ledger, quoter, day, opt())

	if err := EncodeSnapshots(trade.ReplaceDay(rows, day, fresh)); err != nil {
		return fail(err)
	}
	if len(fills) > 0 {
		var records []trade.TradeLogRecord
		for _, fill := range fills {
			fmt.Printf("%s stop loss was met. Sold all shares at %s.\n", fill.Ticker, fill.Price)
			records = append(records, trade.NewTradeLogRecord(day, fill))
		}
		if err := AppendTradeLog(cfg, records...); err != nil {
			return fail(err)
		}
	}

	fmt.Printf("Processed %s: %d positions, cash %s.\n", day, ledger.Len(), ledger.Cash().Round())
	return subcommands.ExitSuccess
}
