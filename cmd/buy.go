package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	trade "github.com/ygoncloud/YG-trade"
	"github.com/ygoncloud/YG-trade/date"
)

type buyCmd struct {
	ticker string
	shares string
	limit  string
	stop   string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares at the open or with a limit" }
func (*buyCmd) Usage() string {
	return `ygt buy -t <ticker> -q <shares> [-l <limit>] [-s <stop>]

  Buys shares against the last trading day's session bar. Without -l the
  order is market-on-open and fills at the session open. With -l it is a
  limit order: it fills at the open when the session opened at or below the
  limit, at the limit when the session low touched it, and not at all
  otherwise. -s sets a stop-loss level evaluated by 'ygt process'.
`
}

func (p *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.ticker, "t", "", "Ticker to buy.")
	f.StringVar(&p.shares, "q", "", "Number of shares.")
	f.StringVar(&p.limit, "l", "", "Limit price. Empty means market-on-open.")
	f.StringVar(&p.stop, "s", "", "Stop-loss level for the position.")
}

func (p *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.ticker == "" || p.shares == "" {
		fmt.Println(p.Usage())
		return subcommands.ExitUsageError
	}

	clock, err := appClock()
	if err != nil {
		return fail(err)
	}
	cfg, err := appConfig()
	if err != nil {
		return fail(err)
	}
	shares, err := trade.ParseQuantity(p.shares)
	if err != nil {
		return fail(fmt.Errorf("invalid share count %q: %w", p.shares, err))
	}
	stop := trade.M(0, cfg.Currency)
	if p.stop != "" {
		if stop, err = trade.ParseMoney(p.stop, cfg.Currency); err != nil {
			return fail(fmt.Errorf("invalid stop %q: %w", p.stop, err))
		}
	}

	ledger, rows, err := DecodeLedger(cfg)
	if err != nil {
		return fail(err)
	}

	quoter := appFetcher(clock, cfg)
	res := quoter.FetchRecent(p.ticker, 1, opt())
	bar, ok := res.Latest()
	if !ok {
		return fail(fmt.Errorf("no market data for %s", p.ticker))
	}

	var fill trade.Fill
	if p.limit == "" {
		fill, err = ledger.BuyMOO(p.ticker, shares, stop, bar)
	} else {
		var limit trade.Money
		if limit, err = trade.ParseMoney(p.limit, cfg.Currency); err != nil {
			return fail(fmt.Errorf("invalid limit %q: %w", p.limit, err))
		}
		fill, err = ledger.BuyLimit(p.ticker, shares, limit, stop, bar)
	}
	if errors.Is(err, trade.ErrNotFilled) {
		fmt.Printf("Buy limit %s for %s not reached today. Order not filled.\n", p.limit, p.ticker)
		return subcommands.ExitSuccess
	}
	if err != nil {
		return fail(err)
	}

	day := date.LastTradingDay(clock.Today())
	if err := persistDay(cfg, ledger, rows, quoter, day, fill); err != nil {
		return fail(err)
	}

	fmt.Printf("Buy for %s filled at %s (%s).\n", fill.Ticker, fill.Price.Round(), res.Source)
	return subcommands.ExitSuccess
}

// persistDay re-snapshots the trading day after an order and appends the
// executed fills to the trade log.
func persistDay(cfg *trade.Config, ledger *trade.Ledger, rows []trade.SnapshotRow, q trade.Quoter, day date.Date, fills ...trade.Fill) error {
	fresh, swept := trade.ProcessDay(ledger, q, day, opt())
	if err := EncodeSnapshots(trade.ReplaceDay(rows, day, fresh)); err != nil {
		return err
	}
	var records []trade.TradeLogRecord
	for _, f := range append(fills, swept...) {
		records = append(records, trade.NewTradeLogRecord(day, f))
	}
	if len(records) == 0 {
		return nil
	}
	return AppendTradeLog(cfg, records...)
}
