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

type sellCmd struct {
	ticker string
	shares string
	limit  string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares with a limit order" }
func (*sellCmd) Usage() string {
	return `ygt sell -t <ticker> -q <shares> -l <limit>

  Sells shares against the last trading day's session bar. The order fills
  at the open when the session opened at or above the limit, at the limit
  when the session high touched it, and not at all otherwise. Oversells and
  unknown tickers are rejected.
`
}

func (p *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.ticker, "t", "", "Ticker to sell.")
	f.StringVar(&p.shares, "q", "", "Number of shares.")
	f.StringVar(&p.limit, "l", "", "Limit price.")
}

func (p *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.ticker == "" || p.shares == "" || p.limit == "" {
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
	limit, err := trade.ParseMoney(p.limit, cfg.Currency)
	if err != nil {
		return fail(fmt.Errorf("invalid limit %q: %w", p.limit, err))
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

	fill, err := ledger.SellLimit(p.ticker, shares, limit, bar)
	if errors.Is(err, trade.ErrNotFilled) {
		fmt.Printf("Sell limit %s for %s not reached today. Order not filled.\n", p.limit, p.ticker)
		return subcommands.ExitSuccess
	}
	if err != nil {
		return fail(err)
	}

	day := date.LastTradingDay(clock.Today())
	if err := persistDay(cfg, ledger, rows, quoter, day, fill); err != nil {
		return fail(err)
	}

	fmt.Printf("Sell for %s filled at %s, realized %s (%s).\n", fill.Ticker, fill.Price.Round(), fill.PnL.SignedString(), res.Source)
	return subcommands.ExitSuccess
}
