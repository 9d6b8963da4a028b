package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	trade "github.com/ygoncloud/YG-trade"
	"github.com/ygoncloud/YG-trade/renderer"
)

type dailyCmd struct{}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "print the daily report" }
func (*dailyCmd) Usage() string {
	return `ygt daily

  Prints the daily report: a price and volume table for the positions and
  configured benchmarks, risk and return metrics from the equity history,
  the CAPM fit against the benchmark index, and the holdings snapshot.
`
}

func (*dailyCmd) SetFlags(*flag.FlagSet) {}

func (p *dailyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	quoter := appFetcher(clock, cfg)
	report := trade.NewDailyReport(cfg, ledger, rows, quoter, clock, opt())
	printMarkdown(renderer.DailyMarkdown(report))
	return subcommands.ExitSuccess
}
