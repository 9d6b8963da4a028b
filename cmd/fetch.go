package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ygoncloud/YG-trade/date"
	"github.com/ygoncloud/YG-trade/renderer"
)

type fetchCmd struct {
	ticker string
	start  string
	end    string
	days   int
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch and print raw price data for a ticker" }
func (*fetchCmd) Usage() string {
	return `ygt fetch -t <ticker> [-s <start> -e <end> | -n <days>]

  Diagnostic lookup: walks the provider fallback chain for the ticker and
  prints the rows it got and which provider served them. With -s/-e the
  window is [start, end) in dates; with -n the last n trading days.
`
}

func (p *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.ticker, "t", "", "Ticker to fetch.")
	f.StringVar(&p.start, "s", "", "Window start date (inclusive).")
	f.StringVar(&p.end, "e", "", "Window end date (exclusive).")
	f.IntVar(&p.days, "n", 5, "Number of recent trading days when no window is given.")
}

func (p *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.ticker == "" {
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
	quoter := appFetcher(clock, cfg)

	if (p.start == "") != (p.end == "") {
		return fail(fmt.Errorf("-s and -e must be given together"))
	}
	if p.start != "" {
		start, err := date.Parse(p.start)
		if err != nil {
			return fail(fmt.Errorf("invalid start %q: %w", p.start, err))
		}
		end, err := date.Parse(p.end)
		if err != nil {
			return fail(fmt.Errorf("invalid end %q: %w", p.end, err))
		}
		res := quoter.Fetch(p.ticker, date.NewWindow(start, end), opt())
		printMarkdown(renderer.FetchMarkdown(p.ticker, res))
		return subcommands.ExitSuccess
	}

	res := quoter.FetchRecent(p.ticker, p.days, opt())
	printMarkdown(renderer.FetchMarkdown(p.ticker, res))
	return subcommands.ExitSuccess
}
