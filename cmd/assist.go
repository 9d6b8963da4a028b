package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	trade "github.com/ygoncloud/YG-trade"
	"github.com/ygoncloud/YG-trade/agent"
	"github.com/ygoncloud/YG-trade/renderer"
)

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `ygt assist [<initial prompt>]

  Starts an interactive chat with the trading assistant, primed with the
  current daily report. Requires Gemini API credentials in the environment.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

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

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	trader := agent.NewTrader(renderer.DailyMarkdown(report))
	a := agent.New(os.Stdout, os.Stdin, trader)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
