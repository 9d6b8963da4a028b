package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/ygoncloud/YG-trade/renderer"
)

type logCmd struct {
	tail int
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list executed orders" }
func (*logCmd) Usage() string {
	return `ygt log [-tail <n>]

  Lists the trade log, newest first.
`
}

func (p *logCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.tail, "tail", 0, "Show only the last N orders.")
}

func (p *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := appConfig()
	if err != nil {
		return fail(err)
	}
	records, err := DecodeTradeLog(cfg)
	if err != nil {
		return fail(err)
	}
	if p.tail > 0 && len(records) > p.tail {
		records = records[len(records)-p.tail:]
	}
	printMarkdown(renderer.LogMarkdown(records))
	return subcommands.ExitSuccess
}
