// Command ygt tracks a small equities and ETF portfolio: it fills orders
// against daily bars, sweeps stop losses, and prints reports.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/ygoncloud/YG-trade/cmd"
)

func main() {
	// Shell completion, active only when invoked by the completion hooks.
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	cmp := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"data-dir": predict.Dirs("*"),
			"config":   predict.Files("*.yaml"),
			"asof":     predict.Nothing,
			"quiet":    predict.Nothing,
			"threads":  predict.Nothing,
		},
	}
	cmp.Complete("ygt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
