package cmd

import (
	"context"
	"flag"

	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type marketCmd struct{}

func (*marketCmd) Name() string     { return "market" }
func (*marketCmd) Synopsis() string { return "display the live stock market" }
func (*marketCmd) Usage() string {
	return `ptrade [-seed <n>] [-ticks <n>] market

  Displays every listed stock with its current price and its last price change.
  The market is simulated: use -ticks to advance it, and -seed to replay the same moves.
`
}

func (*marketCmd) SetFlags(f *flag.FlagSet) {}

func (*marketCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.Market(openMarket().Quotes()))
	return subcommands.ExitSuccess
}
