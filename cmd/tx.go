package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	tail int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list all transactions, most recent first" }
func (*txCmd) Usage() string {
	return `ptrade [-state-file <file>] tx [-tail <n>]

  Lists the transaction history, most recent first.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if c.tail < 0 {
		fmt.Fprintln(stderr, "Error: -tail must be a non negative number.")
		return subcommands.ExitUsageError
	}

	transactions := slices.Collect(openAccount().Portfolio().Transactions())
	if c.tail > 0 && len(transactions) > c.tail {
		transactions = transactions[len(transactions)-c.tail:]
	}

	printMarkdown(renderer.Transactions(transactions))
	return subcommands.ExitSuccess
}
