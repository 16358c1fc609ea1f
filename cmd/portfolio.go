package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display the positions and the value of the portfolio" }
func (*portfolioCmd) Usage() string {
	return `ptrade [-state-file <file>] portfolio

  Displays every position with its average buy price, its current market value
  and its profit or loss, followed by the financial summary of the portfolio.
`
}

func (*portfolioCmd) SetFlags(f *flag.FlagSet) {}

func (*portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	account := openAccount()
	v, err := account.Portfolio().Valuate(openMarket())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Portfolio(v))
	return subcommands.ExitSuccess
}
