package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/papertrade"
	"github.com/google/subcommands"
)

// parseQuantity reads a number of shares typed by the user.
func parseQuantity(s string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("invalid input, please enter a number for quantity")
	}
	if q <= 0 {
		return 0, errors.New("quantity must be a positive number")
	}
	return q, nil
}

// parseTrade reads the '<ticker> <quantity>' arguments of a trade command.
func parseTrade(f *flag.FlagSet) (ticker string, quantity int, err error) {
	if f.NArg() != 2 {
		return "", 0, errors.New("expected a ticker and a quantity")
	}
	ticker = strings.ToUpper(strings.TrimSpace(f.Arg(0)))
	if ticker == "" {
		return "", 0, errors.New("ticker cannot be empty")
	}
	quantity, err = parseQuantity(f.Arg(1))
	return ticker, quantity, err
}

// reportTrade prints the outcome of a trade. A trade that could not be saved is still reported.
func reportTrade(out, errw io.Writer, tx papertrade.Transaction, err error) {
	if tx.Type() != "" {
		verb := "bought"
		if tx.Type() == papertrade.TxSell {
			verb = "sold"
		}
		fmt.Fprintf(out, "✔ Successfully %s %d shares of %s for %s\n", verb, tx.Quantity(), tx.Ticker(), tx.Total())
	}
	if err != nil {
		fmt.Fprintf(errw, "Error: %v\n", err)
	}
}

// --- Buy Command ---

type buyCmd struct{}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares at the current market price" }
func (*buyCmd) Usage() string {
	return `ptrade [-state-file <file>] buy <ticker> <quantity>

  Buys shares of a listed stock at its current price. The cost is debited from the cash balance.
`
}

func (*buyCmd) SetFlags(f *flag.FlagSet) {}

func (*buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ticker, quantity, err := parseTrade(f)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	tx, err := openAccount().Buy(ticker, quantity, openMarket())
	reportTrade(stdout, stderr, tx, err)
	return exitStatus(err)
}

// --- Sell Command ---

type sellCmd struct{}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares at the current market price" }
func (*sellCmd) Usage() string {
	return `ptrade [-state-file <file>] sell <ticker> <quantity>

  Sells shares of an owned stock at its current price. The proceeds are credited to the cash balance.
`
}

func (*sellCmd) SetFlags(f *flag.FlagSet) {}

func (*sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ticker, quantity, err := parseTrade(f)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	tx, err := openAccount().Sell(ticker, quantity, openMarket())
	reportTrade(stdout, stderr, tx, err)
	return exitStatus(err)
}
