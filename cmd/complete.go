package cmd

import (
	"flag"

	"github.com/etnz/papertrade"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the application: subcommands, their flags,
// and the listed tickers as arguments of the trade commands.
func Completion() *complete.Command {
	tickers := predict.Set(papertrade.NewDefaultMarket(papertrade.NewSequence()).Tickers())

	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	root.Flags["state-file"] = predict.Files("*.json")

	for _, c := range Commands {
		f := flag.NewFlagSet(c.Command.Name(), flag.ContinueOnError)
		c.Command.SetFlags(f)
		root.Sub[c.Command.Name()] = &complete.Command{Flags: flagPredictors(f)}
	}
	root.Sub["buy"].Args = tickers
	root.Sub["sell"].Args = tickers
	return root
}

// flagPredictors predicts nothing after boolean flags, and something after the others.
func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}
