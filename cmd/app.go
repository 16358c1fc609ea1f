// Package cmd implements the CLI application of the paper trading simulator.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/papertrade"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the application, with its group.
var Commands = []struct {
	Command subcommands.Command
	Group   string
}{
	{&playCmd{}, "play"},
	{&marketCmd{}, "reports"},
	{&portfolioCmd{}, "reports"},
	{&txCmd{}, "reports"},
	{&queryCmd{}, "reports"},
	{&buyCmd{}, "trades"},
	{&sellCmd{}, "trades"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	stateFile = flag.String("state-file", "portfolio.json", "Path to the JSON file holding the portfolio state")
	seed      = flag.Uint64("seed", 0, "Seed of the market price moves, 0 for a time based seed")
	ticks     = flag.Int("ticks", 0, "Number of market ticks to advance before a one-shot command")
	plain     = flag.Bool("plain", false, "Print raw markdown instead of styled terminal output")
	Verbose   = flag.Bool("v", false, "Verbose logging")
)

// standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

const (
	EnvStateFile = "PAPERTRADE_STATE_FILE"
	EnvSeed      = "PAPERTRADE_SEED"
	EnvVerbose   = "PAPERTRADE_VERBOSE"
)

// envFlags maps environment variables to the global flag they set.
var envFlags = map[string]string{
	EnvStateFile: "state-file",
	EnvSeed:      "seed",
	EnvVerbose:   "v",
}

// LoadEnv sets the global flags of 'fs' from their environment variables.
// It must be called before parsing the command line, so that explicit flags prevail.
func LoadEnv(fs *flag.FlagSet) error {
	for _, env := range slices.Sorted(maps.Keys(envFlags)) {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		if err := fs.Set(envFlags[env], v); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", env, v, err)
		}
	}
	return nil
}

// Environ returns the global flags as environment variables, for child processes.
func Environ() []string {
	return []string{
		EnvStateFile + "=" + *stateFile,
		EnvSeed + "=" + strconv.FormatUint(*seed, 10),
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
}

// SetupLogging discards log output unless verbose logging is on.
func SetupLogging() {
	if !*Verbose {
		log.SetOutput(io.Discard)
	}
}

// openMarket returns the default market, advanced by the -ticks flag.
func openMarket() *papertrade.Market {
	m := papertrade.NewDefaultMarket(papertrade.NewRandomSource(*seed))
	for range *ticks {
		m.AdvancePrices()
	}
	return m
}

// openAccount opens the account stored in the state file.
//
// A failure to write a brand new state file is only a warning: the account is usable anyway.
func openAccount() *papertrade.Account {
	a, err := papertrade.OpenAccount(papertrade.NewFileStore(*stateFile), papertrade.DefaultStartingCash())
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}
	return a
}

// printMarkdown prints 'md' to stdout, styled for the terminal unless -plain is set.
func printMarkdown(md string) { fmt.Fprint(stdout, style(md)) }

// style renders markdown for the terminal. It returns 'md' unchanged when -plain is set.
func style(md string) string {
	if *plain {
		return md
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		log.Printf("cannot style markdown output: %v", err)
		return md
	}
	return out
}

// exitStatus maps trade errors to an exit status.
// A trade that was executed but not saved is a failure too.
func exitStatus(err error) subcommands.ExitStatus {
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case errors.Is(err, papertrade.ErrInvalidQuantity):
		return subcommands.ExitUsageError
	default:
		return subcommands.ExitFailure
	}
}
