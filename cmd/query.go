package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression over the portfolio state file" }
func (*queryCmd) Usage() string {
	return `ptrade [-state-file <file>] query <jsonpath>

  Evaluates a JSONPath expression over the saved portfolio and prints the result as JSON.

  Examples:
    ptrade query '$.cash'
    ptrade query '$.holdings.AAPL.quantity'
    ptrade query '$.transactions[?(@.type == "SELL")].total'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	result, err := query(*stateFile, f.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, result)
	return subcommands.ExitSuccess
}

// query evaluates 'path' over the JSON content of 'file' and returns the result as indented JSON.
func query(file, path string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("cannot read state file: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return "", fmt.Errorf("cannot parse state file %q: %w", file, err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error evaluating %q: %w", path, err)
	}
	out, err := json.MarshalIndent(jval, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
