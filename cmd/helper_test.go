package cmd

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/papertrade"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/require"
)

// setup points the global flags to a temporary state file and captures the standard streams.
func setup(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	oldState, oldSeed, oldTicks, oldPlain := *stateFile, *seed, *ticks, *plain
	oldIn, oldOut, oldErr := stdin, stdout, stderr
	t.Cleanup(func() {
		*stateFile, *seed, *ticks, *plain = oldState, oldSeed, oldTicks, oldPlain
		stdin, stdout, stderr = oldIn, oldOut, oldErr
	})

	*stateFile = filepath.Join(t.TempDir(), "portfolio.json")
	*seed = 42
	*ticks = 0
	*plain = true

	out, errOut = new(bytes.Buffer), new(bytes.Buffer)
	stdin, stdout, stderr = strings.NewReader(""), out, errOut
	return out, errOut
}

// execute runs 'c' with the command line 'args', like the commander would.
func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return c.Execute(context.Background(), f)
}

// loadState reads the portfolio saved in the state file.
func loadState(t *testing.T) *papertrade.Portfolio {
	t.Helper()
	p, err := papertrade.NewFileStore(*stateFile).Load()
	require.NoError(t, err)
	return p
}
