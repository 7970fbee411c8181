package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/margin"
	"github.com/google/subcommands"
)

type clearCmd struct {
	memo string
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "remove every product from the ledger" }
func (*clearCmd) Usage() string {
	return `mcalc clear [-m <memo>]

  Removes every row. The journal keeps the history: run 'mcalc fmt -compact'
  to drop it.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.memo, "m", "", "A memo for the journal.")
}

func (c *clearCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, _, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	n, err := Record(s, margin.NewClear(c.memo))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(output, "Removed %d products.\n", n)
	return subcommands.ExitSuccess
}
