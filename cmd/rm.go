package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/margin"
	"github.com/google/subcommands"
)

type rmCmd struct {
	memo string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove products from the ledger" }
func (*rmCmd) Usage() string {
	return `mcalc rm [-m <memo>] <code>...

  Removes the rows of the given products. The order of the other rows is kept.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.memo, "m", "", "A memo for the journal.")
}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: rm expects at least one product code.")
		return subcommands.ExitUsageError
	}

	s, _, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, code := range f.Args() {
		if _, exists := s.Ledger.Row(code); !exists {
			fmt.Fprintf(os.Stderr, "Error: unknown product %q\n", code)
			status = subcommands.ExitFailure
			continue
		}
		if _, err := Record(s, margin.NewRemove(c.memo, code)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(output, "Removed %s.\n", code)
	}
	return status
}
