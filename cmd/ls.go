package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/margin"
	"github.com/etnz/margin/renderer"
	"github.com/google/subcommands"
)

type lsCmd struct {
	plain bool
}

func (*lsCmd) Name() string     { return "ls" }
func (*lsCmd) Synopsis() string { return "list the products and their pricing" }
func (*lsCmd) Usage() string {
	return `mcalc ls [-plain] [<code>...]

  Lists the rows of the ledger, or only the given products. Locked values
  are derived from the two free ones, and marked as such.
`
}

func (c *lsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of rendering it.")
}

func (c *lsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, cfg, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	rows := s.Ledger.List()
	if f.NArg() > 0 {
		rows = make([]margin.Row, 0, f.NArg())
		for _, code := range f.Args() {
			r, ok := s.Ledger.Row(code)
			if !ok {
				fmt.Fprintf(os.Stderr, "Error: unknown product %q\n", code)
				return subcommands.ExitFailure
			}
			rows = append(rows, r)
		}
	}

	md := renderer.LedgerMarkdown(rows, renderer.LedgerOptions{Currency: cfg.Currency})
	if c.plain {
		fmt.Fprint(output, md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	if s.CanUndo() {
		fmt.Fprintln(os.Stderr, "The last apply can be undone with 'mcalc undo'.")
	}
	return subcommands.ExitSuccess
}
