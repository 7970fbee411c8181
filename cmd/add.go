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

type addCmd struct {
	name string
	ref  string
	memo string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a product to the ledger" }
func (*addCmd) Usage() string {
	return `mcalc add [-name <name>] [-ref <price>] [-m <memo>] <code>

  Adds a product row. The reference price, when positive, seeds the cost.
  A code already in the ledger is left untouched.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Product name.")
	f.StringVar(&c.ref, "ref", "", "Reference price, used as the initial cost.")
	f.StringVar(&c.memo, "m", "", "A memo for the journal.")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: add expects exactly one product code.")
		return subcommands.ExitUsageError
	}
	code := f.Arg(0)

	ref := margin.ParseValue(c.ref)
	if c.ref != "" && !ref.Valid {
		fmt.Fprintf(os.Stderr, "Error: invalid reference price %q\n", c.ref)
		return subcommands.ExitUsageError
	}

	s, cfg, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if _, exists := s.Ledger.Row(code); exists {
		fmt.Fprintf(os.Stderr, "Warning: product %q is already in the ledger.\n", code)
		return subcommands.ExitSuccess
	}

	item := margin.CatalogItem{Code: code, Name: c.name, ReferencePrice: ref}
	if _, err := Record(s, margin.NewAdd(c.memo, item)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	row, _ := s.Ledger.Row(code)
	printMarkdown(renderer.RowMarkdown(row, cfg.Currency))
	return subcommands.ExitSuccess
}
