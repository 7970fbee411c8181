package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/margin"
	"github.com/etnz/margin/renderer"
	"github.com/google/subcommands"
)

type setCmd struct {
	memo string
}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "edit the cost, price, markup or margin of a product" }
func (*setCmd) Usage() string {
	return `mcalc set [-m <memo>] <code> <field> [<value>]

  Sets one field of a product, and recomputes the others. <field> is one of
  cost, price, markup or margin. Markup and margin are percentages, a
  trailing % is accepted.

  The field you edit and the last other field you typed stay free, the two
  remaining ones are derived and locked. Without <value>, the field is
  cleared.

Usage Examples:
# Cost 10, price 12.5: markup and margin are derived.
$ mcalc set A cost 10
$ mcalc set A price 12.5
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.memo, "m", "", "A memo for the journal.")
}

func (c *setCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 || f.NArg() > 3 {
		fmt.Fprintln(os.Stderr, "Error: set expects a product code, a field and an optional value.")
		return subcommands.ExitUsageError
	}
	code := f.Arg(0)
	field, err := margin.ParseField(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	input := strings.Join(f.Args()[2:], "")
	value := margin.ParseValue(input)
	if strings.TrimSpace(input) != "" && !value.Valid {
		fmt.Fprintf(os.Stderr, "Warning: %q is not a number, %s is cleared.\n", input, field)
	}

	s, cfg, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if _, exists := s.Ledger.Row(code); !exists {
		fmt.Fprintf(os.Stderr, "Error: unknown product %q\n", code)
		return subcommands.ExitFailure
	}

	if _, err := Record(s, margin.NewSet(c.memo, code, field, value)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	row, _ := s.Ledger.Row(code)
	printMarkdown(renderer.RowMarkdown(row, cfg.Currency))
	return subcommands.ExitSuccess
}
