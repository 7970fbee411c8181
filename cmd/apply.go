package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/margin"
	"github.com/etnz/margin/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// applyCmd stamps a target percentage on every row with a known cost.
// It is the common part of apply-margin and apply-markup.
type applyCmd struct {
	memo string
}

func (c *applyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.memo, "m", "", "A memo for the journal.")
}

// target returns the percentage given as argument, or def.
func target(f *flag.FlagSet, def decimal.Decimal) (decimal.Decimal, error) {
	switch f.NArg() {
	case 0:
		return def, nil
	case 1:
		v := margin.ParseValue(f.Arg(0))
		if !v.Valid {
			return def, fmt.Errorf("invalid target %q", f.Arg(0))
		}
		return v.Decimal, nil
	default:
		return def, errors.New("expects at most one target percentage")
	}
}

func (c *applyCmd) execute(f *flag.FlagSet, def func(margin.Targets) decimal.Decimal, newCmd func(memo string, target decimal.Decimal) margin.Command) subcommands.ExitStatus {
	s, cfg, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	t, err := target(f, def(s.Targets))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	n, err := Record(s, newCmd(c.memo, t))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.LedgerMarkdown(s.Ledger.List(), renderer.LedgerOptions{
		Title:    fmt.Sprintf("%d rows changed", n),
		Currency: cfg.Currency,
	}))
	return subcommands.ExitSuccess
}

type applyMarginCmd struct{ applyCmd }

func (*applyMarginCmd) Name() string     { return "apply-margin" }
func (*applyMarginCmd) Synopsis() string { return "price every product with a known cost at a margin" }
func (*applyMarginCmd) Usage() string {
	return `mcalc apply-margin [-m <memo>] [<target>]

  Sets the price of every product with a known cost so that its margin is
  <target> percent (the configured margin target by default). Only markup
  stays locked, the price remains editable.

  The ledger is saved before: 'mcalc undo' restores it.
`
}

func (c *applyMarginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(f,
		func(t margin.Targets) decimal.Decimal { return t.Margin },
		func(memo string, t decimal.Decimal) margin.Command { return margin.NewApplyMargin(memo, t) })
}

type applyMarkupCmd struct{ applyCmd }

func (*applyMarkupCmd) Name() string     { return "apply-markup" }
func (*applyMarkupCmd) Synopsis() string { return "price every product with a known cost at a markup" }
func (*applyMarkupCmd) Usage() string {
	return `mcalc apply-markup [-m <memo>] [<target>]

  Sets the price of every product with a known cost so that its markup is
  <target> percent (the configured markup target by default). Only margin
  stays locked, the price remains editable.

  The ledger is saved before: 'mcalc undo' restores it.
`
}

func (c *applyMarkupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(f,
		func(t margin.Targets) decimal.Decimal { return t.Markup },
		func(memo string, t decimal.Decimal) margin.Command { return margin.NewApplyMarkup(memo, t) })
}
