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

type undoCmd struct {
	memo string
}

func (*undoCmd) Name() string     { return "undo" }
func (*undoCmd) Synopsis() string { return "restore the ledger as it was before the last apply" }
func (*undoCmd) Usage() string {
	return `mcalc undo [-m <memo>]

  Restores every row as it was before the last apply-margin or apply-markup,
  including the edits made since. There is a single step of undo.
`
}

func (c *undoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.memo, "m", "", "A memo for the journal.")
}

func (c *undoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, cfg, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if !s.CanUndo() {
		fmt.Fprintln(os.Stderr, "Error: nothing to undo.")
		return subcommands.ExitFailure
	}
	if _, err := Record(s, margin.NewUndo(c.memo)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.LedgerMarkdown(s.Ledger.List(), renderer.LedgerOptions{
		Title:    "Restored",
		Currency: cfg.Currency,
	}))
	return subcommands.ExitSuccess
}
