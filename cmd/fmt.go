package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/margin"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	compact bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the journal file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `mcalc fmt [-compact]

  Validates and formats the journal file. This command reads all commands,
  validates them, and writes them back in a canonical JSONL format.

  With -compact, the history is dropped: the journal is rewritten as one
  load command per product, reproducing the current rows. The undo backup is
  lost.

Usage Examples:
# Rewrites the default journal file.
$ mcalc fmt
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.compact, "compact", false, "Replace the history by the current rows.")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load journal: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := j.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid journal: %v\n", err)
		return subcommands.ExitFailure
	}

	if p.compact {
		cfg, err := Settings()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		j = margin.Compact(j.Replay(cfg.SessionTargets()).Ledger)
	}

	var buf bytes.Buffer
	if err := margin.EncodeJournal(&buf, j); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(*journalFile, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving journal %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %d commands in %s.\n", j.Len(), *journalFile)
	return subcommands.ExitSuccess
}
