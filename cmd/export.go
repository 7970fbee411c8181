package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/margin/export"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type exportCmd struct {
	output string
	format string
	title  string
	cost   bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the ledger as a spreadsheet or a printable price list" }
func (*exportCmd) Usage() string {
	return `mcalc export -o <file> [-format xlsx|pdf] [-title <title>] [-cost]

  Writes the ledger to <file>. The format is deduced from the extension of
  <file> unless -format is set.

  xlsx: free values are written as numbers, locked ones as the formula that
        derives them, so the spreadsheet stays consistent when edited.
  pdf:  a price list of the products with a price. -cost adds the cost,
        markup and margin columns.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file.")
	f.StringVar(&c.format, "format", "", "Output format: xlsx or pdf.")
	f.StringVar(&c.title, "title", "", "Title of the document.")
	f.BoolVar(&c.cost, "cost", false, "Include cost, markup and margin in the price list.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		fmt.Fprintln(os.Stderr, "Error: -o is required.")
		return subcommands.ExitUsageError
	}
	format := strings.ToLower(c.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.output)), ".")
	}
	if format != "xlsx" && format != "pdf" {
		fmt.Fprintf(os.Stderr, "Error: unknown export format %q\n", format)
		return subcommands.ExitUsageError
	}

	s, cfg, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	opts := export.Options{Title: c.title, Currency: cfg.Currency}
	rows := s.Ledger.List()
	switch format {
	case "xlsx":
		err = export.XLSX(out, rows, opts)
	case "pdf":
		err = export.PDF(out, rows, opts, c.cost)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Info().Str("file", c.output).Int("rows", len(rows)).Msg("exported")
	fmt.Fprintf(output, "Wrote %s.\n", c.output)
	return subcommands.ExitSuccess
}
