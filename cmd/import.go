package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/margin"
	"github.com/etnz/margin/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type importCmd struct {
	items string
	code  string
	name  string
	ref   string
	memo  string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "add the products of a catalog file" }
func (*importCmd) Usage() string {
	return `mcalc import [-items <path>] [-code <path>] [-name <path>] [-ref <path>] <file>

  Adds a row for every catalog item of <file> that is not in the ledger yet.

  A .jsonl file holds one item per line: {"code":..., "name":..., "referencePrice":...}.
  Any other file is read as a JSON document, where items are located with
  jsonpath expressions. The defaults come from the [catalog] section of the
  configuration file, or read {"items":[{"code":..., "name":..., "referencePrice":...}]}.

Usage Examples:
$ mcalc import -items '$.products[*]' -code '$.sku' -ref '$.price.amount' catalog.json
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.items, "items", "", "jsonpath of the item list in the document.")
	f.StringVar(&c.code, "code", "", "jsonpath of the code in an item.")
	f.StringVar(&c.name, "name", "", "jsonpath of the name in an item.")
	f.StringVar(&c.ref, "ref", "", "jsonpath of the reference price in an item.")
	f.StringVar(&c.memo, "m", "", "A memo for the journal.")
}

func (c *importCmd) query(cfg Config) margin.CatalogQuery {
	q := cfg.Query()
	if c.items != "" {
		q.Items = c.items
	}
	if c.code != "" {
		q.Code = c.code
	}
	if c.name != "" {
		q.Name = c.name
	}
	if c.ref != "" {
		q.ReferencePrice = c.ref
	}
	return q
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: import expects exactly one catalog file.")
		return subcommands.ExitUsageError
	}
	file := f.Arg(0)

	s, cfg, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	in, err := os.Open(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	items, err := readCatalog(in, file, c.query(cfg))
	if err != nil && len(items) == 0 {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err != nil {
		// some items could be read, the others are reported.
		log.Warn().Err(err).Str("file", file).Msg("some catalog items were skipped")
	}

	var added []margin.Row
	for _, item := range items {
		if _, exists := s.Ledger.Row(item.Code); exists {
			log.Info().Str("code", item.Code).Msg("already in the ledger")
			continue
		}
		if _, err := Record(s, margin.NewAdd(c.memo, item)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		row, _ := s.Ledger.Row(item.Code)
		added = append(added, row)
	}

	printMarkdown(renderer.LedgerMarkdown(added, renderer.LedgerOptions{
		Title:    fmt.Sprintf("Imported %d of %d items", len(added), len(items)),
		Currency: cfg.Currency,
	}))
	return subcommands.ExitSuccess
}

// readCatalog reads catalog items, in the format given by the file extension.
func readCatalog(r io.Reader, file string, q margin.CatalogQuery) ([]margin.CatalogItem, error) {
	if strings.EqualFold(filepath.Ext(file), ".jsonl") {
		return margin.ImportCatalog(r)
	}
	return margin.ImportCatalogJSON(r, q)
}
