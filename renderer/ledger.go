package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/margin"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// LedgerOptions holds configuration for rendering a ledger.
type LedgerOptions struct {
	Title    string // Title of the document, "Margins" when empty.
	Currency string // Currency code of cost and price, amounts are plain numbers when unknown.
}

// lockMarker follows the value of a locked cell.
const lockMarker = " (locked)"

// absent is shown for a field holding no value.
const absent = "-"

// LedgerMarkdown renders rows as a markdown table.
func LedgerMarkdown(rows []margin.Row, opts LedgerOptions) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := opts.Title
	if title == "" {
		title = "Margins"
	}
	doc.H1(title)

	if len(rows) == 0 {
		doc.PlainText("No products.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"Code", "Name", "Cost", "Price", "Markup", "Margin", "State"},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.Code,
			r.Name,
			Cell(r, margin.Cost, opts.Currency),
			Cell(r, margin.Price, opts.Currency),
			Cell(r, margin.Markup, opts.Currency),
			Cell(r, margin.Margin, opts.Currency),
			State(r),
		})
	}
	doc.Table(table)
	doc.PlainText(Summary(rows))

	return doc.String()
}

// RowMarkdown renders a single row as a bullet list, one field per line.
func RowMarkdown(r margin.Row, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	head := md.Bold(r.Code)
	if r.Name != "" {
		head += " " + r.Name
	}
	doc.PlainText(head)
	items := make([]string, 0, len(margin.Fields)+1)
	for _, f := range margin.Fields {
		items = append(items, fmt.Sprintf("%s: %s", f, Cell(r, f, currency)))
	}
	items = append(items, "state: "+State(r))
	doc.BulletList(items...)
	return doc.String()
}

// Cell formats the value of field f. Locked values are in italics and marked.
func Cell(r margin.Row, f margin.Field, currency string) string {
	v := r.Value(f)
	if !v.Valid {
		if r.IsLocked(f) {
			return md.Italic(absent) + lockMarker
		}
		return absent
	}
	s := format(v.Decimal, f, currency)
	if r.IsLocked(f) {
		return md.Italic(s) + lockMarker
	}
	return s
}

func format(d decimal.Decimal, f margin.Field, currency string) string {
	if f.IsRatio() {
		return margin.PercentOf(d).String()
	}
	return margin.M(d, currency).String()
}

// State describes how the row's values relate.
func State(r margin.Row) string {
	switch r.State() {
	case margin.DerivedPair:
		return "from " + r.Origin().String()
	default:
		return r.State().String()
	}
}

// Summary counts the rows and the rows with a complete pair of values.
func Summary(rows []margin.Row) string {
	derived := 0
	for _, r := range rows {
		if r.State() != margin.Free {
			derived++
		}
	}
	products := "products"
	if len(rows) == 1 {
		products = "product"
	}
	return fmt.Sprintf("%d %s, %d priced.", len(rows), products, derived)
}
