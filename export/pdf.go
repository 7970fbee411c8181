package export

import (
	"fmt"
	"io"

	"github.com/etnz/margin"
	"github.com/go-pdf/fpdf"
)

// PDF writes rows as a printable price list to w.
//
// The list shows code, name and price; cost and ratios are internal and left
// out unless withCost is set. Rows without a price are skipped.
func PDF(w io.Writer, rows []margin.Row, opts Options, withCost bool) error {
	pdf := newPriceList(rows, opts, withCost)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("cannot write price list: %w", err)
	}
	return nil
}

func newPriceList(rows []margin.Row, opts Options, withCost bool) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(opts.title(), true)
	pdf.AddPage()
	// core fonts are cp1252, names are utf-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, tr(opts.title()), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	type column struct {
		title string
		width float64
		align string
		value func(margin.Row) string
	}
	amount := func(f margin.Field) func(margin.Row) string {
		return func(r margin.Row) string {
			v := r.Value(f)
			if !v.Valid {
				return ""
			}
			return margin.M(v.Decimal, opts.Currency).Amount()
		}
	}
	percent := func(f margin.Field) func(margin.Row) string {
		return func(r margin.Row) string {
			v := r.Value(f)
			if !v.Valid {
				return ""
			}
			return margin.PercentOf(v.Decimal).String()
		}
	}
	priceTitle := "Price"
	if opts.Currency != "" {
		priceTitle = fmt.Sprintf("Price (%s)", opts.Currency)
	}

	cols := []column{
		{"Code", contentW * 0.2, "L", func(r margin.Row) string { return r.Code }},
		{"Name", contentW * 0.5, "L", func(r margin.Row) string { return r.Name }},
		{priceTitle, contentW * 0.3, "R", amount(margin.Price)},
	}
	if withCost {
		cols = []column{
			{"Code", contentW * 0.15, "L", func(r margin.Row) string { return r.Code }},
			{"Name", contentW * 0.29, "L", func(r margin.Row) string { return r.Name }},
			{"Cost", contentW * 0.14, "R", amount(margin.Cost)},
			{priceTitle, contentW * 0.14, "R", amount(margin.Price)},
			{"Markup", contentW * 0.14, "R", percent(margin.Markup)},
			{"Margin", contentW * 0.14, "R", percent(margin.Margin)},
		}
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(226, 232, 240)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(c.width, 7, c.title, "B", ln, c.align, true, 0, "")
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		if !r.Price.Valid {
			continue
		}
		for i, c := range cols {
			ln := 0
			if i == len(cols)-1 {
				ln = 1
			}
			pdf.CellFormat(c.width, 6, tr(c.value(r)), "", ln, c.align, false, 0, "")
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, tr(renderSummary(rows)), "", 1, "L", false, 0, "")
	return pdf
}

func renderSummary(rows []margin.Row) string {
	priced := 0
	for _, r := range rows {
		if r.Price.Valid {
			priced++
		}
	}
	return fmt.Sprintf("%d of %d products priced.", priced, len(rows))
}
