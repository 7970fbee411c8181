// Package export writes the rows of a ledger in formats meant to leave the
// tool: a spreadsheet that keeps the relations between the fields alive, and
// a printable price list.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/margin"
	"github.com/xuri/excelize/v2"
)

// Options holds configuration shared by the exports.
type Options struct {
	Title    string // Title of the document, also the sheet name.
	Currency string // Currency code of cost and price.
}

func (o Options) title() string {
	if o.Title == "" {
		return "Margins"
	}
	return o.Title
}

// column of each field in the sheet, code and name come first.
var columns = map[margin.Field]string{
	margin.Cost:   "C",
	margin.Price:  "D",
	margin.Markup: "E",
	margin.Margin: "F",
}

// Formulas computing a locked field from the others, on sheet row n. They
// follow the engine's rules: zero divisors yield 0, a margin of 100% or more
// clamps the price to the cost and a markup of -100% clamps the cost to the
// price.
func markupFormula(n int) string {
	return fmt.Sprintf("IF(C%[1]d=0,0,(D%[1]d-C%[1]d)/C%[1]d*100)", n)
}

func marginFormula(n int) string {
	return fmt.Sprintf("IF(D%[1]d=0,0,(D%[1]d-C%[1]d)/D%[1]d*100)", n)
}

func priceFromMarkupFormula(n int) string {
	return fmt.Sprintf("C%[1]d*(1+E%[1]d/100)", n)
}

func priceFromMarginFormula(n int) string {
	return fmt.Sprintf("IF(F%[1]d>=100,C%[1]d,C%[1]d/(1-F%[1]d/100))", n)
}

func costFromMarkupFormula(n int) string {
	return fmt.Sprintf("IF(1+E%[1]d/100=0,D%[1]d,D%[1]d/(1+E%[1]d/100))", n)
}

func costFromMarginFormula(n int) string {
	return fmt.Sprintf("D%[1]d*(1-F%[1]d/100)", n)
}

// Formula returns the spreadsheet formula of field f for row r written on
// sheet row n, or "" when f is free.
func Formula(r margin.Row, f margin.Field, n int) string {
	if !r.IsLocked(f) {
		return ""
	}
	switch f {
	case margin.Markup:
		return markupFormula(n)
	case margin.Margin:
		return marginFormula(n)
	case margin.Price:
		if r.Free().Has(margin.Margin) {
			return priceFromMarginFormula(n)
		}
		return priceFromMarkupFormula(n)
	case margin.Cost:
		if r.Free().Has(margin.Margin) {
			return costFromMarginFormula(n)
		}
		return costFromMarkupFormula(n)
	}
	return ""
}

// XLSX writes rows as a spreadsheet to w.
//
// Free fields are written as values, locked fields as the formula deriving
// them, so that editing a free cell in the spreadsheet keeps the row
// consistent. Absent values are left blank.
func XLSX(w io.Writer, rows []margin.Row, opts Options) error {
	f, err := NewWorkbook(rows, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("cannot write spreadsheet: %w", err)
	}
	return nil
}

// NewWorkbook builds the spreadsheet written by XLSX.
func NewWorkbook(rows []margin.Row, opts Options) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := opts.title()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("cannot name sheet %q: %w", sheet, err)
	}

	amountHeader := func(s string) string {
		if opts.Currency == "" {
			return s
		}
		return fmt.Sprintf("%s (%s)", s, opts.Currency)
	}
	headers := []string{"Code", "Name", amountHeader("Cost"), amountHeader("Price"), "Markup %", "Margin %"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	style, err := newStyles(f, opts)
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheet, 1, 1, style.header); err != nil {
		return nil, err
	}

	for i, r := range rows {
		n := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", n), r.Code)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", n), r.Name)
		for _, field := range margin.Fields {
			cell := fmt.Sprintf("%s%d", columns[field], n)
			if err := writeField(f, sheet, cell, r, field, n); err != nil {
				return nil, fmt.Errorf("row %q: %w", r.Code, err)
			}
			if err := f.SetCellStyle(sheet, cell, cell, style.of(r, field)); err != nil {
				return nil, err
			}
		}
	}

	f.SetColWidth(sheet, "A", "A", 15)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "F", 14)
	return f, nil
}

func writeField(f *excelize.File, sheet, cell string, r margin.Row, field margin.Field, n int) error {
	v := r.Value(field)
	if !v.Valid {
		return nil
	}
	if formula := Formula(r, field, n); formula != "" {
		return f.SetCellFormula(sheet, cell, formula)
	}
	return f.SetCellValue(sheet, cell, v.Decimal.InexactFloat64())
}

type styles struct {
	header        int
	amount        int
	lockedAmount  int
	percent       int
	lockedPercent int
}

func newStyles(f *excelize.File, opts Options) (styles, error) {
	var s styles
	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("cannot create header style: %w", err)
	}

	amountFmt := "0"
	if digits := int(margin.M(0, opts.Currency).Fraction()); digits > 0 {
		amountFmt += "." + strings.Repeat("0", digits)
	}
	percentFmt := `0.00"%"`
	locked := &excelize.Font{Italic: true, Color: "#64748B"}

	for _, st := range []struct {
		id     *int
		numFmt *string
		font   *excelize.Font
	}{
		{&s.amount, &amountFmt, nil},
		{&s.lockedAmount, &amountFmt, locked},
		{&s.percent, &percentFmt, nil},
		{&s.lockedPercent, &percentFmt, locked},
	} {
		*st.id, err = f.NewStyle(&excelize.Style{CustomNumFmt: st.numFmt, Font: st.font})
		if err != nil {
			return s, fmt.Errorf("cannot create cell style: %w", err)
		}
	}
	return s, nil
}

func (s styles) of(r margin.Row, f margin.Field) int {
	switch {
	case f.IsRatio() && r.IsLocked(f):
		return s.lockedPercent
	case f.IsRatio():
		return s.percent
	case r.IsLocked(f):
		return s.lockedAmount
	default:
		return s.amount
	}
}
