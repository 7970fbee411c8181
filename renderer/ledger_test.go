package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/margin"
	"github.com/shopspring/decimal"
)

func TestCell(t *testing.T) {
	derived := margin.Resolve(margin.Row{Code: "A", Cost: margin.V(10)}, margin.Price, margin.V(12.5))
	stamped, _ := margin.StampMargin(margin.Row{Code: "B", Cost: margin.V(10)}, decimal.NewFromInt(30))
	cleared := margin.Resolve(derived, margin.Cost, margin.Absent)

	testCases := []struct {
		name  string
		row   margin.Row
		field margin.Field
		want  string
	}{
		{"free amount", derived, margin.Cost, "10.00"},
		{"free price", derived, margin.Price, "12.50"},
		{"locked markup", derived, margin.Markup, "*25.00%* (locked)"},
		{"locked margin", derived, margin.Margin, "*20.00%* (locked)"},
		{"stamped margin is free", stamped, margin.Margin, "30.00%"},
		{"stamped markup is locked", stamped, margin.Markup, "*42.86%* (locked)"},
		{"absent", cleared, margin.Cost, "-"},
		{"absent and locked", cleared, margin.Markup, "*-* (locked)"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Cell(tc.row, tc.field, ""); got != tc.want {
				t.Errorf("Cell() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestState(t *testing.T) {
	derived := margin.Resolve(margin.Row{Cost: margin.V(10)}, margin.Markup, margin.V(50))
	stamped, _ := margin.StampMarkup(margin.Row{Cost: margin.V(10)}, decimal.NewFromInt(30))

	for _, tc := range []struct {
		row  margin.Row
		want string
	}{
		{margin.Row{}, "free"},
		{derived, "from cost & markup"},
		{stamped, "global markup"},
	} {
		if got := State(tc.row); got != tc.want {
			t.Errorf("State(%+v) = %q, want %q", tc.row, got, tc.want)
		}
	}
}

func TestLedgerMarkdown(t *testing.T) {
	l := margin.NewLedger()
	l.Add(margin.CatalogItem{Code: "A", Name: "Widget", ReferencePrice: margin.V(10)})
	l.Add(margin.CatalogItem{Code: "B", Name: "Gadget"})
	l.UpdateField("A", margin.Price, margin.V(12.5))

	got := LedgerMarkdown(l.List(), LedgerOptions{Title: "Spring prices"})

	for _, want := range []string{
		"# Spring prices",
		"Widget", "12.50", "*25.00%* (locked)", "from cost & price",
		"Gadget", "free",
		"2 products, 1 priced.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("LedgerMarkdown() does not contain %q:\n%s", want, got)
		}
	}
}

func TestLedgerMarkdown_Empty(t *testing.T) {
	got := LedgerMarkdown(nil, LedgerOptions{})
	if !strings.Contains(got, "# Margins") || !strings.Contains(got, "No products.") {
		t.Errorf("LedgerMarkdown(nil) = %q", got)
	}
}

func TestRowMarkdown(t *testing.T) {
	row := margin.Resolve(margin.Row{Code: "A", Name: "Widget", Cost: margin.V(8)}, margin.Margin, margin.V(20))
	got := RowMarkdown(row, "")
	for _, want := range []string{"**A** Widget", "price: *10.00* (locked)", "margin: 20.00%", "state: from cost & margin"} {
		if !strings.Contains(got, want) {
			t.Errorf("RowMarkdown() does not contain %q:\n%s", want, got)
		}
	}
}
