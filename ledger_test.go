package margin

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func codes(l *Ledger) []string {
	var list []string
	for r := range l.Rows() {
		list = append(list, r.Code)
	}
	return list
}

func TestLedger_Add(t *testing.T) {
	testCases := []struct {
		name     string
		item     CatalogItem
		wantCost decimal.NullDecimal
	}{
		{
			name:     "reference price seeds the cost",
			item:     CatalogItem{Code: "A", Name: "Widget", ReferencePrice: V(10)},
			wantCost: V(10),
		},
		{
			name:     "no reference price",
			item:     CatalogItem{Code: "A"},
			wantCost: Absent,
		},
		{
			name:     "zero reference price is ignored",
			item:     CatalogItem{Code: "A", ReferencePrice: V(0)},
			wantCost: Absent,
		},
		{
			name:     "negative reference price is ignored",
			item:     CatalogItem{Code: "A", ReferencePrice: V(-3)},
			wantCost: Absent,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger()
			if !l.Add(tc.item) {
				t.Fatal("Add() = false, want true")
			}
			got, ok := l.Row(tc.item.Code)
			if !ok {
				t.Fatalf("Row(%q) not found", tc.item.Code)
			}
			want := Row{Code: tc.item.Code, Name: tc.item.Name, Cost: tc.wantCost}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Add() row mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLedger_AddDuplicate(t *testing.T) {
	l := NewLedger()
	l.Add(CatalogItem{Code: "A", Name: "first", ReferencePrice: V(10)})
	if l.Add(CatalogItem{Code: "A", Name: "second", ReferencePrice: V(20)}) {
		t.Error("Add() of a duplicate code = true, want false")
	}
	r, _ := l.Row("A")
	if r.Name != "first" || !r.Cost.Decimal.Equal(decimal.NewFromInt(10)) {
		t.Errorf("duplicate add modified the row: %+v", r)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestLedger_UpdateField(t *testing.T) {
	l := NewLedger()
	l.Add(CatalogItem{Code: "A", ReferencePrice: V(10)})

	got, ok := l.UpdateField("A", Price, V(12.5))
	if !ok {
		t.Fatal("UpdateField() = false, want true")
	}
	stored, _ := l.Row("A")
	if !stored.Equal(got) {
		t.Errorf("stored row %+v differs from returned row %+v", stored, got)
	}
	checkValue(t, stored, Markup, "25")
	checkLocked(t, stored, SetOf(Markup, Margin))

	if _, ok := l.UpdateField("missing", Price, V(1)); ok {
		t.Error("UpdateField() on an unknown code = true, want false")
	}
	if l.Len() != 1 {
		t.Errorf("UpdateField() on an unknown code changed the ledger")
	}
}

func TestLedger_RemoveKeepsOrder(t *testing.T) {
	l := NewLedger()
	for _, code := range []string{"A", "B", "C", "D"} {
		l.Add(CatalogItem{Code: code})
	}
	if !l.Remove("B") {
		t.Fatal("Remove(B) = false, want true")
	}
	if l.Remove("B") {
		t.Error("second Remove(B) = true, want false")
	}
	if diff := cmp.Diff([]string{"A", "C", "D"}, codes(l)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	// the index must follow the shifted rows.
	if _, ok := l.UpdateField("D", Cost, V(5)); !ok {
		t.Fatal("UpdateField(D) after a removal failed")
	}
	d, _ := l.Row("D")
	checkValue(t, d, Cost, "5")
	c, _ := l.Row("C")
	checkValue(t, c, Cost, "")
}

func TestLedger_Clear(t *testing.T) {
	l := NewLedger()
	l.Add(CatalogItem{Code: "A"})
	l.Add(CatalogItem{Code: "B"})
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len() = %d after Clear()", l.Len())
	}
	if !l.Add(CatalogItem{Code: "A"}) {
		t.Error("Add() after Clear() should accept a previously known code")
	}
}

func TestLedger_ListIsACopy(t *testing.T) {
	l := NewLedger()
	l.Add(CatalogItem{Code: "A", ReferencePrice: V(10)})
	list := l.List()
	list[0].Name = "changed"
	list[0].Cost = V(99)
	r, _ := l.Row("A")
	if r.Name != "" || !r.Cost.Decimal.Equal(decimal.NewFromInt(10)) {
		t.Errorf("List() exposes the ledger rows: %+v", r)
	}
}

func TestLedger_LoadAndRestore(t *testing.T) {
	l := NewLedger()
	l.Add(CatalogItem{Code: "A", ReferencePrice: V(10)})
	snapshot := l.Snapshot()

	l.Load(Row{Code: "A", Cost: V(1), Price: V(2), Markup: V(100), Margin: V(50), Locked: SetOf(Markup, Margin)})
	l.Load(Row{Code: "B", Cost: V(3)})
	if diff := cmp.Diff([]string{"A", "B"}, codes(l)); diff != "" {
		t.Errorf("Load() order mismatch (-want +got):\n%s", diff)
	}
	a, _ := l.Row("A")
	checkValue(t, a, Price, "2")

	l.Restore(snapshot)
	if diff := cmp.Diff(snapshot, l.List()); diff != "" {
		t.Errorf("Restore() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := l.Row("B"); ok {
		t.Error("Restore() kept a row that was not in the snapshot")
	}
}

func TestLedger_Observe(t *testing.T) {
	l := NewLedger()
	var got []string
	l.Observe(func(c Change) { got = append(got, c.Kind.String()+" "+c.Code()) })

	l.Add(CatalogItem{Code: "A", ReferencePrice: V(10)})
	l.Add(CatalogItem{Code: "A"}) // ignored
	l.Add(CatalogItem{Code: "B"})
	l.UpdateField("A", Markup, V(50))
	l.UpdateField("Z", Markup, V(50)) // ignored
	l.ApplyGlobalMargin(decimal.NewFromInt(30))
	l.Remove("B")
	l.Clear()

	want := []string{
		"added A",
		"added B",
		"updated A",
		"updated A",
		"removed B",
		"removed A",
	}
	if !slices.Equal(got, want) {
		t.Errorf("changes = %q, want %q", got, want)
	}
}
