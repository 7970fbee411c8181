package margin

import (
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// Ledger is the ordered collection of rows, keyed by product code.
//
// Every mutation replaces rows with fully resolved values. A Ledger is meant
// to have a single writer; it is not safe for concurrent use.
type Ledger struct {
	rows      []Row
	index     map[string]int // row position by code
	observers []func(Change)
}

// ChangeKind tells what happened to a row.
type ChangeKind int

const (
	RowAdded ChangeKind = iota
	RowUpdated
	RowRemoved
)

func (k ChangeKind) String() string {
	switch k {
	case RowAdded:
		return "added"
	case RowUpdated:
		return "updated"
	case RowRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Change describes a row replacement. Before is the zero Row for RowAdded,
// After is the zero Row for RowRemoved.
type Change struct {
	Kind   ChangeKind
	Before Row
	After  Row
}

// Code returns the code of the changed row.
func (c Change) Code() string {
	if c.Kind == RowRemoved {
		return c.Before.Code
	}
	return c.After.Code
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		rows:  make([]Row, 0),
		index: make(map[string]int),
	}
}

// Observe registers fn to be called after each change, once the ledger is
// consistent again.
func (l *Ledger) Observe(fn func(Change)) {
	l.observers = append(l.observers, fn)
}

func (l *Ledger) notify(changes ...Change) {
	for _, c := range changes {
		for _, fn := range l.observers {
			fn(c)
		}
	}
}

// Len returns the number of rows.
func (l *Ledger) Len() int { return len(l.rows) }

// Row returns the row for code.
func (l *Ledger) Row(code string) (Row, bool) {
	i, ok := l.index[code]
	if !ok {
		return Row{}, false
	}
	return l.rows[i], true
}

// Rows iterates over the rows in insertion order.
func (l *Ledger) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, r := range l.rows {
			if !yield(r) {
				return
			}
		}
	}
}

// List returns a copy of the rows in insertion order.
func (l *Ledger) List() []Row { return slices.Clone(l.rows) }

// Add creates the row for a catalog item. An item whose code is already in
// the ledger is ignored. It returns true if a row was added.
func (l *Ledger) Add(item CatalogItem) bool {
	if _, exists := l.index[item.Code]; exists {
		return false
	}
	r := NewRow(item)
	l.index[r.Code] = len(l.rows)
	l.rows = append(l.rows, r)
	l.notify(Change{Kind: RowAdded, After: r})
	return true
}

// UpdateField sets field of the row code to value and resolves the row.
// Unknown codes are ignored. It returns the resolved row and true if the row
// exists.
func (l *Ledger) UpdateField(code string, field Field, value decimal.NullDecimal) (Row, bool) {
	i, ok := l.index[code]
	if !ok {
		return Row{}, false
	}
	before := l.rows[i]
	after := Resolve(before, field, value)
	l.rows[i] = after
	l.notify(Change{Kind: RowUpdated, Before: before, After: after})
	return after, true
}

// Remove deletes the row code. Unknown codes are ignored. It returns true if
// a row was removed.
func (l *Ledger) Remove(code string) bool {
	i, ok := l.index[code]
	if !ok {
		return false
	}
	before := l.rows[i]
	l.rows = slices.Delete(l.rows, i, i+1)
	delete(l.index, code)
	l.reindex(i)
	l.notify(Change{Kind: RowRemoved, Before: before})
	return true
}

// Clear removes every row.
func (l *Ledger) Clear() {
	old := l.rows
	l.rows = make([]Row, 0)
	l.index = make(map[string]int)
	changes := make([]Change, 0, len(old))
	for _, r := range old {
		changes = append(changes, Change{Kind: RowRemoved, Before: r})
	}
	l.notify(changes...)
}

// Load inserts row verbatim, without resolving it. An existing row with the
// same code is replaced in place. It is meant to restore rows that were
// consistent when they were saved.
func (l *Ledger) Load(row Row) {
	if i, ok := l.index[row.Code]; ok {
		before := l.rows[i]
		l.rows[i] = row
		l.notify(Change{Kind: RowUpdated, Before: before, After: row})
		return
	}
	l.index[row.Code] = len(l.rows)
	l.rows = append(l.rows, row)
	l.notify(Change{Kind: RowAdded, After: row})
}

// Snapshot returns a copy of the rows, suitable for Restore.
func (l *Ledger) Snapshot() []Row { return l.List() }

// Restore replaces the whole ledger with rows, verbatim.
func (l *Ledger) Restore(rows []Row) {
	old := l.rows
	l.rows = slices.Clone(rows)
	l.index = make(map[string]int, len(rows))
	l.reindex(0)

	changes := make([]Change, 0, len(old)+len(rows))
	for _, r := range old {
		changes = append(changes, Change{Kind: RowRemoved, Before: r})
	}
	for _, r := range l.rows {
		changes = append(changes, Change{Kind: RowAdded, After: r})
	}
	l.notify(changes...)
}

// reindex recomputes the position of rows from position i.
func (l *Ledger) reindex(from int) {
	for i := from; i < len(l.rows); i++ {
		l.index[l.rows[i].Code] = i
	}
}
