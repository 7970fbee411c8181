package margin

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Row is the pricing state of one product.
//
// Row is a value: functions that change a row return a new one, so a Row held
// by a caller is never modified behind its back.
type Row struct {
	Code   string
	Name   string
	Cost   decimal.NullDecimal
	Price  decimal.NullDecimal
	Markup decimal.NullDecimal // (price-cost)/cost*100
	Margin decimal.NullDecimal // (price-cost)/price*100
	// Locked fields are derived from the others and are not meant to be edited.
	Locked FieldSet
}

// NewRow creates a row for a catalog item. The cost is seeded from the
// reference price when it is positive, everything else is absent.
func NewRow(item CatalogItem) Row {
	r := Row{Code: item.Code, Name: item.Name}
	if item.ReferencePrice.Valid && item.ReferencePrice.Decimal.IsPositive() {
		r.Cost = item.ReferencePrice
	}
	return r
}

// Value returns the value of field f.
func (r Row) Value(f Field) decimal.NullDecimal {
	switch f {
	case Cost:
		return r.Cost
	case Price:
		return r.Price
	case Markup:
		return r.Markup
	case Margin:
		return r.Margin
	default:
		panic(fmt.Sprintf("unknown field %v", f))
	}
}

// With returns a copy of r where field f holds v.
func (r Row) With(f Field, v decimal.NullDecimal) Row {
	switch f {
	case Cost:
		r.Cost = v
	case Price:
		r.Price = v
	case Markup:
		r.Markup = v
	case Margin:
		r.Margin = v
	default:
		panic(fmt.Sprintf("unknown field %v", f))
	}
	return r
}

// Known returns the set of fields holding a value.
func (r Row) Known() FieldSet {
	var s FieldSet
	for _, f := range Fields {
		if r.Value(f).Valid {
			s = s.With(f)
		}
	}
	return s
}

// Free returns the fields that are not locked.
func (r Row) Free() FieldSet { return r.Locked.Complement() }

// IsLocked reports whether f is derived.
func (r Row) IsLocked(f Field) bool { return r.Locked.Has(f) }

// Equal reports whether r and o hold the same values and locks.
func (r Row) Equal(o Row) bool {
	if r.Code != o.Code || r.Name != o.Name || r.Locked != o.Locked {
		return false
	}
	for _, f := range Fields {
		if !sameValue(r.Value(f), o.Value(f)) {
			return false
		}
	}
	return true
}

// State classifies how the row's fields relate to each other.
type State int

const (
	// Free rows have no locked field.
	Free State = iota
	// DerivedPair rows have two locked fields computed from the two others.
	DerivedPair
	// GlobalLockMarkup rows were stamped with a margin target: only markup is locked.
	GlobalLockMarkup
	// GlobalLockMargin rows were stamped with a markup target: only margin is locked.
	GlobalLockMargin
)

func (s State) String() string {
	switch s {
	case Free:
		return "free"
	case DerivedPair:
		return "derived"
	case GlobalLockMarkup:
		return "global margin"
	case GlobalLockMargin:
		return "global markup"
	default:
		return "unknown"
	}
}

// State returns the state of the row, deduced from its locked fields.
func (r Row) State() State {
	switch r.Locked {
	case 0:
		return Free
	case SetOf(Markup):
		return GlobalLockMarkup
	case SetOf(Margin):
		return GlobalLockMargin
	default:
		return DerivedPair
	}
}

// Origin returns the free pair the locked fields are derived from, or NoPair
// when the row is not a DerivedPair.
func (r Row) Origin() Pair {
	if r.State() != DerivedPair {
		return NoPair
	}
	return PairOf(r.Free())
}
