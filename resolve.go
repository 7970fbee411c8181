package margin

import "github.com/shopspring/decimal"

// Pair classifies the set of anchoring (free, known) fields of a row.
type Pair int

const (
	// NoPair: fewer than two anchors, nothing can be derived.
	NoPair Pair = iota
	// RatioPair: markup and margin only. A ratio cannot fix an absolute
	// price, so nothing can be derived either.
	RatioPair
	CostPrice
	CostMarkup
	CostMargin
	PriceMarkup
	PriceMargin
)

// derivablePairs lists the pairs that can derive the two other fields, in
// priority order.
var derivablePairs = [...]Pair{CostPrice, CostMarkup, CostMargin, PriceMarkup, PriceMargin}

// Fields returns the two fields of the pair, or the empty set for NoPair.
func (p Pair) Fields() FieldSet {
	switch p {
	case RatioPair:
		return SetOf(Markup, Margin)
	case CostPrice:
		return SetOf(Cost, Price)
	case CostMarkup:
		return SetOf(Cost, Markup)
	case CostMargin:
		return SetOf(Cost, Margin)
	case PriceMarkup:
		return SetOf(Price, Markup)
	case PriceMargin:
		return SetOf(Price, Margin)
	default:
		return 0
	}
}

// Derivable reports whether the pair determines the two other fields.
func (p Pair) Derivable() bool { return p >= CostPrice && p <= PriceMargin }

func (p Pair) String() string {
	switch p {
	case NoPair:
		return "none"
	case RatioPair:
		return "markup & margin"
	case CostPrice:
		return "cost & price"
	case CostMarkup:
		return "cost & markup"
	case CostMargin:
		return "cost & margin"
	case PriceMarkup:
		return "price & markup"
	case PriceMargin:
		return "price & margin"
	default:
		return "unknown"
	}
}

// PairOf returns the pair made of exactly the fields in s, or NoPair if s
// does not hold exactly two fields.
func PairOf(s FieldSet) Pair {
	if s.Len() != 2 {
		return NoPair
	}
	if s == RatioPair.Fields() {
		return RatioPair
	}
	for _, p := range derivablePairs {
		if p.Fields() == s {
			return p
		}
	}
	return NoPair
}

// Resolve applies an edit of field to row and returns the consistent row.
//
// The edited field always anchors. Together with the known fields that are
// not locked it forms the anchor set K; when K holds more than two fields it
// is narrowed to the edited field and its partner in the first derivable
// pair (see anchors). Fields outside a derivable K are locked and recomputed
// from K. Resolve is pure.
func Resolve(row Row, field Field, value decimal.NullDecimal) Row {
	row = row.With(field, value)
	p := PairOf(anchors(row, field))
	if p.Derivable() {
		row.Locked = p.Fields().Complement()
	} else {
		row.Locked = 0
	}
	return derive(row, p)
}

// anchors returns the fields anchoring row after field has been edited.
func anchors(row Row, edited Field) FieldSet {
	k := (row.Known() &^ row.Locked).With(edited)
	if k.Len() <= 2 {
		return k
	}
	for _, p := range derivablePairs {
		fs := p.Fields()
		if fs.Has(edited) && k&fs == fs {
			return fs
		}
	}
	// With three anchors or more, at least one absolute field other than
	// the edited one is present, so a pair always exists.
	return k
}

// derive recomputes the fields locked by the pair p.
//
// When p is not derivable nothing is recomputed. When one member of p is
// absent the locked fields are cleared: a locked field never keeps a value
// that is not the output of its pair.
func derive(row Row, p Pair) Row {
	if !p.Derivable() {
		return row
	}
	if row.Known()&p.Fields() != p.Fields() {
		for f := range row.Locked.All() {
			row = row.With(f, Absent)
		}
		return row
	}

	var cost, price decimal.Decimal
	switch p {
	case CostPrice:
		cost, price = row.Cost.Decimal, row.Price.Decimal
	case CostMarkup:
		cost = row.Cost.Decimal
		price = PriceFromMarkup(cost, row.Markup.Decimal)
	case CostMargin:
		cost = row.Cost.Decimal
		price = PriceFromMargin(cost, row.Margin.Decimal)
	case PriceMarkup:
		price = row.Price.Decimal
		cost = CostFromMarkup(price, row.Markup.Decimal)
	case PriceMargin:
		price = row.Price.Decimal
		cost = CostFromMargin(price, row.Margin.Decimal)
	}

	derived := Row{
		Cost:   decimal.NewNullDecimal(cost),
		Price:  decimal.NewNullDecimal(price),
		Markup: decimal.NewNullDecimal(MarkupOf(cost, price)),
		Margin: decimal.NewNullDecimal(MarginOf(cost, price)),
	}
	for f := range row.Locked.All() {
		row = row.With(f, derived.Value(f))
	}
	return row
}
