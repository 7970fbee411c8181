package margin

import "github.com/shopspring/decimal"

// StampMargin returns row priced so that its margin is target.
//
// Only rows with a known cost are eligible; other rows are returned unchanged
// with ok false. The stamped row locks markup only: price is derived by the
// stamp but stays editable.
func StampMargin(row Row, target decimal.Decimal) (stamped Row, ok bool) {
	if !row.Cost.Valid {
		return row, false
	}
	cost := row.Cost.Decimal
	price := PriceFromMargin(cost, target)
	row.Price = decimal.NewNullDecimal(price)
	row.Margin = decimal.NewNullDecimal(target)
	row.Markup = decimal.NewNullDecimal(MarkupOf(cost, price))
	row.Locked = SetOf(Markup)
	return row, true
}

// StampMarkup returns row priced so that its markup is target.
//
// It mirrors StampMargin: eligible rows have a known cost, and only margin
// is locked afterwards.
func StampMarkup(row Row, target decimal.Decimal) (stamped Row, ok bool) {
	if !row.Cost.Valid {
		return row, false
	}
	cost := row.Cost.Decimal
	price := PriceFromMarkup(cost, target)
	row.Price = decimal.NewNullDecimal(price)
	row.Markup = decimal.NewNullDecimal(target)
	row.Margin = decimal.NewNullDecimal(MarginOf(cost, price))
	row.Locked = SetOf(Margin)
	return row, true
}

// ApplyGlobalMargin stamps the margin target on every row with a known cost.
// It returns the number of rows whose state changed.
func (l *Ledger) ApplyGlobalMargin(target decimal.Decimal) int {
	return l.stampAll(func(r Row) (Row, bool) { return StampMargin(r, target) })
}

// ApplyGlobalMarkup stamps the markup target on every row with a known cost.
// It returns the number of rows whose state changed.
func (l *Ledger) ApplyGlobalMarkup(target decimal.Decimal) int {
	return l.stampAll(func(r Row) (Row, bool) { return StampMarkup(r, target) })
}

func (l *Ledger) stampAll(stamp func(Row) (Row, bool)) int {
	// the new rows are computed aside and swapped in one step, observers never
	// see a half stamped ledger.
	rows := make([]Row, len(l.rows))
	var changes []Change
	for i, before := range l.rows {
		after, ok := stamp(before)
		rows[i] = after
		if ok && !after.Equal(before) {
			changes = append(changes, Change{Kind: RowUpdated, Before: before, After: after})
		}
	}
	l.rows = rows
	l.notify(changes...)
	return len(changes)
}
