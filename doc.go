// Package margin keeps the pricing of a list of products consistent.
//
// Each product row carries four interdependent values: cost, price, markup
// (profit over cost) and margin (profit over price). Two of them are free,
// the two others are derived and locked:
//
//   - markup = (price-cost)/cost*100
//   - margin = (price-cost)/price*100
//
// The core functionalities include:
//   - Consistency Resolver: [Resolve] applies an edit to a row, chooses the
//     free pair and recomputes the derived fields.
//   - Ledger: the ordered rows of a session, every update goes through the
//     resolver.
//   - Global apply: stamping a single margin or markup target on every row
//     with a known cost, with a single step undo ([Session]).
//   - Journal: the JSONL list of commands a session is replayed from, so
//     that the command-line tool can keep a session across invocations.
//   - Catalog import: reading the items rows are created from.
//
// Invalid input never fails: an unparsable number clears the field, a zero
// divisor yields 0, and a margin of 100% or more clamps the price to the cost.
//
// This package serves as the foundational logic for the `mcalc`
// command-line tool.
package margin
