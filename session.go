package margin

import "github.com/shopspring/decimal"

// Targets holds the percentages stamped by the global apply operations.
type Targets struct {
	Margin decimal.Decimal
	Markup decimal.Decimal
}

// Session hosts a Ledger, the global targets, and the backup taken before the
// last global apply.
//
// The backup is a single step: a new global apply replaces it and Undo
// consumes it. Edits made after the apply are not tracked; Undo restores the
// backup verbatim.
type Session struct {
	Ledger  *Ledger
	Targets Targets

	backup    []Row
	hasBackup bool
}

// NewSession creates a session with an empty ledger.
func NewSession(targets Targets) *Session {
	return &Session{Ledger: NewLedger(), Targets: targets}
}

// ApplyMargin snapshots the ledger then stamps target as margin on every row
// with a known cost. It returns the number of rows that changed.
func (s *Session) ApplyMargin(target decimal.Decimal) int {
	s.snapshot()
	return s.Ledger.ApplyGlobalMargin(target)
}

// ApplyMarkup snapshots the ledger then stamps target as markup on every row
// with a known cost. It returns the number of rows that changed.
func (s *Session) ApplyMarkup(target decimal.Decimal) int {
	s.snapshot()
	return s.Ledger.ApplyGlobalMarkup(target)
}

// ApplyMarginTarget applies the session's margin target.
func (s *Session) ApplyMarginTarget() int { return s.ApplyMargin(s.Targets.Margin) }

// ApplyMarkupTarget applies the session's markup target.
func (s *Session) ApplyMarkupTarget() int { return s.ApplyMarkup(s.Targets.Markup) }

// CanUndo reports whether a backup is available.
func (s *Session) CanUndo() bool { return s.hasBackup }

// Undo restores the ledger as it was before the last global apply and drops
// the backup. It returns false when there is nothing to restore.
func (s *Session) Undo() bool {
	if !s.hasBackup {
		return false
	}
	s.Ledger.Restore(s.backup)
	s.backup, s.hasBackup = nil, false
	return true
}

func (s *Session) snapshot() {
	s.backup, s.hasBackup = s.Ledger.Snapshot(), true
}
