package margin

import (
	"errors"
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
)

// CommandType is a typed string for identifying journal commands.
type CommandType string

// Command types used for identifying journal commands.
const (
	CmdAdd         CommandType = "add"
	CmdSet         CommandType = "set"
	CmdRemove      CommandType = "remove"
	CmdClear       CommandType = "clear"
	CmdApplyMargin CommandType = "apply-margin"
	CmdApplyMarkup CommandType = "apply-markup"
	CmdUndo        CommandType = "undo"
	CmdLoad        CommandType = "load"
)

// Command is one mutation of a Session, as recorded in a Journal.
type Command interface {
	What() CommandType // What returns the command type (e.g., "add", "set").
	// Validate checks that the command is well formed.
	Validate() error
	// Apply runs the command on s and returns the number of rows it changed.
	Apply(s *Session) int
}

type baseCmd struct {
	Command CommandType `json:"command"`
	Memo    string      `json:"memo,omitempty"` // Memo is an optional note.
}

// What returns the command name.
func (c baseCmd) What() CommandType { return c.Command }

// Rationale returns the memo associated with the command.
func (c baseCmd) Rationale() string { return c.Memo }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (c baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", c.Command)
	w.Optional("memo", c.Memo)
	return w.MarshalJSON()
}

func (c baseCmd) Validate() error { return nil }

// codeCmd is a component for commands that target a single row.
type codeCmd struct {
	baseCmd
	Code string `json:"code"`
}

func (c codeCmd) Validate() error {
	if c.Code == "" {
		return errors.New("product code is missing")
	}
	return nil
}

func (c codeCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(c.baseCmd)
	w.Append("code", c.Code)
	return w.MarshalJSON()
}

// Add creates a row from a catalog item, or from a code typed by hand.
type Add struct {
	codeCmd
	Name           string
	ReferencePrice decimal.NullDecimal
}

// NewAdd creates a new Add command.
func NewAdd(memo string, item CatalogItem) Add {
	return Add{
		codeCmd:        codeCmd{baseCmd{CmdAdd, memo}, item.Code},
		Name:           item.Name,
		ReferencePrice: item.ReferencePrice,
	}
}

// Item returns the catalog item carried by the command.
func (c Add) Item() CatalogItem {
	return CatalogItem{Code: c.Code, Name: c.Name, ReferencePrice: c.ReferencePrice}
}

func (c Add) Apply(s *Session) int {
	if s.Ledger.Add(c.Item()) {
		return 1
	}
	return 0
}

// MarshalJSON implements the json.Marshaler interface for Add.
func (c Add) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(c.codeCmd)
	w.Optional("name", c.Name)
	w.Value("referencePrice", c.ReferencePrice)
	return w.MarshalJSON()
}

// Set edits one field of a row. An absent Value clears the field.
type Set struct {
	codeCmd
	Field Field
	Value decimal.NullDecimal
}

// NewSet creates a new Set command.
func NewSet(memo, code string, field Field, value decimal.NullDecimal) Set {
	return Set{
		codeCmd: codeCmd{baseCmd{CmdSet, memo}, code},
		Field:   field,
		Value:   value,
	}
}

func (c Set) Apply(s *Session) int {
	if _, ok := s.Ledger.UpdateField(c.Code, c.Field, c.Value); ok {
		return 1
	}
	return 0
}

// MarshalJSON implements the json.Marshaler interface for Set.
func (c Set) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(c.codeCmd)
	w.Append("field", c.Field)
	w.Value("value", c.Value)
	return w.MarshalJSON()
}

// Remove deletes a row.
type Remove struct {
	codeCmd
}

// NewRemove creates a new Remove command.
func NewRemove(memo, code string) Remove {
	return Remove{codeCmd{baseCmd{CmdRemove, memo}, code}}
}

func (c Remove) Apply(s *Session) int {
	if s.Ledger.Remove(c.Code) {
		return 1
	}
	return 0
}

// Clear removes every row.
type Clear struct {
	baseCmd
}

// NewClear creates a new Clear command.
func NewClear(memo string) Clear { return Clear{baseCmd{CmdClear, memo}} }

func (c Clear) Apply(s *Session) int {
	n := s.Ledger.Len()
	s.Ledger.Clear()
	return n
}

// targetCmd is a component for the global apply commands.
type targetCmd struct {
	baseCmd
	Target decimal.Decimal
}

func (c targetCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(c.baseCmd)
	w.Append("target", c.Target)
	return w.MarshalJSON()
}

// ApplyMargin stamps a margin target on every row with a known cost.
type ApplyMargin struct {
	targetCmd
}

// NewApplyMargin creates a new ApplyMargin command.
func NewApplyMargin(memo string, target decimal.Decimal) ApplyMargin {
	return ApplyMargin{targetCmd{baseCmd{CmdApplyMargin, memo}, target}}
}

func (c ApplyMargin) Apply(s *Session) int { return s.ApplyMargin(c.Target) }

// ApplyMarkup stamps a markup target on every row with a known cost.
type ApplyMarkup struct {
	targetCmd
}

// NewApplyMarkup creates a new ApplyMarkup command.
func NewApplyMarkup(memo string, target decimal.Decimal) ApplyMarkup {
	return ApplyMarkup{targetCmd{baseCmd{CmdApplyMarkup, memo}, target}}
}

func (c ApplyMarkup) Apply(s *Session) int { return s.ApplyMarkup(c.Target) }

// Undo restores the ledger as it was before the last global apply.
type Undo struct {
	baseCmd
}

// NewUndo creates a new Undo command.
func NewUndo(memo string) Undo { return Undo{baseCmd{CmdUndo, memo}} }

func (c Undo) Apply(s *Session) int {
	if !s.Undo() {
		return 0
	}
	return s.Ledger.Len()
}

// Load inserts a row verbatim. It is written by Compact.
type Load struct {
	baseCmd
	Row Row
}

// NewLoad creates a new Load command.
func NewLoad(memo string, row Row) Load { return Load{baseCmd{CmdLoad, memo}, row} }

func (c Load) Validate() error {
	if c.Row.Code == "" {
		return errors.New("product code is missing")
	}
	return nil
}

func (c Load) Apply(s *Session) int {
	s.Ledger.Load(c.Row)
	return 1
}

// MarshalJSON implements the json.Marshaler interface for Load.
func (c Load) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(c.baseCmd)
	w.Append("code", c.Row.Code)
	w.Optional("name", c.Row.Name)
	w.Value("cost", c.Row.Cost)
	w.Value("price", c.Row.Price)
	w.Value("markup", c.Row.Markup)
	w.Value("margin", c.Row.Margin)
	w.Optional("locked", c.Row.Locked)
	return w.MarshalJSON()
}

// Journal is the list of commands of a session, in the order they were issued.
type Journal struct {
	commands []Command
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{commands: make([]Command, 0)}
}

// Append appends commands to the journal.
func (j *Journal) Append(cmds ...Command) {
	j.commands = append(j.commands, cmds...)
}

// Len returns the number of commands.
func (j *Journal) Len() int { return len(j.commands) }

// Commands iterates over the commands in order.
func (j *Journal) Commands() iter.Seq2[int, Command] {
	return func(yield func(int, Command) bool) {
		for i, c := range j.commands {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Replay runs every command on a new session.
func (j *Journal) Replay(targets Targets) *Session {
	s := NewSession(targets)
	for _, c := range j.commands {
		c.Apply(s)
	}
	return s
}

// Compact returns the shortest journal reproducing the rows of l: one load
// command per row. The undo backup is not carried over.
func Compact(l *Ledger) *Journal {
	j := NewJournal()
	for r := range l.Rows() {
		j.Append(NewLoad("", r))
	}
	return j
}

// Validate checks every command and reports all the invalid ones.
func (j *Journal) Validate() error {
	var errs error
	for i, c := range j.commands {
		if err := c.Validate(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("invalid %s command #%d: %w", c.What(), i+1, err))
		}
	}
	return errs
}
