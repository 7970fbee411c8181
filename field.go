package margin

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"
)

// Field identifies one of the four pricing attributes of a Row.
type Field int

const (
	Cost Field = iota
	Price
	Markup
	Margin
)

// Fields lists every field in display order.
var Fields = [...]Field{Cost, Price, Markup, Margin}

func (f Field) String() string {
	switch f {
	case Cost:
		return "cost"
	case Price:
		return "price"
	case Markup:
		return "markup"
	case Margin:
		return "margin"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// IsRatio reports whether f is a percentage (markup or margin) rather than an absolute amount.
func (f Field) IsRatio() bool { return f == Markup || f == Margin }

// ParseField parses a field name, as written in the journal or on the command line.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cost":
		return Cost, nil
	case "price":
		return Price, nil
	case "markup", "markup%":
		return Markup, nil
	case "margin", "margin%":
		return Margin, nil
	default:
		return 0, fmt.Errorf("unknown field: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Field) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Field) UnmarshalText(text []byte) error {
	v, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// FieldSet is a set of fields. Its zero value is the empty set.
type FieldSet uint8

// AllFields contains the four fields.
const AllFields FieldSet = 1<<Cost | 1<<Price | 1<<Markup | 1<<Margin

// SetOf returns the set containing fields.
func SetOf(fields ...Field) FieldSet {
	var s FieldSet
	for _, f := range fields {
		s = s.With(f)
	}
	return s
}

func (s FieldSet) Has(f Field) bool         { return s&(1<<f) != 0 }
func (s FieldSet) With(f Field) FieldSet    { return s | 1<<f }
func (s FieldSet) Without(f Field) FieldSet { return s &^ (1 << f) }
func (s FieldSet) Complement() FieldSet     { return AllFields &^ s }
func (s FieldSet) IsEmpty() bool            { return s == 0 }

// Len returns the number of fields in s.
func (s FieldSet) Len() int {
	n := 0
	for _, f := range Fields {
		if s.Has(f) {
			n++
		}
	}
	return n
}

// All iterates over the fields of s in display order.
func (s FieldSet) All() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for _, f := range Fields {
			if s.Has(f) && !yield(f) {
				return
			}
		}
	}
}

// String returns the set as "{cost, price}".
func (s FieldSet) String() string {
	names := make([]string, 0, 4)
	for f := range s.All() {
		names = append(names, f.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// MarshalJSON encodes the set as a list of field names.
func (s FieldSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, 4)
	for f := range s.All() {
		names = append(names, f.String())
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes a list of field names.
func (s *FieldSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("invalid field set %s: %w", data, err)
	}
	var set FieldSet
	for _, name := range names {
		f, err := ParseField(name)
		if err != nil {
			return err
		}
		set = set.With(f)
	}
	*s = set
	return nil
}
