package margin

import (
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// V returns a known value.
func V[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.NullDecimal {
	return decimal.NewNullDecimal(newDecimal(value))
}

// Absent is the value of a field that holds nothing.
var Absent = decimal.NullDecimal{}

// ParseValue parses user input into a field value.
//
// Empty or unparsable input yields Absent: clearing a field is not an error.
// A trailing "%" is accepted so that percentages can be typed as displayed.
func ParseValue(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return Absent
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Absent
	}
	return decimal.NewNullDecimal(d)
}

// sameValue reports whether a and b are both absent or both hold equal values.
func sameValue(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}
