package margin

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a ratio expressed in percent, for display.
type Percent float64

// PercentOf converts a markup or margin value.
func PercentOf(d decimal.Decimal) Percent {
	return Percent(d.InexactFloat64())
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
