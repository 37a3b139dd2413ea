package sensor

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of decimals of exposed values.
const DefaultPrecision = 2

// RoundHalfUp rounds v to places decimals. Ties round away from zero, taken
// over the shortest decimal form of v, so 10.005 becomes 10.01 and -1.005
// becomes -1.01. NaN and infinities are returned unchanged.
func RoundHalfUp(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
