package cryptotax

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// HomeCurrency is the currency all prices, costs and gains are expressed in.
// The engine is single-currency: no FX conversion happens anywhere.
const HomeCurrency = "ZAR"

// Money represents a monetary value in the home currency.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M creates a Money from any numeric type.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// currency returns the home currency definition used for formatting.
func (m Money) currency() *money.Currency {
	// to get a never nil currency we go through the money constructor.
	return money.New(0, HomeCurrency).Currency()
}

// String returns the money value formatted in the home currency.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString returns the string representation of the money value with an
// explicit sign. Zero is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money               { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value)} }

// Mul scales a unit price by a quantity, yielding a value.
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.value)} }

// Div divides a value by a quantity, yielding a unit price.
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.value)} }

// DivPrice divides a value by a unit price, yielding a quantity.
func (m Money) DivPrice(price Money) Quantity { return Quantity{value: m.value.Div(price.value)} }

// Rate scales the value by a decimal rate (e.g. a tax or fee rate).
func (m Money) Rate(rate decimal.Decimal) Money { return Money{value: m.value.Mul(rate)} }

// InexactFloat64 returns the nearest float64. Reporting only, never used in
// gain arithmetic.
func (m Money) InexactFloat64() float64 { return m.value.InexactFloat64() }

// MarshalJSON implements the json.Marshaler interface. Currency values are
// rounded to the home currency fraction (2 decimal places) at this output
// boundary.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.Round(int32(m.currency().Fraction)).MarshalJSON()
}

func (m *Money) UnmarshalJSON(decimalBytes []byte) error {
	return m.value.UnmarshalJSON(decimalBytes)
}
