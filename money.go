package papertrade

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Decimals is the number of decimal places kept for every amount and price.
const Decimals = 2

// Money represents a monetary value rounded to cents.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// M returns the amount 'value' in 'currency', rounded to cents.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value).Round(Decimals), cur: currency}
}

// USD returns an amount in US dollars.
func USD[T float64 | int | int64 | decimal.Decimal](value T) Money { return M(value, "USD") }

// ParseMoney parses a decimal string like "175.20" into an amount of 'currency'.
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return M(d, currency), nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the display form of the amount, e.g. "$1,234.56".
func (m Money) String() string {
	if m.cur == "" {
		return m.value.StringFixed(Decimals)
	}
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Abs returns the absolute value of m.
func (m Money) Abs() Money { return Money{value: m.value.Abs(), cur: m.cur} }

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }

// Mul returns m × q rounded to cents.
func (m Money) Mul(q int) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(int64(q))).Round(Decimals), cur: m.cur}
}

// Div returns m / q rounded to cents.
func (m Money) Div(q int) Money {
	return Money{value: m.value.Div(decimal.NewFromInt(int64(q))).Round(Decimals), cur: m.cur}
}

// Scale returns m × (1 + pct) rounded to cents.
func (m Money) Scale(pct float64) Money {
	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(pct))
	return Money{value: m.value.Mul(factor).Round(Decimals), cur: m.cur}
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// MarshalJSON writes the amount as a bare JSON number with two decimals.
// The currency is not part of the persisted form: a portfolio holds a single currency.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.StringFixed(Decimals)), nil
}

// UnmarshalJSON reads a JSON number (or a quoted decimal). The currency is left unset and
// is assigned by the enclosing portfolio.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	m.value = d.Round(Decimals)
	return nil
}

// in returns a copy of m in currency 'c'.
func (m Money) in(c string) Money {
	m.cur = c
	return m
}
