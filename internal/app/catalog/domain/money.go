package domain

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// maxDecimalLen bounds decimal text accepted for prices and percentages.
const maxDecimalLen = 32

// parseDecimal parses plain decimal notation. Exponents and fractions are
// rejected so a short input cannot expand into a huge rational.
func parseDecimal(s string) (decimal.Decimal, error) {
	if len(s) > maxDecimalLen {
		return decimal.Decimal{}, errors.New("too many digits")
	}
	if strings.ContainsAny(s, "eE") {
		return decimal.Decimal{}, errors.New("exponent notation is not accepted")
	}
	return decimal.NewFromString(s)
}

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// Prices coming from the remote catalog are decimal literals, so they are parsed
// from their decimal text instead of their binary float value.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(7500, 100) represents $75.00
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}

	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// NewMoneyFromRat creates a new Money instance from a big.Rat.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return ZeroMoney()
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// NewMoneyFromFloat creates Money from the shortest decimal representation of f,
// so 19.99 becomes exactly 1999/100. Values MoneyFromFloat rejects become zero.
func NewMoneyFromFloat(f float64) *Money {
	m, err := MoneyFromFloat(f)
	if err != nil {
		return ZeroMoney()
	}
	return m
}

// MoneyFromFloat is NewMoneyFromFloat for untrusted input: NaN, infinities
// and values too long to write as a plain decimal are errors.
func MoneyFromFloat(f float64) (*Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("invalid money value %v", f)
	}
	return ParseMoney(strconv.FormatFloat(f, 'f', -1, 64))
}

// ParseMoney parses a decimal string such as "549.99".
func ParseMoney(s string) (*Money, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid money value %q: %w", s, err)
	}
	return &Money{rat: d.Rat()}, nil
}

// ZeroMoney returns a zero amount.
func ZeroMoney() *Money {
	return &Money{rat: new(big.Rat)}
}

// Rat returns a copy of the underlying rational value.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.rat, other.rat)}
}

// Subtract subtracts another Money value from this one and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{rat: new(big.Rat).Sub(m.rat, other.rat)}
}

// MultiplyByRat multiplies this Money value by a rational number and returns a new Money instance.
func (m *Money) MultiplyByRat(rat *big.Rat) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, rat)}
}

// DivideByRat divides this Money value by a rational number.
func (m *Money) DivideByRat(rat *big.Rat) (*Money, error) {
	if rat.Sign() == 0 {
		return nil, fmt.Errorf("cannot divide by zero")
	}
	return &Money{rat: new(big.Rat).Quo(m.rat, rat)}, nil
}

// Round rounds to the given number of decimal places, halves away from zero.
func (m *Money) Round(places int) *Money {
	rounded, _ := new(big.Rat).SetString(m.rat.FloatString(places))
	return &Money{rat: rounded}
}

// Floor returns the larger of m and min.
func (m *Money) Floor(min *Money) *Money {
	if m.LessThan(min) {
		return min.Copy()
	}
	return m.Copy()
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// LessThan returns true if this Money value is less than another.
func (m *Money) LessThan(other *Money) bool {
	return m.rat.Cmp(other.rat) < 0
}

// GreaterThan returns true if this Money value is greater than another.
func (m *Money) GreaterThan(other *Money) bool {
	return m.rat.Cmp(other.rat) > 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation (for display only, not calculations).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String returns the value with two decimal places.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}
