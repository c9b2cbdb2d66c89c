package domain

import (
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

var (
	ratZero    = new(big.Rat)
	ratHundred = big.NewRat(100, 1)
)

// Percent is a discount percentage in [0, 100] kept as an exact rational.
type Percent struct {
	rat *big.Rat
}

// NewPercentFromRat validates the range and returns a Percent.
func NewPercentFromRat(rat *big.Rat) (*Percent, error) {
	if rat == nil {
		return ZeroPercent(), nil
	}
	if rat.Cmp(ratZero) < 0 || rat.Cmp(ratHundred) > 0 {
		return nil, ErrInvalidDiscountPercent
	}
	return &Percent{rat: new(big.Rat).Set(rat)}, nil
}

// NewPercent builds a Percent from the shortest decimal form of f (7.17 is 717/100).
func NewPercent(f float64) (*Percent, error) {
	return ParsePercent(strconv.FormatFloat(f, 'f', -1, 64))
}

// MaxPercentPlaces is the finest discount precision accepted from input.
const MaxPercentPlaces = 6

// ParsePercent parses a decimal string such as "12.5" with at most
// MaxPercentPlaces decimal places.
func ParsePercent(s string) (*Percent, error) {
	d, err := parseDecimal(s)
	if err != nil || !d.Equal(d.Truncate(MaxPercentPlaces)) {
		return nil, ErrInvalidDiscountPercent
	}
	return NewPercentFromRat(d.Rat())
}

// MustPercent is NewPercent for literals known to be in range.
func MustPercent(f float64) *Percent {
	p, err := NewPercent(f)
	if err != nil {
		panic(err)
	}
	return p
}

// ZeroPercent returns 0%.
func ZeroPercent() *Percent {
	return &Percent{rat: new(big.Rat)}
}

// Rat returns a copy of the underlying rational value.
func (p *Percent) Rat() *big.Rat {
	return new(big.Rat).Set(p.rat)
}

// IsZero reports a 0% discount.
func (p *Percent) IsZero() bool {
	return p.rat.Sign() == 0
}

// IsFull reports a 100% discount.
func (p *Percent) IsFull() bool {
	return p.rat.Cmp(ratHundred) == 0
}

// RemainingFraction returns 1 - p/100.
func (p *Percent) RemainingFraction() *big.Rat {
	fraction := new(big.Rat).Quo(p.rat, ratHundred)
	return fraction.Sub(big.NewRat(1, 1), fraction)
}

// Equals compares two percentages exactly.
func (p *Percent) Equals(other *Percent) bool {
	return p.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation.
func (p *Percent) Float64() float64 {
	f, _ := p.rat.Float64()
	return f
}

// Decimal returns the exact value for percentages with at most
// MaxPercentPlaces decimal places.
func (p *Percent) Decimal() decimal.Decimal {
	return decimal.RequireFromString(p.rat.FloatString(MaxPercentPlaces))
}

// String returns the percentage with two decimal places.
func (p *Percent) String() string {
	return p.rat.FloatString(2)
}

// Copy creates a deep copy.
func (p *Percent) Copy() *Percent {
	return &Percent{rat: new(big.Rat).Set(p.rat)}
}
