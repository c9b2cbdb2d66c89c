package domain

// PricePlaces is the number of decimal places prices are rounded to.
const PricePlaces = 2

// PricingCalculator is a domain service for the price / original price / discount relation.
//
// Price is always derived: it is never set directly, only recomputed from the
// original price and the discount whenever either changes.
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// Package-level calculator instance for domain object use
var defaultPricingCalculator = NewPricingCalculator()

// DeriveDiscountedPrice computes the price a customer pays.
// Formula: price = originalPrice * (1 - discount/100), rounded to cents and floored at 0.
// A 100% discount yields exactly 0.
func (pc *PricingCalculator) DeriveDiscountedPrice(originalPrice *Money, discount *Percent) *Money {
	if discount.IsFull() {
		return ZeroMoney()
	}
	price := originalPrice.MultiplyByRat(discount.RemainingFraction()).Round(PricePlaces)
	return price.Floor(ZeroMoney())
}

// DeriveOriginalPrice reverses DeriveDiscountedPrice.
// Formula: originalPrice = price / (1 - discount/100), rounded to cents.
// Returns ErrInvalidDiscount for a 100% discount, where the original price is unknown.
func (pc *PricingCalculator) DeriveOriginalPrice(price *Money, discount *Percent) (*Money, error) {
	if discount.IsFull() {
		return nil, ErrInvalidDiscount
	}
	original, err := price.DivideByRat(discount.RemainingFraction())
	if err != nil {
		return nil, ErrInvalidDiscount
	}
	return original.Round(PricePlaces), nil
}

// RemoteOriginalPrice attaches an original price to a product the remote catalog
// only reports a discounted price for. Outside the open interval (0, 100) the
// price itself is used: no division for undiscounted items, and 100% has no inverse.
func (pc *PricingCalculator) RemoteOriginalPrice(price *Money, discount *Percent) *Money {
	if discount.IsZero() || discount.IsFull() {
		return price.Copy()
	}
	original, err := pc.DeriveOriginalPrice(price, discount)
	if err != nil {
		return price.Copy()
	}
	return original
}
