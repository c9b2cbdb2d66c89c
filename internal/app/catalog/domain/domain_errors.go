package domain

import "errors"

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyTitle      = errors.New("product title cannot be empty")
	ErrInvalidPrice    = errors.New("product price cannot be negative")
	ErrInvalidRating   = errors.New("product rating must be between 0 and 5")
	ErrInvalidStock    = errors.New("product stock cannot be negative")

	// Discount errors
	ErrInvalidDiscount        = errors.New("original price is undefined for a 100% discount")
	ErrInvalidDiscountPercent = errors.New("discount percentage must be between 0 and 100")

	// Paging errors
	ErrInvalidPage = errors.New("page index must be at least 1 and page size positive")

	// Remote catalog errors
	ErrRemoteUnavailable = errors.New("remote catalog unavailable")
)
