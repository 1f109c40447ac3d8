package domain

import "errors"

// Sentinel errors for domain-level failures. The handler layer maps
// these to HTTP status codes; repositories wrap backend failures with
// fmt.Errorf and anything unclassified surfaces as a store error (500).
var (
	ErrNotAuthenticated = errors.New("user not authenticated")

	ErrNonPositiveQuantity = errors.New("order quantity must be positive")
	ErrInvalidOrderSide    = errors.New("order side must be BUY or SELL")
	ErrInsufficientBalance = errors.New("insufficient virtual cash balance")
	ErrInsufficientShares  = errors.New("insufficient shares to sell")

	ErrAccountNotFound = errors.New("virtual account not found")
	ErrStockNotFound   = errors.New("stock not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrEmailTaken     = errors.New("email is already registered")
	ErrAlreadyWatched = errors.New("stock is already in watchlist")
)

// IsValidationError reports whether err is a pre-write validation
// failure. Validation always aborts before anything is persisted.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNonPositiveQuantity) ||
		errors.Is(err, ErrInvalidOrderSide) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrInsufficientShares) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrAlreadyWatched)
}

// IsAuthError reports whether err means no authenticated user.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}

// IsNotFound reports whether err refers to a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrStockNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
