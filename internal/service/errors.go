package service

import "errors"

// Sentinel errors surfaced to handlers. Handlers map these to HTTP statuses;
// anything else is a 500.
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrSizeNotFound       = errors.New("size not found")
	ErrSizeNotOffered     = errors.New("size is not offered for this product")
	ErrToppingNotFound    = errors.New("topping not found")

	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStockItemNotFound = errors.New("no stock record for product")
	ErrZeroAdjustment    = errors.New("adjustment quantity cannot be zero")

	ErrPromotionNotFound       = errors.New("invalid promotion code")
	ErrPromotionInactive       = errors.New("this promotion is not active")
	ErrPromotionExpired        = errors.New("this promotion has expired or is not yet valid")
	ErrPromotionUsageExhausted = errors.New("this promotion has reached its usage limit")
	ErrPromotionMinimumNotMet  = errors.New("order does not meet the minimum amount for this promotion")

	ErrEmptyOrder             = errors.New("order must contain at least one item")
	ErrDeliveryAddressMissing = errors.New("delivery address is required for delivery orders")
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvalidStatusChange    = errors.New("invalid status transition")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("account is deactivated")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrAlertNotFound      = errors.New("alert not found")
)
