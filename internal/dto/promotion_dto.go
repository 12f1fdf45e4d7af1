package dto

import "github.com/shopspring/decimal"

// ValidatePromotionRequest previews a discount without consuming usage.
// Items are optional: product-scoped promotions need them to compute the
// discountable base; entire-order and free-delivery codes do not.
type ValidatePromotionRequest struct {
	Code        string             `json:"code"         validate:"required"`
	Subtotal    decimal.Decimal    `json:"subtotal"     validate:"required"`
	DeliveryFee decimal.Decimal    `json:"delivery_fee"`
	Items       []OrderItemRequest `json:"items"        validate:"omitempty,dive"`
}

type ValidatePromotionResponse struct {
	Valid          bool            `json:"valid"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Message        string          `json:"message"`
}

// ─── Admin CRUD ──────────────────────────────────────────────────────────────

type CreatePromotionRequest struct {
	Code          string          `json:"code"           validate:"required,max=50"`
	Name          string          `json:"name"           validate:"required,max=255"`
	Description   string          `json:"description"`
	DiscountType  string          `json:"discount_type"  validate:"required,oneof=percentage fixed free_delivery"`
	DiscountValue decimal.Decimal `json:"discount_value" validate:"required"`

	MinimumOrderAmount *decimal.Decimal `json:"minimum_order_amount"`
	MaximumDiscount    *decimal.Decimal `json:"maximum_discount"`
	UsageLimit         *int             `json:"usage_limit" validate:"omitempty,min=1"`

	IsActive   bool   `json:"is_active"`
	ValidFrom  string `json:"valid_from"  validate:"required"` // RFC 3339
	ValidUntil string `json:"valid_until" validate:"required"` // RFC 3339

	ApplyToEntireOrder   bool     `json:"apply_to_entire_order"`
	ApplicableProductIDs []string `json:"applicable_product_ids" validate:"omitempty,dive,uuid"`
	ApplyToBasePrice     bool     `json:"apply_to_base_price"`
	ApplyToToppings      bool     `json:"apply_to_toppings"`
	ApplyToIncludedItems bool     `json:"apply_to_included_items"`
}

type PromotionResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`

	MinimumOrderAmount *decimal.Decimal `json:"minimum_order_amount"`
	MaximumDiscount    *decimal.Decimal `json:"maximum_discount"`
	UsageLimit         *int             `json:"usage_limit"`
	TimesUsed          int              `json:"times_used"`

	IsActive   bool   `json:"is_active"`
	ValidFrom  string `json:"valid_from"`
	ValidUntil string `json:"valid_until"`

	ApplyToEntireOrder   bool     `json:"apply_to_entire_order"`
	ApplicableProductIDs []string `json:"applicable_product_ids"`
	ApplyToBasePrice     bool     `json:"apply_to_base_price"`
	ApplyToToppings      bool     `json:"apply_to_toppings"`
	ApplyToIncludedItems bool     `json:"apply_to_included_items"`
}
