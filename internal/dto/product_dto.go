package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name             string          `json:"name"        validate:"required,max=255"`
	Slug             string          `json:"slug"        validate:"required,max=255"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description"`
	CategoryID       string          `json:"category_id" validate:"required,uuid"`
	BasePrice        decimal.Decimal `json:"base_price"  validate:"required"`

	SalePrice *decimal.Decimal `json:"sale_price"`
	SaleStart *string          `json:"sale_start"` // RFC 3339, open-ended when nil
	SaleEnd   *string          `json:"sale_end"`

	IsAvailable   bool     `json:"is_available"`
	IsCombo       bool     `json:"is_combo"`
	IncludedItems []string `json:"included_items"`

	Barcode        *string `json:"barcode"`
	SKU            *string `json:"sku"`
	TrackInventory bool    `json:"track_inventory"`
	ReorderLevel   int     `json:"reorder_level" validate:"min=0"`

	SizeIDs    []string `json:"size_ids"    validate:"omitempty,dive,uuid"`
	ToppingIDs []string `json:"topping_ids" validate:"omitempty,dive,uuid"`
}

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Name       string `form:"name"`
	CategoryID string `form:"category_id" validate:"omitempty,uuid"`
	Available  string `form:"available"` // "false" = unavailable, "all" = everything, default available only
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description"`
	CategoryID       string          `json:"category_id"`
	BasePrice        decimal.Decimal `json:"base_price"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	OnSale           bool            `json:"on_sale"`
	IsAvailable      bool            `json:"is_available"`
	IsCombo          bool            `json:"is_combo"`
	IncludedItems    []string        `json:"included_items"`
	Barcode          *string         `json:"barcode"`
	SKU              *string         `json:"sku"`
	TrackInventory   bool            `json:"track_inventory"`
	StockQuantity    *int            `json:"stock_quantity"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PriceCheckResponse is served by the public barcode price endpoint.
type PriceCheckResponse struct {
	Name          string          `json:"name"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	OnSale        bool            `json:"on_sale"`
	StockQuantity *int            `json:"stock_quantity"`
	Category      string          `json:"category"`
}
