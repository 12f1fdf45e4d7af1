package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// OrderItemRequest is one line of a checkout or POS order. The engine
// re-resolves all prices server-side — client-supplied amounts are ignored.
type OrderItemRequest struct {
	ProductID         string   `json:"product_id"          validate:"required,uuid"`
	Quantity          int      `json:"quantity"            validate:"required,min=1"`
	SizeID            *string  `json:"size_id"             validate:"omitempty,uuid"`
	ToppingIDs        []string `json:"topping_ids"         validate:"omitempty,dive,uuid"`
	IncludeComboItems bool     `json:"include_combo_items"`
}

type CreateOrderRequest struct {
	CustomerName  string `json:"customer_name"  validate:"required,max=255"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone string `json:"customer_phone" validate:"required,max=20"`

	OrderType            string `json:"order_type" validate:"required,oneof=delivery pickup"`
	DeliveryAddress      string `json:"delivery_address"`
	DeliveryInstructions string `json:"delivery_instructions"`
	OrderNotes           string `json:"order_notes"`

	// DeliveryFee nil falls back to the store default for delivery orders;
	// pickup orders always carry a zero fee.
	DeliveryFee   *decimal.Decimal `json:"delivery_fee"`
	PromotionCode *string          `json:"promotion_code"`

	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed preparing ready delivered picked_up cancelled"`
}

// OrderFilter is bound from the query string of GET /v1/orders.
type OrderFilter struct {
	Status    string `form:"status"`
	OrderType string `form:"order_type"`
	DateFrom  string `form:"date_from"` // YYYY-MM-DD
	DateTo    string `form:"date_to"`   // YYYY-MM-DD
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ToppingSelectionResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type OrderItemResponse struct {
	ProductName      string                     `json:"product_name"`
	ProductID        string                     `json:"product_id"`
	IsCombo          bool                       `json:"is_combo"`
	IncludedItems    []string                   `json:"included_items"`
	SizeName         *string                    `json:"size_name"`
	SelectedToppings []ToppingSelectionResponse `json:"selected_toppings"`
	UnitPrice        decimal.Decimal            `json:"unit_price"`
	Quantity         int                        `json:"quantity"`
	Subtotal         decimal.Decimal            `json:"subtotal"`
}

type OrderResponse struct {
	ID             string              `json:"id"`
	OrderNumber    string              `json:"order_number"`
	CustomerName   string              `json:"customer_name"`
	CustomerEmail  string              `json:"customer_email"`
	CustomerPhone  string              `json:"customer_phone"`
	OrderType      string              `json:"order_type"`
	Status         string              `json:"status"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DeliveryFee    decimal.Decimal     `json:"delivery_fee"`
	DiscountCode   *string             `json:"discount_code"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	Total          decimal.Decimal     `json:"total"`
	CreatedAt      string              `json:"created_at"`
	CompletedAt    *string             `json:"completed_at"`
}

// CreateOrderResponse is the engine's principal result envelope.
type CreateOrderResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Order   *OrderResponse `json:"order,omitempty"`
}

type UpdateOrderStatusResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Order   *OrderResponse `json:"order,omitempty"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type OrderStatsResponse struct {
	TotalOrders     int64           `json:"total_orders"`
	PendingOrders   int64           `json:"pending_orders"`
	PreparingOrders int64           `json:"preparing_orders"`
	ReadyOrders     int64           `json:"ready_orders"`
	CompletedOrders int64           `json:"completed_orders"`
	CancelledOrders int64           `json:"cancelled_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TodayOrders     int64           `json:"today_orders"`
	TodayRevenue    decimal.Decimal `json:"today_revenue"`
}
