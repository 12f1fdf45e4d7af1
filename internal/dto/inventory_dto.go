package dto

// ReceiveStockRequest records a stock receipt from a supplier.
type ReceiveStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
	Notes     string `json:"notes"`
}

// ReturnStockRequest records a customer return going back on the shelf.
type ReturnStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
	Reference string `json:"reference"`
	Notes     string `json:"notes"`
}

// AdjustStockRequest applies a signed manual correction.
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	// Quantity is the signed delta; zero is meaningless and rejected.
	Quantity int    `json:"quantity" validate:"required"`
	Notes    string `json:"notes"    validate:"required,min=3"`
}

// DamageStockRequest writes off damaged or expired units.
type DamageStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
	Notes     string `json:"notes"`
}

// MovementFilter is bound from the query string of GET /v1/inventory/movements.
type MovementFilter struct {
	ProductID    string `form:"product_id"   validate:"omitempty,uuid"`
	MovementType string `form:"type"         validate:"omitempty,oneof=sale adjustment receipt return damaged"`
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type UpdateAlertRequest struct {
	Status string `json:"status" validate:"required,oneof=acknowledged resolved"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type StockItemResponse struct {
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	ReorderLevel    int     `json:"reorder_level"`
	ReorderQuantity int     `json:"reorder_quantity"`
	IsLowStock      bool    `json:"is_low_stock"`
	IsOutOfStock    bool    `json:"is_out_of_stock"`
	LastRestocked   *string `json:"last_restocked"`
}

type MovementResponse struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	MovementType   string `json:"movement_type"`
	QuantityChange int    `json:"quantity_change"`
	QuantityBefore int    `json:"quantity_before"`
	QuantityAfter  int    `json:"quantity_after"`
	Reference      string `json:"reference"`
	Notes          string `json:"notes"`
	CreatedAt      string `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type AlertResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Status      string `json:"status"`
	Message     string `json:"message"`
	CreatedAt   string `json:"created_at"`
}
