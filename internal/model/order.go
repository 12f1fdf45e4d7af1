package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. Orders created by the engine start in StatusConfirmed —
// both web checkout and POS skip pending.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusPickedUp  = "picked_up"
	StatusCancelled = "cancelled"
)

// Order types.
const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

// statusTransitions encodes pending → confirmed → preparing → ready →
// {delivered | picked_up}, with cancelled reachable from any non-terminal state.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered, StatusPickedUp, StatusCancelled},
}

// ValidStatusTransition reports whether from → to is a legal move.
// Terminal states (delivered, picked_up, cancelled) have no outgoing edges.
func ValidStatusTransition(from, to string) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether a status admits no further transitions.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusDelivered, StatusPickedUp, StatusCancelled:
		return true
	}
	return false
}

// Order is a committed, price-locked purchase record. Orders are never
// deleted — they are the store's sales history.
type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"uniqueIndex;not null"` // ORD-YYYYMMDD-XXXX

	// Customer info (guest checkout — no account required)
	CustomerName  string `gorm:"not null"`
	CustomerEmail string
	CustomerPhone string `gorm:"not null"`

	OrderType  string `gorm:"type:varchar(10);not null"` // delivery | pickup
	Status     string `gorm:"type:varchar(20);not null;default:'confirmed';index"`
	OrderNotes string

	DeliveryAddress      string
	DeliveryInstructions string

	// Pricing — Total = Subtotal + DeliveryFee − DiscountAmount, never negative.
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DeliveryFee    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DiscountCode   *string
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`

	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is an immutable snapshot of a line at order time. Product, size,
// and topping data are copied by value so the line survives later catalog
// edits and deletions unchanged.
type OrderItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`

	ProductName string    `gorm:"not null"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"` // reference only, no FK

	IsCombo       bool       `gorm:"not null;default:false"`
	IncludedItems StringList `gorm:"type:jsonb;serializer:json"`

	SizeName *string
	SizeID   *uuid.UUID `gorm:"type:uuid"`

	SelectedToppings ToppingSelections `gorm:"type:jsonb;serializer:json"`

	// Subtotal = (UnitPrice + Σ topping prices) × Quantity.
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	CreatedAt time.Time
}

func (i *OrderItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
