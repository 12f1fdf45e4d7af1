package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movement types.
const (
	MovementSale       = "sale"
	MovementAdjustment = "adjustment"
	MovementReceipt    = "receipt"
	MovementReturn     = "return"
	MovementDamaged    = "damaged"
)

// Alert statuses.
const (
	AlertActive       = "active"
	AlertAcknowledged = "acknowledged"
	AlertResolved     = "resolved"
)

// StockItem tracks the current inventory level for one product. Quantity is
// never negative: movements that would take it below zero are rejected.
type StockItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Quantity        int       `gorm:"not null;default:0"`
	ReorderLevel    int       `gorm:"not null;default:10"`
	ReorderQuantity int       `gorm:"not null;default:50"`
	LastRestocked   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (s *StockItem) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsLowStock reports whether the quantity has fallen to the reorder level.
func (s *StockItem) IsLowStock() bool { return s.Quantity <= s.ReorderLevel }

// IsOutOfStock reports whether the product is sold out.
func (s *StockItem) IsOutOfStock() bool { return s.Quantity == 0 }

// StockMovement is an immutable row in the inventory ledger. Movements are
// NEVER modified or deleted; QuantityAfter = QuantityBefore + QuantityChange
// always holds, and summing changes from zero reconstructs the current level.
type StockMovement struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	StockItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	MovementType   string    `gorm:"type:varchar(20);not null"` // sale | adjustment | receipt | return | damaged
	QuantityChange int       `gorm:"not null"`                  // positive = in, negative = out
	QuantityBefore int       `gorm:"not null"`
	QuantityAfter  int       `gorm:"not null"`
	Reference      string    // e.g. order number
	Notes          string
	CreatedBy      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time  `gorm:"index"`
}

func (m *StockMovement) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// StockAlert flags low or exhausted stock for staff attention.
type StockAlert struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	StockItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status         string    `gorm:"type:varchar(20);not null;default:'active'"`
	Message        string    `gorm:"not null"`
	CreatedAt      time.Time
	AcknowledgedAt *time.Time
	ResolvedAt     *time.Time

	StockItem *StockItem `gorm:"foreignKey:StockItemID"`
}

func (a *StockAlert) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
