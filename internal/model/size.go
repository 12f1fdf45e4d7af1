package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Size is a category-scoped size option (Small, Large, 1.25L…) whose
// PriceModifier is added to the product's base price. Modifiers can be negative.
type Size struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"not null;uniqueIndex:idx_size_name_category"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_size_name_category"`
	PriceModifier decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DisplayOrder  int             `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s *Size) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
