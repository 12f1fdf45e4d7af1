package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable menu item. Combos (IsCombo=true) carry a list of
// included item names that gets snapshotted onto order lines.
type Product struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"index;not null"`
	Slug             string    `gorm:"uniqueIndex"`
	Description      string
	ShortDescription string
	CategoryID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	BasePrice        decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	// Sale pricing — SalePrice applies while now is inside [SaleStart, SaleEnd].
	// Nil bounds are open-ended.
	SalePrice *decimal.Decimal `gorm:"type:decimal(10,2)"`
	SaleStart *time.Time
	SaleEnd   *time.Time

	IsAvailable bool `gorm:"not null;default:true"`
	IsCombo     bool `gorm:"not null;default:false"`
	// IncludedItems are the names of items bundled with a combo (chips, salad…).
	IncludedItems StringList `gorm:"type:jsonb;serializer:json"`

	// Inventory
	Barcode        *string `gorm:"uniqueIndex"`
	SKU            *string `gorm:"uniqueIndex;column:sku"`
	TrackInventory bool    `gorm:"not null;default:false"`
	ReorderLevel   int     `gorm:"not null;default:10"`

	AvailableSizes    []Size    `gorm:"many2many:product_sizes"`
	AvailableToppings []Topping `gorm:"many2many:product_toppings"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsOnSale reports whether the sale price applies at the given instant.
// Boundary instants are inclusive, matching how sales are scheduled by staff.
func (p *Product) IsOnSale(now time.Time) bool {
	if p.SalePrice == nil {
		return false
	}
	if p.SaleStart != nil && now.Before(*p.SaleStart) {
		return false
	}
	if p.SaleEnd != nil && now.After(*p.SaleEnd) {
		return false
	}
	return true
}

// CurrentBasePrice returns the chargeable base price at the given instant:
// the sale price while the sale window is open, the base price otherwise.
func (p *Product) CurrentBasePrice(now time.Time) decimal.Decimal {
	if p.IsOnSale(now) {
		return *p.SalePrice
	}
	return p.BasePrice
}

// HasSize reports whether the size is offered for this product.
// AvailableSizes must be preloaded by the caller.
func (p *Product) HasSize(sizeID uuid.UUID) bool {
	for _, s := range p.AvailableSizes {
		if s.ID == sizeID {
			return true
		}
	}
	return false
}

// StringList is a JSON-encoded list of names (combo included items).
type StringList []string
