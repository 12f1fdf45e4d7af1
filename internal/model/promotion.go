package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discount types.
const (
	DiscountPercentage   = "percentage"
	DiscountFixed        = "fixed"
	DiscountFreeDelivery = "free_delivery"
)

// Promotion is a discount code with validity, scope, and usage constraints.
// Codes are stored uppercase and looked up case-insensitively.
type Promotion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code        string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"not null"`
	Description string

	DiscountType  string          `gorm:"type:varchar(20);not null"` // percentage | fixed | free_delivery
	DiscountValue decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	// Conditions
	MinimumOrderAmount *decimal.Decimal `gorm:"type:decimal(10,2)"`
	MaximumDiscount    *decimal.Decimal `gorm:"type:decimal(10,2)"`

	// Usage limits — TimesUsed is only ever incremented through the atomic
	// guarded UPDATE in PromotionRepository, never via Save.
	UsageLimit *int
	TimesUsed  int `gorm:"not null;default:0"`

	// Validity
	IsActive   bool      `gorm:"not null;default:true"`
	ValidFrom  time.Time `gorm:"not null"`
	ValidUntil time.Time `gorm:"not null"`

	// Scope. With ApplyToEntireOrder the discount applies to the full subtotal.
	// Otherwise only lines whose product is in ApplicableProducts contribute,
	// and the three flags select which price components count.
	ApplyToEntireOrder   bool      `gorm:"not null;default:true"`
	ApplicableProducts   []Product `gorm:"many2many:promotion_products"`
	ApplyToBasePrice     bool      `gorm:"not null;default:true"`
	ApplyToToppings      bool      `gorm:"not null;default:false"`
	ApplyToIncludedItems bool      `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Promotion) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// AppliesTo reports whether a product is in the promotion's applicable set.
// ApplicableProducts must be preloaded.
func (p *Promotion) AppliesTo(productID uuid.UUID) bool {
	for _, ap := range p.ApplicableProducts {
		if ap.ID == productID {
			return true
		}
	}
	return false
}

// UsageExhausted reports whether the usage limit has been reached.
func (p *Promotion) UsageExhausted() bool {
	return p.UsageLimit != nil && p.TimesUsed >= *p.UsageLimit
}
