package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Topping is an extra add-on with its own price.
type Topping struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"uniqueIndex;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Topping) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ToppingSelection is the fixed-shape snapshot of a topping taken at selection
// time. The price is copied, never re-read from the catalog — order history
// must not change when toppings are re-priced.
type ToppingSelection struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Snapshot builds the immutable selection record for this topping.
func (t *Topping) Snapshot() ToppingSelection {
	return ToppingSelection{ID: t.ID, Name: t.Name, Price: t.Price}
}

// ToppingSelections is stored as a JSON column on order lines.
type ToppingSelections []ToppingSelection

// Total sums the snapshot prices.
func (ts ToppingSelections) Total() decimal.Decimal {
	total := decimal.Zero
	for _, t := range ts {
		total = total.Add(t.Price)
	}
	return total
}
