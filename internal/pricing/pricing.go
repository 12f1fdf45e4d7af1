// Package pricing computes chargeable prices for order lines. All functions
// are pure: they read catalog snapshots and a clock instant, touch no storage,
// and do every money calculation in exact decimal arithmetic.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/model"
)

// UnitPrice resolves the current unit price of a product with an optional
// size: sale-window-aware base price plus the size modifier.
func UnitPrice(p *model.Product, size *model.Size, now time.Time) decimal.Decimal {
	price := p.CurrentBasePrice(now)
	if size != nil {
		price = price.Add(size.PriceModifier)
	}
	return price
}

// LineSubtotal computes (unitPrice + Σ topping prices) × quantity.
func LineSubtotal(unitPrice decimal.Decimal, toppings model.ToppingSelections, quantity int) decimal.Decimal {
	return unitPrice.Add(toppings.Total()).Mul(decimal.NewFromInt(int64(quantity)))
}
