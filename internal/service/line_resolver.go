package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/model"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/pricing"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/repository"
)

// resolvedLine is one order line after catalog resolution: product, size, and
// topping snapshots taken, unit price locked. Both the order builder and the
// promotion evaluator work from these instead of raw request items.
type resolvedLine struct {
	product      *model.Product
	size         *model.Size
	toppings     model.ToppingSelections
	unitPrice    decimal.Decimal
	quantity     int
	subtotal     decimal.Decimal
	includeCombo bool
}

// resolveLines validates every requested line against the catalog and locks in
// prices at the given instant. Pre-flight, outside any transaction: prices and
// option membership do not need locks, only stock does.
func resolveLines(ctx context.Context, products repository.ProductRepository, items []dto.OrderItemRequest, now time.Time) ([]resolvedLine, decimal.Decimal, error) {
	resolved := make([]resolvedLine, 0, len(items))
	subtotal := decimal.Zero

	for _, item := range items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, decimal.Zero, ErrProductNotFound
		}
		p, err := products.FindByID(ctx, pid)
		if err != nil {
			return nil, decimal.Zero, ErrProductNotFound
		}
		if !p.IsAvailable {
			return nil, decimal.Zero, ErrProductUnavailable
		}

		var size *model.Size
		if item.SizeID != nil && *item.SizeID != "" {
			sid, err := uuid.Parse(*item.SizeID)
			if err != nil {
				return nil, decimal.Zero, ErrSizeNotFound
			}
			if !p.HasSize(sid) {
				return nil, decimal.Zero, ErrSizeNotOffered
			}
			size, err = products.FindSizeByID(ctx, sid)
			if err != nil {
				return nil, decimal.Zero, ErrSizeNotFound
			}
		}

		var toppings model.ToppingSelections
		if len(item.ToppingIDs) > 0 {
			ids := make([]uuid.UUID, 0, len(item.ToppingIDs))
			for _, tid := range item.ToppingIDs {
				id, err := uuid.Parse(tid)
				if err != nil {
					return nil, decimal.Zero, ErrToppingNotFound
				}
				ids = append(ids, id)
			}
			found, err := products.FindToppingsByIDs(ctx, ids)
			if err != nil || len(found) != len(ids) {
				return nil, decimal.Zero, ErrToppingNotFound
			}
			for _, t := range found {
				toppings = append(toppings, t.Snapshot())
			}
		}

		unitPrice := pricing.UnitPrice(p, size, now)
		lineSubtotal := pricing.LineSubtotal(unitPrice, toppings, item.Quantity)
		subtotal = subtotal.Add(lineSubtotal)

		resolved = append(resolved, resolvedLine{
			product:      p,
			size:         size,
			toppings:     toppings,
			unitPrice:    unitPrice,
			quantity:     item.Quantity,
			subtotal:     lineSubtotal,
			includeCombo: item.IncludeComboItems,
		})
	}

	return resolved, subtotal, nil
}
