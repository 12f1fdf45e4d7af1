package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/model"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/repository"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/worker"
)

// InventoryService owns stock levels and the append-only movement ledger.
type InventoryService interface {
	// SellStockTx deducts sold units inside the caller's order transaction.
	// The read takes a row lock so concurrent orders cannot oversell.
	SellStockTx(tx *gorm.DB, productID uuid.UUID, quantity int, orderNumber string) error

	ReceiveStock(ctx context.Context, req dto.ReceiveStockRequest, actorID *uuid.UUID) (*dto.MovementResponse, error)
	ReturnStock(ctx context.Context, req dto.ReturnStockRequest, actorID *uuid.UUID) (*dto.MovementResponse, error)
	AdjustStock(ctx context.Context, req dto.AdjustStockRequest, actorID *uuid.UUID) (*dto.MovementResponse, error)
	RecordDamage(ctx context.Context, req dto.DamageStockRequest, actorID *uuid.UUID) (*dto.MovementResponse, error)

	ListStock(ctx context.Context) ([]dto.StockItemResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
	ListAlerts(ctx context.Context, status string) ([]dto.AlertResponse, error)
	UpdateAlert(ctx context.Context, id uuid.UUID, status string) (*dto.AlertResponse, error)
}

type inventoryService struct {
	repo       repository.StockRepository
	dispatcher *worker.Dispatcher
}

func NewInventoryService(repo repository.StockRepository, dispatcher *worker.Dispatcher) InventoryService {
	return &inventoryService{repo: repo, dispatcher: dispatcher}
}

// applyMovementTx is the single write path for stock. It locks the stock row,
// applies the signed delta, appends the ledger entry, and runs the alert pass.
// Every movement satisfies QuantityAfter = QuantityBefore + QuantityChange;
// a delta that would drive the quantity negative is rejected and nothing is
// written.
func (s *inventoryService) applyMovementTx(tx *gorm.DB, productID uuid.UUID, delta int, movementType, reference, notes string, actorID *uuid.UUID) (*model.StockMovement, error) {
	item, err := s.repo.FindItemForUpdateTx(tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStockItemNotFound
		}
		return nil, err
	}

	before := item.Quantity
	after := before + delta
	if after < 0 {
		return nil, fmt.Errorf("%w: product %s has %d, movement needs %d", ErrInsufficientStock, productID, before, -delta)
	}

	item.Quantity = after
	if movementType == model.MovementReceipt {
		now := time.Now()
		item.LastRestocked = &now
	}
	if err := s.repo.UpdateItemTx(tx, item); err != nil {
		return nil, err
	}

	mov := &model.StockMovement{
		StockItemID:    item.ID,
		ProductID:      productID,
		MovementType:   movementType,
		QuantityChange: delta,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reference:      reference,
		Notes:          notes,
		CreatedBy:      actorID,
	}
	if err := s.repo.AppendMovementTx(tx, mov); err != nil {
		return nil, err
	}

	if err := s.alertPassTx(tx, item); err != nil {
		return nil, err
	}
	return mov, nil
}

// alertPassTx raises an out-of-stock or low-stock alert when the level crosses
// a threshold, and resolves active alerts once stock recovers. At most one
// active alert exists per stock item.
func (s *inventoryService) alertPassTx(tx *gorm.DB, item *model.StockItem) error {
	if item.Quantity > item.ReorderLevel {
		return s.repo.ResolveActiveAlertsTx(tx, item.ID, time.Now())
	}

	msg := fmt.Sprintf("Low stock: %d remaining (reorder level %d)", item.Quantity, item.ReorderLevel)
	if item.Quantity == 0 {
		msg = "Out of stock"
	}

	existing, err := s.repo.FindActiveAlertTx(tx, item.ID)
	if err == nil {
		// Refresh the message in place; do not stack alerts.
		if existing.Message != msg {
			existing.Message = msg
			return s.repo.UpdateAlertMessageTx(tx, existing)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	alert := &model.StockAlert{
		StockItemID: item.ID,
		Status:      model.AlertActive,
		Message:     msg,
	}
	if err := s.repo.CreateAlertTx(tx, alert); err != nil {
		return err
	}

	// Notify staff off the request path.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueLowStockAlert(context.Background(), map[string]interface{}{
			"product_id": item.ProductID.String(),
			"quantity":   item.Quantity,
			"message":    msg,
		})
	}
	return nil
}

func (s *inventoryService) SellStockTx(tx *gorm.DB, productID uuid.UUID, quantity int, orderNumber string) error {
	_, err := s.applyMovementTx(tx, productID, -quantity, model.MovementSale, orderNumber, "", nil)
	return err
}

// standalone runs a single movement in its own transaction.
func (s *inventoryService) standalone(ctx context.Context, productID uuid.UUID, delta int, movementType, reference, notes string, actorID *uuid.UUID) (*dto.MovementResponse, error) {
	var mov *model.StockMovement
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		mov, err = s.applyMovementTx(tx, productID, delta, movementType, reference, notes, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return movementToResponse(mov), nil
}

func (s *inventoryService) ReceiveStock(ctx context.Context, req dto.ReceiveStockRequest, actorID *uuid.UUID) (*dto.MovementResponse, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return s.standalone(ctx, pid, req.Quantity, model.MovementReceipt, "", req.Notes, actorID)
}

func (s *inventoryService) ReturnStock(ctx context.Context, req dto.ReturnStockRequest, actorID *uuid.UUID) (*dto.MovementResponse, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return s.standalone(ctx, pid, req.Quantity, model.MovementReturn, req.Reference, req.Notes, actorID)
}

func (s *inventoryService) AdjustStock(ctx context.Context, req dto.AdjustStockRequest, actorID *uuid.UUID) (*dto.MovementResponse, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if req.Quantity == 0 {
		return nil, ErrZeroAdjustment
	}
	return s.standalone(ctx, pid, req.Quantity, model.MovementAdjustment, "", req.Notes, actorID)
}

func (s *inventoryService) RecordDamage(ctx context.Context, req dto.DamageStockRequest, actorID *uuid.UUID) (*dto.MovementResponse, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return s.standalone(ctx, pid, -req.Quantity, model.MovementDamaged, "", req.Notes, actorID)
}

func (s *inventoryService) ListStock(ctx context.Context) ([]dto.StockItemResponse, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for i := range items {
		out = append(out, stockItemToResponse(&items[i]))
	}
	return out, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movements, total, err := s.repo.ListMovements(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		data = append(data, *movementToResponse(&movements[i]))
	}
	return &dto.MovementListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *inventoryService) ListAlerts(ctx context.Context, status string) ([]dto.AlertResponse, error) {
	alerts, err := s.repo.ListAlerts(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		out = append(out, alertToResponse(&alerts[i]))
	}
	return out, nil
}

func (s *inventoryService) UpdateAlert(ctx context.Context, id uuid.UUID, status string) (*dto.AlertResponse, error) {
	alert, err := s.repo.FindAlertByID(ctx, id)
	if err != nil {
		return nil, ErrAlertNotFound
	}
	now := time.Now()
	switch status {
	case model.AlertAcknowledged:
		alert.Status = model.AlertAcknowledged
		alert.AcknowledgedAt = &now
	case model.AlertResolved:
		alert.Status = model.AlertResolved
		alert.ResolvedAt = &now
	default:
		return nil, errors.New("alert status must be acknowledged or resolved")
	}
	if err := s.repo.UpdateAlert(ctx, alert); err != nil {
		return nil, err
	}
	resp := alertToResponse(alert)
	return &resp, nil
}

func stockItemToResponse(item *model.StockItem) dto.StockItemResponse {
	name := ""
	if item.Product != nil {
		name = item.Product.Name
	}
	var restocked *string
	if item.LastRestocked != nil {
		s := item.LastRestocked.Format(time.RFC3339)
		restocked = &s
	}
	return dto.StockItemResponse{
		ProductID:       item.ProductID.String(),
		ProductName:     name,
		Quantity:        item.Quantity,
		ReorderLevel:    item.ReorderLevel,
		ReorderQuantity: item.ReorderQuantity,
		IsLowStock:      item.IsLowStock(),
		IsOutOfStock:    item.IsOutOfStock(),
		LastRestocked:   restocked,
	}
}

func movementToResponse(m *model.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:             m.ID.String(),
		ProductID:      m.ProductID.String(),
		MovementType:   m.MovementType,
		QuantityChange: m.QuantityChange,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reference:      m.Reference,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
}

func alertToResponse(a *model.StockAlert) dto.AlertResponse {
	productID := ""
	productName := ""
	if a.StockItem != nil {
		productID = a.StockItem.ProductID.String()
		if a.StockItem.Product != nil {
			productName = a.StockItem.Product.Name
		}
	}
	return dto.AlertResponse{
		ID:          a.ID.String(),
		ProductID:   productID,
		ProductName: productName,
		Status:      a.Status,
		Message:     a.Message,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}
