package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/config"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/model"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/repository"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/worker"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string) (*dto.UpdateOrderStatusResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	GetByNumber(ctx context.Context, number string) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	Stats(ctx context.Context) (*dto.OrderStatsResponse, error)
}

type orderService struct {
	repo       repository.OrderRepository
	promoRepo  repository.PromotionRepository
	products   repository.ProductRepository
	inventory  InventoryService
	store      config.StoreConfig
	dispatcher *worker.Dispatcher
}

func NewOrderService(
	repo repository.OrderRepository,
	promoRepo repository.PromotionRepository,
	products repository.ProductRepository,
	inventory InventoryService,
	store config.StoreConfig,
	dispatcher *worker.Dispatcher,
) OrderService {
	return &orderService{
		repo:       repo,
		promoRepo:  promoRepo,
		products:   products,
		inventory:  inventory,
		store:      store,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// CreateOrder turns a web checkout or POS item list into a durable,
// price-locked order:
//  1. Validate order type inputs.
//  2. Resolve every line against the catalog and lock in prices (pre-flight,
//     outside the transaction).
//  3. Evaluate the promotion code if present; any failure aborts with its
//     specific message, never a partial order.
//  4. BEGIN TX: insert order + item snapshots, deduct stock under row locks,
//     consume promotion usage via the guarded increment.
//  5. COMMIT, then enqueue the confirmation email (best-effort).
//
// A stock or usage-limit failure inside the transaction rolls everything back.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if req.OrderType == model.OrderTypeDelivery && req.DeliveryAddress == "" {
		return nil, ErrDeliveryAddressMissing
	}

	now := time.Now()

	deliveryFee := decimal.Zero
	if req.OrderType == model.OrderTypeDelivery {
		if req.DeliveryFee != nil {
			deliveryFee = *req.DeliveryFee
		} else {
			deliveryFee = s.store.DeliveryFee()
		}
	}

	lines, subtotal, err := resolveLines(ctx, s.products, req.Items, now)
	if err != nil {
		return nil, err
	}

	discount := decimal.Zero
	var promo *model.Promotion
	var discountCode *string
	if req.PromotionCode != nil && *req.PromotionCode != "" {
		promo, err = s.promoRepo.FindByCode(ctx, *req.PromotionCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPromotionNotFound
			}
			return nil, err
		}
		discount, err = evaluatePromotion(promo, subtotal, deliveryFee, lines, now)
		if err != nil {
			return nil, err
		}
		discountCode = &promo.Code
	}

	total := subtotal.Add(deliveryFee).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	var order model.Order
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		number, err := s.uniqueOrderNumber(tx, now)
		if err != nil {
			return err
		}

		order = model.Order{
			OrderNumber:          number,
			CustomerName:         req.CustomerName,
			CustomerEmail:        req.CustomerEmail,
			CustomerPhone:        req.CustomerPhone,
			OrderType:            req.OrderType,
			Status:               model.StatusConfirmed,
			OrderNotes:           req.OrderNotes,
			DeliveryAddress:      req.DeliveryAddress,
			DeliveryInstructions: req.DeliveryInstructions,
			Subtotal:             subtotal,
			DeliveryFee:          deliveryFee,
			DiscountAmount:       discount,
			DiscountCode:         discountCode,
			Total:                total,
		}

		for _, line := range lines {
			item := model.OrderItem{
				ProductName:      line.product.Name,
				ProductID:        line.product.ID,
				IsCombo:          line.product.IsCombo,
				SelectedToppings: line.toppings,
				UnitPrice:        line.unitPrice,
				Quantity:         line.quantity,
				Subtotal:         line.subtotal,
			}
			if line.product.IsCombo && line.includeCombo {
				item.IncludedItems = line.product.IncludedItems
			}
			if line.size != nil {
				name := line.size.Name
				id := line.size.ID
				item.SizeName = &name
				item.SizeID = &id
			}
			order.Items = append(order.Items, item)
		}

		if err := s.repo.CreateTx(ctx, tx, &order); err != nil {
			return err
		}

		for _, line := range lines {
			if !line.product.TrackInventory {
				continue
			}
			if err := s.inventory.SellStockTx(tx, line.product.ID, line.quantity, order.OrderNumber); err != nil {
				return fmt.Errorf("stock deduction for %s: %w", line.product.Name, err)
			}
		}

		if promo != nil {
			rows, err := s.promoRepo.ConsumeUsageTx(tx, promo.ID)
			if err != nil {
				return err
			}
			if rows == 0 {
				// Lost the race to the last redemption.
				return ErrPromotionUsageExhausted
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil && order.CustomerEmail != "" {
		_ = s.dispatcher.EnqueueOrderConfirmation(ctx, map[string]interface{}{
			"order_id":     order.ID.String(),
			"order_number": order.OrderNumber,
			"email":        order.CustomerEmail,
		})
	}

	return &dto.CreateOrderResponse{
		Success: true,
		Message: fmt.Sprintf("Order %s created", order.OrderNumber),
		Order:   orderToResponse(&order),
	}, nil
}

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newOrderNumber builds ORD-YYYYMMDD-XXXX with a random uppercase
// alphanumeric suffix.
func newOrderNumber(now time.Time) (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	suffix := make([]byte, 4)
	for i, b := range buf {
		suffix[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix), nil
}

// uniqueOrderNumber regenerates on collision. 36^4 numbers per day makes more
// than a handful of retries practically unreachable.
func (s *orderService) uniqueOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		number, err := newOrderNumber(now)
		if err != nil {
			return "", err
		}
		if tx == nil {
			return number, nil
		}
		exists, err := s.repo.NumberExistsTx(tx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", errors.New("could not generate a unique order number")
}

// UpdateStatus moves an order along
// pending → confirmed → preparing → ready → {delivered | picked_up}, with
// cancelled reachable from any non-terminal state. Terminal orders are
// immutable.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string) (*dto.UpdateOrderStatusResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	if !model.ValidStatusTransition(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidStatusChange, order.Status, newStatus)
	}

	order.Status = newStatus
	if model.IsTerminalStatus(newStatus) {
		now := time.Now()
		order.CompletedAt = &now
	}
	if err := s.repo.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}

	return &dto.UpdateOrderStatusResponse{
		Success: true,
		Message: fmt.Sprintf("Order %s is now %s", order.OrderNumber, newStatus),
		Order:   orderToResponse(order),
	}, nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return orderToResponse(order), nil
}

func (s *orderService) GetByNumber(ctx context.Context, number string) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return orderToResponse(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *orderService) Stats(ctx context.Context) (*dto.OrderStatsResponse, error) {
	return s.repo.Stats(ctx, time.Now())
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		toppings := make([]dto.ToppingSelectionResponse, 0, len(item.SelectedToppings))
		for _, t := range item.SelectedToppings {
			toppings = append(toppings, dto.ToppingSelectionResponse{
				ID:    t.ID.String(),
				Name:  t.Name,
				Price: t.Price,
			})
		}
		items = append(items, dto.OrderItemResponse{
			ProductName:      item.ProductName,
			ProductID:        item.ProductID.String(),
			IsCombo:          item.IsCombo,
			IncludedItems:    item.IncludedItems,
			SizeName:         item.SizeName,
			SelectedToppings: toppings,
			UnitPrice:        item.UnitPrice,
			Quantity:         item.Quantity,
			Subtotal:         item.Subtotal,
		})
	}

	var completedAt *string
	if o.CompletedAt != nil {
		s := o.CompletedAt.Format(time.RFC3339)
		completedAt = &s
	}

	return &dto.OrderResponse{
		ID:             o.ID.String(),
		OrderNumber:    o.OrderNumber,
		CustomerName:   o.CustomerName,
		CustomerEmail:  o.CustomerEmail,
		CustomerPhone:  o.CustomerPhone,
		OrderType:      o.OrderType,
		Status:         o.Status,
		Items:          items,
		Subtotal:       o.Subtotal,
		DeliveryFee:    o.DeliveryFee,
		DiscountCode:   o.DiscountCode,
		DiscountAmount: o.DiscountAmount,
		Total:          o.Total,
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
		CompletedAt:    completedAt,
	}
}
