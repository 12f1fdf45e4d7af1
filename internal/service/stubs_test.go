package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/model"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/repository"
)

// ── In-memory stubs ──────────────────────────────────────────────────────────
//
// All stubs return a nil *gorm.DB so services run their transactional closures
// directly via runTx's nil-db path.

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	sizes    map[uuid.UUID]*model.Size
	toppings map[uuid.UUID]*model.Topping
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products: make(map[uuid.UUID]*model.Product),
		sizes:    make(map[uuid.UUID]*model.Size),
		toppings: make(map[uuid.UUID]*model.Topping),
	}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode && p.IsAvailable {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SetAvailability(_ context.Context, id uuid.UUID, available bool) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.IsAvailable = available
	return nil
}

func (r *stubProductRepo) FindSizeByID(_ context.Context, id uuid.UUID) (*model.Size, error) {
	s, ok := r.sizes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubProductRepo) FindToppingsByIDs(_ context.Context, ids []uuid.UUID) ([]model.Topping, error) {
	var out []model.Topping
	for _, id := range ids {
		if t, ok := r.toppings[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// seedProduct registers an always-available product with the given base price.
func seedProduct(r *stubProductRepo, name, price string) *model.Product {
	p := &model.Product{
		ID:          uuid.New(),
		Name:        name,
		BasePrice:   decimal.RequireFromString(price),
		IsAvailable: true,
	}
	r.products[p.ID] = p
	return p
}

func seedTopping(r *stubProductRepo, name, price string) *model.Topping {
	t := &model.Topping{ID: uuid.New(), Name: name, Price: decimal.RequireFromString(price)}
	r.toppings[t.ID] = t
	return t
}

func seedSize(r *stubProductRepo, p *model.Product, name, modifier string) *model.Size {
	s := &model.Size{ID: uuid.New(), Name: name, PriceModifier: decimal.RequireFromString(modifier)}
	r.sizes[s.ID] = s
	p.AvailableSizes = append(p.AvailableSizes, *s)
	return s
}

type stubPromotionRepo struct {
	promos map[uuid.UUID]*model.Promotion
	// consumeCalls counts guarded increments for assertion.
	consumeCalls int
	// consumeFails forces the guarded increment to report zero rows,
	// simulating a lost race for the last redemption.
	consumeFails bool
}

func newStubPromotionRepo() *stubPromotionRepo {
	return &stubPromotionRepo{promos: make(map[uuid.UUID]*model.Promotion)}
}

func (r *stubPromotionRepo) Create(_ context.Context, p *model.Promotion) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.promos[p.ID] = p
	return nil
}

func (r *stubPromotionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Promotion, error) {
	p, ok := r.promos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPromotionRepo) FindByCode(_ context.Context, code string) (*model.Promotion, error) {
	for _, p := range r.promos {
		if strings.EqualFold(p.Code, code) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPromotionRepo) List(_ context.Context) ([]model.Promotion, error) {
	out := make([]model.Promotion, 0, len(r.promos))
	for _, p := range r.promos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPromotionRepo) Update(_ context.Context, p *model.Promotion) error {
	r.promos[p.ID] = p
	return nil
}

func (r *stubPromotionRepo) ConsumeUsageTx(_ *gorm.DB, id uuid.UUID) (int64, error) {
	r.consumeCalls++
	if r.consumeFails {
		return 0, nil
	}
	p, ok := r.promos[id]
	if !ok {
		return 0, nil
	}
	if p.UsageLimit != nil && p.TimesUsed >= *p.UsageLimit {
		return 0, nil
	}
	p.TimesUsed++
	return 1, nil
}

func (r *stubPromotionRepo) DB() *gorm.DB { return nil }

var _ repository.PromotionRepository = (*stubPromotionRepo)(nil)

type stubOrderRepo struct {
	orders   map[uuid.UUID]*model.Order
	byNumber map[string]*model.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders:   make(map[uuid.UUID]*model.Order),
		byNumber: make(map[string]*model.Order),
	}
}

func (r *stubOrderRepo) CreateTx(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.CreatedAt = time.Now()
	r.orders[o.ID] = o
	r.byNumber[o.OrderNumber] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) FindByNumber(_ context.Context, number string) (*model.Order, error) {
	o, ok := r.byNumber[number]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) NumberExistsTx(_ *gorm.DB, number string) (bool, error) {
	_, ok := r.byNumber[number]
	return ok, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, o *model.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) List(_ context.Context, _ dto.OrderFilter) ([]model.Order, int64, error) {
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) Stats(_ context.Context, _ time.Time) (*dto.OrderStatsResponse, error) {
	return &dto.OrderStatsResponse{TotalOrders: int64(len(r.orders))}, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

type stubStockRepo struct {
	items     map[uuid.UUID]*model.StockItem // by product ID
	movements []model.StockMovement
	alerts    map[uuid.UUID]*model.StockAlert
}

func newStubStockRepo() *stubStockRepo {
	return &stubStockRepo{
		items:  make(map[uuid.UUID]*model.StockItem),
		alerts: make(map[uuid.UUID]*model.StockAlert),
	}
}

func (r *stubStockRepo) CreateItem(_ context.Context, item *model.StockItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ProductID] = item
	return nil
}

func (r *stubStockRepo) FindItemByProduct(_ context.Context, productID uuid.UUID) (*model.StockItem, error) {
	item, ok := r.items[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *stubStockRepo) FindItemForUpdateTx(_ *gorm.DB, productID uuid.UUID) (*model.StockItem, error) {
	item, ok := r.items[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (r *stubStockRepo) UpdateItemTx(_ *gorm.DB, item *model.StockItem) error {
	r.items[item.ProductID] = item
	return nil
}

func (r *stubStockRepo) AppendMovementTx(_ *gorm.DB, mov *model.StockMovement) error {
	if mov.ID == uuid.Nil {
		mov.ID = uuid.New()
	}
	mov.CreatedAt = time.Now()
	r.movements = append(r.movements, *mov)
	return nil
}

func (r *stubStockRepo) ListItems(_ context.Context) ([]model.StockItem, error) {
	out := make([]model.StockItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *stubStockRepo) ListLowStock(_ context.Context) ([]model.StockItem, error) {
	var out []model.StockItem
	for _, item := range r.items {
		if item.IsLowStock() {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *stubStockRepo) ListMovements(_ context.Context, _ dto.MovementFilter) ([]model.StockMovement, int64, error) {
	return r.movements, int64(len(r.movements)), nil
}

func (r *stubStockRepo) FindActiveAlertTx(_ *gorm.DB, stockItemID uuid.UUID) (*model.StockAlert, error) {
	for _, a := range r.alerts {
		if a.StockItemID == stockItemID && a.Status == model.AlertActive {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubStockRepo) CreateAlertTx(_ *gorm.DB, alert *model.StockAlert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	alert.CreatedAt = time.Now()
	r.alerts[alert.ID] = alert
	return nil
}

func (r *stubStockRepo) UpdateAlertMessageTx(_ *gorm.DB, alert *model.StockAlert) error {
	r.alerts[alert.ID] = alert
	return nil
}

func (r *stubStockRepo) ResolveActiveAlertsTx(_ *gorm.DB, stockItemID uuid.UUID, at time.Time) error {
	for _, a := range r.alerts {
		if a.StockItemID == stockItemID && a.Status == model.AlertActive {
			a.Status = model.AlertResolved
			resolvedAt := at
			a.ResolvedAt = &resolvedAt
		}
	}
	return nil
}

func (r *stubStockRepo) FindAlertByID(_ context.Context, id uuid.UUID) (*model.StockAlert, error) {
	a, ok := r.alerts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubStockRepo) UpdateAlert(_ context.Context, alert *model.StockAlert) error {
	r.alerts[alert.ID] = alert
	return nil
}

func (r *stubStockRepo) ListAlerts(_ context.Context, status string) ([]model.StockAlert, error) {
	var out []model.StockAlert
	for _, a := range r.alerts {
		if status == "" || status == "all" || a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

// seedStock registers a stock item for the product.
func seedStock(r *stubStockRepo, productID uuid.UUID, quantity, reorderLevel int) *model.StockItem {
	item := &model.StockItem{
		ID:           uuid.New(),
		ProductID:    productID,
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
	}
	r.items[productID] = item
	return item
}

func (r *stubStockRepo) DB() *gorm.DB { return nil }

var _ repository.StockRepository = (*stubStockRepo)(nil)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)
