package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/infra"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedCategory(t *testing.T, db *gorm.DB) *model.Category {
	t.Helper()
	c := &model.Category{Name: "Pizzas", Slug: "pizzas"}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedTestProduct(t *testing.T, db *gorm.DB, name string) *model.Product {
	t.Helper()
	c := seedCategory(t, db)
	p := &model.Product{
		Name:        name,
		Slug:        name,
		CategoryID:  c.ID,
		BasePrice:   dec("18.90"),
		IsAvailable: true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func testPromotion(code string) *model.Promotion {
	return &model.Promotion{
		Code:          code,
		Name:          "Test promotion",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: dec("10"),
		IsActive:      true,
		ValidFrom:     time.Now().Add(-time.Hour),
		ValidUntil:    time.Now().Add(time.Hour),
	}
}

func TestPromotionRepo_CodeStoredUppercase(t *testing.T) {
	db := newTestDB(t)
	repo := NewPromotionRepository(db)
	ctx := context.Background()

	promo := testPromotion("summer25")
	require.NoError(t, repo.Create(ctx, promo))
	assert.Equal(t, "SUMMER25", promo.Code)

	for _, lookup := range []string{"SUMMER25", "summer25", "Summer25"} {
		found, err := repo.FindByCode(ctx, lookup)
		require.NoError(t, err, lookup)
		assert.Equal(t, promo.ID, found.ID)
	}

	_, err := repo.FindByCode(ctx, "NOSUCH")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPromotionRepo_ConsumeUsageGuard(t *testing.T) {
	db := newTestDB(t)
	repo := NewPromotionRepository(db)
	ctx := context.Background()

	limit := 2
	promo := testPromotion("TWOONLY")
	promo.UsageLimit = &limit
	require.NoError(t, repo.Create(ctx, promo))

	for i := 0; i < 2; i++ {
		rows, err := repo.ConsumeUsageTx(db, promo.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	}

	// Third redemption is refused at the database level.
	rows, err := repo.ConsumeUsageTx(db, promo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	found, err := repo.FindByID(ctx, promo.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.TimesUsed)
}

func TestPromotionRepo_ConsumeUnlimited(t *testing.T) {
	db := newTestDB(t)
	repo := NewPromotionRepository(db)
	ctx := context.Background()

	promo := testPromotion("NOLIMIT")
	require.NoError(t, repo.Create(ctx, promo))

	for i := 0; i < 5; i++ {
		rows, err := repo.ConsumeUsageTx(db, promo.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	}
	found, _ := repo.FindByID(ctx, promo.ID)
	assert.Equal(t, 5, found.TimesUsed)
}

func TestPromotionRepo_ApplicableProducts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPromotionRepository(db)
	ctx := context.Background()

	p := seedTestProduct(t, db, "margherita")
	promo := testPromotion("SCOPED")
	promo.ApplyToEntireOrder = false
	promo.ApplicableProducts = []model.Product{*p}
	require.NoError(t, repo.Create(ctx, promo))

	found, err := repo.FindByCode(ctx, "SCOPED")
	require.NoError(t, err)
	require.Len(t, found.ApplicableProducts, 1)
	assert.True(t, found.AppliesTo(p.ID))
	assert.False(t, found.AppliesTo(uuid.New()))
}

func TestOrderRepo_CreateAndLookup(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	p := seedTestProduct(t, db, "pepperoni")
	order := &model.Order{
		OrderNumber:   "ORD-20250615-AB12",
		CustomerName:  "Alex Nguyen",
		CustomerPhone: "0400123456",
		OrderType:     model.OrderTypePickup,
		Status:        model.StatusConfirmed,
		Subtotal:      dec("18.90"),
		Total:         dec("18.90"),
		Items: []model.OrderItem{{
			ProductName: p.Name,
			ProductID:   p.ID,
			UnitPrice:   dec("18.90"),
			Quantity:    1,
			Subtotal:    dec("18.90"),
			SelectedToppings: model.ToppingSelections{
				{ID: uuid.New(), Name: "Extra Cheese", Price: dec("2.50")},
			},
		}},
	}
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.CreateTx(ctx, tx, order)
	}))

	exists, err := repo.NumberExistsTx(db, "ORD-20250615-AB12")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.NumberExistsTx(db, "ORD-20250615-ZZ99")
	require.NoError(t, err)
	assert.False(t, exists)

	found, err := repo.FindByNumber(ctx, "ORD-20250615-AB12")
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	// Topping snapshots survive the JSON round trip.
	require.Len(t, found.Items[0].SelectedToppings, 1)
	assert.Equal(t, "Extra Cheese", found.Items[0].SelectedToppings[0].Name)
	assert.True(t, dec("2.50").Equal(found.Items[0].SelectedToppings[0].Price))
}

func TestOrderRepo_UpdateStatusPersistsCompletedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := &model.Order{
		OrderNumber:   "ORD-20250615-CD34",
		CustomerName:  "Alex Nguyen",
		CustomerPhone: "0400123456",
		OrderType:     model.OrderTypePickup,
		Status:        model.StatusConfirmed,
		Subtotal:      dec("10.00"),
		Total:         dec("10.00"),
	}
	require.NoError(t, repo.CreateTx(ctx, db, order))

	now := time.Now()
	order.Status = model.StatusCancelled
	order.CompletedAt = &now
	require.NoError(t, repo.UpdateStatus(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, found.Status)
	assert.NotNil(t, found.CompletedAt)
}

func TestOrderRepo_ListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	for i, status := range []string{model.StatusConfirmed, model.StatusConfirmed, model.StatusCancelled} {
		o := &model.Order{
			OrderNumber:   "ORD-20250615-LM0" + string(rune('0'+i)),
			CustomerName:  "Alex Nguyen",
			CustomerPhone: "0400123456",
			OrderType:     model.OrderTypePickup,
			Status:        status,
			Subtotal:      dec("10.00"),
			Total:         dec("10.00"),
		}
		require.NoError(t, repo.CreateTx(ctx, db, o))
	}

	confirmed, total, err := repo.List(ctx, dto.OrderFilter{Status: model.StatusConfirmed, Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, confirmed, 2)

	all, total, err := repo.List(ctx, dto.OrderFilter{Status: "all", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)
}

func TestProductRepo_FindByBarcode(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	p := seedTestProduct(t, db, "coke")
	barcode := "9300675024235"
	p.Barcode = &barcode
	require.NoError(t, repo.Update(ctx, p))

	found, err := repo.FindByBarcode(ctx, barcode)
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	// Unavailable products do not scan.
	require.NoError(t, repo.SetAvailability(ctx, p.ID, false))
	_, err = repo.FindByBarcode(ctx, barcode)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStockRepo_MovementsFilterAndCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()

	p := seedTestProduct(t, db, "coke")
	item := &model.StockItem{ProductID: p.ID, Quantity: 10, ReorderLevel: 5}
	require.NoError(t, repo.CreateItem(ctx, item))

	for _, mt := range []string{model.MovementReceipt, model.MovementSale, model.MovementSale} {
		mov := &model.StockMovement{
			StockItemID:    item.ID,
			ProductID:      p.ID,
			MovementType:   mt,
			QuantityChange: 1,
			QuantityBefore: 1,
			QuantityAfter:  2,
		}
		require.NoError(t, repo.AppendMovementTx(db, mov))
	}

	sales, total, err := repo.ListMovements(ctx, dto.MovementFilter{
		ProductID:    p.ID.String(),
		MovementType: model.MovementSale,
		Page:         1,
		Limit:        50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, sales, 2)
}

func TestStockRepo_AlertLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()

	p := seedTestProduct(t, db, "coke")
	item := &model.StockItem{ProductID: p.ID, Quantity: 2, ReorderLevel: 5}
	require.NoError(t, repo.CreateItem(ctx, item))

	alert := &model.StockAlert{StockItemID: item.ID, Status: model.AlertActive, Message: "Low stock"}
	require.NoError(t, repo.CreateAlertTx(db, alert))

	found, err := repo.FindActiveAlertTx(db, item.ID)
	require.NoError(t, err)
	assert.Equal(t, alert.ID, found.ID)

	require.NoError(t, repo.ResolveActiveAlertsTx(db, item.ID, time.Now()))
	_, err = repo.FindActiveAlertTx(db, item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	resolved, err := repo.ListAlerts(ctx, model.AlertResolved)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.NotNil(t, resolved[0].ResolvedAt)
}

func TestUserRepo_UniqueUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &model.User{Username: "marco", PasswordHash: "x", Role: model.RoleStaff, IsActive: true}
	require.NoError(t, repo.Create(ctx, u))

	dup := &model.User{Username: "marco", PasswordHash: "y", Role: model.RoleAdmin, IsActive: true}
	assert.Error(t, repo.Create(ctx, dup))

	found, err := repo.FindByUsername(ctx, "marco")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}
