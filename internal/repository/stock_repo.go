package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/model"
)

// StockRepository owns the inventory ledger tables: StockItem (current level),
// StockMovement (append-only history), and StockAlert.
type StockRepository interface {
	CreateItem(ctx context.Context, item *model.StockItem) error
	FindItemByProduct(ctx context.Context, productID uuid.UUID) (*model.StockItem, error)
	// FindItemForUpdateTx reads the stock row with a row-level lock so that
	// two concurrent orders cannot both pass the availability check.
	FindItemForUpdateTx(tx *gorm.DB, productID uuid.UUID) (*model.StockItem, error)
	UpdateItemTx(tx *gorm.DB, item *model.StockItem) error
	AppendMovementTx(tx *gorm.DB, mov *model.StockMovement) error

	ListItems(ctx context.Context) ([]model.StockItem, error)
	ListLowStock(ctx context.Context) ([]model.StockItem, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error)

	FindActiveAlertTx(tx *gorm.DB, stockItemID uuid.UUID) (*model.StockAlert, error)
	CreateAlertTx(tx *gorm.DB, alert *model.StockAlert) error
	UpdateAlertMessageTx(tx *gorm.DB, alert *model.StockAlert) error
	ResolveActiveAlertsTx(tx *gorm.DB, stockItemID uuid.UUID, at time.Time) error
	FindAlertByID(ctx context.Context, id uuid.UUID) (*model.StockAlert, error)
	UpdateAlert(ctx context.Context, alert *model.StockAlert) error
	ListAlerts(ctx context.Context, status string) ([]model.StockAlert, error)

	DB() *gorm.DB
}

type stockRepo struct{ db *gorm.DB }

func NewStockRepository(db *gorm.DB) StockRepository { return &stockRepo{db: db} }

func (r *stockRepo) DB() *gorm.DB { return r.db }

func (r *stockRepo) CreateItem(ctx context.Context, item *model.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *stockRepo) FindItemByProduct(ctx context.Context, productID uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&item).Error
	return &item, err
}

func (r *stockRepo) FindItemForUpdateTx(tx *gorm.DB, productID uuid.UUID) (*model.StockItem, error) {
	var item model.StockItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).
		First(&item).Error
	return &item, err
}

func (r *stockRepo) UpdateItemTx(tx *gorm.DB, item *model.StockItem) error {
	return tx.Model(item).
		Select("quantity", "last_restocked", "updated_at").
		Updates(map[string]interface{}{
			"quantity":       item.Quantity,
			"last_restocked": item.LastRestocked,
			"updated_at":     time.Now(),
		}).Error
}

func (r *stockRepo) AppendMovementTx(tx *gorm.DB, mov *model.StockMovement) error {
	return tx.Create(mov).Error
}

func (r *stockRepo) ListItems(ctx context.Context) ([]model.StockItem, error) {
	var items []model.StockItem
	err := r.db.WithContext(ctx).Preload("Product").Find(&items).Error
	return items, err
}

func (r *stockRepo) ListLowStock(ctx context.Context) ([]model.StockItem, error) {
	var items []model.StockItem
	err := r.db.WithContext(ctx).Preload("Product").
		Where("quantity <= reorder_level").
		Find(&items).Error
	return items, err
}

func (r *stockRepo) ListMovements(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	var movements []model.StockMovement
	var total int64

	q := r.db.WithContext(ctx).Model(&model.StockMovement{})
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.MovementType != "" {
		q = q.Where("movement_type = ?", filter.MovementType)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&movements).Error
	return movements, total, err
}

func (r *stockRepo) FindActiveAlertTx(tx *gorm.DB, stockItemID uuid.UUID) (*model.StockAlert, error) {
	var alert model.StockAlert
	err := tx.Where("stock_item_id = ? AND status = ?", stockItemID, model.AlertActive).
		First(&alert).Error
	return &alert, err
}

func (r *stockRepo) CreateAlertTx(tx *gorm.DB, alert *model.StockAlert) error {
	return tx.Create(alert).Error
}

func (r *stockRepo) UpdateAlertMessageTx(tx *gorm.DB, alert *model.StockAlert) error {
	return tx.Model(alert).Update("message", alert.Message).Error
}

func (r *stockRepo) ResolveActiveAlertsTx(tx *gorm.DB, stockItemID uuid.UUID, at time.Time) error {
	return tx.Model(&model.StockAlert{}).
		Where("stock_item_id = ? AND status = ?", stockItemID, model.AlertActive).
		Updates(map[string]interface{}{
			"status":      model.AlertResolved,
			"resolved_at": at,
		}).Error
}

func (r *stockRepo) FindAlertByID(ctx context.Context, id uuid.UUID) (*model.StockAlert, error) {
	var alert model.StockAlert
	err := r.db.WithContext(ctx).Preload("StockItem.Product").First(&alert, "id = ?", id).Error
	return &alert, err
}

func (r *stockRepo) UpdateAlert(ctx context.Context, alert *model.StockAlert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

func (r *stockRepo) ListAlerts(ctx context.Context, status string) ([]model.StockAlert, error) {
	var alerts []model.StockAlert
	q := r.db.WithContext(ctx).Preload("StockItem.Product").Order("created_at DESC")
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&alerts).Error
	return alerts, err
}
