package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/model"
)

type OrderRepository interface {
	// CreateTx persists the order and its item snapshots inside the caller's
	// transaction.
	CreateTx(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByNumber(ctx context.Context, number string) (*model.Order, error)
	NumberExistsTx(tx *gorm.DB, number string) (bool, error)
	UpdateStatus(ctx context.Context, o *model.Order) error
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	Stats(ctx context.Context, now time.Time) (*dto.OrderStatsResponse, error)
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) CreateTx(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) FindByNumber(ctx context.Context, number string) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("order_number = ?", number).First(&o).Error
	return &o, err
}

func (r *orderRepo) NumberExistsTx(tx *gorm.DB, number string) (bool, error) {
	var count int64
	err := tx.Model(&model.Order{}).Where("order_number = ?", number).Count(&count).Error
	return count > 0, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Model(o).
		Select("status", "completed_at", "updated_at").
		Updates(map[string]interface{}{
			"status":       o.Status,
			"completed_at": o.CompletedAt,
			"updated_at":   time.Now(),
		}).Error
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.OrderType != "" {
		q = q.Where("order_type = ?", filter.OrderType)
	}
	if filter.DateFrom != "" {
		q = q.Where("DATE(created_at) >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("DATE(created_at) <= ?", filter.DateTo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepo) Stats(ctx context.Context, now time.Time) (*dto.OrderStatsResponse, error) {
	stats := &dto.OrderStatsResponse{}
	db := r.db.WithContext(ctx)

	counts := []struct {
		dest     *int64
		statuses []string
	}{
		{&stats.PendingOrders, []string{model.StatusPending}},
		{&stats.PreparingOrders, []string{model.StatusPreparing}},
		{&stats.ReadyOrders, []string{model.StatusReady}},
		{&stats.CompletedOrders, []string{model.StatusDelivered, model.StatusPickedUp}},
		{&stats.CancelledOrders, []string{model.StatusCancelled}},
	}
	if err := db.Model(&model.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		if err := db.Model(&model.Order{}).Where("status IN ?", c.statuses).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	// Revenue excludes cancelled orders.
	var revenue decimal.NullDecimal
	if err := db.Model(&model.Order{}).
		Where("status <> ?", model.StatusCancelled).
		Select("SUM(total)").Scan(&revenue).Error; err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue.Decimal

	today := now.Format("2006-01-02")
	if err := db.Model(&model.Order{}).
		Where("DATE(created_at) = ?", today).
		Count(&stats.TodayOrders).Error; err != nil {
		return nil, err
	}
	var todayRevenue decimal.NullDecimal
	if err := db.Model(&model.Order{}).
		Where("DATE(created_at) = ? AND status <> ?", today, model.StatusCancelled).
		Select("SUM(total)").Scan(&todayRevenue).Error; err != nil {
		return nil, err
	}
	stats.TodayRevenue = todayRevenue.Decimal

	return stats, nil
}
