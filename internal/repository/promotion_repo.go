package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/model"
)

type PromotionRepository interface {
	Create(ctx context.Context, p *model.Promotion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error)
	// FindByCode performs the case-insensitive lookup; codes are stored uppercase.
	FindByCode(ctx context.Context, code string) (*model.Promotion, error)
	List(ctx context.Context) ([]model.Promotion, error)
	Update(ctx context.Context, p *model.Promotion) error

	// ConsumeUsageTx atomically increments times_used inside the caller's
	// transaction, guarded so the usage limit can never be exceeded under
	// concurrent redemption. Returns the number of rows updated: 0 means the
	// limit was hit by a concurrent order and the caller must roll back.
	ConsumeUsageTx(tx *gorm.DB, id uuid.UUID) (int64, error)

	DB() *gorm.DB
}

type promotionRepo struct{ db *gorm.DB }

func NewPromotionRepository(db *gorm.DB) PromotionRepository { return &promotionRepo{db: db} }

func (r *promotionRepo) DB() *gorm.DB { return r.db }

func (r *promotionRepo) Create(ctx context.Context, p *model.Promotion) error {
	p.Code = strings.ToUpper(p.Code)
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *promotionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error) {
	var p model.Promotion
	err := r.db.WithContext(ctx).Preload("ApplicableProducts").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *promotionRepo) FindByCode(ctx context.Context, code string) (*model.Promotion, error) {
	var p model.Promotion
	err := r.db.WithContext(ctx).
		Preload("ApplicableProducts").
		Where("UPPER(code) = ?", strings.ToUpper(code)).
		First(&p).Error
	return &p, err
}

func (r *promotionRepo) List(ctx context.Context) ([]model.Promotion, error) {
	var promos []model.Promotion
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&promos).Error
	return promos, err
}

func (r *promotionRepo) Update(ctx context.Context, p *model.Promotion) error {
	p.Code = strings.ToUpper(p.Code)
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *promotionRepo) ConsumeUsageTx(tx *gorm.DB, id uuid.UUID) (int64, error) {
	res := tx.Exec(
		`UPDATE promotions
		    SET times_used = times_used + 1, updated_at = ?
		  WHERE id = ?
		    AND (usage_limit IS NULL OR times_used < usage_limit)`,
		time.Now(), id,
	)
	return res.RowsAffected, res.Error
}
