package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/model"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/repository"
)

type PromotionService interface {
	// Validate is the read-only preview: it never touches TimesUsed.
	Validate(ctx context.Context, req dto.ValidatePromotionRequest) (*dto.ValidatePromotionResponse, error)
	Create(ctx context.Context, req dto.CreatePromotionRequest) (*dto.PromotionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PromotionResponse, error)
	List(ctx context.Context) ([]dto.PromotionResponse, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type promotionService struct {
	repo        repository.PromotionRepository
	productRepo repository.ProductRepository
}

func NewPromotionService(repo repository.PromotionRepository, productRepo repository.ProductRepository) PromotionService {
	return &promotionService{repo: repo, productRepo: productRepo}
}

// evaluatePromotion checks a promotion against an order and computes the
// discount. Validation short-circuits on the first failure, each mapping to a
// distinct sentinel error:
//
//	active → validity window → usage limit → minimum order amount
//
// (existence is checked by the caller's lookup). No side effects: the usage
// counter is only consumed by the order builder after the order is durably
// written.
func evaluatePromotion(promo *model.Promotion, subtotal, deliveryFee decimal.Decimal, lines []resolvedLine, now time.Time) (decimal.Decimal, error) {
	if !promo.IsActive {
		return decimal.Zero, ErrPromotionInactive
	}
	// Window bounds are inclusive.
	if now.Before(promo.ValidFrom) || now.After(promo.ValidUntil) {
		return decimal.Zero, ErrPromotionExpired
	}
	if promo.UsageExhausted() {
		return decimal.Zero, ErrPromotionUsageExhausted
	}
	if promo.MinimumOrderAmount != nil && subtotal.LessThan(*promo.MinimumOrderAmount) {
		return decimal.Zero, ErrPromotionMinimumNotMet
	}

	var discount decimal.Decimal
	switch promo.DiscountType {
	case model.DiscountFreeDelivery:
		// Delivery fee refund; product scoping does not apply.
		discount = deliveryFee

	default:
		base := subtotal
		if !promo.ApplyToEntireOrder {
			base = discountableBase(promo, lines)
		}
		if promo.DiscountType == model.DiscountPercentage {
			discount = base.Mul(promo.DiscountValue).Div(decimal.NewFromInt(100))
			if promo.MaximumDiscount != nil && discount.GreaterThan(*promo.MaximumDiscount) {
				discount = *promo.MaximumDiscount
			}
		} else {
			discount = decimal.Min(promo.DiscountValue, base)
		}
	}

	// The discount never exceeds the order's own subtotal and never goes
	// negative regardless of how the promotion was configured.
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount, nil
}

// discountableBase sums the eligible monetary value for a product-scoped
// promotion. Only lines whose product is in ApplicableProducts contribute
// (an empty set means nothing is eligible in this mode), and each scope flag
// gates its own price component: ApplyToBasePrice the unit price,
// ApplyToToppings the toppings total, ApplyToIncludedItems the items bundled
// in a combo. Bundled items carry no price of their own in the line snapshot,
// so their component is currently always zero; the flag exists for combos
// that ever price them separately.
func discountableBase(promo *model.Promotion, lines []resolvedLine) decimal.Decimal {
	base := decimal.Zero
	for _, line := range lines {
		if !promo.AppliesTo(line.product.ID) {
			continue
		}
		lineBase := decimal.Zero
		if promo.ApplyToBasePrice {
			lineBase = lineBase.Add(line.unitPrice)
		}
		if promo.ApplyToToppings {
			lineBase = lineBase.Add(line.toppings.Total())
		}
		base = base.Add(lineBase.Mul(decimal.NewFromInt(int64(line.quantity))))
	}
	return base
}

func (s *promotionService) Validate(ctx context.Context, req dto.ValidatePromotionRequest) (*dto.ValidatePromotionResponse, error) {
	promo, err := s.repo.FindByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.ValidatePromotionResponse{
				Valid:          false,
				DiscountAmount: decimal.Zero,
				Message:        ErrPromotionNotFound.Error(),
			}, nil
		}
		return nil, err
	}

	var lines []resolvedLine
	if len(req.Items) > 0 {
		lines, _, err = resolveLines(ctx, s.productRepo, req.Items, time.Now())
		if err != nil {
			return &dto.ValidatePromotionResponse{
				Valid:          false,
				DiscountAmount: decimal.Zero,
				Message:        err.Error(),
			}, nil
		}
	}

	discount, err := evaluatePromotion(promo, req.Subtotal, req.DeliveryFee, lines, time.Now())
	if err != nil {
		return &dto.ValidatePromotionResponse{
			Valid:          false,
			DiscountAmount: decimal.Zero,
			Message:        err.Error(),
		}, nil
	}
	return &dto.ValidatePromotionResponse{
		Valid:          true,
		DiscountAmount: discount,
		Message:        "Promotion applied",
	}, nil
}

func (s *promotionService) Create(ctx context.Context, req dto.CreatePromotionRequest) (*dto.PromotionResponse, error) {
	validFrom, err := time.Parse(time.RFC3339, req.ValidFrom)
	if err != nil {
		return nil, errors.New("valid_from must be RFC 3339")
	}
	validUntil, err := time.Parse(time.RFC3339, req.ValidUntil)
	if err != nil {
		return nil, errors.New("valid_until must be RFC 3339")
	}
	if validUntil.Before(validFrom) {
		return nil, errors.New("valid_until must not precede valid_from")
	}

	promo := &model.Promotion{
		Code:                 strings.ToUpper(req.Code),
		Name:                 req.Name,
		Description:          req.Description,
		DiscountType:         req.DiscountType,
		DiscountValue:        req.DiscountValue,
		MinimumOrderAmount:   req.MinimumOrderAmount,
		MaximumDiscount:      req.MaximumDiscount,
		UsageLimit:           req.UsageLimit,
		IsActive:             req.IsActive,
		ValidFrom:            validFrom,
		ValidUntil:           validUntil,
		ApplyToEntireOrder:   req.ApplyToEntireOrder,
		ApplyToBasePrice:     req.ApplyToBasePrice,
		ApplyToToppings:      req.ApplyToToppings,
		ApplyToIncludedItems: req.ApplyToIncludedItems,
	}

	for _, pid := range req.ApplicableProductIDs {
		id, err := uuid.Parse(pid)
		if err != nil {
			return nil, ErrProductNotFound
		}
		p, err := s.productRepo.FindByID(ctx, id)
		if err != nil {
			return nil, ErrProductNotFound
		}
		promo.ApplicableProducts = append(promo.ApplicableProducts, *p)
	}

	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, err
	}
	return promotionToResponse(promo), nil
}

func (s *promotionService) Get(ctx context.Context, id uuid.UUID) (*dto.PromotionResponse, error) {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPromotionNotFound
	}
	return promotionToResponse(promo), nil
}

func (s *promotionService) List(ctx context.Context) ([]dto.PromotionResponse, error) {
	promos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PromotionResponse, 0, len(promos))
	for i := range promos {
		out = append(out, *promotionToResponse(&promos[i]))
	}
	return out, nil
}

func (s *promotionService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrPromotionNotFound
	}
	promo.IsActive = active
	return s.repo.Update(ctx, promo)
}

func promotionToResponse(p *model.Promotion) *dto.PromotionResponse {
	productIDs := make([]string, 0, len(p.ApplicableProducts))
	for _, ap := range p.ApplicableProducts {
		productIDs = append(productIDs, ap.ID.String())
	}
	return &dto.PromotionResponse{
		ID:                   p.ID.String(),
		Code:                 p.Code,
		Name:                 p.Name,
		Description:          p.Description,
		DiscountType:         p.DiscountType,
		DiscountValue:        p.DiscountValue,
		MinimumOrderAmount:   p.MinimumOrderAmount,
		MaximumDiscount:      p.MaximumDiscount,
		UsageLimit:           p.UsageLimit,
		TimesUsed:            p.TimesUsed,
		IsActive:             p.IsActive,
		ValidFrom:            p.ValidFrom.Format(time.RFC3339),
		ValidUntil:           p.ValidUntil.Format(time.RFC3339),
		ApplyToEntireOrder:   p.ApplyToEntireOrder,
		ApplicableProductIDs: productIDs,
		ApplyToBasePrice:     p.ApplyToBasePrice,
		ApplyToToppings:      p.ApplyToToppings,
		ApplyToIncludedItems: p.ApplyToIncludedItems,
	}
}
