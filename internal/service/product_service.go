package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/model"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/repository"
)

// ProductService is the minimal catalog surface the order engine needs:
// products must exist, carry prices, and optionally a stock record.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	PriceByBarcode(ctx context.Context, barcode string) (*dto.PriceCheckResponse, error)
}

type productService struct {
	repo      repository.ProductRepository
	stockRepo repository.StockRepository
}

func NewProductService(repo repository.ProductRepository, stockRepo repository.StockRepository) ProductService {
	return &productService{repo: repo, stockRepo: stockRepo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, errors.New("category_id must be a uuid")
	}

	p := &model.Product{
		Name:             req.Name,
		Slug:             req.Slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		CategoryID:       categoryID,
		BasePrice:        req.BasePrice,
		SalePrice:        req.SalePrice,
		IsAvailable:      req.IsAvailable,
		IsCombo:          req.IsCombo,
		IncludedItems:    req.IncludedItems,
		Barcode:          req.Barcode,
		SKU:              req.SKU,
		TrackInventory:   req.TrackInventory,
		ReorderLevel:     req.ReorderLevel,
	}
	if req.SaleStart != nil {
		t, err := time.Parse(time.RFC3339, *req.SaleStart)
		if err != nil {
			return nil, errors.New("sale_start must be RFC 3339")
		}
		p.SaleStart = &t
	}
	if req.SaleEnd != nil {
		t, err := time.Parse(time.RFC3339, *req.SaleEnd)
		if err != nil {
			return nil, errors.New("sale_end must be RFC 3339")
		}
		p.SaleEnd = &t
	}

	for _, sid := range req.SizeIDs {
		id, err := uuid.Parse(sid)
		if err != nil {
			return nil, ErrSizeNotFound
		}
		size, err := s.repo.FindSizeByID(ctx, id)
		if err != nil {
			return nil, ErrSizeNotFound
		}
		p.AvailableSizes = append(p.AvailableSizes, *size)
	}
	if len(req.ToppingIDs) > 0 {
		ids := make([]uuid.UUID, 0, len(req.ToppingIDs))
		for _, tid := range req.ToppingIDs {
			id, err := uuid.Parse(tid)
			if err != nil {
				return nil, ErrToppingNotFound
			}
			ids = append(ids, id)
		}
		toppings, err := s.repo.FindToppingsByIDs(ctx, ids)
		if err != nil || len(toppings) != len(ids) {
			return nil, ErrToppingNotFound
		}
		p.AvailableToppings = toppings
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// Tracked products get a stock record immediately so the first sale can
	// lock a row instead of failing on a missing item.
	if p.TrackInventory {
		item := &model.StockItem{
			ProductID:    p.ID,
			Quantity:     0,
			ReorderLevel: p.ReorderLevel,
		}
		if err := s.stockRepo.CreateItem(ctx, item); err != nil {
			return nil, err
		}
	}

	return s.toResponse(ctx, p), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return s.toResponse(ctx, p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *s.toResponse(ctx, &products[i]))
	}
	return &dto.ProductListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProductNotFound
	}
	return s.repo.SetAvailability(ctx, id, available)
}

// PriceByBarcode resolves the current price for the public price check
// endpoint. Read-only, no auth; the handler layers a redis cache on top.
func (s *productService) PriceByBarcode(ctx context.Context, barcode string) (*dto.PriceCheckResponse, error) {
	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, ErrProductNotFound
	}
	now := time.Now()

	category := ""
	if p.Category != nil {
		category = p.Category.Name
	}
	return &dto.PriceCheckResponse{
		Name:          p.Name,
		CurrentPrice:  p.CurrentBasePrice(now),
		OnSale:        p.IsOnSale(now),
		StockQuantity: s.stockQuantity(ctx, p),
		Category:      category,
	}, nil
}

func (s *productService) stockQuantity(ctx context.Context, p *model.Product) *int {
	if !p.TrackInventory {
		return nil
	}
	item, err := s.stockRepo.FindItemByProduct(ctx, p.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return nil
	}
	q := item.Quantity
	return &q
}

func (s *productService) toResponse(ctx context.Context, p *model.Product) *dto.ProductResponse {
	now := time.Now()
	return &dto.ProductResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		CategoryID:       p.CategoryID.String(),
		BasePrice:        p.BasePrice,
		CurrentPrice:     p.CurrentBasePrice(now),
		OnSale:           p.IsOnSale(now),
		IsAvailable:      p.IsAvailable,
		IsCombo:          p.IsCombo,
		IncludedItems:    p.IncludedItems,
		Barcode:          p.Barcode,
		SKU:              p.SKU,
		TrackInventory:   p.TrackInventory,
		StockQuantity:    s.stockQuantity(ctx, p),
	}
}
