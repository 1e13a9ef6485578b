package application

import (
	"context"
	"errors"

	"github.com/shopgrid/marketplace-api/internal/domains/catalog/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.SaveProduct(ctx, product)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) ListStoreProducts(ctx context.Context, storeID int64) ([]*domain.Product, error) {
	return s.repo.ListStoreProducts(ctx, storeID)
}

func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	existing, err := s.repo.GetProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	product.StoreID = existing.StoreID
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.SaveProduct(ctx, product)
}

// ArchiveProduct retires a listing without touching its order history.
func (s *Service) ArchiveProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.UpdateStatus(domain.StatusArchived); err != nil {
		return nil, mapError(err)
	}
	return s.repo.SaveProduct(ctx, product)
}

func (s *Service) AddVariation(ctx context.Context, variation *domain.Variation) (*domain.Variation, error) {
	if variation == nil {
		return nil, errors.New("variation is nil")
	}
	if err := variation.Validate(); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetProduct(ctx, variation.ProductID); err != nil {
		return nil, err
	}
	return s.repo.SaveVariation(ctx, variation)
}

func (s *Service) GetVariation(ctx context.Context, id int64) (*domain.Variation, error) {
	return s.repo.GetVariation(ctx, id)
}

func (s *Service) ListProductVariations(ctx context.Context, productID int64) ([]*domain.Variation, error) {
	return s.repo.ListProductVariations(ctx, productID)
}

// UpdateVariation applies price/attribute edits. Stock is deliberately left
// alone here: absolute writes go through RestockVariation and order-driven
// deltas through the repository's atomic deduct/return.
func (s *Service) UpdateVariation(ctx context.Context, variation *domain.Variation) (*domain.Variation, error) {
	if variation == nil {
		return nil, errors.New("variation is nil")
	}
	existing, err := s.repo.GetVariation(ctx, variation.ID)
	if err != nil {
		return nil, err
	}
	variation.ProductID = existing.ProductID
	variation.Stock = existing.Stock
	if err := variation.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.SaveVariation(ctx, variation)
}

func (s *Service) RestockVariation(ctx context.Context, id int64, stock int32) (*domain.Variation, error) {
	if stock < 0 {
		return nil, mapError(domain.ErrNegativeStock)
	}
	return s.repo.SetStock(ctx, id, stock)
}

var _ ports.Service = (*Service)(nil)
