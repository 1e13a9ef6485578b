package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/shopgrid/marketplace-api/internal/domains/catalog/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog adapter. Stock mutations take the write
// lock for the whole check-and-write, so the no-oversell guarantee holds under
// concurrent callers.
type Repository struct {
	mu              sync.RWMutex
	products        map[int64]*domain.Product
	variations      map[int64]*domain.Variation
	nextProductID   int64
	nextVariationID int64
}

func NewRepository() *Repository {
	return &Repository{
		products:   map[int64]*domain.Product{},
		variations: map[int64]*domain.Variation{},
	}
}

func (r *Repository) SaveProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := cloneProduct(product)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextProductID++
		clone.ID = r.nextProductID
	} else if clone.ID > r.nextProductID {
		r.nextProductID = clone.ID
	}
	r.products[clone.ID] = clone
	return cloneProduct(clone), nil
}

func (r *Repository) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	return cloneProduct(product), nil
}

func (r *Repository) ListStoreProducts(_ context.Context, storeID int64) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0)
	for _, product := range r.products {
		if product.StoreID == storeID {
			list = append(list, cloneProduct(product))
		}
	}
	return list, nil
}

func (r *Repository) DeleteProduct(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrProductNotFound
	}
	delete(r.products, id)
	for variationID, variation := range r.variations {
		if variation.ProductID == id {
			delete(r.variations, variationID)
		}
	}
	return nil
}

func (r *Repository) SaveVariation(_ context.Context, variation *domain.Variation) (*domain.Variation, error) {
	if variation == nil {
		return nil, errors.New("variation is nil")
	}
	clone := cloneVariation(variation)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextVariationID++
		clone.ID = r.nextVariationID
	} else if clone.ID > r.nextVariationID {
		r.nextVariationID = clone.ID
	}
	r.variations[clone.ID] = clone
	return cloneVariation(clone), nil
}

func (r *Repository) GetVariation(_ context.Context, id int64) (*domain.Variation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	variation, ok := r.variations[id]
	if !ok {
		return nil, ports.ErrVariationNotFound
	}
	return cloneVariation(variation), nil
}

func (r *Repository) ListProductVariations(_ context.Context, productID int64) ([]*domain.Variation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Variation, 0)
	for _, variation := range r.variations {
		if variation.ProductID == productID {
			list = append(list, cloneVariation(variation))
		}
	}
	return list, nil
}

func (r *Repository) SetStock(_ context.Context, id int64, stock int32) (*domain.Variation, error) {
	if stock < 0 {
		return nil, domain.ErrNegativeStock
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	variation, ok := r.variations[id]
	if !ok {
		return nil, ports.ErrVariationNotFound
	}
	variation.Stock = stock
	return cloneVariation(variation), nil
}

func (r *Repository) DeductStock(_ context.Context, id int64, qty int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	variation, ok := r.variations[id]
	if !ok {
		return ports.ErrVariationNotFound
	}
	if variation.Stock < qty {
		return &ports.InsufficientStockError{VariationID: id, Available: variation.Stock, Requested: qty}
	}
	variation.Stock -= qty
	return nil
}

func (r *Repository) ReturnStock(_ context.Context, id int64, qty int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	variation, ok := r.variations[id]
	if !ok {
		return ports.ErrVariationNotFound
	}
	variation.Stock += qty
	return nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	clone.ImageURLs = append([]string{}, p.ImageURLs...)
	return &clone
}

func cloneVariation(v *domain.Variation) *domain.Variation {
	clone := *v
	if v.DiscountPrice != nil {
		d := *v.DiscountPrice
		clone.DiscountPrice = &d
	}
	return &clone
}
