package mapper

import (
	"github.com/shopgrid/marketplace-api/internal/domains/catalog/domain"
)

// Product is the transport representation of a catalog product.
type Product struct {
	ID          int64    `json:"id"`
	StoreID     int64    `json:"storeId"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
	Status      string   `json:"status"`
}

// MutationProduct captures inbound create/update payloads.
type MutationProduct struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	ImageURLs   []string `json:"imageUrls"`
	Status      string   `json:"status"`
}

// Variation is the transport representation of a product variation.
type Variation struct {
	ID            int64  `json:"id"`
	ProductID     int64  `json:"productId"`
	Size          string `json:"size,omitempty"`
	Color         string `json:"color,omitempty"`
	Price         int64  `json:"price"`
	DiscountPrice *int64 `json:"discountPrice,omitempty"`
	Stock         int32  `json:"stock"`
}

// MutationVariation captures inbound variation create/update payloads.
type MutationVariation struct {
	Size          string `json:"size"`
	Color         string `json:"color"`
	Price         int64  `json:"price"`
	DiscountPrice *int64 `json:"discountPrice"`
	Stock         int32  `json:"stock"`
}

// RestockRequest carries the absolute stock level for a merchant restock.
type RestockRequest struct {
	Stock *int32 `json:"stock" binding:"required"`
}

// ToDomainProduct builds a new domain product from a create payload.
func ToDomainProduct(storeID int64, payload MutationProduct) (*domain.Product, error) {
	product, err := domain.NewProduct(storeID, payload.Name)
	if err != nil {
		return nil, err
	}
	return applyProductMutation(product, payload)
}

// ToDomainProductUpdate builds the update shape; the owning store is resolved
// from the stored row by the application service.
func ToDomainProductUpdate(id int64, payload MutationProduct) (*domain.Product, error) {
	product := &domain.Product{ID: id}
	if err := product.Rename(payload.Name); err != nil {
		return nil, err
	}
	return applyProductMutation(product, payload)
}

func applyProductMutation(product *domain.Product, payload MutationProduct) (*domain.Product, error) {
	product.Description = payload.Description
	product.Category = payload.Category
	product.ReplaceImages(payload.ImageURLs)
	if err := product.UpdateStatus(domain.Status(payload.Status)); err != nil {
		return nil, err
	}
	return product, nil
}

// ToDomainVariation builds a new domain variation from a create payload.
func ToDomainVariation(productID int64, payload MutationVariation) (*domain.Variation, error) {
	variation, err := domain.NewVariation(productID, payload.Size, payload.Color, payload.Price, payload.Stock)
	if err != nil {
		return nil, err
	}
	if err := variation.Reprice(payload.Price, payload.DiscountPrice); err != nil {
		return nil, err
	}
	return variation, nil
}

// ToDomainVariationUpdate builds the update shape; the owning product and the
// stock counter are resolved from the stored row by the application service.
func ToDomainVariationUpdate(id int64, payload MutationVariation) (*domain.Variation, error) {
	variation := &domain.Variation{ID: id, Size: payload.Size, Color: payload.Color}
	if err := variation.Reprice(payload.Price, payload.DiscountPrice); err != nil {
		return nil, err
	}
	return variation, nil
}

// FromDomainProduct converts a domain product to the transport shape.
func FromDomainProduct(product *domain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:          product.ID,
		StoreID:     product.StoreID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		ImageURLs:   append([]string{}, product.ImageURLs...),
		Status:      string(product.Status),
	}
}

// FromDomainProductList maps a slice of domain products to transport products.
func FromDomainProductList(list []*domain.Product) []Product {
	result := make([]Product, 0, len(list))
	for _, product := range list {
		result = append(result, FromDomainProduct(product))
	}
	return result
}

// FromDomainVariation converts a domain variation to the transport shape.
func FromDomainVariation(variation *domain.Variation) Variation {
	if variation == nil {
		return Variation{}
	}
	var discount *int64
	if variation.DiscountPrice != nil {
		d := *variation.DiscountPrice
		discount = &d
	}
	return Variation{
		ID:            variation.ID,
		ProductID:     variation.ProductID,
		Size:          variation.Size,
		Color:         variation.Color,
		Price:         variation.Price,
		DiscountPrice: discount,
		Stock:         variation.Stock,
	}
}

// FromDomainVariationList maps a slice of domain variations to transport variations.
func FromDomainVariationList(list []*domain.Variation) []Variation {
	result := make([]Variation, 0, len(list))
	for _, variation := range list {
		result = append(result, FromDomainVariation(variation))
	}
	return result
}
