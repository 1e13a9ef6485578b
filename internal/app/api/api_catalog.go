package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/shopgrid/marketplace-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/shopgrid/marketplace-api/internal/domains/catalog/ports"
)

// CatalogAPI wires HTTP transport with the catalog bounded context service.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Post /api/v1/stores/:storeId/products
// Add a product to a storefront's catalog
func (api *CatalogAPI) AddProduct(c *gin.Context) {
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	var payload catalogmapper.MutationProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	product, err := catalogmapper.ToDomainProduct(storeID, payload)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.AddProduct(c.Request.Context(), product)
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainProduct(saved))
}

// Get /api/v1/products/:productId
// Find a product by ID
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(product))
}

// Get /api/v1/stores/:storeId/products
// List a storefront's products
func (api *CatalogAPI) ListStoreProducts(c *gin.Context) {
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	products, err := api.service.ListStoreProducts(c.Request.Context(), storeID)
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProductList(products))
}

// Put /api/v1/products/:productId
// Update an existing product
func (api *CatalogAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload catalogmapper.MutationProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	product, err := catalogmapper.ToDomainProductUpdate(id, payload)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(updated))
}

// Post /api/v1/products/:productId/archive
// Retire a product without touching its order history
func (api *CatalogAPI) ArchiveProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	archived, err := api.service.ArchiveProduct(c.Request.Context(), id)
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(archived))
}

// Post /api/v1/products/:productId/variations
// Add a sellable variation to a product
func (api *CatalogAPI) AddVariation(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload catalogmapper.MutationVariation
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	variation, err := catalogmapper.ToDomainVariation(productID, payload)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.AddVariation(c.Request.Context(), variation)
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainVariation(saved))
}

// Get /api/v1/products/:productId/variations
// List a product's variations
func (api *CatalogAPI) ListProductVariations(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	variations, err := api.service.ListProductVariations(c.Request.Context(), productID)
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainVariationList(variations))
}

// Get /api/v1/variations/:variationId
// Find a variation by ID
func (api *CatalogAPI) GetVariation(c *gin.Context) {
	id, ok := parseIDParam(c, "variationId")
	if !ok {
		return
	}
	variation, err := api.service.GetVariation(c.Request.Context(), id)
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainVariation(variation))
}

// Put /api/v1/variations/:variationId
// Update a variation's attributes and pricing
func (api *CatalogAPI) UpdateVariation(c *gin.Context) {
	id, ok := parseIDParam(c, "variationId")
	if !ok {
		return
	}
	var payload catalogmapper.MutationVariation
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	variation, err := catalogmapper.ToDomainVariationUpdate(id, payload)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdateVariation(c.Request.Context(), variation)
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainVariation(updated))
}

// Put /api/v1/variations/:variationId/stock
// Write an absolute stock level for a variation
func (api *CatalogAPI) RestockVariation(c *gin.Context) {
	id, ok := parseIDParam(c, "variationId")
	if !ok {
		return
	}
	var payload catalogmapper.RestockRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.RestockVariation(c.Request.Context(), id, *payload.Stock)
	if err != nil {
		catalogResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainVariation(updated))
}
