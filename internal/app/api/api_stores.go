package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	storemapper "github.com/shopgrid/marketplace-api/internal/domains/stores/adapters/http/mapper"
	storesports "github.com/shopgrid/marketplace-api/internal/domains/stores/ports"
)

// StoreAPI wires HTTP transport with the stores bounded context service.
type StoreAPI struct {
	service storesports.Service
}

// NewStoreAPI creates a StoreAPI backed by the provided service.
func NewStoreAPI(service storesports.Service) StoreAPI {
	return StoreAPI{service: service}
}

// Post /api/v1/stores
// Register a new merchant storefront
func (api *StoreAPI) CreateStore(c *gin.Context) {
	var payload storemapper.MutationStore
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	store, err := storemapper.ToDomainStore(payload)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.CreateStore(c.Request.Context(), store)
	if err != nil {
		storeResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, storemapper.FromDomainStore(saved))
}

// Get /api/v1/stores
// List storefronts
func (api *StoreAPI) ListStores(c *gin.Context) {
	stores, err := api.service.ListStores(c.Request.Context())
	if err != nil {
		storeResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, storemapper.FromDomainStoreList(stores))
}

// Get /api/v1/stores/:storeId
// Find a storefront by ID
func (api *StoreAPI) GetStore(c *gin.Context) {
	id, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	store, err := api.service.GetStore(c.Request.Context(), id)
	if err != nil {
		storeResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, storemapper.FromDomainStore(store))
}

// Get /api/v1/storefronts/:slug
// Resolve a storefront by its published slug
func (api *StoreAPI) GetStoreBySlug(c *gin.Context) {
	store, err := api.service.GetStoreBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		storeResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, storemapper.FromDomainStore(store))
}

// Put /api/v1/stores/:storeId
// Update a storefront's details; the published slug never changes
func (api *StoreAPI) UpdateStore(c *gin.Context) {
	id, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	var payload storemapper.MutationStore
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	store, err := storemapper.ToDomainStoreUpdate(id, payload)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdateStore(c.Request.Context(), store)
	if err != nil {
		storeResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, storemapper.FromDomainStore(updated))
}

// Post /api/v1/stores/:storeId/deactivate
// Hide a storefront without deleting its history
func (api *StoreAPI) DeactivateStore(c *gin.Context) {
	id, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	store, err := api.service.DeactivateStore(c.Request.Context(), id)
	if err != nil {
		storeResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, storemapper.FromDomainStore(store))
}
