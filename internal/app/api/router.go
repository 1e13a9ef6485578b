package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter assembles the gin engine with every API route registered and
// tracing middleware installed ahead of the handlers.
func NewRouter(serviceName string, orders OrderAPI, catalog CatalogAPI, stores StoreAPI) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	v1.POST("/stores", stores.CreateStore)
	v1.GET("/stores", stores.ListStores)
	v1.GET("/stores/:storeId", stores.GetStore)
	v1.PUT("/stores/:storeId", stores.UpdateStore)
	v1.POST("/stores/:storeId/deactivate", stores.DeactivateStore)
	v1.GET("/storefronts/:slug", stores.GetStoreBySlug)

	v1.POST("/stores/:storeId/products", catalog.AddProduct)
	v1.GET("/stores/:storeId/products", catalog.ListStoreProducts)
	v1.GET("/products/:productId", catalog.GetProduct)
	v1.PUT("/products/:productId", catalog.UpdateProduct)
	v1.POST("/products/:productId/archive", catalog.ArchiveProduct)
	v1.POST("/products/:productId/variations", catalog.AddVariation)
	v1.GET("/products/:productId/variations", catalog.ListProductVariations)
	v1.GET("/variations/:variationId", catalog.GetVariation)
	v1.PUT("/variations/:variationId", catalog.UpdateVariation)
	v1.PUT("/variations/:variationId/stock", catalog.RestockVariation)

	v1.POST("/stores/:storeId/orders", orders.PlaceOrder)
	v1.GET("/stores/:storeId/orders", orders.ListStoreOrders)
	v1.GET("/orders/:orderId", orders.GetOrder)
	v1.PATCH("/orders/:orderId/status", orders.UpdateOrderStatus)

	return router
}
