package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/RaiAraujo30/Complete-Physical-Store/controllers"
)

// RegisterStoreRoutes sets up the store CRUD and shipping lookup routes.
// providerLimit guards the handlers that call paid map APIs.
func RegisterStoreRoutes(r gin.IRouter, sc *controllers.StoreController, providerLimit gin.HandlerFunc) {
	store := r.Group("/store")

	store.GET("", sc.List)
	store.GET("/:id", sc.FindByID)
	store.GET("/state/:state", sc.FindByState)
	store.DELETE("/:id", sc.Delete)

	store.POST("", providerLimit, sc.Create)
	store.PUT("/:id", providerLimit, sc.Update)
	store.GET("/shipping/:cep", providerLimit, sc.GetStoresWithShipping)
}

// RegisterDeliveryCriteriaRoutes sets up the local delivery tier routes.
func RegisterDeliveryCriteriaRoutes(r gin.IRouter, dc *controllers.DeliveryCriteriaController) {
	criteria := r.Group("/deliveryCriteria")
	criteria.GET("", dc.List)
	criteria.POST("", dc.Create)
	criteria.DELETE("/:id", dc.Delete)
}
