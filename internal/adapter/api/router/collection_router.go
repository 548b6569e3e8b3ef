package router

import (
	"github.com/labstack/echo/v4"

	"arcmarket/internal/adapter/api/handler"
	"arcmarket/internal/adapter/api/middleware"
)

func SetupCollectionRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	collectionHandler := handler.GetCollectionHandler()

	collections := e.Group("/v1/collections")
	collections.GET("", collectionHandler.ListCollections)
	collections.GET("/top", collectionHandler.ListTopCollections)
	collections.GET("/hot", collectionHandler.ListHotCollections)
	collections.GET("/tag/:tag", collectionHandler.ListTagCollections)
	collections.GET("/search", collectionHandler.Search)
	collections.GET("/url/:url", collectionHandler.GetCollectionByURL)

	// Detail and offers enrich differently for a known viewer, so the
	// token is read when present but never required.
	viewer := e.Group("/v1/collections")
	viewer.Use(authMiddleware.Optional)
	viewer.GET("/:id", collectionHandler.GetCollection)
	viewer.GET("/:id/offers", collectionHandler.ListCollectionOffers)

	collections.GET("/:id/owners", collectionHandler.ListOwners)
	collections.GET("/:id/items", collectionHandler.ListItems)
	collections.GET("/:id/activity", collectionHandler.ListActivity)
	collections.GET("/:id/history", collectionHandler.ListHistory)

	mutations := e.Group("/v1/collections")
	mutations.Use(authMiddleware.Authenticate)
	mutations.POST("", collectionHandler.CreateCollection)
	mutations.PUT("/:id", collectionHandler.UpdateCollection)
	mutations.DELETE("/:id", collectionHandler.DeleteCollection)
}
