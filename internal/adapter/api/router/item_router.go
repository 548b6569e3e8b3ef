package router

import (
	"github.com/labstack/echo/v4"

	"arcmarket/internal/adapter/api/handler"
	"arcmarket/internal/adapter/api/middleware"
)

func SetupItemRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	itemHandler := handler.GetItemHandler()

	items := e.Group("/v1/items")
	items.GET("/:collection/:index", itemHandler.GetItem)
	items.GET("/:collection/:index/history", itemHandler.GetItemHistory)

	mutations := e.Group("/v1/items")
	mutations.Use(authMiddleware.Authenticate)
	mutations.POST("", itemHandler.CreateItem)
	mutations.POST("/:collection/:index/transfer", itemHandler.TransferItem)
}
