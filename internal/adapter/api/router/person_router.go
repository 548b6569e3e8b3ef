package router

import (
	"github.com/labstack/echo/v4"

	"arcmarket/internal/adapter/api/handler"
	"arcmarket/internal/adapter/api/middleware"
)

func SetupPersonRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	personHandler := handler.GetPersonHandler()

	persons := e.Group("/v1/persons")
	persons.GET("", personHandler.ListOwners)
	persons.GET("/:wallet", personHandler.FindPerson)
	persons.GET("/:wallet/items", personHandler.ListOwnerItems)
	persons.GET("/:wallet/history", personHandler.ListOwnerHistory)
	persons.GET("/:wallet/collections", personHandler.ListOwnerCollections)
	persons.GET("/:wallet/offers", personHandler.ListOwnerOffers)

	mutations := e.Group("/v1/persons")
	mutations.Use(authMiddleware.Authenticate)
	mutations.POST("", personHandler.CreateOwner)
	mutations.PUT("/:wallet", personHandler.UpdateOwner)
	mutations.PUT("/:wallet/photo", personHandler.UpdateOwnerPhoto)
}
