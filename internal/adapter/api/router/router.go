package router

import (
	"github.com/labstack/echo/v4"

	"arcmarket/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupCollectionRouter(e, authMiddleware)
	SetupItemRouter(e, authMiddleware)
	SetupPersonRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
