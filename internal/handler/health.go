package handler

import (
	"net/http"

	"shop-admin/internal/cache"
	"shop-admin/internal/database"

	"github.com/labstack/echo/v4"
)

// HealthResponse 健康檢查回應
type HealthResponse struct {
	Message string `json:"message"`
}

// HealthHandler 檢查資料庫與 redis 連線
func HealthHandler(db database.DB, rc cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, HealthResponse{Message: "database unhealthy"})
		}
		if err := rc.Ping(ctx).Err(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, HealthResponse{Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, HealthResponse{Message: "pong"})
	}
}
