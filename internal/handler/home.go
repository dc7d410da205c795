package handler

import (
	"net/http"

	"shop-admin/internal/view"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HomeHandler 公開首頁，列出顯示中的分類
func HomeHandler(cat Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := cat.Visible(c.Request().Context())
		if err != nil {
			zap.L().Error("home: category options", zap.Error(err))
		}
		return c.Render(http.StatusOK, "home", &view.Page{Title: "Trang chủ", Data: items})
	}
}
