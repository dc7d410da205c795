// Package handler 後台頁面與公開路由共用的 helper
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"shop-admin/internal/api"
	"shop-admin/internal/flash"
	"shop-admin/internal/model"
	"shop-admin/internal/service"
	"shop-admin/internal/store"
	"shop-admin/internal/view"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	DefaultPerPage = 3
	MaxPerPage     = 100
)

// Catalog 快取的分類選項清單
type Catalog interface {
	Options(ctx context.Context) ([]model.CategoryOption, error)
	Visible(ctx context.Context) ([]model.CategoryOption, error)
	Invalidate()
}

// Redirect 302 導向具名路由
func Redirect(c echo.Context, route string, params ...any) error {
	return c.Redirect(http.StatusFound, c.Echo().Reverse(route, params...))
}

// Yes flash 成功訊息並導向 route
func Yes(c echo.Context, msg, route string, params ...any) error {
	if err := flash.Yes(c, msg); err != nil {
		zap.L().Warn("flash", zap.Error(err))
	}
	return Redirect(c, route, params...)
}

// No flash 失敗訊息並導向 route
func No(c echo.Context, msg, route string, params ...any) error {
	if err := flash.No(c, msg); err != nil {
		zap.L().Warn("flash", zap.Error(err))
	}
	return Redirect(c, route, params...)
}

// Invalid 帶著欄位錯誤與使用者輸入回到表單
func Invalid(c echo.Context, fields, old map[string]string, route string, params ...any) error {
	if err := flash.Invalid(c, fields, old); err != nil {
		zap.L().Warn("flash", zap.Error(err))
	}
	return Redirect(c, route, params...)
}

// Bind 讀取表單並驗證；欄位訊息放在 fields，
// 只有表單完全讀不出來時 err 才非 nil
func Bind(c echo.Context, req any, messages map[string]string) (map[string]string, error) {
	if err := c.Bind(req); err != nil {
		return nil, err
	}
	if err := c.Validate(req); err != nil {
		if fields := api.Translate(err, messages); fields != nil {
			return fields, nil
		}
		return nil, err
	}
	return nil, nil
}

// ValidationFields 拆出 service.ValidationError
func ValidationFields(err error) (map[string]string, bool) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}

// ParamID 讀 :id，只接受正整數
func ParamID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	return id, err == nil && id > 0
}

// IDs 讀批次表單的 id[] 勾選框，非正整數一律丟棄
func IDs(c echo.Context) []int {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	var ids []int
	for _, v := range params["id[]"] {
		if id, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// ListFilter 從 query 讀 key、page 與 cc（每頁筆數）
func ListFilter(c echo.Context) store.ListFilter {
	perPage, err := strconv.Atoi(c.QueryParam("cc"))
	if err != nil || perPage <= 0 {
		perPage = DefaultPerPage
	}
	perPage = min(perPage, MaxPerPage)
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return store.ListFilter{
		Key:     strings.TrimSpace(c.QueryParam("key")),
		Page:    page,
		PerPage: perPage,
	}
}

// ListPage 把一頁資料包給列表模板
func ListPage[T any](c echo.Context, title, createRoute string, f store.ListFilter, p model.Page[T]) *view.Page {
	return &view.Page{
		Title: title,
		Data: view.List{
			Items:       p.Items,
			Total:       p.Total,
			Key:         f.Key,
			PerPage:     p.PerPage,
			CreateRoute: createRoute,
		},
		Pages: view.NewPagination(c.Request().URL, p.Page, p.LastPage()),
	}
}
