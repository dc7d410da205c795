// Package handlertest 為 handler 測試建立 echo 與 request
package handlertest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"shop-admin/internal/api"
	"shop-admin/internal/flash"
	"shop-admin/internal/flash/flashtest"
	"shop-admin/internal/model"
	"shop-admin/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// Renderer 記錄最後一次 render 的頁面
type Renderer struct {
	Name string
	Page *view.Page
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	r.Name = name
	r.Page, _ = data.(*view.Page)
	_, err := io.WriteString(w, name)
	return err
}

func noop(echo.Context) error { return nil }

// Echo 回傳已註冊所有具名後台路由、表單驗證器與
// 記錄用 renderer 的 instance
func Echo() (*echo.Echo, *Renderer) {
	e := echo.New()
	e.Validator = api.NewValidator()
	r := &Renderer{}
	e.Renderer = r
	routes := []struct{ method, path, name string }{
		{http.MethodGet, "/", "home"},
		{http.MethodGet, "/admin", "admin.index"},
		{http.MethodGet, "/Admin/login", "admin.login"},
		{http.MethodGet, "/Admin/logout", "admin.logout"},
		{http.MethodGet, "/admin/file", "admin.file"},
		{http.MethodPost, "/admin/file", "admin.upload"},
		{http.MethodGet, "/admin/category", "category.index"},
		{http.MethodGet, "/admin/category/create", "category.create"},
		{http.MethodPost, "/admin/category", "category.store"},
		{http.MethodGet, "/admin/category/trushed", "category.trushed"},
		{http.MethodGet, "/admin/category/restore/:id", "category.restore"},
		{http.MethodDelete, "/admin/category/forcedelete/:id", "category.forcedelete"},
		{http.MethodDelete, "/admin/category/DeleteAll", "category.DeleteAll"},
		{http.MethodGet, "/admin/category/:id", "category.show"},
		{http.MethodGet, "/admin/category/:id/edit", "category.edit"},
		{http.MethodPut, "/admin/category/:id", "category.update"},
		{http.MethodDelete, "/admin/category/:id", "category.destroy"},
		{http.MethodGet, "/admin/product", "product.index"},
		{http.MethodGet, "/admin/product/create", "product.create"},
		{http.MethodPost, "/admin/product", "product.store"},
		{http.MethodDelete, "/admin/product/DeleteAll", "product.DeleteAll"},
		{http.MethodGet, "/admin/product/:id", "product.show"},
		{http.MethodGet, "/admin/product/:id/edit", "product.edit"},
		{http.MethodPut, "/admin/product/:id", "product.update"},
		{http.MethodDelete, "/admin/product/:id", "product.destroy"},
	}
	for _, rt := range routes {
		e.Add(rt.method, rt.path, noop).Name = rt.name
	}
	return e, r
}

// Get 建立 GET context
func Get(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// Form 建立 form-encoded POST context，等同瀏覽器在 method override 前送出的
func Form(e *echo.Echo, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// WithID 設定 :id 路徑參數
func WithID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

// Serve 在 flash session middleware 後執行 h
func Serve(t *testing.T, h echo.HandlerFunc, c echo.Context) {
	t.Helper()
	require.NoError(t, flashtest.Wrap(h)(c))
}

// Redirected 斷言 302 到 path 並回傳帶的 flash
func Redirected(t *testing.T, rec *httptest.ResponseRecorder, path string) flash.Flash {
	t.Helper()
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, path, rec.Header().Get(echo.HeaderLocation))
	return flashtest.Read(t, rec)
}

// Catalog 假的 handler.Catalog
type Catalog struct {
	Items       []model.CategoryOption
	Err         error
	Invalidated int
}

func (c *Catalog) Options(context.Context) ([]model.CategoryOption, error) {
	return c.Items, c.Err
}

func (c *Catalog) Visible(context.Context) ([]model.CategoryOption, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	var out []model.CategoryOption
	for _, o := range c.Items {
		if o.Status == model.StatusVisible {
			out = append(out, o)
		}
	}
	return out, nil
}

func (c *Catalog) Invalidate() { c.Invalidated++ }
