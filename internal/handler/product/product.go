// Package product 商品管理頁
package product

import (
	"errors"
	"fmt"
	"net/http"

	"shop-admin/internal/api"
	"shop-admin/internal/database"
	"shop-admin/internal/handler"
	"shop-admin/internal/model"
	"shop-admin/internal/service"
	"shop-admin/internal/store"
	"shop-admin/internal/view"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	listProducts    = store.ListProducts
	getProductByID  = store.GetProductByID
	createProduct   = service.CreateProduct
	updateProduct   = service.UpdateProduct
	deleteProduct   = service.DeleteProduct
	bulkDeleteByIDs = service.BulkDeleteProducts
)

type Handlers struct {
	db      database.DB
	catalog handler.Catalog
}

func New(db database.DB, catalog handler.Catalog) *Handlers {
	return &Handlers{db: db, catalog: catalog}
}

// Index GET /admin/product
func (h *Handlers) Index() echo.HandlerFunc {
	return func(c echo.Context) error {
		f := handler.ListFilter(c)
		p, err := listProducts(c.Request().Context(), h.db, f)
		if err != nil {
			zap.L().Error("list products", zap.Error(err))
			return handler.No(c, api.MsgLoadFailed, "admin.index")
		}
		return c.Render(http.StatusOK, "product/index", handler.ListPage(c, "Danh sách sản phẩm", "product.create", f, p))
	}
}

// form 帶分類選項 render 新增或編輯頁
func (h *Handlers) form(c echo.Context, page, title string, id int, values map[string]string) error {
	options, err := h.catalog.Options(c.Request().Context())
	if err != nil {
		zap.L().Error("category options", zap.Error(err))
	}
	return c.Render(http.StatusOK, page, &view.Page{
		Title: title,
		Data:  view.ProductForm{ID: id, Categories: options},
		Form:  values,
	})
}

// Create GET /admin/product/create
func (h *Handlers) Create() echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.form(c, "product/create", "Thêm mới sản phẩm", 0, map[string]string{"status": "1", "brand_id": "1"})
	}
}

// bind 讀取並檢查商品表單；失敗時 fields 非 nil
func bind(c echo.Context) (model.Product, api.ProductRequest, map[string]string, error) {
	var req api.ProductRequest
	fields, err := handler.Bind(c, &req, api.ProductMessages)
	if err != nil || fields != nil {
		return model.Product{}, req, fields, err
	}
	p, fields := req.Product()
	return p, req, fields, nil
}

// Store POST /admin/product
func (h *Handlers) Store() echo.HandlerFunc {
	return func(c echo.Context) error {
		p, req, fields, err := bind(c)
		if err != nil {
			return handler.No(c, api.MsgCreateFailed, "product.create")
		}
		if fields != nil {
			return handler.Invalid(c, fields, req.Old(), "product.create")
		}
		if err := createProduct(c.Request().Context(), h.db, &p); err != nil {
			if fields, ok := handler.ValidationFields(err); ok {
				return handler.Invalid(c, fields, req.Old(), "product.create")
			}
			zap.L().Error("create product", zap.Error(err))
			return handler.No(c, api.MsgCreateFailed, "product.create")
		}
		zap.L().Info("product created", zap.Int("id", p.ID))
		return handler.Yes(c, api.MsgCreated, "product.index")
	}
}

func (h *Handlers) find(c echo.Context) (*model.Product, bool) {
	id, ok := handler.ParamID(c)
	if !ok {
		return nil, false
	}
	p, err := getProductByID(c.Request().Context(), h.db, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			zap.L().Error("get product", zap.Int("id", id), zap.Error(err))
		}
		return nil, false
	}
	return p, true
}

// Show GET /admin/product/:id
func (h *Handlers) Show() echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok := h.find(c)
		if !ok {
			return handler.No(c, api.MsgNotFound, "product.index")
		}
		return c.Render(http.StatusOK, "product/show", &view.Page{Title: p.Name, Data: p})
	}
}

// Edit GET /admin/product/:id/edit
func (h *Handlers) Edit() echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok := h.find(c)
		if !ok {
			return handler.No(c, api.MsgNotFound, "product.index")
		}
		return h.form(c, "product/edit", "Sửa sản phẩm", p.ID, api.ProductForm(*p))
	}
}

// Update PUT|PATCH /admin/product/:id
func (h *Handlers) Update() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c)
		if !ok {
			return handler.No(c, api.MsgNotFound, "product.index")
		}
		p, req, fields, err := bind(c)
		if err != nil {
			return handler.No(c, api.MsgProductUpdateFailed, "product.edit", id)
		}
		if fields != nil {
			return handler.Invalid(c, fields, req.Old(), "product.edit", id)
		}
		p.ID = id
		if err := updateProduct(c.Request().Context(), h.db, &p); err != nil {
			if fields, ok := handler.ValidationFields(err); ok {
				return handler.Invalid(c, fields, req.Old(), "product.edit", id)
			}
			if errors.Is(err, store.ErrNotFound) {
				return handler.No(c, api.MsgNotFound, "product.index")
			}
			zap.L().Error("update product", zap.Int("id", id), zap.Error(err))
			return handler.No(c, api.MsgProductUpdateFailed, "product.edit", id)
		}
		return handler.Yes(c, api.MsgProductUpdated, "product.index")
	}
}

// Destroy DELETE /admin/product/:id
func (h *Handlers) Destroy() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c)
		if !ok {
			return handler.No(c, api.MsgDeleteFailed, "product.index")
		}
		done, err := deleteProduct(c.Request().Context(), h.db, id)
		if err != nil {
			zap.L().Error("delete product", zap.Int("id", id), zap.Error(err))
		}
		if !done {
			return handler.No(c, api.MsgDeleteFailed, "product.index")
		}
		zap.L().Info("product deleted", zap.Int("id", id))
		return handler.Yes(c, api.MsgDeleted, "product.index")
	}
}

// DeleteAll DELETE /admin/product/DeleteAll，參數 id[]
func (h *Handlers) DeleteAll() echo.HandlerFunc {
	return func(c echo.Context) error {
		ids := handler.IDs(c)
		n, err := bulkDeleteByIDs(c.Request().Context(), h.db, ids)
		if err != nil {
			zap.L().Error("bulk delete products", zap.Ints("ids", ids), zap.Int("deleted", n), zap.Error(err))
		}
		if n == 0 {
			return handler.No(c, api.MsgNothingDeleted, "product.index")
		}
		return handler.Yes(c, fmt.Sprintf(api.MsgBulkDeleted, n), "product.index")
	}
}
