// Package category 分類管理頁
package category

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
	listCategories  = store.ListCategories
	getCategoryByID = store.GetCategoryByID
	createCategory  = service.CreateCategory
	updateCategory  = service.UpdateCategory
	destroyCategory = service.DestroyCategory
	restoreCategory = service.RestoreCategory
	forceDelete     = service.ForceDeleteCategory
	bulkDeleteByIDs = service.BulkDeleteCategories
)

// Handlers 共用同一個 DB 與分類選項快取
type Handlers struct {
	db      database.DB
	catalog handler.Catalog
}

func New(db database.DB, catalog handler.Catalog) *Handlers {
	return &Handlers{db: db, catalog: catalog}
}

func (h *Handlers) list(trashed bool, title, page, createRoute string) echo.HandlerFunc {
	return func(c echo.Context) error {
		f := handler.ListFilter(c)
		f.Trashed = trashed
		p, err := listCategories(c.Request().Context(), h.db, f)
		if err != nil {
			zap.L().Error("list categories", zap.Bool("trashed", trashed), zap.Error(err))
			return handler.No(c, api.MsgLoadFailed, "admin.index")
		}
		return c.Render(http.StatusOK, page, handler.ListPage(c, title, createRoute, f, p))
	}
}

// Index GET /admin/category
func (h *Handlers) Index() echo.HandlerFunc {
	return h.list(false, "Danh sách danh mục", "category/index", "category.create")
}

// Trashed GET /admin/category/trushed
func (h *Handlers) Trashed() echo.HandlerFunc {
	return h.list(true, "Danh mục đã xóa", "category/trushed", "")
}

// Create GET /admin/category/create
func (h *Handlers) Create() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "category/create", &view.Page{
			Title: "Thêm mới danh mục",
			Form:  map[string]string{"status": "1"},
		})
	}
}

// Store POST /admin/category
func (h *Handlers) Store() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CategoryRequest
		fields, err := handler.Bind(c, &req, api.CategoryMessages)
		if err != nil {
			return handler.No(c, api.MsgCreateFailed, "category.create")
		}
		if fields != nil {
			return handler.Invalid(c, fields, req.Old(), "category.create")
		}

		cat := req.Category()
		if err := createCategory(c.Request().Context(), h.db, &cat); err != nil {
			if fields, ok := handler.ValidationFields(err); ok {
				return handler.Invalid(c, fields, req.Old(), "category.create")
			}
			zap.L().Error("create category", zap.Error(err))
			return handler.No(c, api.MsgCreateFailed, "category.create")
		}
		h.catalog.Invalidate()
		zap.L().Info("category created", zap.Int("id", cat.ID))
		return handler.Yes(c, api.MsgCreated, "category.index")
	}
}

// find 讀取 :id 指定的有效分類
func (h *Handlers) find(c echo.Context) (*model.Category, error) {
	id, ok := handler.ParamID(c)
	if !ok {
		return nil, store.ErrNotFound
	}
	return getCategoryByID(c.Request().Context(), h.db, id, false)
}

func (h *Handlers) detail(page, title string, form bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		cat, err := h.find(c)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				zap.L().Error("get category", zap.String("id", c.Param("id")), zap.Error(err))
			}
			return handler.No(c, api.MsgNotFound, "category.index")
		}
		p := &view.Page{Title: title, Data: cat}
		if form {
			p.Form = api.CategoryForm(*cat)
		}
		return c.Render(http.StatusOK, page, p)
	}
}

// Show GET /admin/category/:id
func (h *Handlers) Show() echo.HandlerFunc {
	return h.detail("category/show", "Chi tiết danh mục", false)
}

// Edit GET /admin/category/:id/edit
func (h *Handlers) Edit() echo.HandlerFunc {
	return h.detail("category/edit", "Sửa danh mục", true)
}

// Update PUT|PATCH /admin/category/:id
func (h *Handlers) Update() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c)
		if !ok {
			return handler.No(c, api.MsgNotFound, "category.index")
		}
		var req api.CategoryRequest
		fields, err := handler.Bind(c, &req, api.CategoryMessages)
		if err != nil {
			return handler.No(c, api.MsgCategoryUpdateFailed, "category.edit", id)
		}
		if fields != nil {
			return handler.Invalid(c, fields, req.Old(), "category.edit", id)
		}

		cat := req.Category()
		cat.ID = id
		if err := updateCategory(c.Request().Context(), h.db, &cat); err != nil {
			if fields, ok := handler.ValidationFields(err); ok {
				return handler.Invalid(c, fields, req.Old(), "category.edit", id)
			}
			if errors.Is(err, store.ErrNotFound) {
				return handler.No(c, api.MsgNotFound, "category.index")
			}
			zap.L().Error("update category", zap.Int("id", id), zap.Error(err))
			return handler.No(c, api.MsgCategoryUpdateFailed, "category.edit", id)
		}
		h.catalog.Invalidate()
		return handler.Yes(c, api.MsgCategoryUpdated, "category.index")
	}
}

// mutate 對 :id 執行 op，flash yes 或 no 後導向 route
func (h *Handlers) mutate(name, yes, no, route string, op func(echo.Context, int) (bool, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParamID(c)
		if !ok {
			return handler.No(c, no, route)
		}
		done, err := op(c, id)
		if err != nil {
			zap.L().Error(name+" category", zap.Int("id", id), zap.Error(err))
			return handler.No(c, no, route)
		}
		if !done {
			return handler.No(c, no, route)
		}
		h.catalog.Invalidate()
		zap.L().Info("category "+name, zap.Int("id", id))
		return handler.Yes(c, yes, route)
	}
}

// Destroy DELETE /admin/category/:id，分類還有商品時拒絕
func (h *Handlers) Destroy() echo.HandlerFunc {
	return h.mutate("delete", api.MsgDeleted, api.MsgDeleteFailed, "category.index",
		func(c echo.Context, id int) (bool, error) {
			return destroyCategory(c.Request().Context(), h.db, id)
		})
}

// Restore GET /admin/category/restore/:id
func (h *Handlers) Restore() echo.HandlerFunc {
	return h.mutate("restore", api.MsgRestored, api.MsgRestoreFailed, "category.index",
		func(c echo.Context, id int) (bool, error) {
			return restoreCategory(c.Request().Context(), h.db, id)
		})
}

// ForceDelete DELETE /admin/category/forcedelete/:id
func (h *Handlers) ForceDelete() echo.HandlerFunc {
	return h.mutate("force delete", api.MsgForceDeleted, api.MsgDeleteFailed, "category.trushed",
		func(c echo.Context, id int) (bool, error) {
			return forceDelete(c.Request().Context(), h.db, id)
		})
}

// DeleteAll DELETE /admin/category/DeleteAll，參數 id[]
func (h *Handlers) DeleteAll() echo.HandlerFunc {
	return func(c echo.Context) error {
		ids := handler.IDs(c)
		n, err := bulkDeleteByIDs(c.Request().Context(), h.db, ids)
		if err != nil {
			zap.L().Error("bulk delete categories", zap.Ints("ids", ids), zap.Int("deleted", n), zap.Error(err))
		}
		if n == 0 {
			return handler.No(c, api.MsgNothingDeleted, "category.index")
		}
		h.catalog.Invalidate()
		return handler.Yes(c, fmt.Sprintf(api.MsgBulkDeleted, n), "category.index")
	}
}
