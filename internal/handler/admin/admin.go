// Package admin 後台首頁與圖片選擇器
package admin

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"shop-admin/internal/api"
	"shop-admin/internal/database"
	"shop-admin/internal/flash"
	"shop-admin/internal/media"
	"shop-admin/internal/middleware"
	"shop-admin/internal/store"
	"shop-admin/internal/view"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var countAll = store.CountAll

// DashboardHandler GET /admin
func DashboardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		n, err := countAll(c.Request().Context(), db)
		if err != nil {
			zap.L().Error("dashboard counts", zap.Error(err))
		}
		d := view.Dashboard{Categories: n.Categories, Products: n.Products, Trashed: n.Trashed}
		if u := middleware.AdminUser(c); u != nil {
			d.Admin = u.Name
		}
		return c.Render(http.StatusOK, "admin/index", &view.Page{Title: "Trang quản trị", Data: d})
	}
}

// fieldID 選擇器要寫回的商品表單欄位
func fieldID(c echo.Context) string {
	if c.QueryParam("field_id") == "images_list" {
		return "images_list"
	}
	return "image"
}

func backToPicker(c echo.Context, field string) error {
	return c.Redirect(http.StatusFound, c.Echo().Reverse("admin.file")+"?field_id="+url.QueryEscape(field))
}

// FileHandler GET /admin/file?field_id=image|images_list
// 未設定物件儲存時 storage 為 nil
func FileHandler(storage media.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		field := fieldID(c)
		picker := view.FilePicker{
			Enabled:  storage != nil,
			FieldID:  field,
			Multiple: field == "images_list",
		}
		if storage != nil {
			objects, err := storage.List(c.Request().Context())
			if err != nil {
				zap.L().Error("list media", zap.Error(err))
			}
			for _, o := range objects {
				picker.Files = append(picker.Files, view.FileItem{Name: o.Key, URL: o.URL})
			}
		}
		return c.Render(http.StatusOK, "admin/file", &view.Page{Title: "Quản lý file", Data: picker})
	}
}

func flashNo(c echo.Context, msg string) {
	if err := flash.No(c, msg); err != nil {
		zap.L().Warn("flash", zap.Error(err))
	}
}

// UploadHandler POST /admin/file，multipart 欄位 "file"
func UploadHandler(storage media.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		field := fieldID(c)
		if storage == nil {
			zap.L().Warn("upload", zap.Error(media.ErrDisabled))
			flashNo(c, api.MsgNoStorage)
			return backToPicker(c, field)
		}

		fh, err := c.FormFile("file")
		if err != nil {
			flashNo(c, api.MsgUploadFailed)
			return backToPicker(c, field)
		}
		if fh.Size > media.MaxUploadSize {
			flashNo(c, api.MsgTooLarge)
			return backToPicker(c, field)
		}
		f, err := fh.Open()
		if err != nil {
			zap.L().Error("upload open", zap.Error(err))
			flashNo(c, api.MsgUploadFailed)
			return backToPicker(c, field)
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, media.MaxUploadSize+1))
		if err != nil {
			zap.L().Error("upload read", zap.Error(err))
			flashNo(c, api.MsgUploadFailed)
			return backToPicker(c, field)
		}

		obj, err := storage.Upload(c.Request().Context(), data)
		switch {
		case errors.Is(err, media.ErrNotImage):
			flashNo(c, api.MsgNotImage)
		case errors.Is(err, media.ErrTooLarge):
			flashNo(c, api.MsgTooLarge)
		case err != nil:
			zap.L().Error("upload", zap.String("filename", fh.Filename), zap.Error(err))
			flashNo(c, api.MsgUploadFailed)
		default:
			zap.L().Info("media uploaded", zap.String("key", obj.Key), zap.Int64("size", obj.Size))
			if err := flash.Yes(c, api.MsgUploaded); err != nil {
				zap.L().Warn("flash", zap.Error(err))
			}
		}
		return backToPicker(c, field)
	}
}

// MediaHandler GET /media/* 串流已存的圖片
func MediaHandler(storage media.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Param("*")
		if storage == nil || key == "" {
			return echo.ErrNotFound
		}
		rc, obj, err := storage.Open(c.Request().Context(), key)
		if errors.Is(err, media.ErrNotFound) {
			return echo.ErrNotFound
		}
		if err != nil {
			zap.L().Error("open media", zap.String("key", key), zap.Error(err))
			return echo.ErrInternalServerError
		}
		defer rc.Close()
		h := c.Response().Header()
		h.Set("Cache-Control", "public, max-age=86400")
		if obj.Size > 0 {
			h.Set(echo.HeaderContentLength, strconv.FormatInt(obj.Size, 10))
		}
		return c.Stream(http.StatusOK, obj.ContentType, rc)
	}
}
