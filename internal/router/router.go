package router

import (
	"shop-admin/internal/cache"
	"shop-admin/internal/database"
	"shop-admin/internal/handler"
	"shop-admin/internal/handler/admin"
	"shop-admin/internal/handler/auth"
	"shop-admin/internal/handler/category"
	"shop-admin/internal/handler/product"
	"shop-admin/internal/media"
	"shop-admin/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// uploadBodyLimit 保留單張圖片外 multipart 包裝的空間
const uploadBodyLimit = "6M"

// Deps handler 需要的依賴；未啟用物件儲存時 Storage 為 nil
type Deps struct {
	DB      database.DB
	Cache   cache.Cache
	Catalog handler.Catalog
	Storage media.Storage
}

// Setup 註冊所有路由與中介層，路由名稱供模板反查網址
func Setup(e *echo.Echo, d Deps) {
	// 公開頁面
	e.GET("/", handler.HomeHandler(d.Catalog)).Name = "home"
	e.GET("/healthz", handler.HealthHandler(d.DB, d.Cache)).Name = "health"
	e.GET("/media/*", admin.MediaHandler(d.Storage)).Name = "media"

	// 登入、登出
	e.GET("/Admin/login", auth.LoginPageHandler()).Name = "admin.login"
	e.POST("/Admin/login", auth.LoginHandler(d.DB)).Name = "admin.checklogin"
	e.GET("/Admin/logout", auth.LogoutHandler(d.Cache)).Name = "admin.logout"

	// 後台（需登入）
	g := e.Group("/admin", middleware.RequireSession(d.DB, d.Cache))
	g.GET("", admin.DashboardHandler(d.DB)).Name = "admin.index"
	g.GET("/file", admin.FileHandler(d.Storage)).Name = "admin.file"
	g.POST("/file", admin.UploadHandler(d.Storage), echomw.BodyLimit(uploadBodyLimit)).Name = "admin.upload"

	cat := category.New(d.DB, d.Catalog)
	cg := g.Group("/category")
	cg.GET("", cat.Index()).Name = "category.index"
	cg.GET("/create", cat.Create()).Name = "category.create"
	cg.POST("", cat.Store()).Name = "category.store"
	cg.GET("/trushed", cat.Trashed()).Name = "category.trushed"
	cg.GET("/restore/:id", cat.Restore()).Name = "category.restore"
	cg.DELETE("/forcedelete/:id", cat.ForceDelete()).Name = "category.forcedelete"
	cg.DELETE("/DeleteAll", cat.DeleteAll()).Name = "category.DeleteAll"
	cg.GET("/:id", cat.Show()).Name = "category.show"
	cg.GET("/:id/edit", cat.Edit()).Name = "category.edit"
	cg.PUT("/:id", cat.Update()).Name = "category.update"
	cg.PATCH("/:id", cat.Update()).Name = "category.patch"
	cg.DELETE("/:id", cat.Destroy()).Name = "category.destroy"

	prod := product.New(d.DB, d.Catalog)
	pg := g.Group("/product")
	pg.GET("", prod.Index()).Name = "product.index"
	pg.GET("/create", prod.Create()).Name = "product.create"
	pg.POST("", prod.Store()).Name = "product.store"
	pg.DELETE("/DeleteAll", prod.DeleteAll()).Name = "product.DeleteAll"
	pg.GET("/:id", prod.Show()).Name = "product.show"
	pg.GET("/:id/edit", prod.Edit()).Name = "product.edit"
	pg.PUT("/:id", prod.Update()).Name = "product.update"
	pg.PATCH("/:id", prod.Update()).Name = "product.patch"
	pg.DELETE("/:id", prod.Destroy()).Name = "product.destroy"
}
