package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"shop-admin/internal/api"
	"shop-admin/internal/cache"
	"shop-admin/internal/config"
	"shop-admin/internal/database"
	"shop-admin/internal/flash"
	"shop-admin/internal/logger"
	"shop-admin/internal/media"
	"shop-admin/internal/menu"
	"shop-admin/internal/middleware"
	"shop-admin/internal/router"
	"shop-admin/internal/service"
	"shop-admin/internal/view"
	"shop-admin/internal/worker"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = config.Load
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	ensureAdmin     = service.EnsureAdmin
	newWorkerPool   = worker.NewPool
	newMediaStorage = openMediaStorage
	loadMenu        = menu.Load
	startServer     = serve
	exitFunc        = os.Exit
	cliArgs         = func() []string { return os.Args[1:] }
)

// openMediaStorage 失敗時回傳 nil Storage（避免非 nil 介面包 nil 指標）
func openMediaStorage(ctx context.Context, cfg config.MinioConfig) (media.Storage, error) {
	s, err := media.NewMinioStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// serve 啟動 HTTP 服務，收到 SIGINT/SIGTERM 時優雅關閉
func serve(e *echo.Echo, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// skipCSRF: 健康檢查與圖片不需要 token
func skipCSRF(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/healthz" || strings.HasPrefix(p, "/media/")
}

func newEcho(cfg *config.Config, l *zap.Logger, items []menu.Item) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	renderer, err := view.New(e, items)
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	// HTML 表單以 _method 送出 PUT/PATCH/DELETE
	e.Pre(echomw.MethodOverrideWithConfig(echomw.MethodOverrideConfig{
		Getter: echomw.MethodFromForm("_method"),
	}))
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(l))
	e.Use(session.Middleware(flash.NewStore(cfg.SessionKey, false)))
	e.Use(echomw.CSRFWithConfig(echomw.CSRFConfig{
		Skipper:        skipCSRF,
		TokenLookup:    "form:_token",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	}))
	return e, nil
}

// run 啟動服務；-rollback 只回滾全部 migration 後結束
func run(args []string) error {
	fs := flag.NewFlagSet("service", flag.ContinueOnError)
	rollback := fs.Bool("rollback", false, "roll back every migration and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	service.SetSessionSecret(cfg.JWTSecret)

	l, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger 建立失敗: %w", err)
	}
	defer func() { _ = l.Sync() }()

	if *rollback {
		if err := rollbackAllFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("Migration 回滾失敗: %w", err)
		}
		l.Info("migrations rolled back")
		return nil
	}

	ctx := context.Background()
	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rc, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rc.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	if cfg.Admin.Enabled() {
		created, err := ensureAdmin(ctx, db, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
		if err != nil {
			return fmt.Errorf("建立管理員失敗: %w", err)
		}
		if created {
			l.Info("bootstrap admin created", zap.String("email", cfg.Admin.Email))
		}
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	var storage media.Storage
	if cfg.Minio.Enabled() {
		if storage, err = newMediaStorage(ctx, cfg.Minio); err != nil {
			return fmt.Errorf("MinIO 連線失敗: %w", err)
		}
	} else {
		l.Warn("media storage disabled, set MINIO_ENDPOINT to enable uploads")
	}

	items, err := loadMenu()
	if err != nil {
		return fmt.Errorf("選單載入失敗: %w", err)
	}
	e, err := newEcho(cfg, l, items)
	if err != nil {
		return err
	}
	router.Setup(e, router.Deps{
		DB:      db,
		Cache:   rc,
		Catalog: service.NewCategoryCatalog(db, rc, wp, l),
		Storage: storage,
	})

	l.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := startServer(e, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	if err := run(cliArgs()); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
