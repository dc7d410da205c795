package service

import (
	"context"
	"errors"
	"time"

	"shop-admin/internal/cache"
	"shop-admin/internal/database"
	"shop-admin/internal/model"
	"shop-admin/internal/store"
	"shop-admin/internal/worker"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	categoryOptionsKey = "category:options"
	categoryOptionsTTL = 10 * time.Minute
)

var (
	json                = jsoniter.ConfigCompatibleWithStandardLibrary
	listCategoryOptions = store.ListCategoryOptions
)

// CategoryCatalog 從 redis 提供有效分類清單，miss 時讀 DB；
// redis 故障只多一次 DB 查詢
type CategoryCatalog struct {
	db    database.DB
	cache cache.Cache
	pool  worker.Pool
	log   *zap.Logger
}

func NewCategoryCatalog(db database.DB, c cache.Cache, pool worker.Pool, log *zap.Logger) *CategoryCatalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &CategoryCatalog{db: db, cache: c, pool: pool, log: log}
}

// Options 回傳所有有效分類，依名稱排序
func (cc *CategoryCatalog) Options(ctx context.Context) ([]model.CategoryOption, error) {
	raw, err := cc.cache.Get(ctx, categoryOptionsKey).Bytes()
	switch {
	case err == nil:
		var opts []model.CategoryOption
		decodeErr := json.Unmarshal(raw, &opts)
		if decodeErr == nil {
			return opts, nil
		}
		cc.log.Warn("category options cache corrupt", zap.Error(decodeErr))
	case !errors.Is(err, redis.Nil):
		cc.log.Warn("category options cache get failed", zap.Error(err))
	}

	opts, err := listCategoryOptions(ctx, cc.db)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(opts); err == nil {
		if err := cc.cache.Set(ctx, categoryOptionsKey, data, categoryOptionsTTL).Err(); err != nil {
			cc.log.Warn("category options cache set failed", zap.Error(err))
		}
	}
	return opts, nil
}

// Visible 回傳狀態為顯示的有效分類
func (cc *CategoryCatalog) Visible(ctx context.Context) ([]model.CategoryOption, error) {
	opts, err := cc.Options(ctx)
	if err != nil {
		return nil, err
	}
	visible := opts[:0:0]
	for _, o := range opts {
		if o.Status == model.StatusVisible {
			visible = append(visible, o)
		}
	}
	return visible, nil
}

// Invalidate 在 worker pool 上清掉快取
func (cc *CategoryCatalog) Invalidate() {
	if !cc.pool.Submit(cc.drop) {
		cc.drop()
	}
}

func (cc *CategoryCatalog) drop() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cc.cache.Del(ctx, categoryOptionsKey).Err(); err != nil {
		cc.log.Warn("category options cache invalidate failed", zap.Error(err))
	}
}
