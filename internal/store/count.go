package store

import (
	"context"
	"fmt"

	"shop-admin/internal/database"
)

// Counts 後台首頁的統計數字
type Counts struct {
	Categories int
	Trashed    int
	Products   int
}

// CountAll 一次查詢取得所有統計
func CountAll(ctx context.Context, db database.DB) (Counts, error) {
	var n Counts
	err := db.QueryRow(ctx, `SELECT
		(SELECT count(*) FROM category WHERE deleted_at IS NULL),
		(SELECT count(*) FROM category WHERE deleted_at IS NOT NULL),
		(SELECT count(*) FROM products)`).Scan(&n.Categories, &n.Trashed, &n.Products)
	if err != nil {
		return n, fmt.Errorf("CountAll: %w", err)
	}
	return n, nil
}
