package service

import (
	"context"
	"errors"
	"fmt"

	"shop-admin/internal/api"
	"shop-admin/internal/database"
	"shop-admin/internal/model"
	"shop-admin/internal/store"
)

var (
	categoryNameTaken   = store.CategoryNameTaken
	createCategory      = store.CreateCategory
	updateCategory      = store.UpdateCategory
	softDeleteCategory  = store.SoftDeleteCategory
	restoreCategory     = store.RestoreCategory
	forceDeleteCategory = store.ForceDeleteCategory
)

func checkCategoryName(ctx context.Context, db database.DB, name string, exceptID int) error {
	if name == "" {
		return invalid("name", api.CategoryMessages["name.required"])
	}
	taken, err := categoryNameTaken(ctx, db, name, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return invalid("name", api.CategoryMessages["name.unique"])
	}
	return nil
}

// CreateCategory 新增有效分類
func CreateCategory(ctx context.Context, db database.DB, c *model.Category) error {
	if err := checkCategoryName(ctx, db, c.Name, 0); err != nil {
		return err
	}
	if err := createCategory(ctx, db, c); err != nil {
		if store.IsUniqueViolation(err) {
			return invalid("name", api.CategoryMessages["name.unique"])
		}
		return err
	}
	return nil
}

// UpdateCategory 修改名稱與狀態；唯一性檢查排除自己
func UpdateCategory(ctx context.Context, db database.DB, c *model.Category) error {
	if err := checkCategoryName(ctx, db, c.Name, c.ID); err != nil {
		return err
	}
	if err := updateCategory(ctx, db, c); err != nil {
		if store.IsUniqueViolation(err) {
			return invalid("name", api.CategoryMessages["name.unique"])
		}
		return err
	}
	return nil
}

// DestroyCategory 軟刪除 id；分類不存在、已在回收桶或仍有商品時
// 回傳 false
func DestroyCategory(ctx context.Context, db database.DB, id int) (bool, error) {
	return softDeleteCategory(ctx, db, id)
}

func RestoreCategory(ctx context.Context, db database.DB, id int) (bool, error) {
	return restoreCategory(ctx, db, id)
}

func ForceDeleteCategory(ctx context.Context, db database.DB, id int) (bool, error) {
	return forceDeleteCategory(ctx, db, id)
}

// BulkDeleteCategories 逐筆軟刪除符合條件的 id
// 不符條件與不存在的 id 直接略過，錯誤不中斷迴圈
func BulkDeleteCategories(ctx context.Context, db database.DB, ids []int) (int, error) {
	return bulk(ctx, ids, func(ctx context.Context, id int) (bool, error) {
		return softDeleteCategory(ctx, db, id)
	})
}

func bulk(ctx context.Context, ids []int, del func(context.Context, int) (bool, error)) (int, error) {
	var (
		n    int
		errs []error
		seen = make(map[int]struct{}, len(ids))
	)
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		ok, err := del(ctx, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("id %d: %w", id, err))
			continue
		}
		if ok {
			n++
		}
	}
	return n, errors.Join(errs...)
}
