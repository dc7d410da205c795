package store

import (
	"context"
	"fmt"

	"shop-admin/internal/database"
	"shop-admin/internal/model"

	"github.com/jackc/pgx/v5"
)

const categoryColumns = `c.id, c.name, c.status, c.deleted_at, c.created_at, c.updated_at,
	(SELECT count(*) FROM products p WHERE p.category_id = c.id) AS product_count`

func categoryWhere(f ListFilter) (string, []any) {
	where := "c.deleted_at IS NULL"
	if f.Trashed {
		where = "c.deleted_at IS NOT NULL"
	}
	var args []any
	if f.Key != "" {
		args = append(args, likePattern(f.Key))
		where += " AND c.name ILIKE $1"
	}
	return where, args
}

// ListCategories 回傳一頁分類，新的在前
func ListCategories(ctx context.Context, db database.DB, f ListFilter) (model.Page[model.Category], error) {
	page := model.Page[model.Category]{Page: max(f.Page, 1), PerPage: f.limit()}
	where, args := categoryWhere(f)

	if err := db.QueryRow(ctx, `SELECT count(*) FROM category c WHERE `+where, args...).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("ListCategories count: %w", err)
	}

	args = append(args, f.limit(), f.offset())
	query := fmt.Sprintf(`SELECT %s FROM category c WHERE %s ORDER BY c.id DESC LIMIT $%d OFFSET $%d`,
		categoryColumns, where, len(args)-1, len(args))
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return page, fmt.Errorf("ListCategories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Category
		if err := scanCategory(rows, &c); err != nil {
			return page, fmt.Errorf("ListCategories scan: %w", err)
		}
		page.Items = append(page.Items, c)
	}
	if err := rows.Err(); err != nil {
		return page, fmt.Errorf("ListCategories rows: %w", err)
	}
	return page, nil
}

// GetCategoryByID 查分類；withTrashed 時也找軟刪除的
func GetCategoryByID(ctx context.Context, db database.DB, id int, withTrashed bool) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM category c WHERE c.id = $1`
	if !withTrashed {
		query += ` AND c.deleted_at IS NULL`
	}
	c := &model.Category{}
	if err := scanCategory(db.QueryRow(ctx, query, id), c); err != nil {
		return nil, fmt.Errorf("GetCategoryByID: %w", notFound(err))
	}
	return c, nil
}

// CategoryNameTaken 名稱是否已被 exceptID 以外的有效分類使用
func CategoryNameTaken(ctx context.Context, db database.DB, name string, exceptID int) (bool, error) {
	var taken bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM category WHERE name = $1 AND id <> $2 AND deleted_at IS NULL)`,
		name, exceptID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("CategoryNameTaken: %w", err)
	}
	return taken, nil
}

// CreateCategory 只寫入 name 與 status
func CreateCategory(ctx context.Context, db database.DB, c *model.Category) error {
	row := db.QueryRow(ctx,
		`INSERT INTO category (name, status)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		c.Name,
		c.Status,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("CreateCategory: %w", err)
	}
	return nil
}

// UpdateCategory 修改有效分類的 name 與 status
func UpdateCategory(ctx context.Context, db database.DB, c *model.Category) error {
	tag, err := db.Exec(ctx,
		`UPDATE category SET name = $1, status = $2, updated_at = now()
		 WHERE id = $3 AND deleted_at IS NULL`,
		c.Name,
		c.Status,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateCategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateCategory: %w", ErrNotFound)
	}
	return nil
}

// SoftDeleteCategory 沒有商品引用時把有效分類標為刪除；
// 商品檢查與 update 在同一個 statement
func SoftDeleteCategory(ctx context.Context, db database.DB, id int) (bool, error) {
	tag, err := db.Exec(ctx,
		`UPDATE category SET deleted_at = now()
		 WHERE id = $1 AND deleted_at IS NULL
		   AND NOT EXISTS (SELECT 1 FROM products WHERE category_id = $1)`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("SoftDeleteCategory: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// RestoreCategory 清掉 id 的軟刪除標記，不論是否已刪除
func RestoreCategory(ctx context.Context, db database.DB, id int) (bool, error) {
	tag, err := db.Exec(ctx,
		`UPDATE category SET deleted_at = NULL, updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("RestoreCategory: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ForceDeleteCategory 永久刪除已軟刪除的分類
func ForceDeleteCategory(ctx context.Context, db database.DB, id int) (bool, error) {
	tag, err := db.Exec(ctx,
		`DELETE FROM category WHERE id = $1 AND deleted_at IS NOT NULL`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("ForceDeleteCategory: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListCategoryOptions 依名稱回傳所有有效分類
func ListCategoryOptions(ctx context.Context, db database.DB) ([]model.CategoryOption, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, status FROM category WHERE deleted_at IS NULL ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCategoryOptions: %w", err)
	}
	defer rows.Close()

	var opts []model.CategoryOption
	for rows.Next() {
		var o model.CategoryOption
		if err := rows.Scan(&o.ID, &o.Name, &o.Status); err != nil {
			return nil, fmt.Errorf("ListCategoryOptions scan: %w", err)
		}
		opts = append(opts, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCategoryOptions rows: %w", err)
	}
	return opts, nil
}

func scanCategory(row pgx.Row, c *model.Category) error {
	return row.Scan(
		&c.ID,
		&c.Name,
		&c.Status,
		&c.DeletedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.ProductCount,
	)
}
