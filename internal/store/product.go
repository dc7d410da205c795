package store

import (
	"context"
	"fmt"

	"shop-admin/internal/database"
	"shop-admin/internal/model"

	"github.com/jackc/pgx/v5"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const productColumns = `p.id, p.name, p.image, p.images_list, p.price, p.price_sale, p.description,
	p.category_id, COALESCE(c.name, ''), p.brand_id, p.status, p.created_at, p.updated_at`

const productFrom = ` FROM products p LEFT JOIN category c ON c.id = p.category_id`

// ListProducts 回傳一頁商品，新的在前；忽略 f.Trashed
func ListProducts(ctx context.Context, db database.DB, f ListFilter) (model.Page[model.Product], error) {
	page := model.Page[model.Product]{Page: max(f.Page, 1), PerPage: f.limit()}
	where := "TRUE"
	var args []any
	if f.Key != "" {
		args = append(args, likePattern(f.Key))
		where = "p.name ILIKE $1"
	}

	if err := db.QueryRow(ctx, `SELECT count(*) FROM products p WHERE `+where, args...).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("ListProducts count: %w", err)
	}

	args = append(args, f.limit(), f.offset())
	query := fmt.Sprintf(`SELECT %s%s WHERE %s ORDER BY p.id DESC LIMIT $%d OFFSET $%d`,
		productColumns, productFrom, where, len(args)-1, len(args))
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return page, fmt.Errorf("ListProducts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return page, fmt.Errorf("ListProducts scan: %w", err)
		}
		page.Items = append(page.Items, p)
	}
	if err := rows.Err(); err != nil {
		return page, fmt.Errorf("ListProducts rows: %w", err)
	}
	return page, nil
}

func GetProductByID(ctx context.Context, db database.DB, id int) (*model.Product, error) {
	p := &model.Product{}
	row := db.QueryRow(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = $1`, id)
	if err := scanProduct(row, p); err != nil {
		return nil, fmt.Errorf("GetProductByID: %w", notFound(err))
	}
	return p, nil
}

// ProductNameTaken 名稱是否已被 exceptID 以外的商品使用
func ProductNameTaken(ctx context.Context, db database.DB, name string, exceptID int) (bool, error) {
	var taken bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE name = $1 AND id <> $2)`,
		name, exceptID,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("ProductNameTaken: %w", err)
	}
	return taken, nil
}

func CreateProduct(ctx context.Context, db database.DB, p *model.Product) error {
	images, err := encodeImages(p.ImagesList)
	if err != nil {
		return fmt.Errorf("CreateProduct: %w", err)
	}
	row := db.QueryRow(ctx,
		`INSERT INTO products
		    (name, image, images_list, price, price_sale, description, category_id, brand_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		p.Name,
		p.Image,
		images,
		p.Price,
		p.PriceSale,
		p.Description,
		p.CategoryID,
		p.BrandID,
		p.Status,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("CreateProduct: %w", err)
	}
	return nil
}

func UpdateProduct(ctx context.Context, db database.DB, p *model.Product) error {
	images, err := encodeImages(p.ImagesList)
	if err != nil {
		return fmt.Errorf("UpdateProduct: %w", err)
	}
	tag, err := db.Exec(ctx,
		`UPDATE products SET
		    name = $1, image = $2, images_list = $3, price = $4, price_sale = $5,
		    description = $6, category_id = $7, brand_id = $8, status = $9, updated_at = now()
		 WHERE id = $10`,
		p.Name,
		p.Image,
		images,
		p.Price,
		p.PriceSale,
		p.Description,
		p.CategoryID,
		p.BrandID,
		p.Status,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateProduct: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateProduct: %w", ErrNotFound)
	}
	return nil
}

func DeleteProduct(ctx context.Context, db database.DB, id int) (bool, error) {
	tag, err := db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("DeleteProduct: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanProduct(row pgx.Row, p *model.Product) error {
	var images, description *string
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Image,
		&images,
		&p.Price,
		&p.PriceSale,
		&description,
		&p.CategoryID,
		&p.CategoryName,
		&p.BrandID,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return err
	}
	if description != nil {
		p.Description = *description
	}
	list, err := decodeImages(images)
	if err != nil {
		return err
	}
	p.ImagesList = list
	return nil
}

// encodeImages 空清單存成 NULL
func encodeImages(list []string) (*string, error) {
	if len(list) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func decodeImages(raw *string) ([]string, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(*raw), &list); err != nil {
		return nil, fmt.Errorf("images_list: %w", err)
	}
	return list, nil
}
