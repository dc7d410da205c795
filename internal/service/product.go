package service

import (
	"context"
	"errors"

	"shop-admin/internal/api"
	"shop-admin/internal/database"
	"shop-admin/internal/model"
	"shop-admin/internal/store"
)

var (
	productNameTaken = store.ProductNameTaken
	getCategoryByID  = store.GetCategoryByID
	createProduct    = store.CreateProduct
	updateProduct    = store.UpdateProduct
	deleteProduct    = store.DeleteProduct
)

func checkProduct(ctx context.Context, db database.DB, p *model.Product) error {
	fields := map[string]string{}
	if p.Name == "" {
		fields["name"] = api.ProductMessages["name.required"]
	} else {
		taken, err := productNameTaken(ctx, db, p.Name, p.ID)
		if err != nil {
			return err
		}
		if taken {
			fields["name"] = api.ProductMessages["name.unique"]
		}
	}
	if _, err := getCategoryByID(ctx, db, p.CategoryID, false); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		fields["category_id"] = api.ProductMessages["category_id.exists"]
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// CreateProduct 檢查名稱唯一與分類後新增 p
func CreateProduct(ctx context.Context, db database.DB, p *model.Product) error {
	if err := checkProduct(ctx, db, p); err != nil {
		return err
	}
	if err := createProduct(ctx, db, p); err != nil {
		if store.IsUniqueViolation(err) {
			return invalid("name", api.ProductMessages["name.unique"])
		}
		return err
	}
	return nil
}

func UpdateProduct(ctx context.Context, db database.DB, p *model.Product) error {
	if err := checkProduct(ctx, db, p); err != nil {
		return err
	}
	if err := updateProduct(ctx, db, p); err != nil {
		if store.IsUniqueViolation(err) {
			return invalid("name", api.ProductMessages["name.unique"])
		}
		return err
	}
	return nil
}

func DeleteProduct(ctx context.Context, db database.DB, id int) (bool, error) {
	return deleteProduct(ctx, db, id)
}

// BulkDeleteProducts 硬刪除存在的 id，回傳刪除筆數
func BulkDeleteProducts(ctx context.Context, db database.DB, ids []int) (int, error) {
	return bulk(ctx, ids, func(ctx context.Context, id int) (bool, error) {
		return deleteProduct(ctx, db, id)
	})
}
