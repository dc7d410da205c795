package service

import (
	"context"
	"errors"
	"testing"

	"shop-admin/internal/database"
	"shop-admin/internal/model"
	"shop-admin/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func stubActiveCategories(ids ...int) {
	getCategoryByID = func(_ context.Context, _ database.DB, id int, withTrashed bool) (*model.Category, error) {
		if withTrashed {
			panic("product checks only accept active categories")
		}
		for _, active := range ids {
			if active == id {
				return &model.Category{ID: id}, nil
			}
		}
		return nil, store.ErrNotFound
	}
}

func TestCreateProduct(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	stubActiveCategories(2)

	t.Run("collects field errors", func(t *testing.T) {
		productNameTaken = func(context.Context, database.DB, string, int) (bool, error) { return true, nil }
		createProduct = func(context.Context, database.DB, *model.Product) error {
			t.Fatal("insert must not run")
			return nil
		}
		err := CreateProduct(ctx, nil, &model.Product{Name: "Sneaker", CategoryID: 7})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Equal(t, map[string]string{
			"name":        "Tên sản phẩm này đã được sử dụng",
			"category_id": "Danh mục không tồn tại",
		}, ve.Fields)
	})

	t.Run("blank name", func(t *testing.T) {
		var ve *ValidationError
		require.ErrorAs(t, CreateProduct(ctx, nil, &model.Product{CategoryID: 2}), &ve)
		require.Equal(t, "Tên sản phẩm không để trống", ve.Fields["name"])
	})

	t.Run("ok", func(t *testing.T) {
		productNameTaken = func(context.Context, database.DB, string, int) (bool, error) { return false, nil }
		createProduct = func(_ context.Context, _ database.DB, p *model.Product) error {
			p.ID = 30
			return nil
		}
		p := &model.Product{Name: "Sneaker", CategoryID: 2, Price: 10}
		require.NoError(t, CreateProduct(ctx, nil, p))
		require.Equal(t, 30, p.ID)
	})

	t.Run("unique race", func(t *testing.T) {
		createProduct = func(context.Context, database.DB, *model.Product) error {
			return &pgconn.PgError{Code: "23505"}
		}
		var ve *ValidationError
		require.ErrorAs(t, CreateProduct(ctx, nil, &model.Product{Name: "Sneaker", CategoryID: 2}), &ve)
	})

	t.Run("category lookup error", func(t *testing.T) {
		getCategoryByID = func(context.Context, database.DB, int, bool) (*model.Category, error) {
			return nil, errors.New("db")
		}
		err := CreateProduct(ctx, nil, &model.Product{Name: "Sneaker", CategoryID: 2})
		require.Error(t, err)
		var ve *ValidationError
		require.False(t, errors.As(err, &ve))
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	stubActiveCategories(2)

	productNameTaken = func(_ context.Context, _ database.DB, _ string, except int) (bool, error) {
		require.Equal(t, 8, except)
		return false, nil
	}
	updateProduct = func(context.Context, database.DB, *model.Product) error { return nil }
	require.NoError(t, UpdateProduct(ctx, nil, &model.Product{ID: 8, Name: "x", CategoryID: 2}))

	updateProduct = func(context.Context, database.DB, *model.Product) error { return store.ErrNotFound }
	require.ErrorIs(t, UpdateProduct(ctx, nil, &model.Product{ID: 8, Name: "x", CategoryID: 2}), store.ErrNotFound)
}

func TestDeleteProducts(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	existing := map[int]bool{1: true, 2: true}
	deleteProduct = func(_ context.Context, _ database.DB, id int) (bool, error) {
		ok := existing[id]
		delete(existing, id)
		return ok, nil
	}

	ok, err := DeleteProduct(ctx, nil, 1)
	require.NoError(t, err)
	require.True(t, ok)

	n, err := BulkDeleteProducts(ctx, nil, []int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
