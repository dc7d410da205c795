package store

import (
	"context"
	"errors"
	"testing"

	"shop-admin/internal/database"
	"shop-admin/internal/testutil"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestCountAll(t *testing.T) {
	db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "deleted_at IS NOT NULL")
		require.Empty(t, args)
		return testutil.Row{Values: []any{4, 1, 9}}
	}}
	n, err := CountAll(context.Background(), db)
	require.NoError(t, err)
	require.Equal(t, Counts{Categories: 4, Trashed: 1, Products: 9}, n)

	db.QueryRowFn = func(context.Context, string, ...any) pgx.Row {
		return testutil.Row{Err: errors.New("down")}
	}
	_, err = CountAll(context.Background(), db)
	require.ErrorContains(t, err, "CountAll: down")
}
