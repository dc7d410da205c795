package store

import (
	"errors"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound 依 key 查無資料
var ErrNotFound = errors.New("record not found")

const uniqueViolation = "23505"

// ListFilter 列表查詢的篩選與分頁
type ListFilter struct {
	Key     string // name 不分大小寫的子字串
	Trashed bool   // 只查軟刪除的資料
	Page    int
	PerPage int
}

func (f ListFilter) limit() int {
	if f.PerPage <= 0 {
		return 3
	}
	return f.PerPage
}

func (f ListFilter) offset() int {
	if f.Page <= 1 {
		return 0
	}
	// 超大 page 不可溢位成負數，OFFSET 為負 postgres 會報錯
	if f.Page-1 > math.MaxInt/f.limit() {
		return math.MaxInt
	}
	return (f.Page - 1) * f.limit()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern 把 key 包成 ILIKE 條件，使用者輸入的萬用字元照字面比對
func likePattern(key string) string {
	return "%" + likeEscaper.Replace(key) + "%"
}

// IsUniqueViolation err 是否來自 unique index
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
