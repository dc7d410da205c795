package model

import "time"

const (
	StatusHidden  = 0
	StatusVisible = 1
)

type Category struct {
	ID           int        `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Status       int        `db:"status" json:"status"`
	ProductCount int        `db:"product_count" json:"product_count"`
	DeletedAt    *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Trashed 是否已軟刪除
func (c *Category) Trashed() bool {
	return c.DeletedAt != nil
}

// CategoryOption 商品表單可選的 id/name
type CategoryOption struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status int    `json:"status"`
}
