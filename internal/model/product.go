package model

import "time"

type Product struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Image        string    `db:"image" json:"image"`
	ImagesList   []string  `db:"images_list" json:"images_list"`
	Price        int       `db:"price" json:"price"`
	PriceSale    int       `db:"price_sale" json:"price_sale"`
	Description  string    `db:"description" json:"description"`
	CategoryID   int       `db:"category_id" json:"category_id"`
	CategoryName string    `db:"category_name" json:"category_name"`
	BrandID      *int      `db:"brand_id" json:"brand_id,omitempty"`
	Status       int       `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
