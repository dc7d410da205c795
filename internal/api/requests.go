package api

import (
	"strings"

	"shop-admin/internal/model"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

// LoginRequest 後台登入表單
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Remember string `form:"remember"`
}

// RememberMe 是否勾選記住登入
func (r LoginRequest) RememberMe() bool {
	return r.Remember != ""
}

// CategoryRequest 表單唯一可寫入的分類欄位
type CategoryRequest struct {
	Name   string `form:"name" validate:"required,max=100"`
	Status string `form:"status" validate:"omitempty,oneof=0 1"`
}

func (r CategoryRequest) Category() model.Category {
	return model.Category{
		Name:   strings.TrimSpace(r.Name),
		Status: statusOrDefault(r.Status),
	}
}

// Old 回傳送出的值，用來回填表單
func (r CategoryRequest) Old() map[string]string {
	return map[string]string{"name": r.Name, "status": r.Status}
}

// ProductRequest 商品表單；數字欄位驗證前保持字串
type ProductRequest struct {
	Name        string `form:"name" validate:"required,max=100"`
	Description string `form:"description"`
	Image       string `form:"image" validate:"omitempty,max=255"`
	ImagesList  string `form:"images_list" validate:"omitempty,json"`
	Price       string `form:"price" validate:"required,number,max=9"`
	PriceSale   string `form:"price_sale" validate:"omitempty,number,max=9"`
	CategoryID  string `form:"category_id" validate:"required,number,max=9"`
	BrandID     string `form:"brand_id" validate:"omitempty,number,max=9"`
	Status      string `form:"status" validate:"omitempty,oneof=0 1"`
}

// Product 把驗證過的 request 轉成 model；images_list 是 JSON 但不是字串陣列時
// 回報在該欄位
func (r ProductRequest) Product() (model.Product, map[string]string) {
	p := model.Product{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Image:       strings.TrimSpace(r.Image),
		Price:       toInt(r.Price),
		PriceSale:   toInt(r.PriceSale),
		CategoryID:  toInt(r.CategoryID),
		Status:      statusOrDefault(r.Status),
	}
	if r.BrandID != "" {
		id := toInt(r.BrandID)
		p.BrandID = &id
	}
	if raw := strings.TrimSpace(r.ImagesList); raw != "" {
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(raw, &p.ImagesList); err != nil {
			return p, map[string]string{"images_list": ProductMessages["images_list.json"]}
		}
	}
	return p, nil
}

func (r ProductRequest) Old() map[string]string {
	return map[string]string{
		"name":        r.Name,
		"description": r.Description,
		"image":       r.Image,
		"images_list": r.ImagesList,
		"price":       r.Price,
		"price_sale":  r.PriceSale,
		"category_id": r.CategoryID,
		"brand_id":    r.BrandID,
		"status":      r.Status,
	}
}

// ProductForm 以既有商品預填編輯表單
func ProductForm(p model.Product) map[string]string {
	images := ""
	if len(p.ImagesList) > 0 {
		images, _ = jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(p.ImagesList)
	}
	brand := ""
	if p.BrandID != nil {
		brand = cast.ToString(*p.BrandID)
	}
	return map[string]string{
		"name":        p.Name,
		"description": p.Description,
		"image":       p.Image,
		"images_list": images,
		"price":       cast.ToString(p.Price),
		"price_sale":  cast.ToString(p.PriceSale),
		"category_id": cast.ToString(p.CategoryID),
		"brand_id":    brand,
		"status":      cast.ToString(p.Status),
	}
}

// CategoryForm 以既有分類預填編輯表單
func CategoryForm(c model.Category) map[string]string {
	return map[string]string{"name": c.Name, "status": cast.ToString(c.Status)}
}

func statusOrDefault(s string) int {
	if s == "" {
		return model.StatusVisible
	}
	return toInt(s)
}

// toInt 解析已驗證的十進位數字，前導 0 不可當成八進位
func toInt(s string) int {
	s = strings.TrimLeft(strings.TrimSpace(s), "0")
	if s == "" {
		return 0
	}
	return cast.ToInt(s)
}
