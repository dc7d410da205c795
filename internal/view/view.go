// Package view 伺服器端 HTML 頁面
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"shop-admin/internal/flash"
	"shop-admin/internal/menu"
	"shop-admin/internal/model"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates
var files embed.FS

// Page 每個模板收到的資料；handler 填 Title、Data、Form 與 Pages，
// 其餘由 renderer 填
type Page struct {
	Title string
	Data  any
	Form  map[string]string
	Pages []Link

	CSRF  string
	Flash flash.Flash
	Menu  []menu.Entry
}

// Value 欄位值，優先使用剛送出的輸入
func (p *Page) Value(field string) string {
	if v, ok := p.Flash.Old[field]; ok {
		return v
	}
	return p.Form[field]
}

func (p *Page) Error(field string) string {
	return p.Flash.Errors[field]
}

// layouts: 頁面名稱 -> 外框模板
var layouts = map[string]string{
	"login":            "bare",
	"home":             "bare",
	"admin/file":       "bare",
	"admin/index":      "layout",
	"category/index":   "layout",
	"category/trushed": "layout",
	"category/create":  "layout",
	"category/edit":    "layout",
	"category/show":    "layout",
	"product/index":    "layout",
	"product/create":   "layout",
	"product/edit":     "layout",
	"product/show":     "layout",
}

// Renderer 以嵌入模板實作 echo.Renderer
type Renderer struct {
	e     *echo.Echo
	menu  []menu.Item
	pages map[string]*template.Template
}

// New 解析所有頁面；模板用到的路由名稱在 render 時才經 e 解析，
// New 之後再加路由也可以
func New(e *echo.Echo, items []menu.Item) (*Renderer, error) {
	r := &Renderer{e: e, menu: items, pages: make(map[string]*template.Template, len(layouts))}
	funcs := template.FuncMap{
		"url":    r.url,
		"status": StatusLabel,
		"date":   FormatDate,
		"money":  FormatMoney,
		"join":   strings.Join,
		"images": decodeImages,
		"sizes":  func() []int { return PageSizes },
	}
	for name, base := range layouts {
		t, err := template.New(base).Funcs(funcs).ParseFS(files,
			"templates/"+base+".html",
			"templates/partials/*.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) url(name string, params ...any) string {
	return r.e.Reverse(name, params...)
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}

	var page *Page
	switch d := data.(type) {
	case *Page:
		page = d
	case Page:
		page = &d
	default:
		page = &Page{Data: data}
	}
	if token, ok := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string); ok {
		page.CSRF = token
	}
	page.Flash = flash.Pop(c)
	page.Menu = menu.Resolve(r.menu, func(route string) string { return r.e.Reverse(route) })

	return t.ExecuteTemplate(w, layouts[name], page)
}

// PageSizes 搜尋框旁的每頁筆數選項
var PageSizes = []int{3, 5, 10, 20, 50, 100}

// List 列表頁的 Data
type List struct {
	Items       any
	Total       int
	Key         string
	PerPage     int
	CreateRoute string
}

type Dashboard struct {
	Admin      string
	Categories int
	Products   int
	Trashed    int
}

// ProductForm 商品新增與編輯頁的 Data
type ProductForm struct {
	ID         int
	Categories []model.CategoryOption
}

type FileItem struct {
	Name string
	URL  string
}

// FilePicker 商品表單開啟的圖片瀏覽器的 Data
type FilePicker struct {
	Enabled  bool
	FieldID  string
	Multiple bool
	Files    []FileItem
}

// decodeImages 讀 images_list 表單值，不是字串 JSON 陣列時回傳 nil
func decodeImages(raw string) []string {
	var list []string
	if jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(raw, &list) != nil {
		return nil
	}
	return list
}

func StatusLabel(status int) string {
	if status == model.StatusVisible {
		return "Hiển thị"
	}
	return "Ẩn"
}

// FormatDate 輸出 dd-mm-yyyy；nil 或零值時間輸出空字串
func FormatDate(v any) string {
	var t time.Time
	switch d := v.(type) {
	case time.Time:
		t = d
	case *time.Time:
		if d == nil {
			return ""
		}
		t = *d
	default:
		return ""
	}
	if t.IsZero() {
		return ""
	}
	return t.Format("02-01-2006")
}

// FormatMoney 依越南語習慣分位，1200000 -> 1.200.000
func FormatMoney(n int) string {
	return message.NewPrinter(language.Vietnamese).Sprintf("%d", n)
}
