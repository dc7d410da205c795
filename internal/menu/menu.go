// Package menu 後台側邊選單定義
package menu

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var definition []byte

type Item struct {
	Label string `yaml:"label"`
	Icon  string `yaml:"icon"`
	Route string `yaml:"route"`
	Items []Item `yaml:"items"`
}

// Entry 是已把路由換成路徑的 Item
type Entry struct {
	Label string
	Icon  string
	URL   string
	Items []Entry
}

// Load 解析嵌入的側邊選單
func Load() ([]Item, error) {
	return Parse(definition)
}

func Parse(data []byte) ([]Item, error) {
	var items []Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("menu: %w", err)
	}
	return items, nil
}

// Resolve 以 reverse 把路由名稱換成路徑；
// 未知路由給 "#"，打錯字不會弄壞版面
func Resolve(items []Item, reverse func(name string) string) []Entry {
	out := make([]Entry, 0, len(items))
	for _, it := range items {
		e := Entry{Label: it.Label, Icon: it.Icon, URL: "#"}
		if it.Route != "" {
			if u := reverse(it.Route); u != "" {
				e.URL = u
			}
		}
		if len(it.Items) > 0 {
			e.Items = Resolve(it.Items, reverse)
		}
		out = append(out, e)
	}
	return out
}

// Routes 列出 items 用到的所有路由名稱
func Routes(items []Item) []string {
	var names []string
	for _, it := range items {
		if it.Route != "" {
			names = append(names, it.Route)
		}
		names = append(names, Routes(it.Items)...)
	}
	return names
}
