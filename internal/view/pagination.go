package view

import (
	"net/url"
	"strconv"
)

// Link 一個分頁按鈕
type Link struct {
	Label    string
	URL      string
	Active   bool
	Disabled bool
}

const window = 2

// NewPagination 產生 u 的分頁連結，保留 page 以外的 query 參數；
// 只有一頁時回傳 nil
func NewPagination(u *url.URL, current, last int) []Link {
	if last <= 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}

	href := func(n int) string {
		q := u.Query()
		q.Set("page", strconv.Itoa(n))
		return u.Path + "?" + q.Encode()
	}

	links := []Link{{Label: "«", URL: href(current - 1), Disabled: current <= 1}}
	gap := false
	for n := 1; n <= last; n++ {
		near := n >= current-window && n <= current+window
		if n != 1 && n != last && !near {
			if !gap {
				links = append(links, Link{Label: "…", Disabled: true})
				gap = true
			}
			continue
		}
		gap = false
		links = append(links, Link{Label: strconv.Itoa(n), URL: href(n), Active: n == current})
	}
	links = append(links, Link{Label: "»", URL: href(current + 1), Disabled: current >= last})
	return links
}
