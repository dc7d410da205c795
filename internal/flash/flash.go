// Package flash 以簽章 cookie session 保存只活一個 request 的訊息
package flash

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	sessionName = "shop_flash"

	// 超過此長度的舊輸入不保留，cookie 上限 4KB
	oldValueLimit = 1024
)

// Flash 是 redirect 留給下一頁的內容
type Flash struct {
	Yes    string
	No     string
	Errors map[string]string
	Old    map[string]string
}

// Empty 是否沒有任何要顯示的內容
func (f Flash) Empty() bool {
	return f.Yes == "" && f.No == "" && len(f.Errors) == 0 && len(f.Old) == 0
}

func init() {
	gob.Register(Flash{})
}

// NewStore 回傳給 session.Middleware 用的 cookie store
func NewStore(key string, secure bool) sessions.Store {
	s := sessions.NewCookieStore([]byte(key))
	s.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return s
}

// Set 把 f 排給下一個 request
func Set(c echo.Context, f Flash) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return fmt.Errorf("flash: %w", err)
	}
	for k, v := range f.Old {
		if len(v) > oldValueLimit {
			delete(f.Old, k)
		}
	}
	sess.AddFlash(f)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("flash: %w", err)
	}
	return nil
}

func Yes(c echo.Context, msg string) error {
	return Set(c, Flash{Yes: msg})
}

func No(c echo.Context, msg string) error {
	return Set(c, Flash{No: msg})
}

// Invalid 排入欄位錯誤與送出的值
func Invalid(c echo.Context, errors, old map[string]string) error {
	return Set(c, Flash{Errors: errors, Old: old})
}

// Pop 取出並清空這個 request 的 flash
// cookie 無法解讀時回傳空的 Flash
func Pop(c echo.Context) Flash {
	var out Flash
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return out
	}
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return out
	}
	for _, v := range flashes {
		f, ok := v.(Flash)
		if !ok {
			continue
		}
		out = merge(out, f)
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		c.Logger().Warnf("flash: clear: %v", err)
	}
	return out
}

func merge(dst, src Flash) Flash {
	if src.Yes != "" {
		dst.Yes = src.Yes
	}
	if src.No != "" {
		dst.No = src.No
	}
	dst.Errors = mergeMap(dst.Errors, src.Errors)
	dst.Old = mergeMap(dst.Old, src.Old)
	return dst
}

func mergeMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
