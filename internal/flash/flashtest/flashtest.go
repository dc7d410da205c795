// Package flashtest 把 flash session 接進 handler 測試
package flashtest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"shop-admin/internal/flash"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const key = "flashtest-key"

// Store 所有 helper 共用的 cookie store
func Store() sessions.Store {
	return flash.NewStore(key, false)
}

// Wrap 在 session middleware 後執行 h
func Wrap(h echo.HandlerFunc) echo.HandlerFunc {
	return session.Middleware(Store())(h)
}

// Read 解出 handler 寫在 rec 的 flash
func Read(t *testing.T, rec *httptest.ResponseRecorder) flash.Flash {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	Carry(rec, req)
	var got flash.Flash
	c := echo.New().NewContext(req, httptest.NewRecorder())
	err := Wrap(func(c echo.Context) error {
		got = flash.Pop(c)
		return nil
	})(c)
	require.NoError(t, err)
	return got
}

// Seed 在 req 帶上含 f 的 cookie，如同上一次 redirect 設的
func Seed(t *testing.T, req *http.Request, f flash.Flash) {
	t.Helper()
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	err := Wrap(func(c echo.Context) error { return flash.Set(c, f) })(c)
	require.NoError(t, err)
	Carry(rec, req)
}

// Carry 把 rec 每個 cookie 名稱最後一次的值複製到 req
func Carry(rec *httptest.ResponseRecorder, req *http.Request) {
	latest := map[string]*http.Cookie{}
	var order []string
	for _, ck := range rec.Result().Cookies() {
		if _, ok := latest[ck.Name]; !ok {
			order = append(order, ck.Name)
		}
		latest[ck.Name] = ck
	}
	for _, name := range order {
		req.AddCookie(latest[name])
	}
}
