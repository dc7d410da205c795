package middleware

import (
	"errors"
	"net/http"

	"shop-admin/internal/cache"
	"shop-admin/internal/database"
	"shop-admin/internal/model"
	"shop-admin/internal/service"
	"shop-admin/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	ContextUserKey  = "user"
	ContextAdminKey = "admin"
	SessionCookie   = "shop_admin_session"
	LoginPath       = "/Admin/login"
)

var (
	verifySessionToken = service.VerifySessionToken
	isSessionRevoked   = service.IsSessionRevoked
	getUserByID        = store.GetUserByID
)

var errNoSession = errors.New("missing session cookie")

// SessionClaims 回傳 RequireSession 存的 claims，沒有則為 nil
func SessionClaims(c echo.Context) *service.SessionClaims {
	claims, _ := c.Get(ContextUserKey).(*service.SessionClaims)
	return claims
}

// AdminUser 回傳目前登入的管理員，未經 RequireSession 時為 nil
func AdminUser(c echo.Context) *model.User {
	u, _ := c.Get(ContextAdminKey).(*model.User)
	return u
}

func extractClaims(c echo.Context, rc cache.Cache) (*service.SessionClaims, error) {
	ck, err := c.Cookie(SessionCookie)
	if err != nil || ck.Value == "" {
		return nil, errNoSession
	}
	claims, err := verifySessionToken(ck.Value)
	if err != nil {
		return nil, err
	}
	revoked, err := isSessionRevoked(c.Request().Context(), rc, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, service.ErrSessionRevoked
	}
	return claims, nil
}

// RequireSession 未登入、token 無效、已登出或帳號已刪除時導回登入頁
func RequireSession(db database.DB, rc cache.Cache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, rc)
			var user *model.User
			if err == nil {
				user, err = getUserByID(c.Request().Context(), db, claims.UserID)
			}
			if err != nil {
				if !errors.Is(err, errNoSession) {
					zap.L().Info("admin session rejected", zap.Error(err), zap.String("path", c.Request().URL.Path))
					ClearSessionCookie(c)
				}
				return c.Redirect(http.StatusFound, LoginPath)
			}
			c.Set(ContextUserKey, claims)
			c.Set(ContextAdminKey, user)
			return next(c)
		}
	}
}

// SetSessionCookie 寫入 token；持久 cookie 與 token 同時到期
func SetSessionCookie(c echo.Context, token string, claims *service.SessionClaims) {
	ck := &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.IsTLS(),
		SameSite: http.SameSiteLaxMode,
	}
	if claims.Remember && claims.ExpiresAt != nil {
		ck.Expires = claims.ExpiresAt.Time
	}
	c.SetCookie(ck)
}

func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
