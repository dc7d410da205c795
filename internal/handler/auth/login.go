package auth

import (
	"errors"
	"net/http"

	"shop-admin/internal/api"
	"shop-admin/internal/cache"
	"shop-admin/internal/database"
	"shop-admin/internal/flash"
	"shop-admin/internal/handler"
	"shop-admin/internal/middleware"
	"shop-admin/internal/service"
	"shop-admin/internal/view"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	authenticateUser   = service.AuthenticateUser
	issueSessionToken  = service.IssueSessionToken
	verifySessionToken = service.VerifySessionToken
	revokeSession      = service.RevokeSession
)

// LoginPageHandler 顯示登入表單
func LoginPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "login", &view.Page{Title: "Đăng nhập"})
	}
}

// LoginHandler 驗證 email/密碼，成功後把 session token 寫進 cookie
func LoginHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		fields, err := handler.Bind(c, &req, api.LoginMessages)
		if err != nil {
			return handler.No(c, api.MsgLoginFailed, "admin.login")
		}
		old := map[string]string{"email": req.Email, "remember": req.Remember}
		if fields != nil {
			return handler.Invalid(c, fields, old, "admin.login")
		}

		user, err := authenticateUser(c.Request().Context(), db, req.Email, req.Password)
		if err != nil {
			if !errors.Is(err, service.ErrInvalidCredentials) {
				zap.L().Error("login", zap.Error(err))
			}
			if err := flash.Set(c, flash.Flash{No: api.MsgLoginFailed, Old: old}); err != nil {
				zap.L().Warn("flash", zap.Error(err))
			}
			return handler.Redirect(c, "admin.login")
		}

		token, claims, err := issueSessionToken(*user, req.RememberMe())
		if err != nil {
			zap.L().Error("issue session token", zap.Error(err))
			return handler.No(c, api.MsgLoginFailed, "admin.login")
		}
		middleware.SetSessionCookie(c, token, claims)
		zap.L().Info("admin login", zap.Int("user_id", user.ID), zap.Bool("remember", claims.Remember))
		return handler.Redirect(c, "admin.index")
	}
}

// LogoutHandler 把目前 token 記為已登出並清除 cookie
func LogoutHandler(rc cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ck, err := c.Cookie(middleware.SessionCookie); err == nil && ck.Value != "" {
			if claims, err := verifySessionToken(ck.Value); err == nil {
				if err := revokeSession(c.Request().Context(), rc, claims); err != nil {
					zap.L().Error("logout", zap.Error(err))
				}
			}
		}
		middleware.ClearSessionCookie(c)
		return handler.Redirect(c, "admin.login")
	}
}
