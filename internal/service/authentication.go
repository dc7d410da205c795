package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shop-admin/internal/cache"
	"shop-admin/internal/database"
	"shop-admin/internal/model"
	"shop-admin/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	SessionTTL  = 12 * time.Hour
	RememberTTL = 30 * 24 * time.Hour

	revokedPrefix = "session:revoked:"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionRevoked     = errors.New("session revoked")
)

// SessionClaims 是後台 session cookie 內 JWT 的負載
type SessionClaims struct {
	UserID   int  `json:"uid"`
	Remember bool `json:"remember,omitempty"`
	jwt.RegisteredClaims
}

var (
	getUserByEmail  = store.GetUserByEmail
	createUser      = store.CreateUser
	timeNow         = time.Now
	newTokenID      = uuid.NewString
	parseWithClaims = jwt.ParseWithClaims
)

var sessionSecret []byte

// SetSessionSecret 設定簽 session token 的 HS256 金鑰，啟動時由 config 帶入
func SetSessionSecret(secret string) {
	sessionSecret = []byte(secret)
}

func jwtSecret() ([]byte, error) {
	if len(sessionSecret) == 0 {
		return nil, errors.New("session secret not set")
	}
	return sessionSecret, nil
}

// AuthenticateUser 以 email 找使用者並比對密碼；查無使用者與密碼錯誤都回傳 ErrInvalidCredentials
func AuthenticateUser(ctx context.Context, db database.DB, email, password string) (*model.User, error) {
	user, err := getUserByEmail(ctx, db, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("AuthenticateUser: %w", err)
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueSessionToken 為 user 簽 session；remember 選用較長效期
func IssueSessionToken(user model.User, remember bool) (string, *SessionClaims, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", nil, err
	}

	ttl := SessionTTL
	if remember {
		ttl = RememberTTL
	}
	now := timeNow()
	claims := &SessionClaims{
		UserID:   user.ID,
		Remember: remember,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// VerifySessionToken 驗證簽章與到期時間，不檢查是否已登出
func VerifySessionToken(tokenString string) (*SessionClaims, error) {
	secret, err := jwtSecret()
	if err != nil {
		return nil, err
	}

	token, err := parseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// RevokeSession 把 token id 記到 redis 直到原本的到期時間
func RevokeSession(ctx context.Context, c cache.Cache, claims *SessionClaims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(timeNow())
	if ttl <= 0 {
		return nil
	}
	if err := c.Set(ctx, revokedPrefix+claims.ID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("RevokeSession: %w", err)
	}
	return nil
}

func IsSessionRevoked(ctx context.Context, c cache.Cache, tokenID string) (bool, error) {
	err := c.Get(ctx, revokedPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("IsSessionRevoked: %w", err)
	}
	return true, nil
}

// EnsureAdmin 在 email 不存在時建立初始帳號
func EnsureAdmin(ctx context.Context, db database.DB, email, password, name string) (bool, error) {
	_, err := getUserByEmail(ctx, db, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	if _, err := createUser(ctx, db, &model.User{Name: name, Email: email, PasswordHash: hash}); err != nil {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	return true, nil
}
