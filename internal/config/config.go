// Package config 從環境變數讀取服務設定
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	SessionKey    string
	HTTPAddr      string
	WorkerCount   int
	Log           LogConfig
	Minio         MinioConfig
	Admin         AdminConfig
}

type LogConfig struct {
	Mode string // production | development
	File string // 空字串表示不寫檔
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// Enabled 是否設定了圖片儲存
func (m MinioConfig) Enabled() bool {
	return m.Endpoint != ""
}

// AdminConfig 啟動時若不存在就建立的管理員帳號
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

func (a AdminConfig) Enabled() bool {
	return a.Email != "" && a.Password != ""
}

// loadDotenv 允許在本機開發時以 .env 補環境變數，已存在的變數不會被覆寫
var loadDotenv = func() error {
	err := godotenv.Load()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

var lookupEnv = os.LookupEnv

// Load 從環境變數組出 Config
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		RedisPassword: env("REDIS_PASSWORD", ""),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		Log: LogConfig{
			Mode: env("LOG_MODE", "development"),
			File: env("LOG_FILE", ""),
		},
		Minio: MinioConfig{
			Endpoint:  env("MINIO_ENDPOINT", ""),
			AccessKey: env("MINIO_ACCESS_KEY", ""),
			SecretKey: env("MINIO_SECRET_KEY", ""),
			Bucket:    env("MINIO_BUCKET", "shop-admin"),
			PublicURL: strings.TrimRight(env("MINIO_PUBLIC_URL", ""), "/"),
		},
		Admin: AdminConfig{
			Email:    env("ADMIN_EMAIL", ""),
			Password: env("ADMIN_PASSWORD", ""),
			Name:     env("ADMIN_NAME", "Admin"),
		},
	}

	var err error
	if cfg.DatabaseURL, err = required("DATABASE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisAddr, err = required("REDIS_ADDR"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = required("JWT_SECRET"); err != nil {
		return nil, err
	}
	cfg.SessionKey = env("SESSION_KEY", cfg.JWTSecret)

	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.WorkerCount, err = envInt("WORKER_COUNT", 1); err != nil {
		return nil, err
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("WORKER_COUNT must be at least 1, got %d", cfg.WorkerCount)
	}
	if cfg.Minio.UseSSL, err = envBool("MINIO_USE_SSL", false); err != nil {
		return nil, err
	}
	if cfg.Log.Mode != "production" && cfg.Log.Mode != "development" {
		return nil, fmt.Errorf("LOG_MODE must be production or development, got %q", cfg.Log.Mode)
	}
	return cfg, nil
}

func env(key, def string) string {
	if v, ok := lookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func required(key string) (string, error) {
	v := env(key, "")
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func envInt(key string, def int) (int, error) {
	v := env(key, "")
	if v == "" {
		return def, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := env(key, "")
	if v == "" {
		return def, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
