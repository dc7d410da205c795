package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func stubEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	origLookup, origDotenv := lookupEnv, loadDotenv
	lookupEnv = func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
	loadDotenv = func() error { return nil }
	t.Cleanup(func() {
		lookupEnv, loadDotenv = origLookup, origDotenv
	})
}

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL": "postgres://u:p@localhost/shop",
		"REDIS_ADDR":   "localhost:6379",
		"JWT_SECRET":   "s3cret",
	}
}

func TestLoadDefaults(t *testing.T) {
	stubEnv(t, baseEnv())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@localhost/shop", cfg.DatabaseURL)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, 0, cfg.RedisDB)
	require.Equal(t, 1, cfg.WorkerCount)
	require.Equal(t, "s3cret", cfg.SessionKey)
	require.Equal(t, "development", cfg.Log.Mode)
	require.False(t, cfg.Minio.Enabled())
	require.False(t, cfg.Admin.Enabled())
	require.Equal(t, "Admin", cfg.Admin.Name)
}

func TestLoadOverrides(t *testing.T) {
	vars := baseEnv()
	vars["REDIS_DB"] = "2"
	vars["WORKER_COUNT"] = " 4 "
	vars["SESSION_KEY"] = "flash-key"
	vars["LOG_MODE"] = "production"
	vars["MINIO_ENDPOINT"] = "minio:9000"
	vars["MINIO_USE_SSL"] = "true"
	vars["MINIO_PUBLIC_URL"] = "http://cdn.local/media/"
	vars["ADMIN_EMAIL"] = "root@example.com"
	vars["ADMIN_PASSWORD"] = "pw"
	stubEnv(t, vars)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, 4, cfg.WorkerCount)
	require.Equal(t, "flash-key", cfg.SessionKey)
	require.Equal(t, "production", cfg.Log.Mode)
	require.True(t, cfg.Minio.Enabled())
	require.True(t, cfg.Minio.UseSSL)
	require.Equal(t, "http://cdn.local/media", cfg.Minio.PublicURL)
	require.True(t, cfg.Admin.Enabled())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
		want   string
	}{
		{"missing database", func(m map[string]string) { delete(m, "DATABASE_URL") }, "DATABASE_URL"},
		{"missing redis", func(m map[string]string) { m["REDIS_ADDR"] = "  " }, "REDIS_ADDR"},
		{"missing secret", func(m map[string]string) { delete(m, "JWT_SECRET") }, "JWT_SECRET"},
		{"bad redis db", func(m map[string]string) { m["REDIS_DB"] = "abc" }, "REDIS_DB"},
		{"bad worker count", func(m map[string]string) { m["WORKER_COUNT"] = "x" }, "WORKER_COUNT"},
		{"zero workers", func(m map[string]string) { m["WORKER_COUNT"] = "0" }, "WORKER_COUNT"},
		{"bad ssl flag", func(m map[string]string) { m["MINIO_USE_SSL"] = "maybe" }, "MINIO_USE_SSL"},
		{"bad log mode", func(m map[string]string) { m["LOG_MODE"] = "verbose" }, "LOG_MODE"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vars := baseEnv()
			tc.mutate(vars)
			stubEnv(t, vars)

			_, err := Load()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadDotenvError(t *testing.T) {
	stubEnv(t, baseEnv())
	loadDotenv = func() error { return errors.New("bad line") }

	_, err := Load()
	require.ErrorContains(t, err, ".env")
}
