package logger

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"shop-admin/internal/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func stubGlobals(t *testing.T) *int {
	t.Helper()
	calls := 0
	orig := replaceGlobs
	replaceGlobs = func(*zap.Logger) func() {
		calls++
		return func() {}
	}
	t.Cleanup(func() { replaceGlobs = orig })
	return &calls
}

func TestNewDevelopment(t *testing.T) {
	calls := stubGlobals(t)

	l, err := New(config.LogConfig{Mode: "development"})
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zapcore.DebugLevel))
	require.Equal(t, 1, *calls)
}

func TestNewProduction(t *testing.T) {
	stubGlobals(t)

	l, err := New(config.LogConfig{Mode: "production"})
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zapcore.DebugLevel))
	require.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestNewWithFile(t *testing.T) {
	stubGlobals(t)
	orig := stdout
	stdout = zapcore.AddSync(io.Discard)
	t.Cleanup(func() { stdout = orig })

	path := filepath.Join(t.TempDir(), "admin.log")
	l, err := New(config.LogConfig{Mode: "production", File: path})
	require.NoError(t, err)

	l.Info("category deleted", zap.Int("id", 3))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"category deleted"`)
	require.Contains(t, string(data), `"id":3`)
}
