package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := parse(env.Options{Environment: map[string]string{"UNRELATED": "x"}})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/data/notification.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Empty(t, cfg.JWTSecret)
	assert.False(t, cfg.AuthEnabled())
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestParse_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := parse(env.Options{Environment: map[string]string{
		"PORT":                 "9000",
		"DATABASE_PATH":        ":memory:",
		"LOG_FORMAT":           "console",
		"JWT_SECRET":           "s3cret",
		"CORS_ALLOWED_ORIGINS": "http://localhost:3000,https://example.com",
		"SHUTDOWN_TIMEOUT":     "30s",
	}})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "file::memory:?_pragma=foreign_keys(1)&_txlock=immediate", cfg.DSN())
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "ポートが数値でない", env: map[string]string{"PORT": "http"}},
		{name: "ポートが範囲外", env: map[string]string{"PORT": "70000"}},
		{name: "ログ形式が不正", env: map[string]string{"LOG_FORMAT": "xml"}},
		{name: "期間が不正", env: map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parse(env.Options{Environment: tt.env})
			assert.Error(t, err)
		})
	}
}

func TestDSN_File(t *testing.T) {
	t.Parallel()

	cfg := &Config{DatabasePath: "/tmp/n.db"}
	assert.Equal(t,
		"file:/tmp/n.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate",
		cfg.DSN(),
	)
}

func TestLoad_DotEnv(t *testing.T) {
	// t.Setenv を使うため並列実行しない。
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_PATH=/tmp/from-dotenv.db\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("DATABASE_PATH") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-dotenv.db", cfg.DatabasePath)
	// 既存の環境変数が優先される。
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	t.Setenv("PORT", "8181")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8181", cfg.Port)
}

func TestConfig_InMemory(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Config{DatabasePath: ":memory:"}).InMemory())
	assert.False(t, (&Config{DatabasePath: "/data/notification.db"}).InMemory())
}
