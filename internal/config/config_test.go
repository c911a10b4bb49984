package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := Load()
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, 50, cfg.Pagination.DefaultLimit)
	require.Equal(t, 200, cfg.Pagination.MaxLimit)
	require.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	require.Equal(t, 120, cfg.Limits.WritePerMinute)
	require.True(t, cfg.Security.HSTS.Enabled)
}

func TestLoadYAMLOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := `
env: prod
http_addr: ":9090"
mysql:
  host: db.internal
  password: secret
pagination:
  max_limit: 500
cache:
  enable: false
  ttl: 1m
limits:
  write_per_minute: 30
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	chdir(t, dir)

	cfg := Load()
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.Equal(t, "db.internal", cfg.MySQL.Host)
	require.Equal(t, "secret", cfg.MySQL.Password)
	require.Equal(t, 500, cfg.Pagination.MaxLimit)
	// 未覆盖的字段保留默认值
	require.Equal(t, 50, cfg.Pagination.DefaultLimit)
	require.False(t, cfg.Cache.Enable)
	require.Equal(t, time.Minute, cfg.Cache.TTL)
	require.Equal(t, 30, cfg.Limits.WritePerMinute)
}

func TestDSNMasked(t *testing.T) {
	m := MySQLConfig{Host: "127.0.0.1", Port: 3306, User: "app", Password: "hunter2", DBName: "skilldex"}
	require.Contains(t, m.DSN(), "hunter2")
	masked := m.DSNMasked()
	require.NotContains(t, masked, "hunter2")
	require.Contains(t, masked, "******")
}
