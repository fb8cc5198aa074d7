package config_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"LinkGate-Backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")
	content := `
env: local
url_shortener:
  alias_length: 8
  base_url: "https://lg.example"
database:
  driver: mysql
  port: 3306
access:
  secret: "s3cr3t"
  grant_ttl: 2h
sweeper:
  interval: 15m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 8, cfg.URLShortener.AliasLength)
	assert.Equal(t, "https://lg.example", cfg.URLShortener.BaseURL)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "s3cr3t", cfg.Access.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Access.GrantTTL)
	assert.Equal(t, 15*time.Minute, cfg.Sweeper.Interval)
	// defaults still apply to fields missing from the file
	assert.Equal(t, ":8080", cfg.HTTPServer.Address)
	assert.Equal(t, 5*time.Minute, cfg.Sweeper.Timeout)
}

func TestLoad_EnvOnlyWhenFileMissing(t *testing.T) {
	t.Setenv("ALIAS_LENGTH", "7")
	t.Setenv("SWEEPER_INTERVAL", "30m")
	t.Setenv("ADMIN_TOKEN", "admin")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 7, cfg.URLShortener.AliasLength)
	assert.Equal(t, 30*time.Minute, cfg.Sweeper.Interval)
	assert.Equal(t, "admin", cfg.Admin.Token)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Access.GrantTTL)
}

func TestLoad_RejectsAliasLengthOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"zero", "0", true},
		{"negative", "-3", true},
		{"longer than a short id", "65", true},
		{"minimum", "1", false},
		{"maximum", "64", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ALIAS_LENGTH", tt.value)

			cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, strconv.Itoa(cfg.URLShortener.AliasLength))
		})
	}
}
