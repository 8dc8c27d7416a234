package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	cfg.JWTSecret = "0123456789abcdef0123"
	cfg.AdminAPIKey = "admin-key"
	cfg.Database.SQLite.Path = "test.db"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "short secret", mutate: func(c *Config) { c.JWTSecret = "short" }, wantErr: true},
		{name: "missing admin key", mutate: func(c *Config) { c.AdminAPIKey = "" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "cert without key", mutate: func(c *Config) { c.CertFile = "cert.pem" }, wantErr: true},
		{name: "cert and key", mutate: func(c *Config) { c.CertFile, c.KeyFile = "cert.pem", "key.pem" }},
		{name: "zero session", mutate: func(c *Config) { c.SessionMinutes = 0 }, wantErr: true},
		{name: "negative burst", mutate: func(c *Config) { c.RateLimit.Burst = -1 }, wantErr: true},
		{name: "trusted proxy cidr", mutate: func(c *Config) { c.TrustedProxies = []string{"10.0.0.0/8", "127.0.0.1"} }},
		{name: "bad trusted proxy", mutate: func(c *Config) { c.TrustedProxies = []string{"lb.internal"} }, wantErr: true},
		{name: "negative redis db", mutate: func(c *Config) { c.Redis.DB = -1 }, wantErr: true},
		{name: "unknown db type", mutate: func(c *Config) { c.Database.Type = "mysql" }, wantErr: true},
		{name: "empty sqlite path", mutate: func(c *Config) { c.Database.SQLite.Path = "" }, wantErr: true},
		{
			name: "postgres without host",
			mutate: func(c *Config) {
				c.Database.Type = DatabaseTypePostgreSQL
				c.Database.Postgres.Host = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "booking.toml")
	content := `
port = 8081
jwt_secret = "file-secret-0123456789"
admin_api_key = "file-key"
session_minutes = 15

[database]
type = "sqlite"

[database.sqlite]
path = "/tmp/from-file.db"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("BOOKING_ADMIN_API_KEY", "env-key")
	t.Setenv("BOOKING_PORT", "9090")
	t.Setenv("BOOKING_REDIS_ADDR", "redis:6379")
	t.Setenv("BOOKING_TRUSTED_PROXIES", "10.0.0.1, 192.168.0.0/16")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "env-key", cfg.AdminAPIKey)
	assert.Equal(t, "file-secret-0123456789", cfg.JWTSecret)
	assert.Equal(t, "/tmp/from-file.db", cfg.Database.SQLite.Path)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.TrustedProxies)
}

func TestDefaultTrustsNoProxy(t *testing.T) {
	assert.Empty(t, Default().TrustedProxies)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("BOOKING_JWT_SECRET", "")
	t.Setenv("BOOKING_ADMIN_API_KEY", "")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadBadNumber(t *testing.T) {
	t.Setenv("BOOKING_JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("BOOKING_ADMIN_API_KEY", "k")
	t.Setenv("BOOKING_PORT", "eighty")

	_, err := Load("")
	assert.Error(t, err)
}

func TestMasked(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Postgres.Password = "pw"
	cfg.Redis.Password = "redis-pw"

	m := cfg.Masked()
	assert.Equal(t, "******", m.JWTSecret)
	assert.Equal(t, "******", m.AdminAPIKey)
	assert.Equal(t, "******", m.Database.Postgres.Password)
	assert.Equal(t, "******", m.Redis.Password)
	assert.Equal(t, "admin-key", cfg.AdminAPIKey)
}

func TestSQLiteDSN(t *testing.T) {
	c := GetDefaultDatabaseConfig()
	c.SQLite.Path = "/data/b.db"
	c.SQLite.BusyTimeoutMs = 1000
	assert.Equal(t, "/data/b.db?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=1000&_foreign_keys=on", c.GetDSN())
}
