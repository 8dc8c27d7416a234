// Package config loads the booking service configuration from a .env file, an
// optional TOML file and BOOKING_* environment variables.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultConfigFile     = "booking.toml"
	defaultPort           = 3000
	defaultSessionMinutes = 60
	defaultAuditCron      = "@every 10m"
	minSecretLength       = 16
)

// Config is the effective process configuration. It is built once by Load and
// handed to the components that need it; nothing mutates it afterwards.
type Config struct {
	Listen         string          `toml:"listen" json:"listen"`
	Port           int             `toml:"port" json:"port"`
	CertFile       string          `toml:"cert_file" json:"certFile"`
	KeyFile        string          `toml:"key_file" json:"keyFile"`
	JWTSecret      string          `toml:"jwt_secret" json:"jwtSecret"`
	AdminAPIKey    string          `toml:"admin_api_key" json:"adminApiKey"`
	SessionMinutes int             `toml:"session_minutes" json:"sessionMinutes"`
	CORSOrigin     string          `toml:"cors_origin" json:"corsOrigin"`
	TrustedProxies []string        `toml:"trusted_proxies" json:"trustedProxies"`
	AuditCron      string          `toml:"audit_cron" json:"auditCron"`
	RateLimit      RateLimitConfig `toml:"rate_limit" json:"rateLimit"`
	Redis          RedisConfig     `toml:"redis" json:"redis"`
	Database       DatabaseConfig  `toml:"database" json:"database"`
}

// RateLimitConfig bounds anonymous auth traffic per client IP.
type RateLimitConfig struct {
	RequestsPerMinute int `toml:"requests_per_minute" json:"requestsPerMinute"`
	Burst             int `toml:"burst" json:"burst"`
}

// RedisConfig points at a Redis shared by every instance. When Addr is empty
// each process keeps its own rate-limit state in memory.
type RedisConfig struct {
	Addr     string `toml:"addr" json:"addr"`
	Password string `toml:"password" json:"password"`
	DB       int    `toml:"db" json:"db"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("BOOKING_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("BOOKING_DEBUG") == "true"
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("BOOKING_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetConfigPath() string {
	if p := os.Getenv("BOOKING_CONFIG"); p != "" {
		return p
	}
	return defaultConfigFile
}

// Default returns a configuration with every optional field populated.
// Secrets are left empty on purpose: they must come from deployment.
func Default() *Config {
	return &Config{
		Listen:         "",
		Port:           defaultPort,
		SessionMinutes: defaultSessionMinutes,
		AuditCron:      defaultAuditCron,
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 30,
			Burst:             10,
		},
		Database: *GetDefaultDatabaseConfig(),
	}
}

// Load builds the configuration. A missing file at path is not an error when
// path is the default location; an explicitly requested file must exist.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && path == defaultConfigFile {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Listen, "BOOKING_LISTEN")
	setString(&c.CertFile, "BOOKING_CERT_FILE")
	setString(&c.KeyFile, "BOOKING_KEY_FILE")
	setString(&c.JWTSecret, "BOOKING_JWT_SECRET")
	setString(&c.AdminAPIKey, "BOOKING_ADMIN_API_KEY")
	setString(&c.CORSOrigin, "BOOKING_CORS_ORIGIN")
	setString(&c.AuditCron, "BOOKING_AUDIT_CRON")
	if v, ok := os.LookupEnv("BOOKING_TRUSTED_PROXIES"); ok {
		c.TrustedProxies = splitList(v)
	}
	setString(&c.Redis.Addr, "BOOKING_REDIS_ADDR")
	setString(&c.Redis.Password, "BOOKING_REDIS_PASSWORD")
	if err := setInt(&c.Redis.DB, "BOOKING_REDIS_DB"); err != nil {
		return err
	}

	if err := setInt(&c.Port, "BOOKING_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.SessionMinutes, "BOOKING_SESSION_MINUTES"); err != nil {
		return err
	}
	if err := setInt(&c.RateLimit.RequestsPerMinute, "BOOKING_RATE_PER_MINUTE"); err != nil {
		return err
	}
	if err := setInt(&c.RateLimit.Burst, "BOOKING_RATE_BURST"); err != nil {
		return err
	}
	return c.Database.applyEnv()
}

// Validate checks the fields the service cannot start without.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("jwt secret must be at least %d characters (BOOKING_JWT_SECRET)", minSecretLength)
	}
	if c.AdminAPIKey == "" {
		return errors.New("admin api key is required (BOOKING_ADMIN_API_KEY)")
	}
	if c.Port <= 0 || c.Port > math.MaxUint16 {
		return fmt.Errorf("port is not valid: %d", c.Port)
	}
	if (c.CertFile == "") != (c.KeyFile == "") {
		return errors.New("cert file and key file must be set together")
	}
	if c.SessionMinutes <= 0 {
		return fmt.Errorf("session minutes must be positive: %d", c.SessionMinutes)
	}
	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate limit values cannot be negative")
	}
	for _, p := range c.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("trusted proxy is not an IP or CIDR: %q", p)
			}
		}
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis db cannot be negative: %d", c.Redis.DB)
	}
	return c.Database.ValidateConfig()
}

// TLSEnabled reports whether the server should terminate TLS itself.
func (c *Config) TLSEnabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// TokenTTL is the lifetime of an issued session token.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.SessionMinutes) * time.Minute
}

// Masked returns a copy safe for printing.
func (c *Config) Masked() Config {
	m := *c
	m.JWTSecret = mask(m.JWTSecret)
	m.AdminAPIKey = mask(m.AdminAPIKey)
	m.Database.Postgres.Password = mask(m.Database.Postgres.Password)
	m.Redis.Password = mask(m.Redis.Password)
	return m
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "******"
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s is not a number: %q", key, v)
	}
	*dst = n
	return nil
}
