package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DatabaseType represents the type of database
type DatabaseType string

const (
	DatabaseTypeSQLite     DatabaseType = "sqlite"
	DatabaseTypePostgreSQL DatabaseType = "postgres"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Type     DatabaseType   `toml:"type" json:"type"`
	SQLite   SQLiteConfig   `toml:"sqlite" json:"sqlite"`
	Postgres PostgresConfig `toml:"postgres" json:"postgres"`
	Pool     PoolConfig     `toml:"pool" json:"pool"`
}

// SQLiteConfig holds SQLite specific configuration
type SQLiteConfig struct {
	Path          string `toml:"path" json:"path"`
	BusyTimeoutMs int    `toml:"busy_timeout_ms" json:"busyTimeoutMs"`
}

// PostgresConfig holds PostgreSQL specific configuration
type PostgresConfig struct {
	Host     string `toml:"host" json:"host"`
	Port     int    `toml:"port" json:"port"`
	Database string `toml:"database" json:"database"`
	Username string `toml:"username" json:"username"`
	Password string `toml:"password" json:"password"`
	SSLMode  string `toml:"ssl_mode" json:"sslMode"`
	TimeZone string `toml:"time_zone" json:"timeZone"`
}

// PoolConfig bounds the shared connection pool. SQLite always runs with a
// single open connection regardless of MaxOpenConns.
type PoolConfig struct {
	MaxOpenConns           int `toml:"max_open_conns" json:"maxOpenConns"`
	MaxIdleConns           int `toml:"max_idle_conns" json:"maxIdleConns"`
	ConnMaxLifetimeMinutes int `toml:"conn_max_lifetime_minutes" json:"connMaxLifetimeMinutes"`
}

// GetDSN returns the data source name for the database
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case DatabaseTypePostgreSQL:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
			c.Postgres.Host,
			c.Postgres.Username,
			c.Postgres.Password,
			c.Postgres.Database,
			c.Postgres.Port,
			c.Postgres.SSLMode,
			c.Postgres.TimeZone,
		)
	default:
		return fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=%d&_foreign_keys=on",
			c.SQLite.Path, c.SQLite.BusyTimeoutMs)
	}
}

// ConnMaxLifetime converts the configured lifetime to a duration.
func (p PoolConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(p.ConnMaxLifetimeMinutes) * time.Minute
}

// GetDefaultDatabaseConfig returns default database configuration
func GetDefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Type: DatabaseTypeSQLite,
		SQLite: SQLiteConfig{
			Path:          getDefaultSQLitePath(),
			BusyTimeoutMs: 5000,
		},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "booking",
			Username: "booking",
			Password: "",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Pool: PoolConfig{
			MaxOpenConns:           10,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 30,
		},
	}
}

// getDefaultSQLitePath returns the default SQLite database path
func getDefaultSQLitePath() string {
	if IsDebug() {
		return "db/booking.db"
	}
	return "/etc/booking/booking.db"
}

func (c *DatabaseConfig) applyEnv() error {
	if v := os.Getenv("BOOKING_DB_TYPE"); v != "" {
		c.Type = DatabaseType(v)
	}
	setString(&c.SQLite.Path, "BOOKING_DB_PATH")
	setString(&c.Postgres.Host, "BOOKING_DB_HOST")
	setString(&c.Postgres.Database, "BOOKING_DB_NAME")
	setString(&c.Postgres.Username, "BOOKING_DB_USER")
	setString(&c.Postgres.Password, "BOOKING_DB_PASSWORD")
	setString(&c.Postgres.SSLMode, "BOOKING_DB_SSLMODE")
	if err := setInt(&c.Postgres.Port, "BOOKING_DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Pool.MaxOpenConns, "BOOKING_DB_MAX_OPEN_CONNS"); err != nil {
		return err
	}
	return setInt(&c.SQLite.BusyTimeoutMs, "BOOKING_DB_BUSY_TIMEOUT_MS")
}

// ValidateConfig validates the database configuration
func (c *DatabaseConfig) ValidateConfig() error {
	switch c.Type {
	case DatabaseTypeSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLite path cannot be empty")
		}
		if c.SQLite.BusyTimeoutMs < 0 {
			return fmt.Errorf("SQLite busy timeout cannot be negative")
		}
	case DatabaseTypePostgreSQL:
		if c.Postgres.Host == "" {
			return fmt.Errorf("PostgreSQL host cannot be empty")
		}
		if c.Postgres.Database == "" {
			return fmt.Errorf("PostgreSQL database name cannot be empty")
		}
		if c.Postgres.Username == "" {
			return fmt.Errorf("PostgreSQL username cannot be empty")
		}
		if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
			return fmt.Errorf("PostgreSQL port must be between 1 and 65535")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Type)
	}
	if c.Pool.MaxOpenConns <= 0 {
		return fmt.Errorf("pool max open conns must be positive")
	}
	return nil
}

// IsPostgreSQL returns true if the database type is PostgreSQL
func (c *DatabaseConfig) IsPostgreSQL() bool {
	return c.Type == DatabaseTypePostgreSQL
}

// IsSQLite returns true if the database type is SQLite
func (c *DatabaseConfig) IsSQLite() bool {
	return c.Type == DatabaseTypeSQLite
}

// EnsureDirectoryExists ensures the directory for SQLite database exists
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	if c.Type == DatabaseTypeSQLite {
		dir := filepath.Dir(c.SQLite.Path)
		return os.MkdirAll(dir, 0o755)
	}
	return nil
}
