package config

import (
	"fmt"
	"time"
)

// DatabaseConfig selects where run records and the event journal live.
// sqlite is the default; postgres is used when several hosts share one history.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// postgres DSN or URL; wins over the Postgres block
	URL string `mapstructure:"url"`

	Postgres PostgresConfig `mapstructure:"postgres"`

	// sqlite file, or ":memory:"
	Path string `mapstructure:"path"`

	Pool PoolConfig `mapstructure:"pool"`

	// gorm logger level
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=silent error warn info"`

	// Queries slower than this are logged at warn when LogLevel allows it
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
}

// PostgresConfig is used when URL is empty
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
}

// DSN renders the keyword/value connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Name, p.SSLMode)
}

// PoolConfig applies to postgres; sqlite always uses one connection
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
