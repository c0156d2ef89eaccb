package config

import (
	"fmt"
	"time"
)

// MetricsConfig controls the Prometheus endpoint. Collection is off unless
// Enabled is set, in which case engine metrics are recorded and served.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`

	// How often board gauges (cards by type/status, heroes, stock) are resampled
	SampleInterval time.Duration `mapstructure:"sample_interval"`
}

// Address is host:port for the listener
func (m MetricsConfig) Address() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}
