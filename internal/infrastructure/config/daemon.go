package config

import "time"

// DaemonConfig holds settings for long-running simulation processes
type DaemonConfig struct {
	// PID file guarding a single background run per host
	PIDFile string `mapstructure:"pid_file"`

	// Graceful shutdown timeout for the metrics and stream servers
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
