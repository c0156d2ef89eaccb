package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" && cfg.Database.Type == "sqlite" {
		cfg.Database.Path = "cardquest.db"
	}
	setPostgresDefaults(&cfg.Database.Postgres)
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "silent"
	}
	if cfg.Database.SlowQueryThreshold == 0 {
		cfg.Database.SlowQueryThreshold = 200 * time.Millisecond
	}

	// Simulation defaults
	if cfg.Simulation.TickInterval == 0 {
		cfg.Simulation.TickInterval = 100 * time.Millisecond
	}
	if cfg.Simulation.StatusInterval == 0 {
		cfg.Simulation.StatusInterval = 10 * time.Second
	}
	if cfg.Simulation.ContentPath == "" {
		cfg.Simulation.ContentPath = "configs/content.yaml"
	}
	if cfg.Simulation.JournalDedupWindow == 0 {
		cfg.Simulation.JournalDedupWindow = 500 * time.Millisecond
	}
	if cfg.Simulation.Balance == (BalanceConfig{}) {
		cfg.Simulation.Balance = DefaultBalanceConfig()
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.SampleInterval == 0 {
		cfg.Metrics.SampleInterval = 5 * time.Second
	}

	// Stream defaults
	if cfg.Stream.Address == "" {
		cfg.Stream.Address = "localhost:8765"
	}
	if cfg.Stream.Path == "" {
		cfg.Stream.Path = "/events"
	}
	if cfg.Stream.BufferSize == 0 {
		cfg.Stream.BufferSize = 256
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/cardquest.pid"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 10 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

func setPostgresDefaults(p *PostgresConfig) {
	if p.Host == "" {
		p.Host = "localhost"
	}
	if p.Port == 0 {
		p.Port = 5432
	}
	if p.User == "" {
		p.User = "cardquest"
	}
	if p.Name == "" {
		p.Name = "cardquest"
	}
	if p.SSLMode == "" {
		p.SSLMode = "disable"
	}
}
