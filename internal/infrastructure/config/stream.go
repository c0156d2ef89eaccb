package config

// StreamConfig holds the websocket event stream configuration
type StreamConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Listen address for the stream server (host:port)
	Address string `mapstructure:"address"`

	// Path clients connect to
	Path string `mapstructure:"path"`

	// Per-client send buffer; slow clients are dropped once it fills
	BufferSize int `mapstructure:"buffer_size" validate:"min=1"`
}
