package config

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	// Required when Output is "file"
	FilePath string `mapstructure:"file_path"`

	IncludeCaller     bool `mapstructure:"include_caller"`
	IncludeStacktrace bool `mapstructure:"include_stacktrace"`

	// Sampling caps repeated identical messages per second. Zero disables it.
	Sampling SamplingConfig `mapstructure:"sampling"`
}

// SamplingConfig keeps the first Initial entries with the same level and
// message each second, then every Thereafter-th one
type SamplingConfig struct {
	Initial    int `mapstructure:"initial" validate:"min=0"`
	Thereafter int `mapstructure:"thereafter" validate:"min=0"`
}
