package model

// Config holds the host-side settings. The storage identity is deliberately
// absent: it is fixed at build time.
type Config struct {
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat   string `mapstructure:"log_format" yaml:"log_format"`
	AtomicWrite bool   `mapstructure:"atomic_write" yaml:"atomic_write"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() Config {
	return Config{
		LogLevel:    "info",
		LogFormat:   "text",
		AtomicWrite: false,
	}
}
