package cliconfig

import "time"

// DefaultHost binds all interfaces.
const DefaultHost = "0.0.0.0"

// DefaultPort is the default HTTP port.
const DefaultPort = 5000

// DefaultReadTimeout is the default read timeout.
const DefaultReadTimeout = 30 * time.Second

// DefaultWriteTimeout is the default write timeout.
const DefaultWriteTimeout = 30 * time.Second

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 5 * time.Second

// DefaultLogLevel is the default minimum log level.
const DefaultLogLevel = "info"

// DefaultLogFormat is the default console log format.
const DefaultLogFormat = "text"

// NewDefault creates a new Config with default values.
func NewDefault() *Config {
	cfg := &Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
		Sources:         make(map[string]string, len(Keys)),
	}
	for _, key := range Keys {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}
