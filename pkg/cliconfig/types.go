// Package cliconfig provides configuration types and loading for the itemd CLI.
package cliconfig

import "time"

// Config represents the complete configuration for the itemd CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Explicit --config file
// 4. Local config file (.itemdrc.yaml in current directory)
// 5. Global config file ($XDG_CONFIG_HOME/itemd/config.yaml)
// 6. Default values (lowest priority)
type Config struct {
	// Server settings
	Host            string        `yaml:"host" json:"host"`
	Port            int           `yaml:"port" json:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout" json:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" json:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" json:"shutdownTimeout"`

	// Storage: empty keeps items in memory.
	DBPath string `yaml:"dbPath,omitempty" json:"dbPath,omitempty"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	LokiURL   string `yaml:"lokiUrl,omitempty" json:"lokiUrl,omitempty"`

	// Metrics settings
	RuntimeMetrics bool `yaml:"runtimeMetrics" json:"runtimeMetrics"`

	// Sources tracks where each value came from (for `itemd config`).
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which keys a file or env layer set explicitly, so an
	// explicit zero or false still overrides a lower layer.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Keys lists every configuration key in display order.
var Keys = []string{
	"host",
	"port",
	"readTimeout",
	"writeTimeout",
	"shutdownTimeout",
	"dbPath",
	"logLevel",
	"logFormat",
	"lokiUrl",
	"runtimeMetrics",
}

// MarkFlag records that key was set on the command line.
func (c *Config) MarkFlag(key string) {
	if c.Sources == nil {
		c.Sources = make(map[string]string)
	}
	c.Sources[key] = SourceFlag
}

// Source returns where key's value came from.
func (c *Config) Source(key string) string {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}
