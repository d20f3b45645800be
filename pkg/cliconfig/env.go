package cliconfig

import (
	"fmt"
	"strconv"
	"time"
)

// Environment variables read by LoadEnvConfig, keyed by config key.
var EnvVars = map[string]string{
	"host":            "ITEMD_HOST",
	"port":            "ITEMD_PORT",
	"readTimeout":     "ITEMD_READ_TIMEOUT",
	"writeTimeout":    "ITEMD_WRITE_TIMEOUT",
	"shutdownTimeout": "ITEMD_SHUTDOWN_TIMEOUT",
	"dbPath":          "ITEMD_DB",
	"logLevel":        "ITEMD_LOG_LEVEL",
	"logFormat":       "ITEMD_LOG_FORMAT",
	"lokiUrl":         "ITEMD_LOKI_URL",
	"runtimeMetrics":  "ITEMD_RUNTIME_METRICS",
}

// EnvError reports an environment variable that could not be parsed.
type EnvError struct {
	Name  string
	Value string
	Err   error
}

func (e *EnvError) Error() string {
	return fmt.Sprintf("invalid %s=%q: %v", e.Name, e.Value, e.Err)
}

func (e *EnvError) Unwrap() error { return e.Err }

// LoadEnvConfig builds a Config layer from ITEMD_* variables using lookup
// (normally os.LookupEnv). SetFields lists the variables present.
func LoadEnvConfig(lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{
		Sources:   make(map[string]string),
		SetFields: make(map[string]bool),
	}

	for _, key := range Keys {
		name := EnvVars[key]
		value, ok := lookup(name)
		if !ok {
			continue
		}
		if err := cfg.Set(key, value); err != nil {
			return nil, &EnvError{Name: name, Value: value, Err: err}
		}
		cfg.SetFields[key] = true
	}
	return cfg, nil
}

// Set parses value into the field named by key. Keys are the YAML names.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "host":
		c.Host = value
	case "port":
		c.Port, err = strconv.Atoi(value)
	case "readTimeout":
		c.ReadTimeout, err = time.ParseDuration(value)
	case "writeTimeout":
		c.WriteTimeout, err = time.ParseDuration(value)
	case "shutdownTimeout":
		c.ShutdownTimeout, err = time.ParseDuration(value)
	case "dbPath":
		c.DBPath = value
	case "logLevel":
		c.LogLevel = value
	case "logFormat":
		c.LogFormat = value
	case "lokiUrl":
		c.LokiURL = value
	case "runtimeMetrics":
		c.RuntimeMetrics, err = strconv.ParseBool(value)
	default:
		err = fmt.Errorf("unknown key %q", key)
	}
	return err
}
