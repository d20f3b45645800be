package cliconfig

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/getmockd/itemd/pkg/logging"
)

// MaxTimeout caps the configurable timeouts.
const MaxTimeout = time.Hour

// Validate checks ranges and enumerations. Port 0 asks for an ephemeral port.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range (0-65535)", c.Port))
	}
	for _, t := range []struct {
		key   string
		value time.Duration
	}{
		{"readTimeout", c.ReadTimeout},
		{"writeTimeout", c.WriteTimeout},
		{"shutdownTimeout", c.ShutdownTimeout},
	} {
		if t.value < 0 || t.value > MaxTimeout {
			errs = append(errs, fmt.Errorf("%s %s is out of range (0-%s)", t.key, t.value, MaxTimeout))
		}
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("logLevel %q is not one of debug, info, warn, error", c.LogLevel))
	}
	if !logging.ValidFormat(c.LogFormat) {
		errs = append(errs, fmt.Errorf("logFormat %q is not one of text, json", c.LogFormat))
	}
	if c.LokiURL != "" {
		u, err := url.Parse(c.LokiURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("lokiUrl %q must be an http(s) URL", c.LokiURL))
		}
	}

	return errors.Join(errs...)
}
