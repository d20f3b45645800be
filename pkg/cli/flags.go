package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/itemd/pkg/cliconfig"
)

// configFlag binds a command-line flag to a configuration key.
type configFlag struct {
	name string
	key  string
}

var configFlags = []configFlag{
	{"host", "host"},
	{"port", "port"},
	{"read-timeout", "readTimeout"},
	{"write-timeout", "writeTimeout"},
	{"shutdown-timeout", "shutdownTimeout"},
	{"db", "dbPath"},
	{"log-level", "logLevel"},
	{"log-format", "logFormat"},
	{"loki-url", "lokiUrl"},
	{"runtime-metrics", "runtimeMetrics"},
}

// addConfigFlags registers the configuration flags on cmd. Defaults are shown
// in help only; a flag overrides other layers only when given.
func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("config", "c", "", "Path to a YAML config file")
	f.String("host", cliconfig.DefaultHost, "Interface to bind")
	f.IntP("port", "p", cliconfig.DefaultPort, "HTTP server port (0 = any free port)")
	f.Duration("read-timeout", cliconfig.DefaultReadTimeout, "HTTP read timeout")
	f.Duration("write-timeout", cliconfig.DefaultWriteTimeout, "HTTP write timeout")
	f.Duration("shutdown-timeout", cliconfig.DefaultShutdownTimeout, "Graceful shutdown timeout")
	f.String("db", "", "SQLite database path (default: in-memory store)")
	f.String("log-level", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	f.String("log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")
	f.String("loki-url", "", "Also ship logs to this Loki push URL")
	f.Bool("runtime-metrics", false, "Expose Go runtime and process metrics")
}

// resolveConfig loads every configuration layer, applies flags that were set
// explicitly, and validates the result.
func resolveConfig(cmd *cobra.Command) (*cliconfig.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := cliconfig.LoadAll(configFile)
	if err != nil {
		return nil, err
	}

	for _, cf := range configFlags {
		flag := cmd.Flags().Lookup(cf.name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := cfg.Set(cf.key, flag.Value.String()); err != nil {
			return nil, fmt.Errorf("--%s: %w", cf.name, err)
		}
		cfg.MarkFlag(cf.key)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
