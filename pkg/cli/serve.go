package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/getmockd/itemd/pkg/cliconfig"
	"github.com/getmockd/itemd/pkg/engine"
	"github.com/getmockd/itemd/pkg/item"
	"github.com/getmockd/itemd/pkg/logging"
	"github.com/getmockd/itemd/pkg/metrics"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the item service (default command)",
	Long: `Start the item service in the foreground. It stops gracefully on
SIGINT or SIGTERM, waiting up to the shutdown timeout for in-flight requests.

Items are kept in memory unless --db names a SQLite database file.`,
	Example: `  # Start with defaults (0.0.0.0:5000, in-memory)
  itemd serve

  # Persist items and log JSON
  itemd serve --db items.db --log-format json

  # Ship logs to Loki and expose runtime metrics
  itemd serve --loki-url http://localhost:3100/loki/api/v1/push --runtime-metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		return runServe(cmd, cfg)
	},
}

func runServe(cmd *cobra.Command, cfg *cliconfig.Config) (err error) {
	logger, closeLogs := logging.Setup(logging.Config{
		Level:   logging.ParseLevel(cfg.LogLevel),
		Format:  logging.ParseFormat(cfg.LogFormat),
		Output:  cmd.ErrOrStderr(),
		LokiURL: cfg.LokiURL,
	})
	defer func() { err = errors.Join(err, closeLogs()) }()

	store, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, store.Close()) }()

	var metricOpts []metrics.Option
	if cfg.RuntimeMetrics {
		metricOpts = append(metricOpts, metrics.WithRuntimeMetrics())
	}

	srv := engine.NewServer(&engine.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	},
		engine.WithStore(store),
		engine.WithMetrics(metrics.NewRegistry(metricOpts...)),
		engine.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "itemd listening on http://%s\n", srv.Addr())

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case serveErr := <-srv.Done():
		if serveErr != nil {
			_ = srv.Stop()
			return fmt.Errorf("server exited: %w", serveErr)
		}
	}
	return srv.Stop()
}

// openStore returns the SQLite store when path is set, else a memory store.
func openStore(path string) (item.Store, error) {
	if path == "" {
		return item.NewMemoryStore(), nil
	}
	store, err := item.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open item database: %w", err)
	}
	return store, nil
}

func init() {
	addConfigFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}
