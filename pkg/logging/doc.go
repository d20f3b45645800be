// Package logging provides structured logging configuration for itemd.
//
// It wraps log/slog so every component logs the same way. Components accept a
// *slog.Logger through an option and fall back to Nop when none is given.
//
// # Usage
//
//	logger, closeLogs := logging.Setup(logging.Config{
//	    Level:   logging.LevelInfo,
//	    Format:  logging.FormatJSON,
//	    LokiURL: "http://localhost:3100/loki/api/v1/push",
//	})
//	defer closeLogs()
//
//	logger.Info("server started", "addr", "0.0.0.0:5000")
//
// # Output Formats
//
//   - Text: human-readable, the default
//   - JSON: one object per line for log aggregation
//
// When LokiURL is set, records are also batched to a Grafana Loki push
// endpoint through a LokiHandler joined to the console handler with a
// MultiHandler.
package logging
