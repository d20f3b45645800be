// Package cli provides the command-line interface for itemd.
//
// Commands:
//   - serve: run the HTTP service (the default when no command is given)
//   - health: probe a running service's /health endpoint
//   - config: print the effective configuration and where each value came from
//   - version: show build information
//
// Configuration precedence, highest first: flags, ITEMD_* environment
// variables, --config file, ./.itemdrc.yaml, the global config file, defaults.
package cli
