package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// jsonOutput is the persistent --json flag.
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "itemd",
	Short: "itemd is a minimal item service with health and Prometheus metrics",
	Long: `itemd serves a small CRUD API over a collection of named items, a health
check, and request counters in Prometheus text format.

Running itemd with no command starts the server. Configuration can be provided
via flags, ITEMD_* environment variables, or YAML files (.itemdrc.yaml in the
current directory, or config.yaml under the user config dir's itemd folder).`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Main()
}

// Main runs the CLI with os.Args and returns the process exit code.
func Main() int {
	rootCmd.SetArgs(defaultToServe(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// Execute runs the CLI and exits the process. This is called by main.main().
func Execute() {
	os.Exit(Main())
}

// defaultToServe routes an invocation that names no subcommand, such as
// `itemd` or `itemd --port 8080`, to serve. Help requests are left alone.
func defaultToServe(args []string) []string {
	for _, a := range args {
		if a == "-h" || a == "--help" {
			return args
		}
	}
	cmd, _, err := rootCmd.Find(args)
	if err != nil || cmd != rootCmd {
		return args
	}
	return append([]string{serveCmd.Name()}, args...)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
