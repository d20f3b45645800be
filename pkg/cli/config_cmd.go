package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/itemd/pkg/cli/internal/output"
	"github.com/getmockd/itemd/pkg/cliconfig"
)

// configOutput is the --json form of `itemd config`.
type configOutput struct {
	Config  *cliconfig.Config `json:"config"`
	Sources map[string]string `json:"sources"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration serve would use, after merging defaults, config
files, ITEMD_* environment variables and flags. Each value is annotated with
the layer it came from.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		if jsonOutput {
			sources := make(map[string]string, len(cliconfig.Keys))
			for _, key := range cliconfig.Keys {
				sources[key] = cfg.Source(key)
			}
			return output.JSON(cmd.OutOrStdout(), configOutput{Config: cfg, Sources: sources})
		}

		node, err := annotatedConfig(cfg)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		return enc.Close()
	},
}

// annotatedConfig renders cfg as a YAML mapping with each value's source as a
// line comment.
func annotatedConfig(cfg *cliconfig.Config) (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		node.Content[i+1].LineComment = cfg.Source(node.Content[i].Value)
	}
	return &node, nil
}

func init() {
	addConfigFlags(configCmd)
	rootCmd.AddCommand(configCmd)
}
