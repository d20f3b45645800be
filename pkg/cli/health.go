package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/itemd/pkg/cli/internal/output"
)

var (
	healthURL     string
	healthTimeout time.Duration
)

type healthResult struct {
	Status string `json:"status"`
	URL    string `json:"url"`
	Error  string `json:"error,omitempty"`
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check if an itemd server is healthy and reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		url := strings.TrimSuffix(healthURL, "/") + "/health"
		result := healthResult{Status: "healthy", URL: url}

		if err := probeHealth(cmd.Context(), url, healthTimeout); err != nil {
			result.Status = "unhealthy"
			result.Error = err.Error()
			if jsonOutput {
				_ = output.JSON(cmd.OutOrStdout(), result)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "unhealthy: %v\n", err)
			}
			return errors.New("server is not healthy")
		}

		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "healthy")
		return nil
	},
}

// probeHealth expects a 200 with {"status":"ok"} from url.
func probeHealth(ctx context.Context, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}
	if body.Status != "ok" {
		return fmt.Errorf("reported status %q", body.Status)
	}
	return nil
}

func init() {
	healthCmd.Flags().StringVar(&healthURL, "url", "http://localhost:5000", "Base URL of the itemd server")
	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 5*time.Second, "Request timeout")
	rootCmd.AddCommand(healthCmd)
}
