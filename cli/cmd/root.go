// ABOUTME: Root command for the pricing CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/beyondskool/pricing-wizard/cli/internal/client"
	"github.com/beyondskool/pricing-wizard/cli/internal/tui"
)

var (
	apiURL     string
	jsonOutput bool
	saveDir    string
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "pricing-wizard",
	Short: "CLI for the BeyondSkool pricing wizard",
	Long: `pricing-wizard is a command-line interface for the BeyondSkool pricing backend.

Run without a subcommand to start the interactive wizard; use quote for
scripted, non-interactive pricing runs.

Environment Variables:
  PRICING_API_URL  Backend API URL (default: http://localhost:8080)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

// runTUI launches the interactive wizard against the configured backend
func runTUI(ctx context.Context) error {
	c := client.New(GetAPIURL())

	// A failed health check still launches the TUI; the wizard surfaces
	// connectivity errors when the quote is priced.
	mailConfigured := false
	if resp, err := c.Health(ctx); err == nil {
		mailConfigured = resp.Mail == "ok"
	}

	return tui.Run(c, mailConfigured, saveDir)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides PRICING_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.Flags().StringVar(&saveDir, "save-dir", ".", "Directory for agreements saved from the interactive wizard")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("PRICING_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
