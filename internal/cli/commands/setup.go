// Package commands implements the meshlint CLI subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/leapstack-labs/meshlint/internal/cli/config"
	"github.com/leapstack-labs/meshlint/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the config, logger, and renderer for a command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables so commands stay usable in tests and scripts.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		QuoteEscape:  getEnvOrDefault("MESHLINT_QUOTE_ESCAPE", config.DefaultQuoteEscape),
		OutputFormat: getEnvOrDefault("MESHLINT_OUTPUT", config.DefaultOutput),
		HashComments: os.Getenv("MESHLINT_HASH_COMMENTS") == "true",
		Verbose:      os.Getenv("MESHLINT_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
