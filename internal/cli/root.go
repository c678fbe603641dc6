package cli

import (
	"context"

	"atspro/internal/config"
	"atspro/internal/engine"
	"atspro/internal/errors"
	"atspro/internal/taxonomy"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "atspro",
	Short: "A CLI tool for scoring and improving resumes against ATS heuristics",
	Long: `Atspro analyzes a resume against an Applicant-Tracking-System heuristic
model: section structure, formatting artifacts, writing quality, and keyword
overlap with a job description. It can also produce a rule-based or
model-assisted rewrite of the resume.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// newEngine builds the scoring engine from configuration
func newEngine(cfg *config.Config) *engine.Engine {
	return engine.New(
		taxonomy.New(cfg.Engine.Taxonomy.Overrides()),
		engine.Config{KeywordPolicy: engine.KeywordPolicy(cfg.Engine.KeywordPolicy)},
	)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
