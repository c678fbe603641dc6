package cli

import (
	"context"

	"atspro/internal/ai"
	"atspro/internal/common"
	"atspro/internal/extract"
	"atspro/internal/types"

	"github.com/spf13/cobra"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [resume-file]",
	Short: "Produce an improved rewrite of a resume",
	Long: `Rewrite a resume document (.pdf, .docx, .txt, .md) section by section:
deduplicated skills, action-verb bullet points, and a keyword-aware summary
targeting an optional job description. The rewrite strategy (rule-based or
model-assisted) is selected in configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runRewrite,
}

func init() {
	rewriteCmd.Flags().StringP("job", "j", "", "Job description file to target the rewrite at")
	rewriteCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	rewriteCmd.Flags().StringP("format", "f", "", "Output format: json, text, markdown (default from config)")
}

func runRewrite(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	jobFile, _ := cmd.Flags().GetString("job")
	outputFile, _ := cmd.Flags().GetString("output")
	outputFormat, _ := cmd.Flags().GetString("format")
	if outputFormat == "" {
		outputFormat = cfg.App.DefaultFormat
	}
	if err := common.ValidateOutputFormat(outputFormat, cfg.App.SupportedFormats); err != nil {
		return err
	}

	eng := newEngine(cfg)
	extractor := extract.New(logger)

	rewriter, err := ai.NewRewriter(&cfg.AI, eng, logger)
	if err != nil {
		return err
	}

	cmdConfig := common.CommandConfig{
		OutputFile:   outputFile,
		OutputFormat: outputFormat,
	}

	return common.RunDocumentCommand(cmd.Context(), logger, cmdConfig, args[0], jobFile,
		extractor.Extract,
		func(ctx context.Context, input common.DocumentInput) (types.RewriteResult, error) {
			return rewriter.RewriteFull(ctx, input.ResumeText, input.JobDescription), nil
		},
		func(input common.DocumentInput, cmdConfig common.CommandConfig) {
			logger.Info("Starting resume rewrite",
				"resume_file", input.ResumeFile,
				"resume_length", len(input.ResumeText),
				"job_length", len(input.JobDescription),
				"strategy", cfg.AI.RewriteStrategy,
				"output_format", cmdConfig.OutputFormat)
		})
}
