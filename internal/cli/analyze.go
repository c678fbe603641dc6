package cli

import (
	"context"

	"atspro/internal/common"
	"atspro/internal/extract"
	"atspro/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Score a resume against ATS heuristics",
	Long: `Analyze a resume document (.pdf, .docx, .txt, .md) and report its ATS
score: structure, formatting, writing quality, and keyword overlap with an
optional job description.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("job", "j", "", "Job description file to match keywords against")
	analyzeCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	analyzeCmd.Flags().StringP("format", "f", "", "Output format: json, text, markdown (default from config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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

	cmdConfig := common.CommandConfig{
		OutputFile:   outputFile,
		OutputFormat: outputFormat,
	}

	return common.RunDocumentCommand(cmd.Context(), logger, cmdConfig, args[0], jobFile,
		extractor.Extract,
		func(_ context.Context, input common.DocumentInput) (types.AnalysisReport, error) {
			doc := eng.Document(input.ResumeText)
			doc.Hints = input.Hints
			return eng.Analyze(doc, input.JobDescription), nil
		},
		func(input common.DocumentInput, cmdConfig common.CommandConfig) {
			logger.Info("Starting resume analysis",
				"resume_file", input.ResumeFile,
				"resume_length", len(input.ResumeText),
				"job_length", len(input.JobDescription),
				"output_format", cmdConfig.OutputFormat)
		})
}
