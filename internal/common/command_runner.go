package common

import (
	"context"

	"atspro/internal/errors"
	"atspro/internal/types"
)

// DocumentInput carries the extracted resume text plus the optional job
// description read from disk.
type DocumentInput struct {
	ResumeFile     string
	ResumeText     string
	Hints          *types.StructuralHints
	JobDescription string
}

// ExtractFunc converts raw document bytes into pipeline text.
type ExtractFunc func(filename string, data []byte) (string, *types.StructuralHints, error)

// DocumentOperationFunc is a generic signature for any pipeline operation
// over an extracted document.
type DocumentOperationFunc[Output any] func(ctx context.Context, input DocumentInput) (Output, error)

// LogDetailsFunc defines how to log the start of an operation.
type LogDetailsFunc func(input DocumentInput, cfg CommandConfig)

// RunDocumentCommand encapsulates the common logic for file-based CLI
// commands: validate and read the resume document, extract its text,
// read the optional job description, run the operation, and hand the
// result to the configured output formatter.
func RunDocumentCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	resumeFile, jobFile string,
	extract ExtractFunc,
	operation DocumentOperationFunc[Output],
	logDetails LogDetailsFunc,
) error {
	// Pass the logger when creating helpers
	fileProcessor := NewFileProcessor(logger)
	outputHandler := NewOutputHandler(logger)

	data, err := fileProcessor.ValidateAndReadDocument(resumeFile)
	if err != nil {
		return err
	}

	text, hints, err := extract(resumeFile, data)
	if err != nil {
		return err
	}

	input := DocumentInput{
		ResumeFile: resumeFile,
		ResumeText: text,
		Hints:      hints,
	}

	if jobFile != "" {
		contents, err := fileProcessor.ValidateAndReadFiles(jobFile)
		if err != nil {
			return err
		}
		input.JobDescription = contents[0]
	}

	logDetails(input, cmdConfig)

	result, err := operation(ctx, input)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
