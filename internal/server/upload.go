package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"atspro/internal/engine"
	"atspro/internal/errors"
	"atspro/internal/observability"
	"atspro/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createUploadHandler wraps the multipart upload handler with observability.
// The uploaded document is extracted, analyzed and rewritten in one pass;
// nothing is persisted.
func (s *Server) createUploadHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atspro.api")
		ctx, span := tracer.Start(ctx, "api.upload_resume")
		defer span.End()

		metrics := om.GetMetrics()

		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		filename, data, jobDescription, err := parseUploadRequest(r, s.MaxRequestSize)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			metrics.RecordUpload(ctx, false, om, attribute.String("reason", "bad_request"))
			writeErrorResponse(w, "Invalid upload", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("upload.filename_ext", strings.ToLower(filepath.Ext(filename))),
			attribute.Int("upload.size_bytes", len(data)),
			attribute.Int("request.job_length", len(jobDescription)),
			attribute.String("operation", "upload_resume"),
		)

		// Extraction failures are boundary rejections: the pipeline only
		// ever receives validated text.
		text, hints, err := s.Extractor.Extract(filename, data)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "extraction"))
			metrics.RecordUpload(ctx, false, om, attribute.String("reason", extractionFailureReason(err)))
			writeErrorResponse(w, "Could not process document", err.Error(), extractionStatusCode(err))
			return
		}

		var result types.UploadResult
		_ = metrics.TrackPipelineOperation(ctx, "upload_resume", func(ctx context.Context) error {
			doc := s.Engine.Document(text)
			doc.Hints = hints
			result = types.UploadResult{
				Filename:       filename,
				Preview:        previewOf(text),
				Text:           text,
				Analysis:       s.Engine.Analyze(doc, jobDescription),
				ImprovedResume: s.Rewriter.RewriteFull(ctx, text, jobDescription).FinalResume,
			}
			return nil
		}, om)

		metrics.RecordUpload(ctx, true, om,
			attribute.String("format", strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")))
		metrics.RecordAnalysis(ctx, result.Analysis.ATSScore, len(text), true, om,
			attribute.String("source", "upload"))
		metrics.RecordRewrite(ctx, "full_rewrite", s.rewriteStrategy(), true, om)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", result.Analysis.ATSScore),
			attribute.Int("extracted.text_length", len(text)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// parseUploadRequest reads the multipart form: a required "file" part and
// an optional "job_description" field.
func parseUploadRequest(r *http.Request, maxSize int64) (filename string, data []byte, jobDescription string, err error) {
	if maxSize <= 0 {
		maxSize = 32 << 20
	}
	if err := r.ParseMultipartForm(maxSize); err != nil {
		return "", nil, "", fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, "", fmt.Errorf("missing file: a multipart \"file\" part is required")
	}
	defer func() {
		_ = file.Close()
	}()

	data, err = io.ReadAll(file)
	if err != nil {
		return "", nil, "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return header.Filename, data, r.FormValue("job_description"), nil
}

// previewOf truncates extracted text to the fixed preview length,
// counting characters rather than bytes.
func previewOf(text string) string {
	runes := []rune(text)
	if len(runes) <= engine.PreviewLength() {
		return text
	}
	return string(runes[:engine.PreviewLength()])
}

// extractionStatusCode maps extraction error codes onto HTTP statuses
func extractionStatusCode(err error) int {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Code == errors.ErrCodeUnsupportedFormat {
		return http.StatusUnsupportedMediaType
	}
	return http.StatusBadRequest
}

// extractionFailureReason returns a low-cardinality metric attribute for
// an extraction failure
func extractionFailureReason(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return strings.ToLower(appErr.Code)
	}
	return "extraction_failed"
}
