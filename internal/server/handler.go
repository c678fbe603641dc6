package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"atspro/internal/observability"
	"atspro/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// rewriteStrategy names the active rewrite strategy for metric attributes
func (s *Server) rewriteStrategy() string {
	if s.AppConfig != nil && s.AppConfig.AI.RewriteStrategy != "" {
		return s.AppConfig.AI.RewriteStrategy
	}
	return "rule"
}

// createAnalyzeHandler wraps the analyze handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atspro.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		// Parse request
		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if s.MaxRequestSize > 0 && len(req.ResumeText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume text too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too large", fmt.Sprintf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "analyze"),
		)

		metrics := om.GetMetrics()
		var report types.AnalysisReport
		_ = metrics.TrackPipelineOperation(ctx, "analyze", func(ctx context.Context) error {
			doc := s.Engine.Document(req.ResumeText)
			report = s.Engine.Analyze(doc, req.JobDescription)
			return nil
		}, om)

		// Record success metrics
		metrics.RecordAnalysis(ctx, report.ATSScore, len(req.ResumeText), true, om,
			attribute.String("source", "json"))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", report.ATSScore),
			attribute.Int("keywords.matched", len(report.MatchedKeywords)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createFullRewriteHandler wraps the full rewrite handler with observability
func (s *Server) createFullRewriteHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("atspro.api")
		ctx, span := tracer.Start(ctx, "api.full_rewrite")
		defer span.End()

		var req RewriteRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "full_rewrite"),
			attribute.String("strategy", s.rewriteStrategy()),
		)

		metrics := om.GetMetrics()
		var result types.RewriteResult
		_ = metrics.TrackPipelineOperation(ctx, "full_rewrite", func(ctx context.Context) error {
			result = s.Rewriter.RewriteFull(ctx, req.ResumeText, req.JobDescription)
			return nil
		}, om)

		metrics.RecordRewrite(ctx, "full_rewrite", s.rewriteStrategy(), true, om)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.resume_length", len(result.FinalResume)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createSummaryRewriteHandler wraps the summary rewrite handler with observability
func (s *Server) createSummaryRewriteHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SummaryRewriteRequest
		s.handleTextRewrite(w, r, om, "rewrite_summary", &req, func(ctx context.Context) string {
			return s.Rewriter.RewriteSummary(ctx, req.Summary, req.JobDescription)
		})
	}
}

// createBulletRewriteHandler wraps the bullet rewrite handler with observability
func (s *Server) createBulletRewriteHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulletRewriteRequest
		s.handleTextRewrite(w, r, om, "rewrite_bullet", &req, func(ctx context.Context) string {
			return s.Rewriter.RewriteBullet(ctx, req.Bullet)
		})
	}
}

// createSectionImproveHandler wraps the section improve handler with observability
func (s *Server) createSectionImproveHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SectionImproveRequest
		s.handleTextRewrite(w, r, om, "improve_section", &req, func(ctx context.Context) string {
			return s.Rewriter.ImproveSection(ctx, req.SectionText)
		})
	}
}

// handleTextRewrite is the shared body of the three single-text rewrite
// endpoints. Empty inputs are valid and produce degenerate outputs, so
// only malformed JSON is rejected here.
func (s *Server) handleTextRewrite(w http.ResponseWriter, r *http.Request, om *observability.ObservabilityManager, operation string, req any, rewrite func(context.Context) string) {
	ctx := r.Context()
	tracer := om.Tracer("atspro.api")
	ctx, span := tracer.Start(ctx, "api."+operation)
	defer span.End()

	if err := parseJSONRequest(r, req); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	span.SetAttributes(
		attribute.String("operation", operation),
		attribute.String("strategy", s.rewriteStrategy()),
	)

	metrics := om.GetMetrics()
	var result types.TextResult
	_ = metrics.TrackPipelineOperation(ctx, operation, func(ctx context.Context) error {
		result.Text = rewrite(ctx)
		return nil
	}, om)

	metrics.RecordRewrite(ctx, operation, s.rewriteStrategy(), true, om)

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("response.text_length", len(result.Text)),
	)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		span.RecordError(err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordRateLimitHit(r.Context(), om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
