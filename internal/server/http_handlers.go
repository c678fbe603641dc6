package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"atspro/internal/ai"
	"atspro/internal/extract"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	return s.AppConfig.Observability.HealthCheck.Timeout
}

// rootHandler returns the service banner with the endpoint catalog
func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "atspro",
		"version": s.Version,
		"endpoints": map[string]string{
			"POST /analyze":             "Score resume text against ATS heuristics",
			"POST /upload-resume":       "Upload a resume file for analysis and rewrite",
			"POST /ai/rewrite-summary":  "Rewrite a summary section",
			"POST /ai/rewrite-bullet":   "Rewrite a single bullet point",
			"POST /ai/improve-section":  "Improve a resume section",
			"POST /ai/full-ats-improve": "Rewrite a full resume",
			"GET /health":               "Health check",
			"GET /stats":                "Server statistics",
		},
		"supported_upload_formats": extract.SupportedExtensions(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode banner response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// healthHandler provides a health check endpoint covering the rewrite
// backend and TLS certificate state
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "atspro",
		"version": s.Version,
	}

	overallHealthy := true

	// Check rewrite backend availability
	rewriteStatus := s.checkRewriteHealth()
	response["rewrite"] = rewriteStatus
	if available, ok := rewriteStatus["available"].(bool); ok && !available {
		overallHealthy = false
	}

	// Check certificate status if auto-reload is running
	certStatus := s.checkCertificateHealth()
	if certStatus != nil {
		response["certificates"] = certStatus
		if healthy, ok := certStatus["healthy"].(bool); ok && !healthy {
			overallHealthy = false
		}
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkRewriteHealth reports the state of the configured rewrite strategy.
// The rule strategy is always available; the generative strategy probes
// its model backend.
func (s *Server) checkRewriteHealth() map[string]any {
	status := map[string]any{
		"strategy":  s.rewriteStrategy(),
		"available": true,
	}

	gen, ok := s.Rewriter.(*ai.GenerativeRewriter)
	if !ok {
		return status
	}

	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	modelInfo := gen.GetModelInfo(ctx)
	status["model"] = modelInfo
	status["available"] = modelInfo != nil && modelInfo.Available
	// The strategy degrades in-band when the backend is down, so the
	// caller knows rewrites stay functional at reduced quality.
	status["degrades_to"] = ai.StrategyRule

	if breakerStats := gen.BackendStats(); breakerStats != nil {
		status["circuit_breakers"] = breakerStats
	}

	return status
}

// checkCertificateHealth checks the health of TLS certificates
func (s *Server) checkCertificateHealth() map[string]any {
	if s.CertReloader == nil {
		return nil
	}

	certStatus := make(map[string]any)

	timeToExpiry, err := s.CertReloader.CheckExpiry()
	if err != nil {
		certStatus["healthy"] = false
		certStatus["error"] = fmt.Sprintf("Failed to check certificate expiry: %v", err)
		return certStatus
	}

	// Consider certificates unhealthy if they expire within 24 hours
	criticalThreshold := 24 * time.Hour
	warningThreshold := 7 * 24 * time.Hour

	certStatus["time_to_expiry_hours"] = int(timeToExpiry.Hours())
	certStatus["time_to_expiry"] = timeToExpiry.String()

	switch {
	case timeToExpiry <= 0:
		certStatus["healthy"] = false
		certStatus["status"] = "expired"
		certStatus["message"] = "Certificate has expired"
	case timeToExpiry <= criticalThreshold:
		certStatus["healthy"] = false
		certStatus["status"] = "critical"
		certStatus["message"] = "Certificate expires within 24 hours"
	case timeToExpiry <= warningThreshold:
		certStatus["healthy"] = true
		certStatus["status"] = "warning"
		certStatus["message"] = "Certificate expires within 7 days"
	default:
		certStatus["healthy"] = true
		certStatus["status"] = "ok"
		certStatus["message"] = "Certificate is valid"
	}

	certStatus["auto_reload"] = map[string]any{
		"enabled":       true,
		"running":       s.CertReloader.IsRunning(),
		"watched_files": s.CertReloader.WatchedFiles(),
	}

	if metrics := s.CertReloader.Metrics(); metrics != nil {
		certStatus["metrics"] = map[string]any{
			"reload_count":         metrics.ReloadCount,
			"reload_success_count": metrics.ReloadSuccessCount,
			"reload_failure_count": metrics.ReloadFailureCount,
			"last_reload_time":     metrics.LastReloadTime,
			"last_reload_success":  metrics.LastReloadSuccess,
			"last_reload_error":    metrics.LastReloadError,
		}
	}

	return certStatus
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "atspro",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
		"pipeline": map[string]any{
			"rewrite_strategy": s.rewriteStrategy(),
			"keyword_policy":   s.keywordPolicy(),
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// keywordPolicy names the active keyword scoring policy for the stats
// endpoint
func (s *Server) keywordPolicy() string {
	if s.AppConfig != nil && s.AppConfig.Engine.KeywordPolicy != "" {
		return s.AppConfig.Engine.KeywordPolicy
	}
	return "plain"
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
