package server

import (
	"net/http"
	"strings"

	"atspro/internal/observability"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	// Add middleware layers with observability
	rateLimitHandler := s.createRateLimitMiddleware(om)
	requestLimitHandler := s.requestSizeLimitMiddleware()
	corsHandler := s.corsMiddleware()

	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return corsHandler(
			rateLimitHandler(
				s.authMiddleware(requestLimitHandler(h)),
			),
		)
	}

	mux.HandleFunc("/", corsHandler(s.rootHandler))
	mux.HandleFunc("/health", corsHandler(s.healthHandler))
	mux.HandleFunc("/stats", corsHandler(s.statsHandler))
	mux.HandleFunc("/analyze", protected(s.createAnalyzeHandler(om)))
	mux.HandleFunc("/upload-resume", protected(s.createUploadHandler(om)))
	mux.HandleFunc("/ai/rewrite-summary", protected(s.createSummaryRewriteHandler(om)))
	mux.HandleFunc("/ai/rewrite-bullet", protected(s.createBulletRewriteHandler(om)))
	mux.HandleFunc("/ai/improve-section", protected(s.createSectionImproveHandler(om)))
	mux.HandleFunc("/ai/full-ats-improve", protected(s.createFullRewriteHandler(om)))

	return mux
}

// corsMiddleware sets cross-origin response headers and answers preflight
// requests when CORS is enabled
func (s *Server) corsMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	if !s.CORS.Enabled {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	origins := "*"
	if len(s.CORS.AllowedOrigins) > 0 {
		origins = strings.Join(s.CORS.AllowedOrigins, ", ")
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next(w, r)
		}
	}
}

// authMiddleware provides API key authentication
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication if no API keys are configured
		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		// Check for API key in X-API-Key header
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			// Check for Bearer token in Authorization header as fallback
			authHeader := r.Header.Get("Authorization")
			if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				apiKey = after
			}
		}

		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		// Validate API key
		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		// Log successful authentication
		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"client_ip", r.RemoteAddr,
			"api_key_prefix", maskAPIKey(apiKey))

		next(w, r)
	}
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				// Limit the request body size
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}

			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
