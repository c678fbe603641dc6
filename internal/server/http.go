package server

import (
	"time"

	"atspro/internal/ai"
	"atspro/internal/config"
	"atspro/internal/engine"
	atsproErrors "atspro/internal/errors"
	"atspro/internal/extract"
)

// AnalyzeRequest represents the request body for the analyze endpoint
type AnalyzeRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// RewriteRequest represents the request body for the full rewrite endpoint
type RewriteRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// SummaryRewriteRequest represents the request body for the summary rewrite endpoint
type SummaryRewriteRequest struct {
	Summary        string `json:"summary"`
	JobDescription string `json:"jobDescription"`
}

// BulletRewriteRequest represents the request body for the bullet rewrite endpoint
type BulletRewriteRequest struct {
	Bullet string `json:"bullet"`
}

// SectionImproveRequest represents the request body for the section improve endpoint
type SectionImproveRequest struct {
	SectionText string `json:"sectionText"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate auto-reload
	CertReloader *CertReloader

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit (JSON bodies and multipart uploads)
	MaxRequestSize int64

	// Cross-origin configuration
	CORS config.CORSConfig

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Pipeline components
	Engine    *engine.Engine
	Rewriter  ai.Rewriter
	Extractor *extract.Extractor

	// Logger
	Logger *atsproErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	CORS           config.CORSConfig
	RateLimit      *config.RateLimitConfig
	Engine         *engine.Engine
	Rewriter       ai.Rewriter
	Extractor      *extract.Extractor
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *atsproErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		CORS:           cfg.CORS,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Engine:         cfg.Engine,
		Rewriter:       cfg.Rewriter,
		Extractor:      cfg.Extractor,
		Logger:         logger,
	}
}
