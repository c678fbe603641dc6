package cli

import (
	"fmt"

	"atspro/internal/ai"
	"atspro/internal/config"
	"atspro/internal/extract"
	"atspro/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for resume analysis and rewriting",
	Long: `Start an HTTP server that provides REST API endpoints for resume analysis
and rewriting.

Available endpoints:
- POST /analyze: Score resume text against ATS heuristics
- POST /upload-resume: Upload a resume file for analysis and rewrite
- POST /ai/rewrite-summary: Rewrite a summary section
- POST /ai/rewrite-bullet: Rewrite a single bullet point
- POST /ai/improve-section: Improve a resume section
- POST /ai/full-ats-improve: Rewrite a full resume
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
	bindFlag("server.tls.mode", "tls-mode")
	bindFlag("server.tls.certfile", "cert-file")
	bindFlag("server.tls.keyfile", "key-file")
	bindFlag("server.tls.cafile", "ca-file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Validate TLS configuration after applying overrides
	tempConfig := &config.Config{Server: cfg.Server}
	if err := tempConfig.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	eng := newEngine(cfg)

	rewriter, err := ai.NewRewriter(&cfg.AI, eng, logger)
	if err != nil {
		return fmt.Errorf("failed to create rewriter: %w", err)
	}

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.Server.MaxUploadSize,
		CORS:           cfg.Server.CORS,
		RateLimit:      &cfg.Server.RateLimit,
		Engine:         eng,
		Rewriter:       rewriter,
		Extractor:      extract.New(logger),
	}
	return server.NewServer(cfg, serverCfg, logger).Start()
}
