package ai

import (
	"context"
	"crypto/rand"
	stderrors "errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"atspro/internal/config"
	"atspro/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiGenerator implements Generator on top of Google Gemini.
type GeminiGenerator struct {
	client            *genai.Client
	config            *config.AIConfig
	generationBreaker *GenerationBreaker
	modelBreaker      *ModelInfoBreaker
	logger            *errors.Logger
}

var _ Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(cfg *config.AIConfig, logger *errors.Logger) (*GeminiGenerator, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiGenerator{
		client:            client,
		config:            cfg,
		generationBreaker: NewGenerationBreaker(cfg, logger),
		modelBreaker:      NewModelInfoBreaker(cfg, logger),
		logger:            logger,
	}, nil
}

// ModelInfo describes the availability of the configured model.
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// TokenUsage represents token usage information from model responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// Generate sends the prompt through the circuit breaker and retry
// machinery and returns the model's plain-text response.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, *TokenUsage, error) {
	tracer := otel.Tracer("atspro.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.generate")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Int("ai.prompt_length", len(prompt)),
	)

	genConfig := &genai.GenerateContentConfig{}
	if g.config.Temperature != nil && *g.config.Temperature > 0 {
		genConfig.Temperature = g.config.Temperature
	}

	result, err := g.generationBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(ctx, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(prompt), genConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, errors.NewAIError(errors.ErrCodeAIServiceFailed, "Failed to generate content", err)
	}

	usage := extractTokenUsage(result)
	if usage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", usage.InputTokens),
			attribute.Int64("ai.tokens.output", usage.OutputTokens),
			attribute.Int64("ai.tokens.total", usage.TotalTokens),
		)
	}
	span.SetAttributes(attribute.Bool("success", true))

	return result.Text(), usage, nil
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiGenerator) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	model, err := g.modelBreaker.Execute(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// GetCircuitBreakerStats returns statistics for both breakers
func (g *GeminiGenerator) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"generation_operations": g.generationBreaker.GetStats(),
		"model_operations":      g.modelBreaker.GetStats(),
	}
	stats["overall_healthy"] = g.generationBreaker.IsHealthy() && g.modelBreaker.IsHealthy()
	return stats
}

// Close implements Generator
func (g *GeminiGenerator) Close() error {
	// Gemini client doesn't expose a Close method for single-shot usage
	return nil
}

// executeWithRetry runs fn with exponential backoff and jitter,
// skipping retries for non-retryable errors.
func (g *GeminiGenerator) executeWithRetry(ctx context.Context, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error
	maxRetries := g.config.MaxRetries

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying generation",
				"attempt", attempt,
				"max_retries", maxRetries,
				"error", lastErr.Error())

			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("Generation succeeded after retry",
					"successful_attempt", attempt+1)
			}
			return result, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "Generation failed after all retry attempts",
		"total_attempts", maxRetries+1)
	return nil, fmt.Errorf("generation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableError treats network failures and throttling/server-side
// HTTP statuses as transient.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}
	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
