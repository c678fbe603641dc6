package ai

import (
	"context"
	"time"

	"atspro/internal/types"
)

// Generator is the capability interface for text-generating model
// backends. Implementations receive a fully rendered prompt and return
// the raw model output.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// Rewriter is the strategy interface behind every rewrite operation.
// Implementations never return errors: the rule-based strategy cannot
// fail, and the generative strategy degrades in-band instead.
type Rewriter interface {
	RewriteSummary(ctx context.Context, summary, jobDescription string) string
	RewriteBullet(ctx context.Context, bullet string) string
	ImproveSection(ctx context.Context, sectionText string) string
	RewriteFull(ctx context.Context, resumeText, jobDescription string) types.RewriteResult
}

// UsageRecorder receives duration, token usage and outcome reports for
// every model backend call made by the generative strategy. A nil
// recorder disables reporting.
type UsageRecorder interface {
	RecordGeneration(ctx context.Context, operation string, duration time.Duration, usage *TokenUsage, err error)
}

// Rewrite strategy names accepted in configuration.
const (
	StrategyRule       = "rule"
	StrategyGenerative = "generative"
)
