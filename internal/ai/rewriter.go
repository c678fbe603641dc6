package ai

import (
	"context"
	"strings"
	"time"

	"atspro/internal/config"
	"atspro/internal/engine"
	"atspro/internal/errors"
	"atspro/internal/types"
)

// UnavailableMarker prefixes every in-band degradation string the
// generative strategy emits when the model cannot be reached.
const UnavailableMarker = "[rewrite unavailable]"

// NewRewriter selects the rewrite strategy from configuration. The
// rule strategy needs no generator; the generative strategy wraps one
// and keeps the rule engine as its fallback for full rewrites.
func NewRewriter(cfg *config.AIConfig, eng *engine.Engine, logger *errors.Logger) (Rewriter, error) {
	switch cfg.RewriteStrategy {
	case "", StrategyRule:
		return NewRuleRewriter(eng), nil
	case StrategyGenerative:
		gen, err := NewGeminiGenerator(cfg, logger)
		if err != nil {
			return nil, err
		}
		return NewGenerativeRewriter(gen, eng, logger), nil
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"invalid rewrite strategy: "+cfg.RewriteStrategy+" (must be 'rule' or 'generative')", nil)
	}
}

// RuleRewriter delegates every operation to the deterministic engine.
type RuleRewriter struct {
	engine *engine.Engine
}

var _ Rewriter = (*RuleRewriter)(nil)

// NewRuleRewriter creates the deterministic rewrite strategy.
func NewRuleRewriter(eng *engine.Engine) *RuleRewriter {
	return &RuleRewriter{engine: eng}
}

func (r *RuleRewriter) RewriteSummary(_ context.Context, summary, jobDescription string) string {
	return r.engine.RewriteSummary(summary, jobDescription)
}

func (r *RuleRewriter) RewriteBullet(_ context.Context, bullet string) string {
	return r.engine.RewriteBullet(bullet)
}

func (r *RuleRewriter) ImproveSection(_ context.Context, sectionText string) string {
	return r.engine.ImproveSection(sectionText)
}

func (r *RuleRewriter) RewriteFull(_ context.Context, resumeText, jobDescription string) types.RewriteResult {
	return r.engine.RewriteFull(resumeText, jobDescription)
}

// GenerativeRewriter delegates rewrites to a model backend. Failures
// never surface as errors: text operations degrade to an in-band
// marker string, full rewrites fall back to the rule engine so the
// caller still receives a usable resume.
type GenerativeRewriter struct {
	generator Generator
	fallback  *engine.Engine
	logger    *errors.Logger
	recorder  UsageRecorder
}

var _ Rewriter = (*GenerativeRewriter)(nil)

// NewGenerativeRewriter creates the model-backed rewrite strategy.
func NewGenerativeRewriter(gen Generator, fallback *engine.Engine, logger *errors.Logger) *GenerativeRewriter {
	return &GenerativeRewriter{generator: gen, fallback: fallback, logger: logger}
}

// SetUsageRecorder installs a recorder for model backend usage reports.
func (g *GenerativeRewriter) SetUsageRecorder(r UsageRecorder) {
	g.recorder = r
}

func (g *GenerativeRewriter) RewriteSummary(ctx context.Context, summary, jobDescription string) string {
	return g.generate(ctx, "rewrite_summary", summaryPrompt(summary, jobDescription))
}

func (g *GenerativeRewriter) RewriteBullet(ctx context.Context, bullet string) string {
	if strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(bullet), "•-")) == "" {
		return ""
	}
	return g.generate(ctx, "rewrite_bullet", bulletPrompt(bullet))
}

func (g *GenerativeRewriter) ImproveSection(ctx context.Context, sectionText string) string {
	return g.generate(ctx, "improve_section", sectionPrompt(sectionText))
}

func (g *GenerativeRewriter) RewriteFull(ctx context.Context, resumeText, jobDescription string) types.RewriteResult {
	started := time.Now()
	out, usage, err := g.generator.Generate(ctx, fullRewritePrompt(resumeText, jobDescription))
	g.report(ctx, "full_rewrite", started, usage, err)
	if err != nil {
		g.logger.LogError(err, "Generative full rewrite failed, falling back to rule engine")
		return g.fallback.RewriteFull(resumeText, jobDescription)
	}

	result := g.fallback.RewriteFull(resumeText, jobDescription)
	result.FinalResume = strings.TrimSpace(out)
	return result
}

func (g *GenerativeRewriter) generate(ctx context.Context, operation, prompt string) string {
	started := time.Now()
	out, usage, err := g.generator.Generate(ctx, prompt)
	g.report(ctx, operation, started, usage, err)
	if err != nil {
		g.logger.LogError(err, "Generative rewrite degraded to in-band marker",
			"operation", operation)
		return UnavailableMarker + " " + operation
	}
	return strings.TrimSpace(out)
}

// GetModelInfo reports the readiness of the underlying model backend.
func (g *GenerativeRewriter) GetModelInfo(ctx context.Context) *ModelInfo {
	return g.generator.GetModelInfo(ctx)
}

// BackendStats exposes circuit breaker statistics when the backend
// provides them.
func (g *GenerativeRewriter) BackendStats() map[string]any {
	if provider, ok := g.generator.(interface{ GetCircuitBreakerStats() map[string]any }); ok {
		return provider.GetCircuitBreakerStats()
	}
	return nil
}

func (g *GenerativeRewriter) report(ctx context.Context, operation string, started time.Time, usage *TokenUsage, err error) {
	if g.recorder == nil {
		return
	}
	g.recorder.RecordGeneration(ctx, operation, time.Since(started), usage, err)
}
