// Package engine implements the deterministic resume analysis and
// rewrite pipeline: tokenization, section segmentation, formatting and
// writing heuristics, keyword matching against a job description, score
// aggregation, and the rule-based rewriters.
package engine

import (
	"regexp"

	"atspro/internal/taxonomy"
)

// KeywordPolicy selects how matched job-description keywords are scored.
type KeywordPolicy string

const (
	// KeywordPolicyPlain scores every matched token equally.
	KeywordPolicyPlain KeywordPolicy = "plain"
	// KeywordPolicyWeighted scores matches by taxonomy class (hard
	// skills over titles over soft skills over generic tokens).
	KeywordPolicyWeighted KeywordPolicy = "weighted"
)

// Scoring constants. Sub-scores are capped so the total stays within
// 0-100: structure 30, formatting 20, writing 30, keywords 40 (plain)
// or 50 (weighted), with a final clamp at 100.
const (
	formattingBase       = 20
	shortResumeThreshold = 200
	shortResumePenalty   = 2
	tabPenalty           = 3
	spacingRunPenalty    = 2
	nonASCIIPenalty      = 2
	tablePenalty         = 3
	imagePenalty         = 2
	headerFooterPenalty  = 2
	maxCleanPageCount    = 3
	pageCountPenalty     = 2

	writingBase         = 30
	minActionVerbHits   = 4
	actionVerbPenalty   = 5
	noMetricsPenalty    = 4
	weakPhrasePenalty   = 4
	passiveHitLimit     = 10
	passivePenalty      = 3
	repetitionLimit     = 6
	repetitionPenalty   = 2
	maxReportedRepeats  = 6
	longBulletWordLimit = 40
	longBulletPenalty   = 2

	structureSummaryPoints    = 5
	structureSkillsPoints     = 10
	structureExperiencePoints = 10
	structureEducationPoints  = 5

	keywordPointsPerMatch = 3
	keywordPlainCap       = 40
	keywordWeightedCap    = 50
	weightHardSkill       = 4
	weightJobTitle        = 3
	weightSoftSkill       = 2
	weightGeneric         = 1

	maxTotalScore = 100

	minTokenRunes       = 3
	headerLineCount     = 3
	skillsHeaderMaxLen  = 40
	minSkillEntryLen    = 2
	summaryBaseWords    = 90
	topJobKeywords      = 15
	sectionBulletWords  = 6
	uploadPreviewLength = 800
)

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
	spacingRunRe = regexp.MustCompile(`\s{3,}`)
	nonASCIIRe   = regexp.MustCompile(`[^\x00-\x7F]`)
	metricsRe    = regexp.MustCompile(`\d+%|\d{2,}`)
	repeatWordRe = regexp.MustCompile(`[a-zA-Z]{4,}`)
	pronounRe    = regexp.MustCompile(`(?i)\b(i|my|me|mine)\b`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	skillSplitRe = regexp.MustCompile(`[,\n;/•|]`)
)

// Config holds the engine's tunable behavior. Zero value means plain
// keyword scoring.
type Config struct {
	KeywordPolicy KeywordPolicy
}

// Engine runs the analysis and rewrite pipeline. Safe for concurrent
// use; all state is immutable after construction.
type Engine struct {
	tax    *taxonomy.Tables
	policy KeywordPolicy
}

// New creates an engine over the given taxonomy tables. A nil tables
// argument falls back to the compiled-in defaults.
func New(tables *taxonomy.Tables, cfg Config) *Engine {
	if tables == nil {
		tables = taxonomy.Default()
	}
	policy := cfg.KeywordPolicy
	if policy == "" {
		policy = KeywordPolicyPlain
	}
	return &Engine{tax: tables, policy: policy}
}

// Taxonomy exposes the engine's vocabulary tables.
func (e *Engine) Taxonomy() *taxonomy.Tables {
	return e.tax
}

// PreviewLength is the number of leading characters returned as a
// document preview by the upload flow.
func PreviewLength() int {
	return uploadPreviewLength
}
