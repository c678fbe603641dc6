package engine

import (
	"fmt"
	"strings"
)

// AnalyzeWriting scores the prose quality of the resume: action verb
// usage, measurable achievements, weak phrases, passive voice, word
// repetition, and over-long bullets. Starts from the writing base and
// deducts per triggered condition, floored at zero.
func (e *Engine) AnalyzeWriting(text string) (int, []string) {
	score := writingBase
	issues := []string{}

	actionHits := 0
	passiveHits := 0
	for _, w := range strings.Fields(text) {
		if e.tax.IsActionVerb(w) {
			actionHits++
		}
		if e.tax.IsPassiveAux(w) {
			passiveHits++
		}
	}

	if actionHits < minActionVerbHits {
		score -= actionVerbPenalty
		issues = append(issues, "Use more strong action verbs (Led, Delivered, Built, Optimized...).")
	}

	if !metricsRe.MatchString(text) {
		score -= noMetricsPenalty
		issues = append(issues, "Add measurable achievements (numbers, %, users, revenue, etc.).")
	}

	lower := strings.ToLower(text)
	var weakFound []string
	for _, phrase := range e.tax.WeakPhrases() {
		if strings.Contains(lower, phrase) {
			weakFound = append(weakFound, phrase)
		}
	}
	if len(weakFound) > 0 {
		score -= weakPhrasePenalty
		issues = append(issues, fmt.Sprintf("Weak phrases detected: %s. Use direct, impact-focused language.", strings.Join(weakFound, ", ")))
	}

	if passiveHits > passiveHitLimit {
		score -= passivePenalty
		issues = append(issues, "Too much passive voice. Prefer active (Built, Led, Delivered) sentences.")
	}

	if repeated := e.repeatedWords(text); len(repeated) > 0 {
		score -= repetitionPenalty
		if len(repeated) > maxReportedRepeats {
			repeated = repeated[:maxReportedRepeats]
		}
		issues = append(issues, "Some words are over-used: "+strings.Join(repeated, ", ")+".")
	}

	if hasLongLine(text) {
		score -= longBulletPenalty
		issues = append(issues, "Long bullets or paragraphs detected; keep each under ~40 words.")
	}

	return max(score, 0), issues
}

// repeatedWords returns, in first-occurrence order, every word of four
// or more letters that appears more than the repetition limit.
func (e *Engine) repeatedWords(text string) []string {
	freq := make(map[string]int)
	var order []string
	for _, w := range repeatWordRe.FindAllString(text, -1) {
		w = strings.ToLower(w)
		if freq[w] == 0 {
			order = append(order, w)
		}
		freq[w]++
	}

	var repeated []string
	for _, w := range order {
		if freq[w] > repetitionLimit {
			repeated = append(repeated, w)
		}
	}
	return repeated
}

func hasLongLine(text string) bool {
	for _, line := range nonBlankLines(text) {
		if len(strings.Fields(line)) > longBulletWordLimit {
			return true
		}
	}
	return false
}
