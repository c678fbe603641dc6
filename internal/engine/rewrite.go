package engine

import (
	"fmt"
	"sort"
	"strings"

	"atspro/internal/types"
)

const summaryLede = "Results-driven professional with a strong track record across projects and teams. " +
	"Skilled in delivering reliable, production-ready solutions and collaborating with cross-functional stakeholders. "

const measurableHint = " (add a measurable result, e.g., 20% improvement in efficiency)."

// RewriteSummary produces a third-person summary: first-person pronouns
// are stripped, the job description's most frequent keywords are folded
// into a fixed lede, and the first 90 words of the cleaned input are
// kept as the base. Empty input still yields the generic lede.
func (e *Engine) RewriteSummary(summary, jobDescription string) string {
	clean := pronounRe.ReplaceAllString(summary, "")
	clean = strings.TrimSpace(whitespaceRe.ReplaceAllString(clean, " "))

	words := strings.Fields(clean)
	if len(words) > summaryBaseWords {
		words = words[:summaryBaseWords]
	}
	base := strings.Join(words, " ")

	out := summaryLede
	if top := e.topKeywords(jobDescription, topJobKeywords); len(top) > 0 {
		out += fmt.Sprintf("Key strengths aligned with the role include: %s.", strings.Join(top, ", "))
	}
	if base != "" {
		out += " " + base
	}
	return strings.TrimSpace(out)
}

// topKeywords returns the n most frequent normalized tokens of the
// text, most frequent first, ties broken by first occurrence.
func (e *Engine) topKeywords(text string, n int) []string {
	tokens := e.Normalize(text)
	freq := make(map[string]int)
	var order []string
	for _, t := range tokens {
		if freq[t] == 0 {
			order = append(order, t)
		}
		freq[t]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}

// RewriteBullet rewrites a single experience line: bullet glyphs and a
// leading weak phrase are stripped, an action verb is prepended when
// the line starts with none, whitespace is collapsed, and a
// measurable-result hint is appended when the line carries no number.
// Empty input maps to empty output.
func (e *Engine) RewriteBullet(bullet string) string {
	text := strings.TrimSpace(bullet)
	text = strings.TrimSpace(strings.TrimLeft(text, "•-"))
	if text == "" {
		return ""
	}

	low := strings.ToLower(text)
	for _, phrase := range e.tax.WeakPhrases() {
		if strings.HasPrefix(low, phrase) {
			text = strings.TrimLeft(text[len(phrase):], " ,.-")
			break
		}
	}

	if !e.startsWithActionVerb(text) {
		text = e.tax.ActionVerbs()[0] + " " + text
	}

	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	if !metricsRe.MatchString(text) {
		text += measurableHint
	}
	return "• " + text
}

// Prefix match is case-sensitive; lines opening with a lowercased verb
// still get the default verb prepended.
func (e *Engine) startsWithActionVerb(text string) bool {
	for _, v := range e.tax.ActionVerbs() {
		if strings.HasPrefix(text, v) {
			return true
		}
	}
	return false
}

// ImproveSection rewrites each line of a section longer than six words
// as a bullet; shorter lines (headings, dates) pass through verbatim.
func (e *Engine) ImproveSection(sectionText string) string {
	var improved []string
	for _, line := range nonBlankLines(sectionText) {
		if len(strings.Fields(line)) > sectionBulletWords {
			improved = append(improved, e.RewriteBullet(line))
		} else {
			improved = append(improved, line)
		}
	}
	return strings.Join(improved, "\n")
}

// RewriteFull rebuilds the whole resume: segment, rewrite the summary
// (falling back to the full text when no summary bucket exists), clean
// and dedup skills, bullet-rewrite every experience line, and carry
// education and header verbatim into the canonical section order.
func (e *Engine) RewriteFull(resumeText, jobDescription string) types.RewriteResult {
	sections := e.Segment(resumeText)

	summarySource := strings.Join(sections.Summary, " ")
	if summarySource == "" {
		summarySource = resumeText
	}
	summary := e.RewriteSummary(summarySource, jobDescription)

	skillsBlock := e.skillsBlock(sections.Skills)

	var expLines []string
	for _, line := range sections.Experience {
		if rewritten := e.RewriteBullet(line); rewritten != "" {
			expLines = append(expLines, rewritten)
		}
	}
	experienceBlock := strings.Join(expLines, "\n")

	educationBlock := strings.TrimSpace(strings.Join(sections.Education, "\n"))
	headerBlock := strings.TrimSpace(strings.Join(sections.Header, "\n"))

	var parts []string
	if headerBlock != "" {
		parts = append(parts, headerBlock)
	}
	parts = append(parts, "SUMMARY", summary)
	if skillsBlock != "" {
		parts = append(parts, "", "SKILLS", skillsBlock)
	}
	if experienceBlock != "" {
		parts = append(parts, "", "EXPERIENCE", experienceBlock)
	}
	if educationBlock != "" {
		parts = append(parts, "", "EDUCATION", educationBlock)
	}

	return types.RewriteResult{
		Summary:         summary,
		SkillsBlock:     skillsBlock,
		ExperienceBlock: experienceBlock,
		EducationBlock:  educationBlock,
		FinalResume:     strings.TrimSpace(strings.Join(parts, "\n")),
	}
}

// skillsBlock splits the skills bucket on common delimiters, drops
// fragments shorter than two characters, dedups case-insensitively
// keeping the first spelling, and bullets each entry.
func (e *Engine) skillsBlock(skillLines []string) string {
	raw := strings.Join(skillLines, " ")
	seen := make(map[string]struct{})
	var out []string
	for _, part := range skillSplitRe.Split(raw, -1) {
		s := strings.TrimSpace(part)
		if len(s) < minSkillEntryLen {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, "• "+s)
	}
	return strings.Join(out, "\n")
}
