package engine

import "atspro/internal/types"

// Analyze runs the full scoring pipeline over a document and returns
// the aggregated report. The overall score is the sum of the four
// sub-scores clamped at 100.
func (e *Engine) Analyze(doc types.Document, jobDescription string) types.AnalysisReport {
	flags := e.SectionFlags(doc.Text)
	structureScore := e.StructureScore(flags)
	formattingScore, formattingIssues := e.AnalyzeFormatting(doc.Text, doc.Hints)
	writingScore, writingIssues := e.AnalyzeWriting(doc.Text)
	keywordScore, matched := e.MatchKeywords(doc.Text, jobDescription)

	total := structureScore + formattingScore + writingScore + keywordScore

	return types.AnalysisReport{
		ATSScore:         min(total, maxTotalScore),
		StructureScore:   structureScore,
		FormattingScore:  formattingScore,
		WritingScore:     writingScore,
		KeywordScore:     keywordScore,
		SectionsFound:    flags,
		FormattingIssues: formattingIssues,
		WritingIssues:    writingIssues,
		MatchedKeywords:  matched,
		Suggestions:      e.Suggestions(flags, jobDescription),
	}
}

// StructureScore awards fixed points per present section: experience
// and skills carry double the weight of summary and education.
func (e *Engine) StructureScore(flags map[string]bool) int {
	score := 0
	if flags["summary"] {
		score += structureSummaryPoints
	}
	if flags["skills"] {
		score += structureSkillsPoints
	}
	if flags["experience"] {
		score += structureExperiencePoints
	}
	if flags["education"] {
		score += structureEducationPoints
	}
	return score
}

// Suggestions emits one actionable suggestion per missing section,
// plus a keyword-alignment suggestion when a job description was
// supplied.
func (e *Engine) Suggestions(flags map[string]bool, jobDescription string) []string {
	suggestions := []string{}
	if !flags["summary"] {
		suggestions = append(suggestions, "Add a clear SUMMARY section at the top.")
	}
	if !flags["skills"] {
		suggestions = append(suggestions, "Add a SKILLS section with key tools, languages and technologies.")
	}
	if !flags["experience"] {
		suggestions = append(suggestions, "Add an EXPERIENCE section with bullet-based achievements.")
	}
	if !flags["education"] {
		suggestions = append(suggestions, "Add an EDUCATION section with degree, institution and year.")
	}
	if jobDescription != "" {
		suggestions = append(suggestions, "Include more job-specific keywords truthfully based on the job description.")
	}
	return suggestions
}
