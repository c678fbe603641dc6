package engine

import (
	"strings"

	"atspro/internal/types"
)

// AnalyzeFormatting scores ATS-friendliness of the raw text layout.
// Starts from the formatting base and deducts per detected problem,
// floored at zero. Structural hints from document extraction add
// layout penalties that plain text alone cannot reveal; a nil hints
// argument skips them.
func (e *Engine) AnalyzeFormatting(text string, hints *types.StructuralHints) (int, []string) {
	score := formattingBase
	issues := []string{}

	if len(text) < shortResumeThreshold {
		score -= shortResumePenalty
		issues = append(issues, "Resume appears very short; aim for at least ~1 page.")
	}
	if strings.Contains(text, "\t") {
		score -= tabPenalty
		issues = append(issues, "Tabs detected. Use simple single-column layout.")
	}
	if spacingRunRe.MatchString(text) {
		score -= spacingRunPenalty
		issues = append(issues, "Multiple spaces detected; avoid manual spacing/alignment.")
	}
	if nonASCIIRe.MatchString(text) {
		score -= nonASCIIPenalty
		issues = append(issues, "Non-ASCII characters detected; ATS may not read them correctly.")
	}

	if hints != nil {
		if hints.HasTables {
			score -= tablePenalty
			issues = append(issues, "Tables detected; ATS parsers often scramble table layouts.")
		}
		if hints.HasImages {
			score -= imagePenalty
			issues = append(issues, "Images detected; ATS cannot read text inside graphics.")
		}
		if hints.HasHeaderFooter {
			score -= headerFooterPenalty
			issues = append(issues, "Header/footer text detected; keep critical details in the body.")
		}
		if hints.PageCount > maxCleanPageCount {
			score -= pageCountPenalty
			issues = append(issues, "Resume exceeds 3 pages; consider condensing.")
		}
	}

	return max(score, 0), issues
}
