package engine

import (
	"strings"
	"testing"

	"atspro/internal/types"
)

func cleanText() string {
	// Over 200 chars, ASCII only, no tabs, no space runs.
	return strings.Repeat("Led delivery of production systems with measurable outcomes for teams. ", 4)
}

func TestAnalyzeFormatting(t *testing.T) {
	e := New(nil, Config{})

	tests := []struct {
		name       string
		text       string
		hints      *types.StructuralHints
		wantScore  int
		wantIssues int
	}{
		{
			name:       "clean text keeps full score",
			text:       cleanText(),
			wantScore:  formattingBase,
			wantIssues: 0,
		},
		{
			name:       "short resume",
			text:       "tiny resume",
			wantScore:  formattingBase - shortResumePenalty,
			wantIssues: 1,
		},
		{
			name:       "tab detected",
			text:       cleanText() + "col1\tcol2",
			wantScore:  formattingBase - tabPenalty,
			wantIssues: 1,
		},
		{
			name:       "space run detected",
			text:       cleanText() + "name    value",
			wantScore:  formattingBase - spacingRunPenalty,
			wantIssues: 1,
		},
		{
			name:       "non ascii detected",
			text:       cleanText() + "résumé",
			wantScore:  formattingBase - nonASCIIPenalty,
			wantIssues: 1,
		},
		{
			name:       "short tabbed unicode text stacks penalties",
			text:       "a\tb " + strings.Repeat("é", 40),
			wantScore:  formattingBase - shortResumePenalty - tabPenalty - nonASCIIPenalty,
			wantIssues: 3,
		},
		{
			name:       "structural hints stack",
			text:       cleanText(),
			hints:      &types.StructuralHints{HasTables: true, HasImages: true, HasHeaderFooter: true, PageCount: 5},
			wantScore:  formattingBase - tablePenalty - imagePenalty - headerFooterPenalty - pageCountPenalty,
			wantIssues: 4,
		},
		{
			name:       "three pages is fine",
			text:       cleanText(),
			hints:      &types.StructuralHints{PageCount: 3},
			wantScore:  formattingBase,
			wantIssues: 0,
		},
		{
			name:       "every penalty stacks",
			text:       "\t" + strings.Repeat("é", 10) + "   x",
			hints:      &types.StructuralHints{HasTables: true, HasImages: true, HasHeaderFooter: true, PageCount: 9},
			wantScore:  2,
			wantIssues: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, issues := e.AnalyzeFormatting(tt.text, tt.hints)
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d", score, tt.wantScore)
			}
			if len(issues) != tt.wantIssues {
				t.Errorf("issues = %v, want %d of them", issues, tt.wantIssues)
			}
		})
	}
}
