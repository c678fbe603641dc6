package engine

import (
	"reflect"
	"strings"
	"testing"

	"atspro/internal/types"
)

func TestAnalyzeEndToEnd(t *testing.T) {
	e := New(nil, Config{})

	resume := "SUMMARY\nI am a dev.\nSKILLS\nPython, SQL, Python\nEXPERIENCE\nworked on stuff"
	report := e.Analyze(e.Document(resume), "Python SQL developer")

	if !reflect.DeepEqual(report.MatchedKeywords, []string{"python", "sql"}) {
		t.Errorf("MatchedKeywords = %v", report.MatchedKeywords)
	}
	if report.KeywordScore != 6 {
		t.Errorf("KeywordScore = %d, want 6", report.KeywordScore)
	}
	// summary + skills + experience present, education missing
	if want := structureSummaryPoints + structureSkillsPoints + structureExperiencePoints; report.StructureScore != want {
		t.Errorf("StructureScore = %d, want %d", report.StructureScore, want)
	}
	if report.SectionsFound["education"] {
		t.Error("education should be reported missing")
	}

	wantTotal := report.StructureScore + report.FormattingScore + report.WritingScore + report.KeywordScore
	if report.ATSScore != wantTotal {
		t.Errorf("ATSScore = %d, want %d", report.ATSScore, wantTotal)
	}

	var hasEducation, hasKeywordTip bool
	for _, s := range report.Suggestions {
		if strings.Contains(s, "EDUCATION") {
			hasEducation = true
		}
		if strings.Contains(s, "job-specific keywords") {
			hasKeywordTip = true
		}
	}
	if !hasEducation || !hasKeywordTip {
		t.Errorf("Suggestions = %v", report.Suggestions)
	}
}

func TestAnalyzeWithoutJobDescription(t *testing.T) {
	e := New(nil, Config{})
	report := e.Analyze(e.Document("SKILLS\nGo"), "")

	if report.KeywordScore != 0 {
		t.Errorf("KeywordScore = %d, want 0", report.KeywordScore)
	}
	if len(report.MatchedKeywords) != 0 {
		t.Errorf("MatchedKeywords = %v, want none", report.MatchedKeywords)
	}
	for _, s := range report.Suggestions {
		if strings.Contains(s, "job-specific") {
			t.Errorf("keyword suggestion must be absent without a job description: %v", report.Suggestions)
		}
	}
}

func TestAnalyzeStructuralHintsLowerScore(t *testing.T) {
	e := New(nil, Config{})
	text := cleanText()

	plain := e.Analyze(types.Document{Text: text}, "")
	hinted := e.Analyze(types.Document{
		Text:  text,
		Hints: &types.StructuralHints{HasTables: true, PageCount: 5},
	}, "")

	if diff := plain.FormattingScore - hinted.FormattingScore; diff != tablePenalty+pageCountPenalty {
		t.Errorf("hint penalty diff = %d, want %d", diff, tablePenalty+pageCountPenalty)
	}
}

// Sub-scores and the total must stay within their bands for arbitrary
// input.
func TestAnalyzeScoreBands(t *testing.T) {
	e := New(nil, Config{})

	inputs := []struct {
		name   string
		resume string
		job    string
	}{
		{"empty", "", ""},
		{"garbage", "\t\t\x00 ???\n\n   é", "???"},
		{"strong", strongText + "\nSUMMARY\nSKILLS\nEXPERIENCE\nEDUCATION", strongText},
		{"huge overlap", strings.Repeat("python kubernetes terraform sql engineer leadership ", 30), "python kubernetes terraform sql engineer leadership"},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			r := e.Analyze(e.Document(tt.resume), tt.job)

			checks := []struct {
				name     string
				val, max int
			}{
				{"structure", r.StructureScore, 30},
				{"formatting", r.FormattingScore, formattingBase},
				{"writing", r.WritingScore, writingBase},
				{"keywords", r.KeywordScore, keywordPlainCap},
				{"total", r.ATSScore, maxTotalScore},
			}
			for _, c := range checks {
				if c.val < 0 || c.val > c.max {
					t.Errorf("%s score %d outside [0,%d]", c.name, c.val, c.max)
				}
			}
		})
	}
}

func BenchmarkAnalyze(b *testing.B) {
	e := New(nil, Config{})
	resume := strings.Repeat("SUMMARY\nSeasoned engineer.\nSKILLS\nGo, SQL\nEXPERIENCE\nBuilt systems used by 4000 people.\nEDUCATION\nBSc\n", 10)
	doc := e.Document(resume)

	for b.Loop() {
		e.Analyze(doc, "Go SQL platform engineer")
	}
}
