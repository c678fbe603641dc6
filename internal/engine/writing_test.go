package engine

import (
	"strings"
	"testing"
)

// strongText trips no writing penalties: four action verbs, a metric,
// no weak phrases, little passive voice, no repetition, short lines.
const strongText = "Led the platform team.\nBuilt the billing engine serving 40% more traffic.\nDelivered quarterly roadmaps.\nOptimized query latency by 35%."

func TestAnalyzeWriting(t *testing.T) {
	e := New(nil, Config{})

	tests := []struct {
		name       string
		text       string
		wantScore  int
		wantIssues int
	}{
		{
			name:       "strong text keeps full score",
			text:       strongText,
			wantScore:  writingBase,
			wantIssues: 0,
		},
		{
			name:       "no verbs and no numbers",
			text:       "plain prose about software without any strong phrasing",
			wantScore:  writingBase - actionVerbPenalty - noMetricsPenalty,
			wantIssues: 2,
		},
		{
			name:       "weak phrase",
			text:       strongText + "\nResponsible for the deploy pipeline.",
			wantScore:  writingBase - weakPhrasePenalty,
			wantIssues: 1,
		},
		{
			name:       "passive voice over the limit",
			text:       strongText + "\n" + strings.Repeat("was ", 11),
			wantScore:  writingBase - passivePenalty,
			wantIssues: 1,
		},
		{
			name:       "repeated word",
			text:       strongText + "\n" + strings.Repeat("pipeline ", 7) + "55%",
			wantScore:  writingBase - repetitionPenalty,
			wantIssues: 1,
		},
		{
			name:       "long bullet",
			text:       strongText + "\n" + longUniqueLine(41) + " 99%",
			wantScore:  writingBase - longBulletPenalty,
			wantIssues: 1,
		},
		{
			name:       "empty text",
			text:       "",
			wantScore:  writingBase - actionVerbPenalty - noMetricsPenalty,
			wantIssues: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, issues := e.AnalyzeWriting(tt.text)
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d (issues: %v)", score, tt.wantScore, issues)
			}
			if len(issues) != tt.wantIssues {
				t.Errorf("issues = %v, want %d of them", issues, tt.wantIssues)
			}
		})
	}
}

func TestAnalyzeWritingWeakPhraseListing(t *testing.T) {
	e := New(nil, Config{})
	text := strongText + "\nresponsible for builds and worked on releases"

	_, issues := e.AnalyzeWriting(text)
	if len(issues) != 1 {
		t.Fatalf("expected a single weak-phrase issue, got %v", issues)
	}
	if !strings.Contains(issues[0], "responsible for, worked on") {
		t.Errorf("issue should list phrases in table order: %q", issues[0])
	}
}

func TestRepeatedWordsOrderAndCap(t *testing.T) {
	e := New(nil, Config{})

	var sb strings.Builder
	words := []string{"alpha", "bravo", "charlie", "delta", "echoes", "foxtrot", "golfer"}
	for _, w := range words {
		sb.WriteString(strings.Repeat(w+" ", 7) + "\n")
	}

	_, issues := e.AnalyzeWriting(strongText + "\n" + sb.String())
	if len(issues) != 1 {
		t.Fatalf("expected one repetition issue, got %v", issues)
	}
	// only the first six repeats are reported, in first-seen order
	for _, w := range words[:6] {
		if !strings.Contains(issues[0], w) {
			t.Errorf("issue missing %q: %s", w, issues[0])
		}
	}
	if strings.Contains(issues[0], "golfer") {
		t.Errorf("issue should cap at six words: %s", issues[0])
	}
}

// longUniqueLine builds a single line of n distinct short tokens that
// never trip the repetition counter.
func longUniqueLine(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "w" + string(rune('a'+i%26)) + string(rune('a'+i/26))
	}
	return strings.Join(parts, " ")
}

func BenchmarkAnalyzeWriting(b *testing.B) {
	e := New(nil, Config{})
	text := strings.Repeat(strongText+"\n", 25)

	for b.Loop() {
		e.AnalyzeWriting(text)
	}
}
