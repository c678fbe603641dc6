package engine

import "strings"

// Sections is the bucketed view of a resume produced by Segment. Every
// input line lands in exactly one bucket.
type Sections struct {
	Header     []string
	Summary    []string
	Skills     []string
	Experience []string
	Education  []string
	Other      []string
}

var (
	experienceMarkers = []string{"experience", "employment", "work history"}
	educationMarkers  = []string{"education", "academic", "qualification"}
	summaryFlagTerms  = []string{"summary", "objective", "profile"}
)

// Segment assigns each non-blank line of the resume to a section
// bucket in a single pass. A line naming a section switches the active
// bucket and is consumed; marker priority is summary, skills,
// experience, education. Skills headings must be short lines so that
// prose mentioning "skills" does not open the bucket. The first three
// lines route to the header while no section has been seen yet.
func (e *Engine) Segment(text string) Sections {
	var s Sections
	current := &s.Other

	for i, line := range nonBlankLines(text) {
		low := strings.ToLower(line)

		switch {
		case strings.Contains(low, "summary") || strings.Contains(low, "objective"):
			current = &s.Summary
			continue
		case strings.Contains(low, "skill") && len(low) < skillsHeaderMaxLen:
			current = &s.Skills
			continue
		case containsAny(low, experienceMarkers):
			current = &s.Experience
			continue
		case containsAny(low, educationMarkers):
			current = &s.Education
			continue
		}

		if i < headerLineCount && current == &s.Other {
			s.Header = append(s.Header, line)
			continue
		}
		*current = append(*current, line)
	}
	return s
}

// SectionFlags reports which of the four scored sections are present,
// based on marker terms anywhere in the text. Presence detection is
// deliberately looser than segmentation: a mention is enough.
func (e *Engine) SectionFlags(text string) map[string]bool {
	lower := strings.ToLower(text)
	return map[string]bool{
		"summary":    containsAny(lower, summaryFlagTerms),
		"skills":     strings.Contains(lower, "skills"),
		"experience": containsAny(lower, experienceMarkers),
		"education":  containsAny(lower, educationMarkers),
	}
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
