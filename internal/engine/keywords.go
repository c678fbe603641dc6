package engine

import "sort"

// MatchKeywords computes the lexical overlap between resume and job
// description tokens. Returns the keyword score and the matched terms,
// sorted and unique. An empty job description yields a zero score and
// an empty match list so resumes analyzed without a posting are not
// penalized relative to each other.
func (e *Engine) MatchKeywords(resumeText, jobDescription string) (int, []string) {
	jobTokens := e.Normalize(jobDescription)
	if len(jobTokens) == 0 {
		return 0, []string{}
	}

	resumeSet := tokenSet(e.Normalize(resumeText))
	jobSet := tokenSet(jobTokens)

	matched := make([]string, 0, len(jobSet))
	for t := range jobSet {
		if _, ok := resumeSet[t]; ok {
			matched = append(matched, t)
		}
	}
	sort.Strings(matched)

	return e.scoreMatches(matched), matched
}

func (e *Engine) scoreMatches(matched []string) int {
	if e.policy == KeywordPolicyWeighted {
		score := 0
		for _, t := range matched {
			switch {
			case e.tax.IsHardSkill(t):
				score += weightHardSkill
			case e.tax.IsJobTitle(t):
				score += weightJobTitle
			case e.tax.IsSoftSkill(t):
				score += weightSoftSkill
			default:
				score += weightGeneric
			}
		}
		return min(score, keywordWeightedCap)
	}
	return min(len(matched)*keywordPointsPerMatch, keywordPlainCap)
}
