// Package taxonomy holds the fixed vocabulary tables the scoring and
// rewrite engines consult: stop-words, action verbs, weak phrases,
// passive auxiliaries, and the keyword-weighting skill lists. Tables are
// built once at startup and never mutated afterwards.
package taxonomy

import "strings"

// Tables is an immutable set of vocabulary tables. Construct via
// Default or New; lookup sets are precomputed lowercase.
type Tables struct {
	stopWords   []string
	actionVerbs []string
	weakPhrases []string
	passiveAux  []string
	hardSkills  []string
	softSkills  []string
	jobTitles   []string

	stopSet    map[string]struct{}
	actionSet  map[string]struct{}
	passiveSet map[string]struct{}
	hardSet    map[string]struct{}
	softSet    map[string]struct{}
	titleSet   map[string]struct{}
}

// Overrides replaces selected default tables. A nil or empty slice keeps
// the default for that table.
type Overrides struct {
	StopWords   []string
	ActionVerbs []string
	WeakPhrases []string
	PassiveAux  []string
	HardSkills  []string
	SoftSkills  []string
	JobTitles   []string
}

var defaultStopWords = []string{
	"the", "and", "with", "your", "for", "are", "was", "were", "you",
	"this", "that", "from", "have", "has", "had", "who", "what", "when",
	"how", "which", "their", "our", "they", "them", "his", "her",
}

// Action verbs stay capitalized: bullet rewriting checks line prefixes
// case-sensitively and uses the first entry as the default verb.
var defaultActionVerbs = []string{
	"Led", "Delivered", "Improved", "Built", "Created", "Developed",
	"Optimized", "Designed", "Launched", "Implemented", "Managed",
}

var defaultWeakPhrases = []string{
	"responsible for",
	"helped with",
	"worked on",
	"involved in",
	"assisted with",
}

var defaultPassiveAux = []string{"was", "were", "is", "are", "be", "been", "being"}

var defaultHardSkills = []string{
	"python", "java", "golang", "javascript", "typescript", "sql",
	"kubernetes", "docker", "terraform", "aws", "gcp", "azure",
	"react", "postgresql", "redis", "kafka", "grpc", "linux",
}

var defaultSoftSkills = []string{
	"communication", "leadership", "collaboration", "mentoring",
	"ownership", "teamwork", "adaptability", "prioritization",
}

var defaultJobTitles = []string{
	"engineer", "developer", "architect", "manager", "analyst",
	"administrator", "consultant", "scientist", "designer",
}

// Default returns tables built from the compiled-in vocabulary.
func Default() *Tables {
	return New(Overrides{})
}

// New builds tables from the defaults with any overrides applied.
func New(o Overrides) *Tables {
	t := &Tables{
		stopWords:   pick(o.StopWords, defaultStopWords),
		actionVerbs: pick(o.ActionVerbs, defaultActionVerbs),
		weakPhrases: pick(o.WeakPhrases, defaultWeakPhrases),
		passiveAux:  pick(o.PassiveAux, defaultPassiveAux),
		hardSkills:  pick(o.HardSkills, defaultHardSkills),
		softSkills:  pick(o.SoftSkills, defaultSoftSkills),
		jobTitles:   pick(o.JobTitles, defaultJobTitles),
	}
	t.stopSet = lowerSet(t.stopWords)
	t.actionSet = lowerSet(t.actionVerbs)
	t.passiveSet = lowerSet(t.passiveAux)
	t.hardSet = lowerSet(t.hardSkills)
	t.softSet = lowerSet(t.softSkills)
	t.titleSet = lowerSet(t.jobTitles)
	return t
}

func pick(override, def []string) []string {
	if len(override) > 0 {
		out := make([]string, len(override))
		copy(out, override)
		return out
	}
	out := make([]string, len(def))
	copy(out, def)
	return out
}

func lowerSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// IsStopWord reports whether the lowercase token is a stop-word.
func (t *Tables) IsStopWord(token string) bool {
	_, ok := t.stopSet[token]
	return ok
}

// IsActionVerb reports whether the word matches an action verb,
// case-insensitively.
func (t *Tables) IsActionVerb(word string) bool {
	_, ok := t.actionSet[strings.ToLower(word)]
	return ok
}

// IsPassiveAux reports whether the word is a passive-voice auxiliary,
// case-insensitively.
func (t *Tables) IsPassiveAux(word string) bool {
	_, ok := t.passiveSet[strings.ToLower(word)]
	return ok
}

// IsHardSkill reports whether the lowercase token is a known hard skill.
func (t *Tables) IsHardSkill(token string) bool {
	_, ok := t.hardSet[token]
	return ok
}

// IsSoftSkill reports whether the lowercase token is a known soft skill.
func (t *Tables) IsSoftSkill(token string) bool {
	_, ok := t.softSet[token]
	return ok
}

// IsJobTitle reports whether the lowercase token is a known job title word.
func (t *Tables) IsJobTitle(token string) bool {
	_, ok := t.titleSet[token]
	return ok
}

// ActionVerbs returns the action verb list in table order. The first
// entry is the default verb prepended during bullet rewriting.
func (t *Tables) ActionVerbs() []string {
	return t.actionVerbs
}

// WeakPhrases returns the weak phrase list in table order.
func (t *Tables) WeakPhrases() []string {
	return t.weakPhrases
}
