package types

// StructuralHints carries layout signals recovered during document
// extraction. Plain-text inputs have no hints.
type StructuralHints struct {
	HasTables       bool `json:"hasTables"`
	HasImages       bool `json:"hasImages"`
	HasHeaderFooter bool `json:"hasHeaderFooter"`
	PageCount       int  `json:"pageCount"`
}

// Document is the normalized form every analyzer consumes, regardless of
// the original file format.
type Document struct {
	Text   string           `json:"text"`
	Lines  []string         `json:"lines"`
	Tokens []string         `json:"tokens"`
	Hints  *StructuralHints `json:"hints,omitempty"`
}

// AnalyzeInput represents the input for a resume analysis
type AnalyzeInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// AnalysisReport is the full scoring breakdown for one resume
type AnalysisReport struct {
	ATSScore         int             `json:"atsScore"`
	StructureScore   int             `json:"structureScore"`
	FormattingScore  int             `json:"formattingScore"`
	WritingScore     int             `json:"writingScore"`
	KeywordScore     int             `json:"keywordScore"`
	SectionsFound    map[string]bool `json:"sectionsFound"`
	FormattingIssues []string        `json:"formattingIssues"`
	WritingIssues    []string        `json:"writingIssues"`
	MatchedKeywords  []string        `json:"matchedKeywords"`
	Suggestions      []string        `json:"suggestions"`
}

// RewriteInput represents the input for a full resume rewrite
type RewriteInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// RewriteResult holds the rebuilt resume plus its intermediate blocks
type RewriteResult struct {
	Summary         string `json:"summary"`
	SkillsBlock     string `json:"skillsBlock"`
	ExperienceBlock string `json:"experienceBlock"`
	EducationBlock  string `json:"educationBlock"`
	FinalResume     string `json:"finalResume"`
}

// SummaryRewriteInput represents the input for a summary rewrite
type SummaryRewriteInput struct {
	Summary        string `json:"summary"`
	JobDescription string `json:"jobDescription"`
}

// BulletRewriteInput represents the input for a single bullet rewrite
type BulletRewriteInput struct {
	Bullet string `json:"bullet"`
}

// SectionImproveInput represents the input for a section improvement
type SectionImproveInput struct {
	SectionText string `json:"sectionText"`
}

// TextResult wraps a single rewritten text fragment
type TextResult struct {
	Text string `json:"text"`
}

// UploadResult is the response for an uploaded resume file: extraction
// outcome, full analysis, and the automatic rewrite.
type UploadResult struct {
	Filename       string         `json:"filename"`
	Preview        string         `json:"preview"`
	Text           string         `json:"text"`
	Analysis       AnalysisReport `json:"analysis"`
	ImprovedResume string         `json:"improvedResume"`
}
