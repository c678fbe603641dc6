package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"atspro/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisReport", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisReport", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "RewriteResult", &RewriteTextFormatter{})
	registry.RegisterFormatter("markdown", "RewriteResult", &RewriteMarkdownFormatter{})
	registry.RegisterFormatter("text", "UploadResult", &UploadTextFormatter{})
	registry.RegisterFormatter("markdown", "UploadResult", &UploadMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisReport:
		return "AnalysisReport"
	case types.RewriteResult:
		return "RewriteResult"
	case types.UploadResult:
		return "UploadResult"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// sectionNames lists report sections in display order.
var sectionNames = []string{"summary", "skills", "experience", "education"}

func sortedSections(found map[string]bool) []string {
	names := make([]string, 0, len(found))
	for _, name := range sectionNames {
		if _, ok := found[name]; ok {
			names = append(names, name)
		}
	}
	// Pick up any sections outside the standard four
	var extra []string
	for name := range found {
		known := false
		for _, std := range sectionNames {
			if name == std {
				known = true
				break
			}
		}
		if !known {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// AnalysisTextFormatter handles text formatting for analysis reports
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisReport)
	if !ok {
		return "", fmt.Errorf("expected AnalysisReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("ATS Score: %d/100\n\n", result.ATSScore))
	output.WriteString(fmt.Sprintf("Structure:  %d\n", result.StructureScore))
	output.WriteString(fmt.Sprintf("Formatting: %d\n", result.FormattingScore))
	output.WriteString(fmt.Sprintf("Writing:    %d\n", result.WritingScore))
	output.WriteString(fmt.Sprintf("Keywords:   %d\n\n", result.KeywordScore))

	output.WriteString("Sections:\n")
	for _, name := range sortedSections(result.SectionsFound) {
		marker := "missing"
		if result.SectionsFound[name] {
			marker = "found"
		}
		output.WriteString(fmt.Sprintf("- %s: %s\n", name, marker))
	}
	output.WriteString("\n")

	if len(result.FormattingIssues) > 0 {
		output.WriteString("Formatting issues:\n")
		for _, issue := range result.FormattingIssues {
			output.WriteString(fmt.Sprintf("- %s\n", issue))
		}
		output.WriteString("\n")
	}

	if len(result.WritingIssues) > 0 {
		output.WriteString("Writing issues:\n")
		for _, issue := range result.WritingIssues {
			output.WriteString(fmt.Sprintf("- %s\n", issue))
		}
		output.WriteString("\n")
	}

	if len(result.MatchedKeywords) > 0 {
		output.WriteString("Matched keywords:\n")
		output.WriteString(strings.Join(result.MatchedKeywords, ", "))
		output.WriteString("\n\n")
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("Suggestions:\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisReport"
}

// AnalysisMarkdownFormatter handles markdown formatting for analysis reports
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisReport)
	if !ok {
		return "", fmt.Errorf("expected AnalysisReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Analysis\n\n")
	output.WriteString(fmt.Sprintf("**ATS Score:** %d/100\n\n", result.ATSScore))

	output.WriteString("| Sub-score | Points |\n|---|---|\n")
	output.WriteString(fmt.Sprintf("| Structure | %d |\n", result.StructureScore))
	output.WriteString(fmt.Sprintf("| Formatting | %d |\n", result.FormattingScore))
	output.WriteString(fmt.Sprintf("| Writing | %d |\n", result.WritingScore))
	output.WriteString(fmt.Sprintf("| Keywords | %d |\n\n", result.KeywordScore))

	output.WriteString("## Sections\n\n")
	for _, name := range sortedSections(result.SectionsFound) {
		marker := "missing"
		if result.SectionsFound[name] {
			marker = "found"
		}
		output.WriteString(fmt.Sprintf("- **%s**: %s\n", name, marker))
	}
	output.WriteString("\n")

	if len(result.FormattingIssues) > 0 {
		output.WriteString("## Formatting Issues\n\n")
		for _, issue := range result.FormattingIssues {
			output.WriteString(fmt.Sprintf("- %s\n", issue))
		}
		output.WriteString("\n")
	}

	if len(result.WritingIssues) > 0 {
		output.WriteString("## Writing Issues\n\n")
		for _, issue := range result.WritingIssues {
			output.WriteString(fmt.Sprintf("- %s\n", issue))
		}
		output.WriteString("\n")
	}

	if len(result.MatchedKeywords) > 0 {
		output.WriteString("## Matched Keywords\n\n")
		output.WriteString(strings.Join(result.MatchedKeywords, ", "))
		output.WriteString("\n\n")
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisReport"
}

// RewriteTextFormatter handles text formatting for rewrite results
type RewriteTextFormatter struct{}

func (rtf *RewriteTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.RewriteResult)
	if !ok {
		return "", fmt.Errorf("expected RewriteResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== IMPROVED RESUME ===\n\n")
	output.WriteString(result.FinalResume)
	output.WriteString("\n")

	return output.String(), nil
}

func (rtf *RewriteTextFormatter) SupportedType() string {
	return "RewriteResult"
}

// RewriteMarkdownFormatter handles markdown formatting for rewrite results
type RewriteMarkdownFormatter struct{}

func (rmf *RewriteMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.RewriteResult)
	if !ok {
		return "", fmt.Errorf("expected RewriteResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Improved Resume\n\n")
	output.WriteString("```\n")
	output.WriteString(result.FinalResume)
	output.WriteString("\n```\n\n")

	if result.Summary != "" {
		output.WriteString("## Rewritten Summary\n\n")
		output.WriteString(result.Summary)
		output.WriteString("\n\n")
	}
	if result.SkillsBlock != "" {
		output.WriteString("## Skills\n\n")
		output.WriteString(result.SkillsBlock)
		output.WriteString("\n\n")
	}
	if result.ExperienceBlock != "" {
		output.WriteString("## Experience\n\n")
		output.WriteString(result.ExperienceBlock)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rmf *RewriteMarkdownFormatter) SupportedType() string {
	return "RewriteResult"
}

// UploadTextFormatter handles text formatting for upload results
type UploadTextFormatter struct{}

func (utf *UploadTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.UploadResult)
	if !ok {
		return "", fmt.Errorf("expected UploadResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("=== %s ===\n\n", result.Filename))

	analysisText, err := (&AnalysisTextFormatter{}).Format(result.Analysis)
	if err != nil {
		return "", err
	}
	output.WriteString(analysisText)
	output.WriteString("\n=== IMPROVED RESUME ===\n\n")
	output.WriteString(result.ImprovedResume)
	output.WriteString("\n")

	return output.String(), nil
}

func (utf *UploadTextFormatter) SupportedType() string {
	return "UploadResult"
}

// UploadMarkdownFormatter handles markdown formatting for upload results
type UploadMarkdownFormatter struct{}

func (umf *UploadMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.UploadResult)
	if !ok {
		return "", fmt.Errorf("expected UploadResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# %s\n\n", result.Filename))

	analysisMarkdown, err := (&AnalysisMarkdownFormatter{}).Format(result.Analysis)
	if err != nil {
		return "", err
	}
	// Demote the embedded report heading under the file name
	output.WriteString(strings.Replace(analysisMarkdown, "# ATS Analysis", "## ATS Analysis", 1))
	output.WriteString("\n## Improved Resume\n\n```\n")
	output.WriteString(result.ImprovedResume)
	output.WriteString("\n```\n")

	return output.String(), nil
}

func (umf *UploadMarkdownFormatter) SupportedType() string {
	return "UploadResult"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
