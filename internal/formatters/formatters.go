package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"hirescore/internal/types"
)

// GlobalRegistry is the shared formatter registry used by output handling.
var GlobalRegistry = NewFormatterRegistry()

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
	registry.RegisterFormatter("text", "ATSResult", &ATSTextFormatter{})
	registry.RegisterFormatter("markdown", "ATSResult", &ATSMarkdownFormatter{})
	registry.RegisterFormatter("text", "TranscriptResult", &TranscriptTextFormatter{})
	registry.RegisterFormatter("markdown", "TranscriptResult", &TranscriptMarkdownFormatter{})
	registry.RegisterFormatter("text", "AnalysisBreakdown", &BreakdownTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisBreakdown", &BreakdownMarkdownFormatter{})

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
	case types.ATSResult:
		return "ATSResult"
	case types.TranscriptResult:
		return "TranscriptResult"
	case types.AnalysisBreakdown:
		return "AnalysisBreakdown"
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

// ATSTextFormatter handles text formatting for ATS score results
type ATSTextFormatter struct{}

func (atf *ATSTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ATSResult)
	if !ok {
		return "", fmt.Errorf("expected ATSResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %.2f/100\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("Experience Relevance: %.0f/100\n", result.ExperienceRelevance))
	output.WriteString(fmt.Sprintf("Education Fit: %.0f/100\n", result.EducationFit))
	output.WriteString(fmt.Sprintf("Method: %s\n\n", result.Method))

	if len(result.SkillMatches) > 0 {
		output.WriteString("=== SKILL MATCHES ===\n")
		for _, match := range result.SkillMatches {
			output.WriteString(fmt.Sprintf("- %s (%.0f/100, %s)\n", match.Skill, match.MatchScore, match.MatchLevel))
			if match.Evidence != "" {
				output.WriteString(fmt.Sprintf("  Evidence: %s\n", match.Evidence))
			}
		}
		output.WriteString("\n")
	}

	if len(result.MissingSkills) > 0 {
		output.WriteString("=== MISSING SKILLS ===\n")
		for _, skill := range result.MissingSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	if len(result.Strengths) > 0 {
		output.WriteString("=== STRENGTHS ===\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		output.WriteString("=== RECOMMENDATIONS ===\n")
		for i, recommendation := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, recommendation))
		}
		output.WriteString("\n")
	}

	if result.OverallAssessment != "" {
		output.WriteString("=== ASSESSMENT ===\n")
		output.WriteString(result.OverallAssessment)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (atf *ATSTextFormatter) SupportedType() string {
	return "ATSResult"
}

// ATSMarkdownFormatter handles markdown formatting for ATS score results
type ATSMarkdownFormatter struct{}

func (amf *ATSMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ATSResult)
	if !ok {
		return "", fmt.Errorf("expected ATSResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Score\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %.2f/100\n\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("**Experience Relevance:** %.0f/100\n\n", result.ExperienceRelevance))
	output.WriteString(fmt.Sprintf("**Education Fit:** %.0f/100\n\n", result.EducationFit))
	output.WriteString(fmt.Sprintf("**Method:** %s\n\n", result.Method))

	if len(result.SkillMatches) > 0 {
		output.WriteString("## Skill Matches\n\n")
		for _, match := range result.SkillMatches {
			output.WriteString(fmt.Sprintf("- **%s** (%.0f/100, %s)", match.Skill, match.MatchScore, match.MatchLevel))
			if match.Evidence != "" {
				output.WriteString(fmt.Sprintf(": %s", match.Evidence))
			}
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	if len(result.MissingSkills) > 0 {
		output.WriteString("## Missing Skills\n\n")
		for _, skill := range result.MissingSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	if len(result.Strengths) > 0 {
		output.WriteString("## Strengths\n\n")
		for _, strength := range result.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", strength))
		}
		output.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		output.WriteString("## Recommendations\n\n")
		for i, recommendation := range result.Recommendations {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, recommendation))
		}
		output.WriteString("\n")
	}

	if result.OverallAssessment != "" {
		output.WriteString("## Assessment\n\n")
		output.WriteString(result.OverallAssessment)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (amf *ATSMarkdownFormatter) SupportedType() string {
	return "ATSResult"
}

// TranscriptTextFormatter handles text formatting for transcript results
type TranscriptTextFormatter struct{}

func (ttf *TranscriptTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.TranscriptResult)
	if !ok {
		return "", fmt.Errorf("expected TranscriptResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== TRANSCRIPT ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %.2f/100\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("Confidence: %s\n", result.ConfidenceLevel))
	output.WriteString(fmt.Sprintf("Method: %s\n\n", result.AnalysisMethod))

	output.WriteString("=== SCORE BREAKDOWN ===\n")
	b := result.ScoreBreakdown
	w := result.WeightsUsed
	output.WriteString(fmt.Sprintf("Sentiment:        %6.2f (weight %.2f)\n", b.SentimentScore, w.Sentiment))
	output.WriteString(fmt.Sprintf("Communication:    %6.2f (weight %.2f)\n", b.CommunicationScore, w.Communication))
	output.WriteString(fmt.Sprintf("Behavioral:       %6.2f (weight %.2f)\n", b.BehavioralScore, w.Behavioral))
	output.WriteString(fmt.Sprintf("Response Quality: %6.2f (weight %.2f)\n\n", b.ResponseQualityScore, w.Quality))

	if da := result.DetailedAnalysis; da != nil {
		output.WriteString("=== DETAILS ===\n")
		output.WriteString(fmt.Sprintf("Sentiment: %s (polarity %.3f)\n", da.Sentiment.Category, da.Sentiment.Polarity))
		output.WriteString(fmt.Sprintf("  %s\n", da.Sentiment.Explanation))
		output.WriteString(fmt.Sprintf("Communication: %d words, %d sentences\n",
			da.Communication.Metrics.WordCount, da.Communication.Metrics.SentenceCount))
		output.WriteString(fmt.Sprintf("  %s\n", da.Communication.Explanations.Length))
		output.WriteString(fmt.Sprintf("Behavioral indicators: %d found (strongest: %s)\n",
			da.Behavioral.TotalIndicatorsFound, da.Behavioral.StrongestCategory))
		output.WriteString(fmt.Sprintf("Response quality: %s\n\n", da.Quality.Explanation))
	}

	if len(result.LowScoreReasons) > 0 {
		output.WriteString("=== NOTES ===\n")
		for _, reason := range result.LowScoreReasons {
			output.WriteString(fmt.Sprintf("- %s\n", reason))
		}
	}

	return output.String(), nil
}

func (ttf *TranscriptTextFormatter) SupportedType() string {
	return "TranscriptResult"
}

// TranscriptMarkdownFormatter handles markdown formatting for transcript results
type TranscriptMarkdownFormatter struct{}

func (tmf *TranscriptMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.TranscriptResult)
	if !ok {
		return "", fmt.Errorf("expected TranscriptResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Transcript Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %.2f/100\n\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("**Confidence:** %s\n\n", result.ConfidenceLevel))
	output.WriteString(fmt.Sprintf("**Method:** %s\n\n", result.AnalysisMethod))

	output.WriteString("## Score Breakdown\n\n")
	output.WriteString("| Signal | Score | Weight |\n")
	output.WriteString("|--------|-------|--------|\n")
	b := result.ScoreBreakdown
	w := result.WeightsUsed
	output.WriteString(fmt.Sprintf("| Sentiment | %.2f | %.2f |\n", b.SentimentScore, w.Sentiment))
	output.WriteString(fmt.Sprintf("| Communication | %.2f | %.2f |\n", b.CommunicationScore, w.Communication))
	output.WriteString(fmt.Sprintf("| Behavioral | %.2f | %.2f |\n", b.BehavioralScore, w.Behavioral))
	output.WriteString(fmt.Sprintf("| Response Quality | %.2f | %.2f |\n\n", b.ResponseQualityScore, w.Quality))

	if da := result.DetailedAnalysis; da != nil {
		output.WriteString("## Details\n\n")
		output.WriteString(fmt.Sprintf("**Sentiment:** %s (polarity %.3f). %s\n\n",
			da.Sentiment.Category, da.Sentiment.Polarity, da.Sentiment.Explanation))
		output.WriteString(fmt.Sprintf("**Communication:** %d words, %d sentences. %s\n\n",
			da.Communication.Metrics.WordCount, da.Communication.Metrics.SentenceCount,
			da.Communication.Explanations.Length))
		output.WriteString(fmt.Sprintf("**Behavioral indicators:** %d found (strongest: %s)\n\n",
			da.Behavioral.TotalIndicatorsFound, da.Behavioral.StrongestCategory))
		output.WriteString(fmt.Sprintf("**Response quality:** %s\n\n", da.Quality.Explanation))
	}

	if len(result.LowScoreReasons) > 0 {
		output.WriteString("## Notes\n\n")
		for _, reason := range result.LowScoreReasons {
			output.WriteString(fmt.Sprintf("- %s\n", reason))
		}
	}

	return output.String(), nil
}

func (tmf *TranscriptMarkdownFormatter) SupportedType() string {
	return "TranscriptResult"
}

// BreakdownTextFormatter handles text formatting for analysis breakdowns
type BreakdownTextFormatter struct{}

func (btf *BreakdownTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisBreakdown)
	if !ok {
		return "", fmt.Errorf("expected AnalysisBreakdown, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ANALYSIS BREAKDOWN ===\n\n")

	output.WriteString("Sentiment:\n")
	output.WriteString(fmt.Sprintf("  Label: %s (polarity %.3f, confidence %.3f)\n\n",
		result.SentimentAnalysis.SentimentLabel, result.SentimentAnalysis.Polarity, result.SentimentAnalysis.Confidence))

	cm := result.CommunicationMetrics
	output.WriteString("Communication:\n")
	output.WriteString(fmt.Sprintf("  %d words, %d sentences, style: %s\n", cm.WordCount, cm.SentenceCount, cm.CommunicationStyle))
	output.WriteString(fmt.Sprintf("  Avg sentence length: %.2f, vocabulary diversity: %.3f\n\n", cm.AvgSentenceLength, cm.VocabularyDiversity))

	output.WriteString("Behavioral Indicators:\n")
	for _, category := range sortedCategories(result.BehavioralIndicators) {
		summary := result.BehavioralIndicators[category]
		output.WriteString(fmt.Sprintf("  %-16s count=%d score=%.0f weight=%.1f\n", category, summary.Count, summary.Score, summary.Weight))
	}
	output.WriteString("\n")

	rq := result.ResponseQuality
	output.WriteString("Response Quality:\n")
	output.WriteString(fmt.Sprintf("  Overall: %s (examples: %t, metrics: %t, negative indicators: %d)\n\n",
		rq.OverallQuality, rq.HasSpecificExamples, rq.HasMetrics, rq.NegativeIndicatorsCount))

	writeTextList(&output, "Key Phrases", result.KeyPhrases)
	writeTextList(&output, "Improvement Areas", result.ImprovementAreas)
	writeTextList(&output, "Strengths", result.StrengthIndicators)

	return output.String(), nil
}

func (btf *BreakdownTextFormatter) SupportedType() string {
	return "AnalysisBreakdown"
}

// BreakdownMarkdownFormatter handles markdown formatting for analysis breakdowns
type BreakdownMarkdownFormatter struct{}

func (bmf *BreakdownMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisBreakdown)
	if !ok {
		return "", fmt.Errorf("expected AnalysisBreakdown, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Analysis Breakdown\n\n")

	output.WriteString("## Sentiment\n\n")
	output.WriteString(fmt.Sprintf("**Label:** %s (polarity %.3f, confidence %.3f)\n\n",
		result.SentimentAnalysis.SentimentLabel, result.SentimentAnalysis.Polarity, result.SentimentAnalysis.Confidence))

	cm := result.CommunicationMetrics
	output.WriteString("## Communication\n\n")
	output.WriteString(fmt.Sprintf("%d words, %d sentences, style **%s**. ", cm.WordCount, cm.SentenceCount, cm.CommunicationStyle))
	output.WriteString(fmt.Sprintf("Average sentence length %.2f, vocabulary diversity %.3f.\n\n", cm.AvgSentenceLength, cm.VocabularyDiversity))

	output.WriteString("## Behavioral Indicators\n\n")
	output.WriteString("| Category | Count | Score | Weight |\n")
	output.WriteString("|----------|-------|-------|--------|\n")
	for _, category := range sortedCategories(result.BehavioralIndicators) {
		summary := result.BehavioralIndicators[category]
		output.WriteString(fmt.Sprintf("| %s | %d | %.0f | %.1f |\n", category, summary.Count, summary.Score, summary.Weight))
	}
	output.WriteString("\n")

	rq := result.ResponseQuality
	output.WriteString("## Response Quality\n\n")
	output.WriteString(fmt.Sprintf("**Overall:** %s (examples: %t, metrics: %t, negative indicators: %d)\n\n",
		rq.OverallQuality, rq.HasSpecificExamples, rq.HasMetrics, rq.NegativeIndicatorsCount))

	writeMarkdownList(&output, "Key Phrases", result.KeyPhrases)
	writeMarkdownList(&output, "Improvement Areas", result.ImprovementAreas)
	writeMarkdownList(&output, "Strengths", result.StrengthIndicators)

	return output.String(), nil
}

func (bmf *BreakdownMarkdownFormatter) SupportedType() string {
	return "AnalysisBreakdown"
}

func sortedCategories(summaries map[string]types.CategorySummary) []string {
	categories := make([]string, 0, len(summaries))
	for category := range summaries {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

func writeTextList(output *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	output.WriteString(title + ":\n")
	for _, item := range items {
		output.WriteString(fmt.Sprintf("  - %s\n", item))
	}
	output.WriteString("\n")
}

func writeMarkdownList(output *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	output.WriteString("## " + title + "\n\n")
	for _, item := range items {
		output.WriteString(fmt.Sprintf("- %s\n", item))
	}
	output.WriteString("\n")
}
