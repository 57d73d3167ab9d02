package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SkillRequirement is a required skill with an optional importance weight.
// Importance ranges 1-5; zero means the caller supplied a bare skill name.
type SkillRequirement struct {
	Skill      string `json:"skill"`
	Importance int    `json:"importance,omitempty"`
}

// UnmarshalJSON accepts either a bare skill-name string or a
// {"skill": ..., "importance": ...} object so callers can submit flat
// skill lists or weighted ones interchangeably.
func (s *SkillRequirement) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		s.Skill = name
		s.Importance = 0
		return nil
	}

	type plain SkillRequirement
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("skill requirement must be a string or an object: %w", err)
	}
	*s = SkillRequirement(p)
	return nil
}

// SkillNames extracts the bare skill names from a requirement list.
func SkillNames(reqs []SkillRequirement) []string {
	names := make([]string, 0, len(reqs))
	for _, r := range reqs {
		names = append(names, r.Skill)
	}
	return names
}

// ScoreResumeInput represents the input for ATS resume scoring
type ScoreResumeInput struct {
	ResumeText     string             `json:"resume_text"`
	RequiredSkills []SkillRequirement `json:"required_skills"`
	JobDescription string             `json:"job_description,omitempty"`
}

// Match levels assigned to individual skill matches
const (
	MatchExcellent = "excellent"
	MatchGood      = "good"
	MatchFair      = "fair"
	MatchPoor      = "poor"
)

// Extraction method tags identifying which path produced an ATS result
const (
	MethodGemini       = "Google Gemini AI"
	MethodFallback     = "Fallback keyword matching"
	MethodRegexSalvage = "Regex extraction (JSON parsing failed)"
	MethodNoSkills     = "No skills provided"
)

// SkillMatch records how well a single required skill matched the resume
type SkillMatch struct {
	Skill      string  `json:"skill"`
	MatchScore float64 `json:"match_score"`
	Evidence   string  `json:"evidence"`
	MatchLevel string  `json:"match_level"`
}

// ATSResult is the full outcome of scoring a resume against required skills.
// SkillMatches and MissingSkills partition the requested skill set only when
// Method is the keyword fallback; the model path does not guarantee it.
type ATSResult struct {
	OverallScore        float64      `json:"overall_score"`
	SkillMatches        []SkillMatch `json:"skill_matches"`
	MissingSkills       []string     `json:"missing_skills"`
	Recommendations     []string     `json:"recommendations"`
	Strengths           []string     `json:"strengths"`
	ExperienceRelevance float64      `json:"experience_relevance"`
	EducationFit        float64      `json:"education_fit"`
	OverallAssessment   string       `json:"overall_assessment"`
	Method              string       `json:"method"`
}

// RadarData is a chart-ready view of skill matches
type RadarData struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Radar flattens skill matches into labels and scores for visualization.
func (r *ATSResult) Radar() RadarData {
	data := RadarData{
		Labels: make([]string, 0, len(r.SkillMatches)),
		Scores: make([]float64, 0, len(r.SkillMatches)),
	}
	for _, m := range r.SkillMatches {
		data.Labels = append(data.Labels, m.Skill)
		data.Scores = append(data.Scores, m.MatchScore)
	}
	return data
}

// AnalyzeTranscriptInput represents the input for transcript analysis
type AnalyzeTranscriptInput struct {
	Transcript string `json:"transcript"`
}

// Analysis method tags for transcript results
const (
	AnalysisFallback      = "fallback"
	AnalysisComprehensive = "comprehensive"
	AnalysisErrorFallback = "error_fallback"
)

// Confidence levels for transcript results
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Weights are the fixed combination weights for the four behavioral signals
type Weights struct {
	Sentiment     float64 `json:"sentiment"`
	Communication float64 `json:"communication"`
	Behavioral    float64 `json:"behavioral"`
	Quality       float64 `json:"quality"`
}

// ScoreBreakdown holds the four signal scores, each in [0,100]
type ScoreBreakdown struct {
	SentimentScore       float64 `json:"sentiment_score"`
	CommunicationScore   float64 `json:"communication_score"`
	BehavioralScore      float64 `json:"behavioral_score"`
	ResponseQualityScore float64 `json:"response_quality_score"`
}

// SentimentDetail explains the sentiment signal
type SentimentDetail struct {
	Score        float64 `json:"score"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Category     string  `json:"category"`
	Explanation  string  `json:"explanation"`
	Confidence   float64 `json:"confidence"`
	Failed       bool    `json:"-"`
}

// CommunicationMetrics are raw tokenization measurements
type CommunicationMetrics struct {
	WordCount           int     `json:"word_count"`
	SentenceCount       int     `json:"sentence_count"`
	AvgSentenceLength   float64 `json:"avg_sentence_length"`
	VocabularyDiversity float64 `json:"vocabulary_diversity"`
	ClarityIndicators   int     `json:"clarity_indicators"`
}

// CommunicationSubscores are the weighted components of the communication score
type CommunicationSubscores struct {
	LengthScore    float64 `json:"length_score"`
	ClarityScore   float64 `json:"clarity_score"`
	DiversityScore float64 `json:"diversity_score"`
}

// CommunicationExplanations are human-readable notes per subscore
type CommunicationExplanations struct {
	Length    string `json:"length,omitempty"`
	Clarity   string `json:"clarity,omitempty"`
	Diversity string `json:"diversity,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CommunicationDetail explains the communication signal
type CommunicationDetail struct {
	Score        float64                   `json:"score"`
	Metrics      CommunicationMetrics      `json:"metrics"`
	Subscores    CommunicationSubscores    `json:"subscores"`
	Explanations CommunicationExplanations `json:"explanations"`
	Failed       bool                      `json:"-"`
}

// CategoryScore is the per-category outcome of behavioral indicator matching
type CategoryScore struct {
	Score         float64  `json:"score"`
	KeywordCount  int      `json:"keyword_count"`
	Weight        float64  `json:"weight"`
	KeywordsFound []string `json:"keywords_found"`
	Explanation   string   `json:"explanation"`
}

// BehavioralDetail explains the behavioral-indicator signal
type BehavioralDetail struct {
	Score                float64                  `json:"score"`
	CategoryBreakdown    map[string]CategoryScore `json:"category_breakdown"`
	TotalIndicatorsFound int                      `json:"total_indicators_found"`
	StrongestCategory    string                   `json:"strongest_category"`
	WeakestCategory      string                   `json:"weakest_category"`
	Failed               bool                     `json:"-"`
}

// CategoryPenalty records negative-indicator hits for one category
type CategoryPenalty struct {
	Penalty         float64  `json:"penalty"`
	IndicatorsFound []string `json:"indicators_found"`
}

// QualityDetail explains the response-quality signal
type QualityDetail struct {
	Score        float64                    `json:"score"`
	BaseScore    float64                    `json:"base_score"`
	Penalties    map[string]CategoryPenalty `json:"penalties"`
	TotalPenalty float64                    `json:"total_penalty"`
	Rewards      map[string]string          `json:"rewards"`
	TotalRewards float64                    `json:"total_rewards"`
	Explanation  string                     `json:"explanation"`
	Failed       bool                       `json:"-"`
}

// DetailedAnalysis bundles the four per-signal detail records
type DetailedAnalysis struct {
	Sentiment     SentimentDetail     `json:"sentiment"`
	Communication CommunicationDetail `json:"communication"`
	Behavioral    BehavioralDetail    `json:"behavioral"`
	Quality       QualityDetail       `json:"quality"`
}

// TranscriptResult is the full outcome of behavioral transcript analysis
type TranscriptResult struct {
	AnalysisID       string            `json:"analysis_id,omitempty"`
	OverallScore     float64           `json:"overall_score"`
	ScoreBreakdown   ScoreBreakdown    `json:"score_breakdown"`
	WeightsUsed      Weights           `json:"weights_used"`
	DetailedAnalysis *DetailedAnalysis `json:"detailed_analysis,omitempty"`
	ConfidenceLevel  string            `json:"confidence_level"`
	LowScoreReasons  []string          `json:"reason_for_low_score"`
	AnalysisMethod   string            `json:"analysis_method"`
	TranscriptLength int               `json:"transcript_length,omitempty"`
	AnalyzedAt       time.Time         `json:"analysis_timestamp,omitzero"`
}

// SentimentSummary is the compact sentiment view used in breakdowns
type SentimentSummary struct {
	Polarity       float64 `json:"polarity"`
	Subjectivity   float64 `json:"subjectivity"`
	SentimentLabel string  `json:"sentiment_label"`
	Confidence     float64 `json:"confidence"`
}

// CommunicationSummary is the compact communication view used in breakdowns
type CommunicationSummary struct {
	WordCount           int     `json:"word_count"`
	SentenceCount       int     `json:"sentence_count"`
	AvgSentenceLength   float64 `json:"avg_sentence_length"`
	VocabularyDiversity float64 `json:"vocabulary_diversity"`
	CommunicationStyle  string  `json:"communication_style"`
}

// CategorySummary is the compact per-category behavioral view
type CategorySummary struct {
	Count  int     `json:"count"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// QualitySummary is the compact response-quality view used in breakdowns
type QualitySummary struct {
	HasSpecificExamples     bool   `json:"has_specific_examples"`
	HasMetrics              bool   `json:"has_metrics"`
	NegativeIndicatorsCount int    `json:"negative_indicators_count"`
	OverallQuality          string `json:"overall_quality"`
}

// AnalysisBreakdown is the detailed diagnostic view of a transcript
type AnalysisBreakdown struct {
	SentimentAnalysis    SentimentSummary           `json:"sentiment_analysis"`
	CommunicationMetrics CommunicationSummary       `json:"communication_metrics"`
	BehavioralIndicators map[string]CategorySummary `json:"behavioral_indicators"`
	ResponseQuality      QualitySummary             `json:"response_quality"`
	KeyPhrases           []string                   `json:"key_phrases"`
	ImprovementAreas     []string                   `json:"improvement_areas"`
	StrengthIndicators   []string                   `json:"strength_indicators"`
}

// Validate checks a score input before any scoring work happens.
func (in *ScoreResumeInput) Validate() error {
	if strings.TrimSpace(in.ResumeText) == "" && len(in.RequiredSkills) > 0 {
		return fmt.Errorf("resume_text cannot be empty")
	}
	for i, r := range in.RequiredSkills {
		if strings.TrimSpace(r.Skill) == "" {
			return fmt.Errorf("required_skills[%d]: skill name cannot be empty", i)
		}
		if r.Importance < 0 || r.Importance > 5 {
			return fmt.Errorf("required_skills[%d]: importance must be between 1 and 5", i)
		}
	}
	return nil
}
