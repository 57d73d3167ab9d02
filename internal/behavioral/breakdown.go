package behavioral

import (
	"math"
	"strings"

	"hirescore/internal/textutil"
	"hirescore/internal/types"
)

// maxKeyPhrases caps the key-phrase list in the breakdown view
const maxKeyPhrases = 5

// Breakdown produces the diagnostic view of a transcript: compact per-signal
// summaries plus key phrases, improvement areas, and strength indicators.
func (a *Analyzer) Breakdown(transcript string) types.AnalysisBreakdown {
	clean := textutil.CleanTranscript(transcript)
	cleanLower := strings.ToLower(clean)

	polarity, subjectivity := a.lexicon.Sentiment.Score(textutil.LowerWords(clean))
	words := textutil.Words(clean)
	sentences := textutil.Sentences(clean)

	avgSentenceLength := 0.0
	if len(sentences) > 0 {
		avgSentenceLength = float64(len(words)) / float64(len(sentences))
	}
	vocabularyDiversity := 0.0
	if len(words) > 0 {
		vocabularyDiversity = float64(textutil.UniqueWordCount(words)) / float64(len(words))
	}

	behavioralSummary := make(map[string]types.CategorySummary, len(a.lexicon.BehavioralIndicators))
	for category, cfg := range a.lexicon.BehavioralIndicators {
		count := 0
		for _, keyword := range cfg.Keywords {
			if strings.Contains(cleanLower, keyword) {
				count++
			}
		}
		behavioralSummary[category] = types.CategorySummary{
			Count:  count,
			Score:  min(100, float64(count)*15),
			Weight: cfg.Weight,
		}
	}

	hasExamples := examplesRe.MatchString(cleanLower)
	hasMetrics := metricsRe.MatchString(cleanLower)
	negativeCount := negativeIndicatorCount(a.lexicon, cleanLower)

	overallQuality := "needs_improvement"
	if hasExamples && hasMetrics && negativeCount == 0 {
		overallQuality = "good"
	}

	return types.AnalysisBreakdown{
		SentimentAnalysis: types.SentimentSummary{
			Polarity:       round3(polarity),
			Subjectivity:   round3(subjectivity),
			SentimentLabel: sentimentLabel(polarity),
			Confidence:     round3(math.Abs(polarity)),
		},
		CommunicationMetrics: types.CommunicationSummary{
			WordCount:           len(words),
			SentenceCount:       len(sentences),
			AvgSentenceLength:   round2(avgSentenceLength),
			VocabularyDiversity: round3(vocabularyDiversity),
			CommunicationStyle:  communicationStyle(clean),
		},
		BehavioralIndicators: behavioralSummary,
		ResponseQuality: types.QualitySummary{
			HasSpecificExamples:     hasExamples,
			HasMetrics:              hasMetrics,
			NegativeIndicatorsCount: negativeCount,
			OverallQuality:          overallQuality,
		},
		KeyPhrases:         a.keyPhrases(clean),
		ImprovementAreas:   a.improvementAreas(cleanLower),
		StrengthIndicators: a.strengthIndicators(cleanLower),
	}
}

// keyPhrases returns sentences carrying behavioral keywords, capped at five
func (a *Analyzer) keyPhrases(clean string) []string {
	phrases := []string{}
	for _, sentence := range textutil.Sentences(clean) {
		sentenceLower := strings.ToLower(sentence)
		if a.containsBehavioralKeyword(sentenceLower) {
			phrases = append(phrases, sentence)
			if len(phrases) == maxKeyPhrases {
				break
			}
		}
	}
	return phrases
}

func (a *Analyzer) containsBehavioralKeyword(sentenceLower string) bool {
	for _, cfg := range a.lexicon.BehavioralIndicators {
		for _, keyword := range cfg.Keywords {
			if strings.Contains(sentenceLower, keyword) {
				return true
			}
		}
	}
	return false
}

// improvementAreas flags vague language, missing examples, missing metrics,
// and negative language.
func (a *Analyzer) improvementAreas(cleanLower string) []string {
	areas := []string{}

	if containsAny(cleanLower, a.lexicon.NegativeIndicators["vague"]) {
		areas = append(areas, "Use more specific language instead of vague terms")
	}
	if !examplesRe.MatchString(cleanLower) {
		areas = append(areas, "Provide specific examples to support your statements")
	}
	if !metricsRe.MatchString(cleanLower) {
		areas = append(areas, "Include quantifiable achievements and metrics")
	}
	if containsAny(cleanLower, a.lexicon.NegativeIndicators["negative"]) {
		areas = append(areas, "Focus on positive outcomes and solutions")
	}

	return areas
}

// strengthIndicators surfaces achievement, metric, leadership,
// problem-solving, and teamwork evidence.
func (a *Analyzer) strengthIndicators(cleanLower string) []string {
	strengths := []string{}

	if containsAny(cleanLower, []string{"achieved", "increased", "improved", "reduced", "delivered", "completed"}) {
		strengths = append(strengths, "Demonstrated achievement orientation")
	}
	if metricsRe.MatchString(cleanLower) {
		strengths = append(strengths, "Provided quantifiable results")
	}
	if containsAny(cleanLower, []string{"led", "managed", "supervised", "coordinated"}) {
		strengths = append(strengths, "Showed leadership experience")
	}
	if containsAny(cleanLower, []string{"solved", "resolved", "analyzed", "investigated"}) {
		strengths = append(strengths, "Demonstrated problem-solving skills")
	}
	if containsAny(cleanLower, []string{"collaborated", "worked with", "team", "partnered"}) {
		strengths = append(strengths, "Emphasized teamwork and collaboration")
	}

	return strengths
}

func containsAny(text string, substrings []string) bool {
	for _, s := range substrings {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
