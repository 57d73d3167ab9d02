package behavioral

import (
	"fmt"
	"strings"

	"hirescore/internal/lexicon"
	"hirescore/internal/textutil"
	"hirescore/internal/types"
)

// analyzeCommunication scores how the candidate communicates: response
// length, clarity connectives, and vocabulary diversity, combined 40/30/30.
func analyzeCommunication(lex *lexicon.Lexicon, text string) types.CommunicationDetail {
	words := textutil.Words(text)
	sentences := textutil.Sentences(text)

	wordCount := len(words)
	sentenceCount := len(sentences)

	avgSentenceLength := 0.0
	if sentenceCount > 0 {
		avgSentenceLength = float64(wordCount) / float64(sentenceCount)
	}

	vocabularyDiversity := 0.0
	if wordCount > 0 {
		vocabularyDiversity = float64(textutil.UniqueWordCount(words)) / float64(wordCount)
	}

	textLower := strings.ToLower(text)
	clarityCount := 0
	for _, indicator := range lex.ClarityIndicators {
		if strings.Contains(textLower, indicator) {
			clarityCount++
		}
	}

	lengthScore := min(100, float64(wordCount)/2)
	clarityScore := min(100, float64(clarityCount)*20)
	diversityScore := min(100, vocabularyDiversity*200)

	var lengthExplanation string
	switch {
	case wordCount < 50:
		lengthScore *= 0.5
		lengthExplanation = "Response too brief for comprehensive analysis"
	case wordCount > 500:
		lengthScore *= 0.8
		lengthExplanation = "Response very detailed but may be verbose"
	default:
		lengthExplanation = "Response length appropriate"
	}

	score := lengthScore*0.4 + clarityScore*0.3 + diversityScore*0.3

	return types.CommunicationDetail{
		Score: round2(clamp100(score)),
		Metrics: types.CommunicationMetrics{
			WordCount:           wordCount,
			SentenceCount:       sentenceCount,
			AvgSentenceLength:   round2(avgSentenceLength),
			VocabularyDiversity: round3(vocabularyDiversity),
			ClarityIndicators:   clarityCount,
		},
		Subscores: types.CommunicationSubscores{
			LengthScore:    round2(lengthScore),
			ClarityScore:   round2(clarityScore),
			DiversityScore: round2(diversityScore),
		},
		Explanations: types.CommunicationExplanations{
			Length:    lengthExplanation,
			Clarity:   fmt.Sprintf("Used %d clarity indicators", clarityCount),
			Diversity: fmt.Sprintf("Vocabulary diversity: %.1f%%", vocabularyDiversity*100),
		},
	}
}

// communicationStyle buckets the average sentence length for the breakdown
// view: over 20 words reads as detailed, over 10 as balanced, shorter as
// concise.
func communicationStyle(text string) string {
	words := textutil.Words(text)
	sentences := textutil.Sentences(text)

	avg := 0.0
	if len(sentences) > 0 {
		avg = float64(len(words)) / float64(len(sentences))
	}

	switch {
	case avg > 20:
		return "detailed"
	case avg > 10:
		return "balanced"
	default:
		return "concise"
	}
}
