package behavioral

import (
	"math"

	"hirescore/internal/lexicon"
	"hirescore/internal/textutil"
	"hirescore/internal/types"
)

// analyzeSentiment computes the sentiment signal from the word-level lexicon.
// Polarity in [-1,1] maps linearly to a score in [0,100].
func analyzeSentiment(lex *lexicon.Lexicon, text string) types.SentimentDetail {
	polarity, subjectivity := lex.Sentiment.Score(textutil.LowerWords(text))

	score := round2(clamp100((polarity + 1) * 50))

	var category, explanation string
	switch {
	case polarity > 0.3:
		category = "positive"
		explanation = "Candidate shows positive attitude and enthusiasm"
	case polarity > -0.1:
		category = "neutral"
		explanation = "Candidate maintains neutral tone throughout"
	default:
		category = "negative"
		explanation = "Candidate shows negative or defensive attitude"
	}

	return types.SentimentDetail{
		Score:        score,
		Polarity:     round3(polarity),
		Subjectivity: round3(subjectivity),
		Category:     category,
		Explanation:  explanation,
		Confidence:   round3(math.Abs(polarity)),
	}
}

// sentimentLabel buckets a polarity for the breakdown view. The bands differ
// from the scoring categories: labels flip at +-0.1 while the scoring
// category calls anything above 0.3 positive.
func sentimentLabel(polarity float64) string {
	switch {
	case polarity > 0.1:
		return "positive"
	case polarity < -0.1:
		return "negative"
	default:
		return "neutral"
	}
}

func clamp100(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
