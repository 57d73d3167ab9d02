// Package behavioral analyzes interview transcripts. Four deterministic
// signal extractors (sentiment, communication, behavioral indicators,
// response quality) run over the cleaned candidate speech and combine into a
// weighted composite. The analyzer is total: malformed input and internal
// failures degrade to tagged fallback results, never to errors or panics.
package behavioral

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hirescore/internal/errors"
	"hirescore/internal/lexicon"
	"hirescore/internal/textutil"
	"hirescore/internal/types"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// minTranscriptLength is the guard below which no analysis is attempted
const minTranscriptLength = 50

// DefaultWeights are the fixed combination weights for the four signals
var DefaultWeights = types.Weights{
	Sentiment:     0.25,
	Communication: 0.30,
	Behavioral:    0.35,
	Quality:       0.10,
}

// Analyzer runs the behavioral transcript analysis pipeline
type Analyzer struct {
	lexicon *lexicon.Lexicon
	logger  *errors.Logger
}

// NewAnalyzer creates an analyzer over the given lexicon
func NewAnalyzer(lex *lexicon.Lexicon, logger *errors.Logger) *Analyzer {
	return &Analyzer{lexicon: lex, logger: logger}
}

// Analyze scores a transcript. It always returns a usable result: short
// input short-circuits to a fallback record and any internal panic is
// converted into a neutral error_fallback record.
func (a *Analyzer) Analyze(ctx context.Context, input types.AnalyzeTranscriptInput) (result types.TranscriptResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.LogError(fmt.Errorf("%v", r), "Transcript analysis panicked")
			result = errorFallbackResult(fmt.Sprintf("Analysis error: %v", r))
		}
	}()

	_, span := otel.Tracer("hirescore.behavioral").Start(ctx, "behavioral.analyze")
	defer span.End()
	span.SetAttributes(attribute.Int("input.transcript_length", len(input.Transcript)))

	if len(strings.TrimSpace(input.Transcript)) < minTranscriptLength {
		span.SetAttributes(attribute.String("analysis.method", types.AnalysisFallback))
		return insufficientContentResult()
	}

	clean := textutil.CleanTranscript(input.Transcript)

	sentiment := analyzeSentiment(a.lexicon, clean)
	communication := analyzeCommunication(a.lexicon, clean)
	behavioral := analyzeIndicators(a.lexicon, clean)
	quality := analyzeQuality(a.lexicon, clean)

	finalScore := sentiment.Score*DefaultWeights.Sentiment +
		communication.Score*DefaultWeights.Communication +
		behavioral.Score*DefaultWeights.Behavioral +
		quality.Score*DefaultWeights.Quality

	confidence := confidenceLevel(sentiment, communication, behavioral, quality)
	reasons := lowScoreReasons(sentiment, communication, behavioral, quality)

	result = types.TranscriptResult{
		AnalysisID:   uuid.NewString(),
		OverallScore: round2(clamp100(finalScore)),
		ScoreBreakdown: types.ScoreBreakdown{
			SentimentScore:       sentiment.Score,
			CommunicationScore:   communication.Score,
			BehavioralScore:      behavioral.Score,
			ResponseQualityScore: quality.Score,
		},
		WeightsUsed: DefaultWeights,
		DetailedAnalysis: &types.DetailedAnalysis{
			Sentiment:     sentiment,
			Communication: communication,
			Behavioral:    behavioral,
			Quality:       quality,
		},
		ConfidenceLevel:  confidence,
		LowScoreReasons:  reasons,
		AnalysisMethod:   types.AnalysisComprehensive,
		TranscriptLength: len(clean),
		AnalyzedAt:       time.Now().UTC(),
	}

	span.SetAttributes(
		attribute.String("analysis.method", types.AnalysisComprehensive),
		attribute.String("analysis.confidence", confidence),
		attribute.Float64("analysis.overall_score", result.OverallScore),
	)

	return result
}

// insufficientContentResult is the guard outcome for empty or short input
func insufficientContentResult() types.TranscriptResult {
	return types.TranscriptResult{
		AnalysisID:      uuid.NewString(),
		OverallScore:    0,
		ScoreBreakdown:  types.ScoreBreakdown{},
		WeightsUsed:     DefaultWeights,
		ConfidenceLevel: types.ConfidenceLow,
		LowScoreReasons: []string{"Insufficient transcript content for analysis"},
		AnalysisMethod:  types.AnalysisFallback,
	}
}

// errorFallbackResult is the neutral all-50s outcome for internal failures
func errorFallbackResult(reason string) types.TranscriptResult {
	return types.TranscriptResult{
		AnalysisID:   uuid.NewString(),
		OverallScore: 50.0,
		ScoreBreakdown: types.ScoreBreakdown{
			SentimentScore:       50.0,
			CommunicationScore:   50.0,
			BehavioralScore:      50.0,
			ResponseQualityScore: 50.0,
		},
		WeightsUsed:     DefaultWeights,
		ConfidenceLevel: types.ConfidenceLow,
		LowScoreReasons: []string{reason},
		AnalysisMethod:  types.AnalysisErrorFallback,
	}
}

// confidenceLevel counts the confidence factors present: every signal
// completed, a transcript over 100 words, specific examples rewarded, and a
// clear sentiment reading. Three or more is high, two is medium.
func confidenceLevel(sentiment types.SentimentDetail, communication types.CommunicationDetail,
	behavioral types.BehavioralDetail, quality types.QualityDetail) string {
	factors := 0

	if !sentiment.Failed && !communication.Failed && !behavioral.Failed && !quality.Failed {
		factors++
	}
	if communication.Metrics.WordCount > 100 {
		factors++
	}
	if _, ok := quality.Rewards["examples"]; ok {
		factors++
	}
	if sentiment.Confidence > 0.3 {
		factors++
	}

	switch {
	case factors >= 3:
		return types.ConfidenceHigh
	case factors >= 2:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// lowScoreReasons explains every signal that scored below 40
func lowScoreReasons(sentiment types.SentimentDetail, communication types.CommunicationDetail,
	behavioral types.BehavioralDetail, quality types.QualityDetail) []string {
	var reasons []string

	if sentiment.Score < 40 {
		reasons = append(reasons, fmt.Sprintf("Low sentiment score (%g): %s", sentiment.Score, sentiment.Explanation))
	}
	if communication.Score < 40 {
		reasons = append(reasons, fmt.Sprintf("Poor communication (%g): %s", communication.Score, communication.Explanations.Length))
	}
	if behavioral.Score < 40 {
		reasons = append(reasons, fmt.Sprintf("Few behavioral indicators (%d found)", behavioral.TotalIndicatorsFound))
	}
	if quality.Score < 40 {
		reasons = append(reasons, fmt.Sprintf("Response quality issues: %s", quality.Explanation))
	}

	if len(reasons) == 0 {
		return []string{"Score analysis completed successfully"}
	}
	return reasons
}
