package behavioral

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"hirescore/internal/errors"
	"hirescore/internal/lexicon"
	"hirescore/internal/types"
)

func testAnalyzer() *Analyzer {
	return NewAnalyzer(lexicon.Default(), errors.NewLogger(slog.LevelError))
}

const sampleTranscript = `Interviewer: Tell me about a project you led.
I led a team of 5 people and managed the rollout of our new platform.
We increased adoption by 40% because we specifically listened to users.
For example, in one instance I resolved a critical issue before launch.
I really enjoyed collaborating with the team and we delivered on time.`

func TestAnalyzeShortInputFallback(t *testing.T) {
	a := testAnalyzer()

	for _, transcript := range []string{"", "   ", "short", "this is still too short"} {
		t.Run("len_"+transcript, func(t *testing.T) {
			result := a.Analyze(context.Background(), types.AnalyzeTranscriptInput{Transcript: transcript})

			if result.OverallScore != 0.0 {
				t.Errorf("OverallScore = %v, want 0", result.OverallScore)
			}
			if result.ConfidenceLevel != types.ConfidenceLow {
				t.Errorf("ConfidenceLevel = %q, want low", result.ConfidenceLevel)
			}
			if result.AnalysisMethod != types.AnalysisFallback {
				t.Errorf("AnalysisMethod = %q, want fallback", result.AnalysisMethod)
			}
			if result.DetailedAnalysis != nil {
				t.Error("fallback result must not carry detailed analysis")
			}
			if len(result.LowScoreReasons) != 1 ||
				result.LowScoreReasons[0] != "Insufficient transcript content for analysis" {
				t.Errorf("LowScoreReasons = %v", result.LowScoreReasons)
			}
		})
	}
}

func TestAnalyzeComprehensive(t *testing.T) {
	a := testAnalyzer()

	result := a.Analyze(context.Background(), types.AnalyzeTranscriptInput{Transcript: sampleTranscript})

	if result.AnalysisMethod != types.AnalysisComprehensive {
		t.Fatalf("AnalysisMethod = %q, want comprehensive", result.AnalysisMethod)
	}
	if result.OverallScore < 0 || result.OverallScore > 100 {
		t.Errorf("OverallScore = %v, out of range", result.OverallScore)
	}
	if result.AnalysisID == "" {
		t.Error("AnalysisID should be set")
	}
	if result.AnalyzedAt.IsZero() {
		t.Error("AnalyzedAt should be set")
	}
	if result.DetailedAnalysis == nil {
		t.Fatal("DetailedAnalysis should be present")
	}

	// The composite must be the clamped, rounded weighted sum of the signals
	b := result.ScoreBreakdown
	want := round2(clamp100(b.SentimentScore*0.25 + b.CommunicationScore*0.30 +
		b.BehavioralScore*0.35 + b.ResponseQualityScore*0.10))
	if result.OverallScore != want {
		t.Errorf("OverallScore = %v, want weighted composite %v", result.OverallScore, want)
	}

	if result.WeightsUsed != DefaultWeights {
		t.Errorf("WeightsUsed = %+v", result.WeightsUsed)
	}

	// Interviewer lines are stripped before any measurement
	if strings.Contains(strings.ToLower(sampleTranscript[:35]), "interviewer") &&
		result.TranscriptLength >= len(sampleTranscript) {
		t.Errorf("TranscriptLength = %d, should measure cleaned text only", result.TranscriptLength)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := testAnalyzer()
	input := types.AnalyzeTranscriptInput{Transcript: sampleTranscript}

	first := a.Analyze(context.Background(), input)
	second := a.Analyze(context.Background(), input)

	if first.OverallScore != second.OverallScore {
		t.Errorf("scores differ across runs: %v vs %v", first.OverallScore, second.OverallScore)
	}
	if first.ScoreBreakdown != second.ScoreBreakdown {
		t.Errorf("breakdowns differ across runs")
	}
	if first.ConfidenceLevel != second.ConfidenceLevel {
		t.Errorf("confidence differs across runs")
	}
}

func TestAnalyzeInternalFailureErrorFallback(t *testing.T) {
	// A nil lexicon makes the first extractor panic; the analyzer must
	// convert that into a neutral error_fallback result.
	a := NewAnalyzer(nil, errors.NewLogger(slog.LevelError))

	result := a.Analyze(context.Background(), types.AnalyzeTranscriptInput{Transcript: sampleTranscript})

	if result.AnalysisMethod != types.AnalysisErrorFallback {
		t.Fatalf("AnalysisMethod = %q, want error_fallback", result.AnalysisMethod)
	}
	if result.OverallScore != 50.0 {
		t.Errorf("OverallScore = %v, want 50", result.OverallScore)
	}
	b := result.ScoreBreakdown
	if b.SentimentScore != 50 || b.CommunicationScore != 50 || b.BehavioralScore != 50 || b.ResponseQualityScore != 50 {
		t.Errorf("ScoreBreakdown = %+v, want all 50s", b)
	}
	if result.ConfidenceLevel != types.ConfidenceLow {
		t.Errorf("ConfidenceLevel = %q, want low", result.ConfidenceLevel)
	}
	if len(result.LowScoreReasons) != 1 || !strings.HasPrefix(result.LowScoreReasons[0], "Analysis error:") {
		t.Errorf("LowScoreReasons = %v", result.LowScoreReasons)
	}
}

func TestLowScoreReasons(t *testing.T) {
	low := types.SentimentDetail{Score: 20, Explanation: "Candidate shows negative or defensive attitude"}
	okComm := types.CommunicationDetail{Score: 60}
	okBehav := types.BehavioralDetail{Score: 55}
	okQual := types.QualityDetail{Score: 70}

	reasons := lowScoreReasons(low, okComm, okBehav, okQual)
	if len(reasons) != 1 || !strings.Contains(reasons[0], "Low sentiment score (20)") {
		t.Errorf("reasons = %v", reasons)
	}

	allGood := lowScoreReasons(
		types.SentimentDetail{Score: 60}, okComm, okBehav, okQual)
	if len(allGood) != 1 || allGood[0] != "Score analysis completed successfully" {
		t.Errorf("reasons = %v", allGood)
	}
}

func TestConfidenceLevel(t *testing.T) {
	tests := []struct {
		name          string
		sentiment     types.SentimentDetail
		communication types.CommunicationDetail
		quality       types.QualityDetail
		want          string
	}{
		{
			name:          "all factors high",
			sentiment:     types.SentimentDetail{Confidence: 0.5},
			communication: types.CommunicationDetail{Metrics: types.CommunicationMetrics{WordCount: 150}},
			quality:       types.QualityDetail{Rewards: map[string]string{"examples": "x"}},
			want:          types.ConfidenceHigh,
		},
		{
			name:          "two factors medium",
			sentiment:     types.SentimentDetail{Confidence: 0},
			communication: types.CommunicationDetail{Metrics: types.CommunicationMetrics{WordCount: 150}},
			quality:       types.QualityDetail{},
			want:          types.ConfidenceMedium,
		},
		{
			name:          "one factor low",
			sentiment:     types.SentimentDetail{Confidence: 0, Failed: false},
			communication: types.CommunicationDetail{Metrics: types.CommunicationMetrics{WordCount: 10}},
			quality:       types.QualityDetail{},
			want:          types.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := confidenceLevel(tt.sentiment, tt.communication, types.BehavioralDetail{}, tt.quality)
			if got != tt.want {
				t.Errorf("confidenceLevel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzeNeutralProse(t *testing.T) {
	a := testAnalyzer()

	// 630 words that trigger no behavioral keywords, sentiment words or
	// negative phrases. The behavioral signal must stay at zero while the
	// communication signal still reflects length and diversity.
	sentence := "The parser reads the config file and writes a report to the output directory. "
	transcript := strings.Repeat(sentence, 45)

	result := a.Analyze(context.Background(), types.AnalyzeTranscriptInput{Transcript: transcript})

	if result.AnalysisMethod != types.AnalysisComprehensive {
		t.Fatalf("AnalysisMethod = %q, want comprehensive", result.AnalysisMethod)
	}
	if result.ScoreBreakdown.BehavioralScore != 0 {
		t.Errorf("BehavioralScore = %v, want 0", result.ScoreBreakdown.BehavioralScore)
	}
	if result.ScoreBreakdown.CommunicationScore <= 0 {
		t.Errorf("CommunicationScore = %v, want > 0", result.ScoreBreakdown.CommunicationScore)
	}
	if result.DetailedAnalysis == nil {
		t.Fatal("comprehensive result must carry detailed analysis")
	}
	if found := result.DetailedAnalysis.Behavioral.TotalIndicatorsFound; found != 0 {
		t.Errorf("TotalIndicatorsFound = %d, want 0", found)
	}
	if result.ScoreBreakdown.SentimentScore != 50 {
		t.Errorf("SentimentScore = %v, want neutral 50", result.ScoreBreakdown.SentimentScore)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	a := testAnalyzer()
	input := types.AnalyzeTranscriptInput{Transcript: sampleTranscript}

	for b.Loop() {
		a.Analyze(context.Background(), input)
	}
}
