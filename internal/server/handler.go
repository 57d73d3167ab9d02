package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"hirescore/internal/ai"
	"hirescore/internal/ats"
	"hirescore/internal/behavioral"
	"hirescore/internal/observability"
	"hirescore/internal/types"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// createScoreHandler wraps the resume score handler with observability
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hirescore.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		// Parse request
		var req ScoreRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		// Size validation
		if len(req.ResumeText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume text too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too large", fmt.Sprintf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		// Add request attributes to span
		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.skill_count", len(req.RequiredSkills)),
			attribute.String("operation", "score"),
		)

		input := types.ScoreResumeInput{
			ResumeText:     req.ResumeText,
			RequiredSkills: req.RequiredSkills,
			JobDescription: req.JobDescription,
		}

		// Without an API key the scorer runs keyword matching only
		scoreConfig := s.AppConfig.GetScoreConfig()
		var provider ai.AIProvider
		if scoreConfig.APIKey != "" {
			aiService, err := ai.NewService(&scoreConfig, "score", s.Logger)
			if err != nil {
				span.RecordError(err)
				span.SetAttributes(attribute.String("error.type", "service_creation"))
				s.Logger.WithTrace(ctx).LogError(err, "Failed to create AI service")
				writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
				return
			}
			provider = aiService.Provider
		}
		scorer := ats.NewScorer(provider, s.Lexicon.Get(), s.Logger)

		// Track AI operation with observability and token usage
		metrics := om.GetMetrics()
		var result types.ATSResult
		err := metrics.TrackAIOperationWithTokens(ctx, "score", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, scoreErr := scorer.Score(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      scoreErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		})

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_scored", false,
				attribute.String("error", err.Error()))
			s.Logger.WithTrace(ctx).LogError(err, "Failed to score resume")
			writeErrorResponse(w, "Failed to score resume", err.Error(), http.StatusInternalServerError)
			return
		}

		// Record success metrics
		metrics.RecordBusinessMetric(ctx, "resume_scored", true,
			attribute.Float64("overall_score", result.OverallScore),
			attribute.String("method", result.Method))
		metrics.RecordScoreMethod(ctx, result.Method)
		metrics.RecordOverallScore(ctx, "score", result.OverallScore)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("response.overall_score", result.OverallScore),
			attribute.String("response.method", result.Method),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createTranscriptHandler wraps the transcript analysis handler with
// observability. Analysis runs locally, so there is no AI service involved.
func (s *Server) createTranscriptHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hirescore.api")
		ctx, span := tracer.Start(ctx, "api.transcript")
		defer span.End()

		req, ok := s.parseTranscriptRequest(w, r, span)
		if !ok {
			return
		}

		span.SetAttributes(
			attribute.Int("request.transcript_length", len(req.Transcript)),
			attribute.String("operation", "transcript"),
		)

		analyzer := behavioral.NewAnalyzer(s.Lexicon.Get(), s.Logger)
		result := analyzer.Analyze(ctx, types.AnalyzeTranscriptInput{Transcript: req.Transcript})

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "transcript_analyzed", true,
			attribute.Float64("overall_score", result.OverallScore),
			attribute.String("confidence", result.ConfidenceLevel),
			attribute.String("method", result.AnalysisMethod))
		metrics.RecordOverallScore(ctx, "transcript", result.OverallScore)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("response.overall_score", result.OverallScore),
			attribute.String("response.confidence", result.ConfidenceLevel),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createBreakdownHandler wraps the transcript breakdown handler with observability
func (s *Server) createBreakdownHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hirescore.api")
		ctx, span := tracer.Start(ctx, "api.breakdown")
		defer span.End()

		req, ok := s.parseTranscriptRequest(w, r, span)
		if !ok {
			return
		}

		span.SetAttributes(
			attribute.Int("request.transcript_length", len(req.Transcript)),
			attribute.String("operation", "breakdown"),
		)

		analyzer := behavioral.NewAnalyzer(s.Lexicon.Get(), s.Logger)
		result := analyzer.Breakdown(req.Transcript)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "breakdown_generated", true,
			attribute.Int("key_phrases", len(result.KeyPhrases)))

		span.SetAttributes(attribute.Bool("success", true))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// parseTranscriptRequest parses and validates the shared transcript request
// body, writing the error response itself when the request is unusable
func (s *Server) parseTranscriptRequest(w http.ResponseWriter, r *http.Request, span oteltrace.Span) (TranscriptRequest, bool) {
	var req TranscriptRequest
	if err := parseJSONRequest(r, &req); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return TranscriptRequest{}, false
	}

	if strings.TrimSpace(req.Transcript) == "" {
		err := fmt.Errorf("missing transcript")
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, "Missing transcript", "transcript field is required", http.StatusBadRequest)
		return TranscriptRequest{}, false
	}

	if len(req.Transcript) > int(s.MaxRequestSize/2) {
		err := fmt.Errorf("transcript too large: %d chars", len(req.Transcript))
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "validation"))
		writeErrorResponse(w, "Transcript too large", fmt.Sprintf("transcript exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
		return TranscriptRequest{}, false
	}

	return req, true
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
