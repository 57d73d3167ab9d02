// Package ats scores resumes against required skills. The model path builds
// a prompt, calls the AI provider, and runs the robust parser over whatever
// text comes back; the keyword path is a deterministic local fallback that
// never fails. Provider errors route into the fallback, never to the caller.
package ats

import (
	"context"
	"fmt"
	"math"
	"strings"

	"hirescore/internal/ai"
	"hirescore/internal/errors"
	"hirescore/internal/lexicon"
	"hirescore/internal/parser"
	"hirescore/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Placeholder values for fields the keyword path cannot assess
const (
	fallbackExperienceRelevance = 70
	fallbackEducationFit        = 70
)

// Scorer orchestrates the model and keyword scoring paths
type Scorer struct {
	provider ai.AIProvider
	parser   *parser.Parser
	lexicon  *lexicon.Lexicon
	logger   *errors.Logger
}

// NewScorer creates a scorer. provider may be nil, in which case every score
// request takes the keyword path.
func NewScorer(provider ai.AIProvider, lex *lexicon.Lexicon, logger *errors.Logger) *Scorer {
	s := &Scorer{
		provider: provider,
		lexicon:  lex,
		logger:   logger,
	}
	// Terminal parser fallback scores an empty resume against an empty skill
	// list: overall 0, nothing matched, nothing reported missing.
	s.parser = parser.New(func() types.ATSResult {
		return s.FallbackScore("", nil)
	})
	return s
}

// Score runs the full ATS scoring flow. It always returns a usable result;
// model failures degrade to keyword matching.
func (s *Scorer) Score(ctx context.Context, input types.ScoreResumeInput) (types.ATSResult, *ai.TokenUsage, error) {
	if err := input.Validate(); err != nil {
		return types.ATSResult{}, nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Invalid score input", err)
	}

	if len(input.RequiredSkills) == 0 {
		return noSkillsResult(), nil, nil
	}

	tracer := otel.Tracer("hirescore.ats")
	ctx, span := tracer.Start(ctx, "ats.score")
	defer span.End()
	span.SetAttributes(
		attribute.Int("input.skill_count", len(input.RequiredSkills)),
		attribute.Int("input.resume_length", len(input.ResumeText)),
	)

	if s.provider == nil {
		result := s.FallbackScore(input.ResumeText, input.RequiredSkills)
		span.SetAttributes(attribute.String("ats.method", result.Method))
		return result, nil, nil
	}

	raw, tokenUsage, err := s.provider.ScoreResume(ctx, input)
	if err != nil {
		s.logger.Warn("Model scoring failed, using keyword fallback",
			"error", err.Error(),
			"skill_count", len(input.RequiredSkills))
		span.RecordError(err)
		result := s.FallbackScore(input.ResumeText, input.RequiredSkills)
		span.SetAttributes(attribute.String("ats.method", result.Method))
		return result, nil, nil
	}

	outcome := s.parser.Parse(raw)
	s.logger.Debug("Parsed model response",
		"stage", string(outcome.Stage),
		"method", outcome.Result.Method,
		"overall_score", outcome.Result.OverallScore)
	span.SetAttributes(
		attribute.String("ats.parse_stage", string(outcome.Stage)),
		attribute.String("ats.method", outcome.Result.Method),
		attribute.Float64("ats.overall_score", outcome.Result.OverallScore),
	)

	return outcome.Result, tokenUsage, nil
}

// ParseResponse exposes the recovery cascade for callers that already hold
// raw model text.
func (s *Scorer) ParseResponse(raw string) parser.Outcome {
	return s.parser.Parse(raw)
}

// noSkillsResult is the distinct outcome for an empty required-skill list
func noSkillsResult() types.ATSResult {
	return types.ATSResult{
		OverallScore:    0,
		SkillMatches:    []types.SkillMatch{},
		MissingSkills:   []string{},
		Recommendations: []string{"No job skills provided for comparison"},
		Strengths:       []string{},
		Method:          types.MethodNoSkills,
	}
}

// FallbackScore is the deterministic keyword path. A skill matches when the
// skill name appears as a case-insensitive substring of the resume, or when
// a lexicon synonym of it appears as a whole word. Matched and missing
// skills always partition the requested set.
func (s *Scorer) FallbackScore(resumeText string, skills []types.SkillRequirement) types.ATSResult {
	resumeLower := strings.ToLower(resumeText)

	matches := []types.SkillMatch{}
	missing := []string{}

	for _, req := range skills {
		if evidence, ok := s.matchSkill(resumeLower, req.Skill); ok {
			matches = append(matches, types.SkillMatch{
				Skill:      req.Skill,
				MatchScore: 100,
				Evidence:   evidence,
				MatchLevel: types.MatchExcellent,
			})
		} else {
			missing = append(missing, req.Skill)
		}
	}

	overall := 0.0
	if len(skills) > 0 {
		overall = round2(float64(len(matches)) / float64(len(skills)) * 100)
	}

	recommendation := "Resume looks good!"
	if len(missing) > 0 {
		recommendation = fmt.Sprintf("Consider adding these skills: %s",
			strings.Join(missing[:min(3, len(missing))], ", "))
	}

	return types.ATSResult{
		OverallScore:        overall,
		SkillMatches:        matches,
		MissingSkills:       missing,
		Recommendations:     []string{recommendation},
		Strengths:           []string{},
		ExperienceRelevance: fallbackExperienceRelevance,
		EducationFit:        fallbackEducationFit,
		OverallAssessment:   "Basic keyword matching completed",
		Method:              types.MethodFallback,
	}
}

// matchSkill checks a single skill against the lowercased resume text.
// Synonyms must match on word boundaries: abbreviations like "py" or "ml"
// would otherwise fire inside unrelated words ("happy", "html").
func (s *Scorer) matchSkill(resumeLower, skill string) (string, bool) {
	skillLower := strings.ToLower(skill)
	if strings.Contains(resumeLower, skillLower) {
		return fmt.Sprintf("Skill '%s' found in resume", skill), true
	}

	if s.lexicon == nil {
		return "", false
	}
	for _, synonym := range s.lexicon.SkillSynonyms[skillLower] {
		if synonym == skillLower {
			continue
		}
		if containsWord(resumeLower, synonym) {
			return fmt.Sprintf("Skill '%s' found in resume (matched '%s')", skill, synonym), true
		}
	}
	return "", false
}

// containsWord reports whether term occurs in text delimited by
// non-alphanumeric characters on both sides.
func containsWord(text, term string) bool {
	if term == "" {
		return false
	}
	for from := 0; ; {
		i := strings.Index(text[from:], term)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(term)
		startOK := start == 0 || !isAlphanumeric(text[start-1])
		endOK := end == len(text) || !isAlphanumeric(text[end])
		if startOK && endOK {
			return true
		}
		from = start + 1
	}
}

func isAlphanumeric(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
