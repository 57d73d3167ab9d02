package ats

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"hirescore/internal/ai"
	hirescoreErrors "hirescore/internal/errors"
	"hirescore/internal/lexicon"
	"hirescore/internal/types"
)

func testScorer(provider ai.AIProvider) *Scorer {
	return NewScorer(provider, lexicon.Default(), hirescoreErrors.NewLogger(slog.LevelError))
}

// stubProvider returns a canned response or error for ScoreResume
type stubProvider struct {
	response string
	err      error
}

func (s *stubProvider) ScoreResume(_ context.Context, _ types.ScoreResumeInput) (string, *ai.TokenUsage, error) {
	return s.response, nil, s.err
}

func (s *stubProvider) GetModelInfo(_ context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "stub", Available: true}
}

func (s *stubProvider) Close() error { return nil }

func skills(names ...string) []types.SkillRequirement {
	reqs := make([]types.SkillRequirement, 0, len(names))
	for _, n := range names {
		reqs = append(reqs, types.SkillRequirement{Skill: n})
	}
	return reqs
}

func TestFallbackScorePartition(t *testing.T) {
	s := testScorer(nil)

	result := s.FallbackScore("Seasoned developer with Python and strong SQL skills.", skills("Python", "Rust"))

	if len(result.SkillMatches) != 1 {
		t.Fatalf("SkillMatches = %d, want 1", len(result.SkillMatches))
	}
	m := result.SkillMatches[0]
	if m.Skill != "Python" || m.MatchScore != 100 || m.MatchLevel != types.MatchExcellent {
		t.Errorf("unexpected match: %+v", m)
	}
	if m.Evidence != "Skill 'Python' found in resume" {
		t.Errorf("Evidence = %q", m.Evidence)
	}
	if len(result.MissingSkills) != 1 || result.MissingSkills[0] != "Rust" {
		t.Errorf("MissingSkills = %v, want [Rust]", result.MissingSkills)
	}
	if result.OverallScore != 50.0 {
		t.Errorf("OverallScore = %v, want 50.0", result.OverallScore)
	}
	if result.Method != types.MethodFallback {
		t.Errorf("Method = %q", result.Method)
	}
	if result.ExperienceRelevance != 70 || result.EducationFit != 70 {
		t.Errorf("placeholder fields = %v/%v, want 70/70", result.ExperienceRelevance, result.EducationFit)
	}
}

func TestFallbackScoreCaseInsensitive(t *testing.T) {
	s := testScorer(nil)

	result := s.FallbackScore("expert in PYTHON programming", skills("python"))
	if len(result.SkillMatches) != 1 {
		t.Fatalf("expected case-insensitive match, got %v", result.MissingSkills)
	}
	if result.OverallScore != 100.0 {
		t.Errorf("OverallScore = %v, want 100.0", result.OverallScore)
	}
}

func TestFallbackScoreSynonymMatch(t *testing.T) {
	s := testScorer(nil)

	result := s.FallbackScore("Built services with Django and React.", skills("Python", "JavaScript"))

	if len(result.SkillMatches) != 2 {
		t.Fatalf("SkillMatches = %d, want 2 (synonym matches)", len(result.SkillMatches))
	}
	for _, m := range result.SkillMatches {
		if !strings.Contains(m.Evidence, "matched") {
			t.Errorf("synonym match evidence should name the matched term, got %q", m.Evidence)
		}
	}
	if result.OverallScore != 100.0 {
		t.Errorf("OverallScore = %v, want 100.0", result.OverallScore)
	}
}

func TestFallbackScoreSynonymNeedsWordBoundary(t *testing.T) {
	s := testScorer(nil)

	// "happy" contains the python synonym "py" as a substring; it must not
	// count as a match
	result := s.FallbackScore("I am happy to help with your project.", skills("Python"))
	if len(result.SkillMatches) != 0 {
		t.Fatalf("SkillMatches = %+v, want none", result.SkillMatches)
	}
	if len(result.MissingSkills) != 1 || result.MissingSkills[0] != "Python" {
		t.Errorf("MissingSkills = %v, want [Python]", result.MissingSkills)
	}

	// The same synonym standing alone still matches
	result = s.FallbackScore("Shipping py services daily.", skills("Python"))
	if len(result.SkillMatches) != 1 {
		t.Fatalf("expected whole-word synonym match, got missing %v", result.MissingSkills)
	}
	if result.SkillMatches[0].Evidence != "Skill 'Python' found in resume (matched 'py')" {
		t.Errorf("Evidence = %q", result.SkillMatches[0].Evidence)
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text string
		term string
		want bool
	}{
		{"worked with py and go", "py", true},
		{"i am happy to help", "py", false},
		{"py at the start", "py", true},
		{"ends with py", "py", true},
		{"k8s clusters", "k8s", true},
		{"react.js frontends", "react.js", true},
		{"nothing here", "py", false},
		{"text", "", false},
	}
	for _, tt := range tests {
		if got := containsWord(tt.text, tt.term); got != tt.want {
			t.Errorf("containsWord(%q, %q) = %v, want %v", tt.text, tt.term, got, tt.want)
		}
	}
}

func TestFallbackScoreAllMissing(t *testing.T) {
	s := testScorer(nil)

	result := s.FallbackScore("unrelated resume text", skills("Rust", "Haskell", "Erlang", "Zig"))

	if len(result.SkillMatches) != 0 {
		t.Errorf("SkillMatches = %v, want none", result.SkillMatches)
	}
	if result.OverallScore != 0.0 {
		t.Errorf("OverallScore = %v, want 0", result.OverallScore)
	}
	// Only the first three missing skills are surfaced
	want := "Consider adding these skills: Rust, Haskell, Erlang"
	if len(result.Recommendations) != 1 || result.Recommendations[0] != want {
		t.Errorf("Recommendations = %v, want [%q]", result.Recommendations, want)
	}
}

func TestFallbackScoreNoneMissing(t *testing.T) {
	s := testScorer(nil)

	result := s.FallbackScore("Python and Docker everywhere", skills("Python", "Docker"))
	if len(result.Recommendations) != 1 || result.Recommendations[0] != "Resume looks good!" {
		t.Errorf("Recommendations = %v", result.Recommendations)
	}
}

func TestFallbackScoreRounding(t *testing.T) {
	s := testScorer(nil)

	result := s.FallbackScore("Python only", skills("Python", "Rust", "Go-lang"))
	if result.OverallScore != 33.33 {
		t.Errorf("OverallScore = %v, want 33.33", result.OverallScore)
	}
}

func TestScoreEmptySkillList(t *testing.T) {
	s := testScorer(nil)

	result, _, err := s.Score(context.Background(), types.ScoreResumeInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Method != types.MethodNoSkills {
		t.Errorf("Method = %q, want %q", result.Method, types.MethodNoSkills)
	}
	if result.OverallScore != 0 {
		t.Errorf("OverallScore = %v, want 0", result.OverallScore)
	}
	want := "No job skills provided for comparison"
	if len(result.Recommendations) != 1 || result.Recommendations[0] != want {
		t.Errorf("Recommendations = %v, want [%q]", result.Recommendations, want)
	}
}

func TestScoreModelPathParsesResponse(t *testing.T) {
	provider := &stubProvider{response: `{"overall_score": 85, "skill_matches": [{"skill": "Python", "match_score": 90, "evidence": "Listed in skills", "match_level": "excellent"}], "missing_skills": [], "recommendations": [], "strengths": ["Strong backend"], "experience_relevance": 80, "education_fit": 75, "overall_assessment": "Solid fit"}`}
	s := testScorer(provider)

	input := types.ScoreResumeInput{
		ResumeText:     "Python developer",
		RequiredSkills: skills("Python"),
	}
	result, _, err := s.Score(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Method != types.MethodGemini {
		t.Errorf("Method = %q, want %q", result.Method, types.MethodGemini)
	}
	if result.OverallScore != 85.0 {
		t.Errorf("OverallScore = %v, want 85", result.OverallScore)
	}
	if len(result.SkillMatches) != 1 || result.SkillMatches[0].Skill != "Python" {
		t.Errorf("SkillMatches = %+v", result.SkillMatches)
	}
}

func TestScoreProviderErrorFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("model unavailable")}
	s := testScorer(provider)

	input := types.ScoreResumeInput{
		ResumeText:     "Python developer",
		RequiredSkills: skills("Python", "Rust"),
	}
	result, _, err := s.Score(context.Background(), input)
	if err != nil {
		t.Fatalf("provider failure must not surface, got %v", err)
	}
	if result.Method != types.MethodFallback {
		t.Errorf("Method = %q, want keyword fallback", result.Method)
	}
	if result.OverallScore != 50.0 {
		t.Errorf("OverallScore = %v, want 50", result.OverallScore)
	}
}

func TestScoreGarbageResponseTerminalFallback(t *testing.T) {
	provider := &stubProvider{response: "I could not evaluate this resume, sorry."}
	s := testScorer(provider)

	input := types.ScoreResumeInput{
		ResumeText:     "Python developer",
		RequiredSkills: skills("Python"),
	}
	result, _, err := s.Score(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Terminal fallback scores an empty resume against an empty skill list
	if result.Method != types.MethodFallback {
		t.Errorf("Method = %q, want %q", result.Method, types.MethodFallback)
	}
	if result.OverallScore != 0 {
		t.Errorf("OverallScore = %v, want 0", result.OverallScore)
	}
	if len(result.SkillMatches) != 0 || len(result.MissingSkills) != 0 {
		t.Errorf("terminal fallback should report empty lists, got %+v", result)
	}
}

func TestScoreInvalidInput(t *testing.T) {
	s := testScorer(nil)

	_, _, err := s.Score(context.Background(), types.ScoreResumeInput{
		RequiredSkills: []types.SkillRequirement{{Skill: "Python", Importance: 9}},
	})
	if err == nil {
		t.Fatal("expected validation error for out-of-range importance")
	}
}

func TestRadarFromSkillMatches(t *testing.T) {
	s := testScorer(nil)

	result := s.FallbackScore("Python and Docker everywhere", skills("Python", "Docker", "Rust"))
	radar := result.Radar()

	if len(radar.Labels) != 2 || len(radar.Scores) != 2 {
		t.Fatalf("radar = %+v, want 2 entries", radar)
	}
	for i, score := range radar.Scores {
		if score != 100 {
			t.Errorf("Scores[%d] = %v, want 100", i, score)
		}
	}
}
