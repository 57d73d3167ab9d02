package parser

import (
	"reflect"
	"testing"

	"hirescore/internal/types"
)

func testFallback() types.ATSResult {
	return types.ATSResult{
		Recommendations:   []string{"Resume looks good!"},
		Strengths:         []string{},
		OverallAssessment: "Basic keyword matching completed",
		Method:            types.MethodFallback,
	}
}

func TestParseDirect(t *testing.T) {
	p := New(testFallback)

	input := `{
		"overall_score": 82.5,
		"skill_matches": [
			{"skill": "Python", "match_score": 95, "evidence": "Built Django services", "match_level": "excellent"}
		],
		"missing_skills": ["Rust"],
		"recommendations": ["Learn Rust"],
		"strengths": ["Strong backend experience"],
		"experience_relevance": 80,
		"education_fit": 75,
		"overall_assessment": "Good fit"
	}`

	out := p.Parse(input)
	if out.Stage != StageDirect {
		t.Fatalf("expected stage %s, got %s", StageDirect, out.Stage)
	}
	if out.Result.OverallScore != 82.5 {
		t.Errorf("expected overall score 82.5, got %v", out.Result.OverallScore)
	}
	if out.Result.Method != types.MethodGemini {
		t.Errorf("expected method %q, got %q", types.MethodGemini, out.Result.Method)
	}
	if len(out.Result.SkillMatches) != 1 || out.Result.SkillMatches[0].Skill != "Python" {
		t.Errorf("unexpected skill matches: %+v", out.Result.SkillMatches)
	}
	if !reflect.DeepEqual(out.Result.MissingSkills, []string{"Rust"}) {
		t.Errorf("unexpected missing skills: %v", out.Result.MissingSkills)
	}
}

func TestParseBlockExtraction(t *testing.T) {
	p := New(testFallback)

	input := "Here is my assessment:\n{\"overall_score\": 60, \"missing_skills\": [\"Go\"]}\nHope that helps!"

	out := p.Parse(input)
	if out.Stage != StageBlock {
		t.Fatalf("expected stage %s, got %s", StageBlock, out.Stage)
	}
	if out.Result.OverallScore != 60 {
		t.Errorf("expected overall score 60, got %v", out.Result.OverallScore)
	}
}

func TestParseRepairRecoversFencedSingleQuotes(t *testing.T) {
	p := New(testFallback)

	out := p.Parse("```json\n{'overall_score': 85,}\n```")
	if out.Stage != StageRepair {
		t.Fatalf("expected stage %s, got %s", StageRepair, out.Stage)
	}
	if out.Result.OverallScore != 85.0 {
		t.Errorf("expected overall score 85.0, got %v", out.Result.OverallScore)
	}
	if out.Result.Method != types.MethodGemini {
		t.Errorf("expected method %q, got %q", types.MethodGemini, out.Result.Method)
	}
}

func TestParseSalvageWithoutBraces(t *testing.T) {
	p := New(testFallback)

	out := p.Parse(`The candidate scored well. "overall_score": 42 is my estimate.`)
	if out.Stage != StageSalvage {
		t.Fatalf("expected stage %s, got %s", StageSalvage, out.Stage)
	}
	if out.Result.OverallScore != 42.0 {
		t.Errorf("expected overall score 42.0, got %v", out.Result.OverallScore)
	}
	if out.Result.Method != types.MethodRegexSalvage {
		t.Errorf("expected method %q, got %q", types.MethodRegexSalvage, out.Result.Method)
	}
}

func TestParseSalvageSkillPairs(t *testing.T) {
	p := New(testFallback)

	input := `broken { "skill": "Python", something "match_score": 90, "skill": "SQL", "match_score": 55`

	out := p.Parse(input)
	if out.Stage != StageSalvage {
		t.Fatalf("expected stage %s, got %s", StageSalvage, out.Stage)
	}
	if len(out.Result.SkillMatches) != 2 {
		t.Fatalf("expected 2 salvaged matches, got %d", len(out.Result.SkillMatches))
	}
	if out.Result.SkillMatches[0].MatchLevel != types.MatchGood {
		t.Errorf("score 90 should map to level %q, got %q", types.MatchGood, out.Result.SkillMatches[0].MatchLevel)
	}
	if out.Result.SkillMatches[1].MatchLevel != types.MatchFair {
		t.Errorf("score 55 should map to level %q, got %q", types.MatchFair, out.Result.SkillMatches[1].MatchLevel)
	}
}

func TestParseTerminalFallback(t *testing.T) {
	p := New(testFallback)

	tests := []struct {
		name  string
		input string
	}{
		{"plain prose", "I could not produce a structured assessment for this resume."},
		{"empty input", ""},
		{"uncoercible score", `{"overall_score": "excellent"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := p.Parse(tt.input)
			if out.Stage != StageFallback {
				t.Fatalf("expected stage %s, got %s", StageFallback, out.Stage)
			}
			if out.Result.Method != types.MethodFallback {
				t.Errorf("expected method %q, got %q", types.MethodFallback, out.Result.Method)
			}
		})
	}
}

func TestParseDefaultsMissingFields(t *testing.T) {
	p := New(testFallback)

	out := p.Parse(`{"overall_score": 55}`)
	if out.Stage != StageDirect {
		t.Fatalf("expected stage %s, got %s", StageDirect, out.Stage)
	}
	r := out.Result
	if r.SkillMatches == nil || len(r.SkillMatches) != 0 {
		t.Errorf("expected empty skill matches, got %v", r.SkillMatches)
	}
	if r.MissingSkills == nil || r.Recommendations == nil || r.Strengths == nil {
		t.Errorf("list fields must default to empty, got %+v", r)
	}
	if r.ExperienceRelevance != 0 || r.EducationFit != 0 {
		t.Errorf("absent numeric fields must default to 0, got %+v", r)
	}
}

func TestParseCoercesStringNumbers(t *testing.T) {
	p := New(testFallback)

	out := p.Parse(`{"overall_score": "85.5", "experience_relevance": "70"}`)
	if out.Result.OverallScore != 85.5 {
		t.Errorf("expected 85.5, got %v", out.Result.OverallScore)
	}
	if out.Result.ExperienceRelevance != 70 {
		t.Errorf("expected 70, got %v", out.Result.ExperienceRelevance)
	}
}

func TestRepairTransforms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strip fences", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"trailing comma object", `{"a": 1,}`, `{"a": 1}`},
		{"trailing comma array", `{"a": [1, 2,]}`, `{"a": [1, 2]}`},
		{"quote bare keys", `{score: 10}`, `{"score": 10}`},
		{"single to double quotes", `{'a': 'b'}`, `{"a": "b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repair(tt.input); got != tt.expected {
				t.Errorf("repair(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func BenchmarkParseRepairPath(b *testing.B) {
	p := New(testFallback)
	input := "```json\n{'overall_score': 85, 'missing_skills': ['Go',],}\n```"

	for b.Loop() {
		p.Parse(input)
	}
}
