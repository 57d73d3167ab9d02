package ai

import (
	"strings"
	"testing"

	"hirescore/internal/types"
)

func TestFormatSkillRequirements(t *testing.T) {
	tests := []struct {
		name   string
		skills []types.SkillRequirement
		want   string
	}{
		{
			name:   "bare skill names",
			skills: []types.SkillRequirement{{Skill: "Python"}, {Skill: "Go"}},
			want:   "Python, Go",
		},
		{
			name: "weighted skills carry importance",
			skills: []types.SkillRequirement{
				{Skill: "Python", Importance: 5},
				{Skill: "Docker", Importance: 2},
			},
			want: "Python (Importance: 5/5), Docker (Importance: 2/5)",
		},
		{
			name: "mixed weighted and bare",
			skills: []types.SkillRequirement{
				{Skill: "Python", Importance: 4},
				{Skill: "SQL"},
			},
			want: "Python (Importance: 4/5), SQL",
		},
		{
			name:   "empty list",
			skills: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSkillRequirements(tt.skills)
			if got != tt.want {
				t.Errorf("FormatSkillRequirements() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildScoreUserPrompt(t *testing.T) {
	input := types.ScoreResumeInput{
		ResumeText:     "Senior engineer with Python experience.",
		RequiredSkills: []types.SkillRequirement{{Skill: "Python"}},
		JobDescription: "Backend role",
	}

	prompt := BuildScoreUserPrompt(DefaultScoreUserPrompt, input)

	if !strings.Contains(prompt, "Required Skills: Python") {
		t.Error("prompt missing skills line")
	}
	if !strings.Contains(prompt, "Job Description: Backend role") {
		t.Error("prompt missing job description")
	}
	if !strings.Contains(prompt, input.ResumeText) {
		t.Error("prompt missing resume text")
	}
	if !strings.Contains(prompt, "ONLY the JSON object") {
		t.Error("prompt missing response format instruction")
	}
}

func TestBuildScoreUserPromptWithoutJobDescription(t *testing.T) {
	input := types.ScoreResumeInput{
		ResumeText:     "resume",
		RequiredSkills: []types.SkillRequirement{{Skill: "Go"}},
	}

	prompt := BuildScoreUserPrompt(DefaultScoreUserPrompt, input)
	if strings.Contains(prompt, "Job Description:") {
		t.Error("prompt should omit job description block when none given")
	}
}

func TestResolvePrompt(t *testing.T) {
	if got := resolvePrompt("custom", "default"); got != "custom" {
		t.Errorf("resolvePrompt prefers config value, got %q", got)
	}
	if got := resolvePrompt("", "default"); got != "default" {
		t.Errorf("resolvePrompt falls back to default, got %q", got)
	}
}
