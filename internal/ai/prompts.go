package ai

import (
	"fmt"
	"strings"

	"hirescore/internal/types"
)

// DefaultScoreSystemPrompt is the system instruction for ATS scoring
const DefaultScoreSystemPrompt = `You are an expert ATS (Applicant Tracking System) scoring assistant. Your task is to analyze a candidate's resume against job requirements and provide a comprehensive assessment.

Guidelines for scoring:
- Overall score should reflect how well the candidate matches the job requirements, factoring in skill importance/weights
- Consider both explicit skill mentions and related experience
- Factor in experience relevance and education fit
- Be fair but thorough in your assessment
- Provide specific, actionable recommendations`

// DefaultScoreUserPrompt is the user prompt template for ATS scoring.
// Placeholders: required skills, job description block, resume text.
const DefaultScoreUserPrompt = `JOB REQUIREMENTS:
Required Skills: %s
%s
CANDIDATE RESUME:
%s

Please analyze the resume and provide your assessment in the following JSON format:

{
    "overall_score": <number between 0-100>,
    "skill_matches": [
        {
            "skill": "<skill_name>",
            "match_score": <number between 0-100>,
            "evidence": "<brief explanation of how this skill is demonstrated>",
            "match_level": "<excellent/good/fair/poor>"
        }
    ],
    "missing_skills": ["<list of missing skills>"],
    "recommendations": [
        "<specific recommendations for improvement>"
    ],
    "strengths": [
        "<list of candidate's key strengths>"
    ],
    "experience_relevance": <number between 0-100>,
    "education_fit": <number between 0-100>,
    "overall_assessment": "<brief overall assessment>"
}

Please respond with ONLY the JSON object, no additional text.`

// FormatSkillRequirements renders the required-skills list for the prompt.
// Weighted skills carry their importance so the model can factor it in.
func FormatSkillRequirements(skills []types.SkillRequirement) string {
	parts := make([]string, 0, len(skills))
	for _, s := range skills {
		if s.Importance > 0 {
			parts = append(parts, fmt.Sprintf("%s (Importance: %d/5)", s.Skill, s.Importance))
		} else {
			parts = append(parts, s.Skill)
		}
	}
	return strings.Join(parts, ", ")
}

// BuildScoreUserPrompt fills the user prompt template with the scoring input
func BuildScoreUserPrompt(template string, input types.ScoreResumeInput) string {
	jobBlock := ""
	if input.JobDescription != "" {
		jobBlock = "Job Description: " + input.JobDescription + "\n"
	}
	return fmt.Sprintf(template, FormatSkillRequirements(input.RequiredSkills), jobBlock, input.ResumeText)
}

// resolvePrompt selects the correct prompt string based on priority:
// 1. A prompt defined in the configuration.
// 2. The hardcoded default prompt.
func resolvePrompt(fromConfig, fromDefault string) string {
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
