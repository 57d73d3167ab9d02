package parser

import (
	"strconv"
	"strings"

	"hirescore/internal/types"
)

// validate turns a decoded object into a fully populated ATSResult. Every
// field is defaulted when absent; numeric fields are coerced to float.
// A field that is present but not coercible fails the whole stage so the
// cascade can move on. Successfully validated records are tagged as
// model-sourced regardless of which stage produced the object.
func validate(fields map[string]any) (types.ATSResult, bool) {
	overall, ok := floatField(fields, "overall_score")
	if !ok {
		return types.ATSResult{}, false
	}
	expRelevance, ok := floatField(fields, "experience_relevance")
	if !ok {
		return types.ATSResult{}, false
	}
	eduFit, ok := floatField(fields, "education_fit")
	if !ok {
		return types.ATSResult{}, false
	}

	return types.ATSResult{
		OverallScore:        overall,
		SkillMatches:        skillMatches(fields["skill_matches"]),
		MissingSkills:       stringList(fields["missing_skills"]),
		Recommendations:     stringList(fields["recommendations"]),
		Strengths:           stringList(fields["strengths"]),
		ExperienceRelevance: expRelevance,
		EducationFit:        eduFit,
		OverallAssessment:   stringField(fields, "overall_assessment"),
		Method:              types.MethodGemini,
	}, true
}

func floatField(fields map[string]any, key string) (float64, bool) {
	v, present := fields[key]
	if !present || v == nil {
		return 0, true
	}
	return toFloat(v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func stringField(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}

// stringList coerces a decoded array to strings, dropping non-string items.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// skillMatches coerces a decoded array to skill matches. Entries that are
// not objects or lack a skill name are dropped rather than failing the
// stage; a partially usable list beats none.
func skillMatches(v any) []types.SkillMatch {
	items, ok := v.([]any)
	if !ok {
		return []types.SkillMatch{}
	}
	out := make([]types.SkillMatch, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		skill, _ := obj["skill"].(string)
		if strings.TrimSpace(skill) == "" {
			continue
		}
		score, ok := toFloat(obj["match_score"])
		if !ok {
			score = 0
		}
		evidence, _ := obj["evidence"].(string)
		level, _ := obj["match_level"].(string)
		out = append(out, types.SkillMatch{
			Skill:      skill,
			MatchScore: score,
			Evidence:   evidence,
			MatchLevel: level,
		})
	}
	return out
}
