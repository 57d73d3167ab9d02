package parser

import (
	"regexp"
	"strconv"

	"hirescore/internal/types"
)

var (
	scoreRe        = regexp.MustCompile(`"overall_score":\s*(\d+(?:\.\d+)?)`)
	skillPairRe    = regexp.MustCompile(`(?s)"skill":\s*"([^"]+)".*?"match_score":\s*(\d+(?:\.\d+)?)`)
	missingBlockRe = regexp.MustCompile(`(?s)"missing_skills":\s*\[(.*?)\]`)
	quotedRe       = regexp.MustCompile(`"([^"]+)"`)
)

// salvage pulls individually recognizable fields out of text that no parse
// stage could handle. True evidence text cannot be reliably recovered, so
// matches get a generic placeholder and a coarse level from the score alone.
// Fails only when not a single field is found.
func salvage(text string) (types.ATSResult, bool) {
	var overall float64
	found := false

	if m := scoreRe.FindStringSubmatch(text); m != nil {
		overall, _ = strconv.ParseFloat(m[1], 64)
		found = true
	}

	var matches []types.SkillMatch
	for _, m := range skillPairRe.FindAllStringSubmatch(text, -1) {
		score, _ := strconv.ParseFloat(m[2], 64)
		level := types.MatchFair
		if score > 70 {
			level = types.MatchGood
		}
		matches = append(matches, types.SkillMatch{
			Skill:      m[1],
			MatchScore: score,
			Evidence:   "Extracted from response",
			MatchLevel: level,
		})
		found = true
	}

	var missing []string
	if m := missingBlockRe.FindStringSubmatch(text); m != nil {
		for _, q := range quotedRe.FindAllStringSubmatch(m[1], -1) {
			missing = append(missing, q[1])
		}
		if len(missing) > 0 {
			found = true
		}
	}

	if !found {
		return types.ATSResult{}, false
	}

	return types.ATSResult{
		OverallScore:        overall,
		SkillMatches:        matches,
		MissingSkills:       missing,
		Recommendations:     []string{"Analysis completed with regex extraction"},
		Strengths:           []string{},
		ExperienceRelevance: 70,
		EducationFit:        70,
		OverallAssessment:   "Analysis completed using fallback methods",
		Method:              types.MethodRegexSalvage,
	}, true
}
