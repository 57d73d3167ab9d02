package behavioral

import (
	"fmt"
	"regexp"
	"strings"

	"hirescore/internal/lexicon"
	"hirescore/internal/types"
)

const qualityBaseScore = 70

// Reward patterns for concrete, well-reasoned answers
var (
	metricsRe   = regexp.MustCompile(`\d+%|\d+ percent|\d+ people|\d+ team`)
	examplesRe  = regexp.MustCompile(`for example|specifically|in one instance`)
	reasoningRe = regexp.MustCompile(`because|since|as a result|therefore`)
)

// analyzeQuality scores answer quality from a base of 70: each negative
// indicator found costs 10 points, while metrics, examples, and reasoning
// language earn 15, 10, and 5 back. Penalties are unbounded before the
// final clamp.
func analyzeQuality(lex *lexicon.Lexicon, text string) types.QualityDetail {
	textLower := strings.ToLower(text)

	penalties := make(map[string]types.CategoryPenalty, len(lex.NegativeIndicators))
	totalPenalty := 0.0

	for category, indicators := range lex.NegativeIndicators {
		var found []string
		penalty := 0.0
		for _, indicator := range indicators {
			if strings.Contains(textLower, indicator) {
				penalty += 10
				found = append(found, indicator)
			}
		}
		penalties[category] = types.CategoryPenalty{
			Penalty:         penalty,
			IndicatorsFound: found,
		}
		totalPenalty += penalty
	}

	score := float64(qualityBaseScore) - totalPenalty

	rewards := map[string]string{}
	totalRewards := 0.0

	if metricsRe.MatchString(textLower) {
		score += 15
		totalRewards += 15
		rewards["metrics"] = "Included specific metrics and numbers"
	}
	if examplesRe.MatchString(textLower) {
		score += 10
		totalRewards += 10
		rewards["examples"] = "Provided specific examples"
	}
	if reasoningRe.MatchString(textLower) {
		score += 5
		totalRewards += 5
		rewards["reasoning"] = "Showed logical reasoning"
	}

	return types.QualityDetail{
		Score:        round2(clamp100(score)),
		BaseScore:    qualityBaseScore,
		Penalties:    penalties,
		TotalPenalty: totalPenalty,
		Rewards:      rewards,
		TotalRewards: totalRewards,
		Explanation:  fmt.Sprintf("Base score 70, penalties -%g, rewards +%g", totalPenalty, totalRewards),
	}
}

// negativeIndicatorCount counts all negative-indicator hits across categories
func negativeIndicatorCount(lex *lexicon.Lexicon, textLower string) int {
	count := 0
	for _, indicators := range lex.NegativeIndicators {
		for _, indicator := range indicators {
			if strings.Contains(textLower, indicator) {
				count++
			}
		}
	}
	return count
}
