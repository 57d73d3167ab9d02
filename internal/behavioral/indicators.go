package behavioral

import (
	"fmt"
	"strings"

	"hirescore/internal/lexicon"
	"hirescore/internal/types"
)

// analyzeIndicators scores behavioral evidence by counting category keyword
// hits. Each hit is worth 15 points within its category (capped at 100);
// the overall score is the weight-normalized average across categories.
func analyzeIndicators(lex *lexicon.Lexicon, text string) types.BehavioralDetail {
	textLower := strings.ToLower(text)

	breakdown := make(map[string]types.CategoryScore, len(lex.BehavioralIndicators))
	totalWeightedScore := 0.0
	totalWeight := 0.0
	totalFound := 0

	for category, cfg := range lex.BehavioralIndicators {
		var found []string
		for _, keyword := range cfg.Keywords {
			if strings.Contains(textLower, keyword) {
				found = append(found, keyword)
			}
		}

		score := min(100, float64(len(found))*15)

		breakdown[category] = types.CategoryScore{
			Score:         score,
			KeywordCount:  len(found),
			Weight:        cfg.Weight,
			KeywordsFound: found,
			Explanation:   fmt.Sprintf("Found %d instances of %s indicators", len(found), category),
		}

		totalWeightedScore += score * cfg.Weight
		totalWeight += cfg.Weight
		totalFound += len(found)
	}

	score := 0.0
	if totalWeight > 0 {
		score = totalWeightedScore / totalWeight
	}

	strongest, weakest := extremeCategories(breakdown)

	return types.BehavioralDetail{
		Score:                round2(clamp100(score)),
		CategoryBreakdown:    breakdown,
		TotalIndicatorsFound: totalFound,
		StrongestCategory:    strongest,
		WeakestCategory:      weakest,
	}
}

// extremeCategories picks the highest and lowest scoring categories. Ties
// break on category name so the answer is stable across map iteration order.
func extremeCategories(breakdown map[string]types.CategoryScore) (strongest, weakest string) {
	if len(breakdown) == 0 {
		return "none", "none"
	}

	for name, cat := range breakdown {
		if strongest == "" ||
			cat.Score > breakdown[strongest].Score ||
			(cat.Score == breakdown[strongest].Score && name < strongest) {
			strongest = name
		}
		if weakest == "" ||
			cat.Score < breakdown[weakest].Score ||
			(cat.Score == breakdown[weakest].Score && name < weakest) {
			weakest = name
		}
	}
	return strongest, weakest
}
