// Package lexicon holds the static, hand-curated word tables that drive both
// analysis pipelines. Tables are loaded once at startup and must be treated
// as read-only afterwards; concurrent readers need no locking.
package lexicon

// IndicatorCategory is a behavioral keyword list with its relative weight.
// Weights are importance multipliers and do not sum to 1; the behavioral
// extractor normalizes by total weight at combination time.
type IndicatorCategory struct {
	Keywords []string `yaml:"keywords"`
	Weight   float64  `yaml:"weight"`
}

// Lexicon bundles every static table used by the scoring engine.
type Lexicon struct {
	SkillSynonyms        map[string][]string          `yaml:"skill_synonyms"`
	BehavioralIndicators map[string]IndicatorCategory `yaml:"behavioral_indicators"`
	NegativeIndicators   map[string][]string          `yaml:"negative_indicators"`
	ClarityIndicators    []string                     `yaml:"clarity_indicators"`
	Sentiment            SentimentLexicon             `yaml:"sentiment"`
}

// Default returns the built-in lexicon.
func Default() *Lexicon {
	return &Lexicon{
		SkillSynonyms: map[string][]string{
			"python":           {"python", "py", "django", "flask", "fastapi"},
			"javascript":       {"javascript", "js", "node", "react", "angular", "vue"},
			"java":             {"java", "spring", "hibernate", "maven", "gradle"},
			"aws":              {"aws", "amazon web services", "ec2", "s3", "lambda"},
			"docker":           {"docker", "containerization", "kubernetes", "k8s"},
			"git":              {"git", "github", "gitlab", "version control"},
			"sql":              {"sql", "mysql", "postgresql", "database"},
			"machine learning": {"ml", "machine learning", "ai", "artificial intelligence", "tensorflow", "pytorch"},
		},
		BehavioralIndicators: map[string]IndicatorCategory{
			"leadership": {
				Keywords: []string{"led", "managed", "supervised", "coordinated", "organized", "initiated", "directed"},
				Weight:   1.2,
			},
			"communication": {
				Keywords: []string{"presented", "explained", "communicated", "conveyed", "articulated", "demonstrated"},
				Weight:   1.1,
			},
			"problem_solving": {
				Keywords: []string{"solved", "resolved", "analyzed", "investigated", "troubleshoot", "debugged", "optimized"},
				Weight:   1.3,
			},
			"teamwork": {
				Keywords: []string{"collaborated", "worked with", "team", "partnered", "cooperated", "supported"},
				Weight:   1.0,
			},
			"adaptability": {
				Keywords: []string{"adapted", "learned", "flexible", "changed", "evolved", "improved", "enhanced"},
				Weight:   1.1,
			},
			"achievement": {
				Keywords: []string{"achieved", "increased", "improved", "reduced", "delivered", "completed", "successful"},
				Weight:   1.4,
			},
		},
		NegativeIndicators: map[string][]string{
			"blame":    {"blamed", "fault", "problem with", "issue with", "they made me"},
			"vague":    {"kind of", "sort of", "maybe", "probably", "i think", "i guess"},
			"negative": {"failed", "couldn't", "didn't work", "problem", "issue", "difficult"},
		},
		ClarityIndicators: []string{
			"specifically", "for example", "in other words", "to clarify",
			"as a result", "therefore", "consequently", "in conclusion",
		},
		Sentiment: defaultSentiment(),
	}
}
