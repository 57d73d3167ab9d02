package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the built-in lexicon, optionally overlaid with tables from a
// YAML file. A section present in the file replaces the corresponding
// built-in table wholesale; absent sections keep their defaults.
func Load(path string) (*Lexicon, error) {
	lex := Default()
	if path == "" {
		return lex, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}

	var override Lexicon
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file %s: %w", path, err)
	}

	lex.merge(&override)
	if err := lex.validate(); err != nil {
		return nil, fmt.Errorf("invalid lexicon file %s: %w", path, err)
	}
	return lex, nil
}

func (l *Lexicon) merge(o *Lexicon) {
	if len(o.SkillSynonyms) > 0 {
		l.SkillSynonyms = o.SkillSynonyms
	}
	if len(o.BehavioralIndicators) > 0 {
		l.BehavioralIndicators = o.BehavioralIndicators
	}
	if len(o.NegativeIndicators) > 0 {
		l.NegativeIndicators = o.NegativeIndicators
	}
	if len(o.ClarityIndicators) > 0 {
		l.ClarityIndicators = o.ClarityIndicators
	}
	if len(o.Sentiment.Words) > 0 {
		l.Sentiment.Words = o.Sentiment.Words
	}
	if len(o.Sentiment.Intensifiers) > 0 {
		l.Sentiment.Intensifiers = o.Sentiment.Intensifiers
	}
	if len(o.Sentiment.Negators) > 0 {
		l.Sentiment.Negators = o.Sentiment.Negators
	}
}

func (l *Lexicon) validate() error {
	for category, cfg := range l.BehavioralIndicators {
		if cfg.Weight <= 0 {
			return fmt.Errorf("behavioral category %q has non-positive weight %v", category, cfg.Weight)
		}
		if len(cfg.Keywords) == 0 {
			return fmt.Errorf("behavioral category %q has no keywords", category)
		}
	}
	for word, entry := range l.Sentiment.Words {
		if entry.Polarity < -1 || entry.Polarity > 1 {
			return fmt.Errorf("sentiment word %q has polarity %v outside [-1,1]", word, entry.Polarity)
		}
		if entry.Subjectivity < 0 || entry.Subjectivity > 1 {
			return fmt.Errorf("sentiment word %q has subjectivity %v outside [0,1]", word, entry.Subjectivity)
		}
	}
	return nil
}
