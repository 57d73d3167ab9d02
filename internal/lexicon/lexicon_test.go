package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLexiconFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write lexicon file: %v", err)
	}
	return path
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	lex, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lex.BehavioralIndicators) != 6 {
		t.Errorf("expected 6 behavioral categories, got %d", len(lex.BehavioralIndicators))
	}
	if lex.BehavioralIndicators["achievement"].Weight != 1.4 {
		t.Errorf("achievement weight = %v, want 1.4", lex.BehavioralIndicators["achievement"].Weight)
	}
	if len(lex.ClarityIndicators) != 8 {
		t.Errorf("expected 8 clarity connectives, got %d", len(lex.ClarityIndicators))
	}
}

func TestLoadOverrideReplacesSectionWholesale(t *testing.T) {
	path := writeLexiconFile(t, `
skill_synonyms:
  rust: [rust, cargo]
`)

	lex, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The overridden section replaces the built-in table entirely
	if len(lex.SkillSynonyms) != 1 {
		t.Errorf("SkillSynonyms = %v, want only the override entry", lex.SkillSynonyms)
	}
	if _, ok := lex.SkillSynonyms["python"]; ok {
		t.Error("built-in python entry should be gone after override")
	}

	// Sections absent from the file keep their defaults
	if len(lex.BehavioralIndicators) != 6 {
		t.Errorf("behavioral table should keep defaults, got %d categories", len(lex.BehavioralIndicators))
	}
	if len(lex.Sentiment.Words) == 0 {
		t.Error("sentiment table should keep defaults")
	}
}

func TestLoadRejectsEmptyKeywordList(t *testing.T) {
	path := writeLexiconFile(t, `
behavioral_indicators:
  leadership:
    keywords: []
    weight: 1.2
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for empty keyword list")
	} else if !strings.Contains(err.Error(), "leadership") {
		t.Errorf("error should name the category, got %v", err)
	}
}

func TestLoadRejectsNonPositiveWeight(t *testing.T) {
	path := writeLexiconFile(t, `
behavioral_indicators:
  teamwork:
    keywords: [together]
    weight: 0
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for non-positive weight")
	}
}

func TestLoadRejectsOutOfRangeSentiment(t *testing.T) {
	path := writeLexiconFile(t, `
sentiment:
  words:
    stellar:
      polarity: 1.5
      subjectivity: 0.5
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for polarity outside [-1,1]")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSentimentScoreAveragesMatches(t *testing.T) {
	s := defaultSentiment()

	// "good" 0.5 and "bad" -0.5 average to zero polarity
	pol, subj := s.Score([]string{"good", "code", "bad"})
	if pol != 0 {
		t.Errorf("polarity = %v, want 0", pol)
	}
	if subj != 0.6 {
		t.Errorf("subjectivity = %v, want 0.6", subj)
	}
}

func TestSentimentScoreIntensifier(t *testing.T) {
	s := defaultSentiment()

	pol, _ := s.Score([]string{"very", "good"})
	if pol != 0.65 {
		t.Errorf("polarity = %v, want 0.65 (0.5 * 1.3)", pol)
	}
}

func TestSentimentScoreNegator(t *testing.T) {
	s := defaultSentiment()

	pol, _ := s.Score([]string{"not", "good"})
	if pol != -0.25 {
		t.Errorf("polarity = %v, want -0.25 (0.5 * -0.5)", pol)
	}
}

func TestSentimentScoreClampsIntensifiedPolarity(t *testing.T) {
	s := defaultSentiment()

	// 0.8 * 1.5 would exceed 1 without the clamp
	pol, _ := s.Score([]string{"extremely", "excellent"})
	if pol != 1 {
		t.Errorf("polarity = %v, want clamped 1", pol)
	}
}

func TestSentimentScoreNoMatches(t *testing.T) {
	s := defaultSentiment()

	pol, subj := s.Score([]string{"compiler", "linker"})
	if pol != 0 || subj != 0 {
		t.Errorf("Score = (%v, %v), want (0, 0) with no matches", pol, subj)
	}
}
