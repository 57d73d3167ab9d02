package lexicon

// SentimentEntry assigns a polarity in [-1,1] and a subjectivity in [0,1]
// to a single word.
type SentimentEntry struct {
	Polarity     float64 `yaml:"polarity"`
	Subjectivity float64 `yaml:"subjectivity"`
}

// SentimentLexicon is a fixed word-level sentiment table plus modifier lists.
// Intensifiers scale the polarity of the following sentiment word; negators
// flip it and dampen its magnitude.
type SentimentLexicon struct {
	Words        map[string]SentimentEntry `yaml:"words"`
	Intensifiers map[string]float64        `yaml:"intensifiers"`
	Negators     []string                  `yaml:"negators"`
}

// Score computes average polarity and subjectivity over the matched words.
// Tokens must already be lowercased. Returns (0, 0) when nothing matches.
func (s *SentimentLexicon) Score(tokens []string) (polarity, subjectivity float64) {
	if len(s.Words) == 0 {
		return 0, 0
	}

	var polSum, subSum float64
	matched := 0

	for i, tok := range tokens {
		entry, ok := s.Words[tok]
		if !ok {
			continue
		}

		pol := entry.Polarity
		// Look back up to two tokens for modifiers, nearest first.
		for back := 1; back <= 2 && i-back >= 0; back++ {
			prev := tokens[i-back]
			if factor, ok := s.Intensifiers[prev]; ok {
				pol *= factor
				continue
			}
			if s.isNegator(prev) {
				pol *= -0.5
				break
			}
		}

		polSum += clampUnit(pol)
		subSum += entry.Subjectivity
		matched++
	}

	if matched == 0 {
		return 0, 0
	}
	return polSum / float64(matched), subSum / float64(matched)
}

func (s *SentimentLexicon) isNegator(word string) bool {
	for _, n := range s.Negators {
		if word == n {
			return true
		}
	}
	return false
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func defaultSentiment() SentimentLexicon {
	words := map[string]SentimentEntry{}

	add := func(pol, subj float64, ws ...string) {
		for _, w := range ws {
			words[w] = SentimentEntry{Polarity: pol, Subjectivity: subj}
		}
	}

	add(0.8, 0.9, "excellent", "outstanding", "amazing", "fantastic", "wonderful", "superb")
	add(0.7, 0.8, "great", "excited", "love", "loved", "thrilled", "passionate")
	add(0.5, 0.6, "good", "happy", "proud", "enjoyed", "enjoy", "positive", "confident", "successful", "success")
	add(0.4, 0.5, "effective", "strong", "valuable", "helpful", "rewarding", "motivated", "productive")
	add(0.3, 0.4, "improved", "improving", "better", "growth", "opportunity", "opportunities", "achievement", "accomplished")
	add(0.2, 0.3, "interesting", "useful", "solid", "capable", "comfortable", "willing")
	add(-0.2, 0.3, "hard", "slow", "unclear", "concerned", "concerns")
	add(-0.3, 0.4, "difficult", "challenging", "stressful", "boring", "tired")
	add(-0.5, 0.6, "bad", "poor", "unhappy", "frustrated", "frustrating", "disappointed", "disappointing", "negative")
	add(-0.7, 0.8, "terrible", "awful", "hate", "hated", "miserable", "hopeless")
	add(-0.8, 0.9, "horrible", "disaster", "worst", "useless")

	return SentimentLexicon{
		Words: words,
		Intensifiers: map[string]float64{
			"very":       1.3,
			"really":     1.3,
			"extremely":  1.5,
			"incredibly": 1.5,
			"quite":      1.1,
			"truly":      1.3,
			"so":         1.2,
			"slightly":   0.6,
			"somewhat":   0.7,
			"barely":     0.4,
		},
		Negators: []string{"not", "no", "never", "neither", "nobody", "nothing", "hardly", "cannot", "can't", "don't", "didn't", "wasn't", "isn't", "won't"},
	}
}
