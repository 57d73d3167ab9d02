// Package textutil provides the text normalization and tokenization helpers
// shared by the ATS and transcript pipelines.
package textutil

import (
	"strings"
	"unicode"
)

// Normalize collapses runs of whitespace to single spaces and trims the
// result. Idempotent; empty input yields an empty string.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// CleanTranscript isolates candidate speech: it drops every line whose
// trimmed, lowercased form starts with "interviewer:", joins the remaining
// lines with single spaces and normalizes whitespace.
func CleanTranscript(transcript string) string {
	var kept []string
	for line := range strings.SplitSeq(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "interviewer:") {
			continue
		}
		kept = append(kept, line)
	}
	return Normalize(strings.Join(kept, " "))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
}

// Words splits text into word tokens, discarding punctuation. Apostrophes
// are kept inside contractions.
func Words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool { return !isWordRune(r) })
}

// LowerWords returns the word tokens of text, lowercased.
func LowerWords(text string) []string {
	words := Words(text)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}

// UniqueWordCount counts distinct lowercased word tokens.
func UniqueWordCount(words []string) int {
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[strings.ToLower(w)] = struct{}{}
	}
	return len(seen)
}

// Sentences splits text on terminal punctuation, returning the non-empty
// trimmed segments. Text without terminal punctuation is one sentence.
func Sentences(text string) []string {
	var out []string
	var b strings.Builder
	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
		b.Reset()
	}
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()
	return out
}
