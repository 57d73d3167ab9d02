package parser

import (
	"regexp"
	"strings"
)

var (
	fenceOpenRe    = regexp.MustCompile("```json\\s*")
	fenceCloseRe   = regexp.MustCompile("```\\s*")
	trailingObjRe  = regexp.MustCompile(`,\s*}`)
	trailingArrRe  = regexp.MustCompile(`,\s*]`)
	unquotedKeyRe  = regexp.MustCompile(`(\w+):`)
)

// repair applies a fixed sequence of textual fixes for the malformations
// the model is known to produce. Each fix is a pure text transform applied
// unconditionally in order: strip markdown fences, drop trailing commas,
// quote bare keys, convert single quotes to double quotes.
func repair(text string) string {
	text = fenceOpenRe.ReplaceAllString(text, "")
	text = fenceCloseRe.ReplaceAllString(text, "")

	text = trailingObjRe.ReplaceAllString(text, "}")
	text = trailingArrRe.ReplaceAllString(text, "]")

	// Only truly bare keys match: a quoted key has a quote between the
	// word and the colon, so it is left alone.
	text = unquotedKeyRe.ReplaceAllString(text, `"$1":`)

	text = strings.ReplaceAll(text, "'", `"`)

	return strings.TrimSpace(text)
}
