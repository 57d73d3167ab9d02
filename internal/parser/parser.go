// Package parser recovers a structured ATS result from unreliable model
// output. The upstream text has no format guarantee; it may arrive fenced in
// markdown, with trailing commas, unquoted keys, single quotes, or as plain
// prose. Recovery runs as an ordered cascade of independent attempts where
// the first success wins.
package parser

import (
	"encoding/json"
	"strings"

	"hirescore/internal/types"
)

// Stage identifies which cascade stage produced a result.
type Stage string

const (
	StageDirect   Stage = "direct"
	StageBlock    Stage = "block"
	StageRepair   Stage = "repair"
	StageSalvage  Stage = "salvage"
	StageFallback Stage = "fallback"
)

// Outcome carries the recovered result and the stage that produced it.
type Outcome struct {
	Result types.ATSResult
	Stage  Stage
}

// Parser turns raw model text into a validated ATSResult. The terminal
// fallback is injected so the parser itself stays free of scoring logic.
type Parser struct {
	fallback func() types.ATSResult
}

// New creates a Parser. fallback supplies the terminal result used when no
// cascade stage can recover anything; it must never be nil.
func New(fallback func() types.ATSResult) *Parser {
	return &Parser{fallback: fallback}
}

type attempt struct {
	stage Stage
	run   func(string) (types.ATSResult, bool)
}

// Parse runs the recovery cascade. It always returns a schema-conformant
// result; malformed input is never surfaced as an error.
func (p *Parser) Parse(raw string) Outcome {
	attempts := []attempt{
		{StageDirect, p.parseDirect},
		{StageBlock, p.parseBlock},
		{StageRepair, p.parseRepaired},
		{StageSalvage, salvage},
	}

	for _, a := range attempts {
		if result, ok := a.run(raw); ok {
			return Outcome{Result: result, Stage: a.stage}
		}
	}

	return Outcome{Result: p.fallback(), Stage: StageFallback}
}

// parseDirect attempts a strict parse of the trimmed whole input.
func (p *Parser) parseDirect(raw string) (types.ATSResult, bool) {
	return parseStrict(strings.TrimSpace(raw))
}

// parseBlock extracts the widest {...} span and strict-parses it.
func (p *Parser) parseBlock(raw string) (types.ATSResult, bool) {
	open := strings.Index(raw, "{")
	if open < 0 {
		return types.ATSResult{}, false
	}
	close := strings.LastIndex(raw, "}")
	if close <= open {
		return types.ATSResult{}, false
	}
	return parseStrict(raw[open : close+1])
}

// parseRepaired applies the fixed repair sequence and strict-parses the
// repaired text.
func (p *Parser) parseRepaired(raw string) (types.ATSResult, bool) {
	return parseStrict(repair(raw))
}

func parseStrict(text string) (types.ATSResult, bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return types.ATSResult{}, false
	}
	return validate(fields)
}
