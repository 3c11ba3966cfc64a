package analysis

import (
	"encoding/json"
	"regexp"
	"strings"
)

// WordGloss is one word of a cue with its meaning in context.
// Meaning may be empty when the model omits it.
type WordGloss struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// Record is the structured analysis of one subtitle line, decoded from the
// model's response per the prompt contract.
type Record struct {
	Translation string      `json:"translation"`
	Words       []WordGloss `json:"words"`
	Explanation string      `json:"explanation"`
}

// emptyRecord is the degraded result for a failed or unparseable analysis.
// Words is non-nil so the record serialises as an empty array, not null.
func emptyRecord() Record {
	return Record{Words: []WordGloss{}}
}

// trailingComma matches a comma immediately preceding a closing bracket or
// brace — the most common structural defect in model-produced JSON.
var trailingComma = regexp.MustCompile(`,\s*([\]}])`)

// Sanitize repairs raw model output and decodes it into a [Record].
//
// It strips one surrounding fenced code block (with or without a language
// tag), removes trailing commas before closing brackets in a single global
// pass, then attempts JSON decoding. On any decode failure — or when the
// text lacks the contracted shape — it returns the zero Record and ok=false
// rather than an error: one garbled line must never abort enrichment.
//
// Sanitize is idempotent on text that already decodes cleanly.
func Sanitize(raw string) (rec Record, ok bool) {
	cleaned := stripFence(strings.TrimSpace(raw))
	cleaned = trailingComma.ReplaceAllString(cleaned, "$1")

	if err := json.Unmarshal([]byte(cleaned), &rec); err != nil {
		return emptyRecord(), false
	}
	if rec.Words == nil {
		rec.Words = []WordGloss{}
	}
	return rec, true
}

// stripFence removes a surrounding markdown code fence (```json ... ``` or
// bare ``` ... ```), which many models wrap around JSON output.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence together with any language tag on its line.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimLeft(s, "`")
		s = strings.TrimPrefix(s, "json")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "`")
	return strings.TrimSpace(s)
}
