package normalizer

import (
	"regexp"
	"strings"
)

var fenceMarker = regexp.MustCompile("```(?:json)?\n?")

// jsonTerminators are the characters a complete JSON value can end with.
const jsonTerminators = `}]"0123456789`

// StripFences removes ```json / ``` markers wherever they appear.
func StripFences(raw string) string {
	return strings.TrimSpace(fenceMarker.ReplaceAllString(raw, ""))
}

// Repair trims trailing garbage after the last plausible terminator and
// appends the closing brackets then braces that the text is short of.
//
// Counting ignores string context, so braces inside string values skew the
// result and an array can be closed at the wrong depth. The output must still
// be validated.
func Repair(text string) string {
	repaired := strings.TrimSpace(text)
	if idx := strings.LastIndexAny(repaired, jsonTerminators); idx >= 0 {
		repaired = repaired[:idx+1]
	}

	missingBrackets := strings.Count(repaired, "[") - strings.Count(repaired, "]")
	missingBraces := strings.Count(repaired, "{") - strings.Count(repaired, "}")

	var b strings.Builder
	b.Grow(len(repaired) + max(missingBrackets, 0) + max(missingBraces, 0))
	b.WriteString(repaired)
	for i := 0; i < missingBrackets; i++ {
		b.WriteByte(']')
	}
	for i := 0; i < missingBraces; i++ {
		b.WriteByte('}')
	}
	return b.String()
}
