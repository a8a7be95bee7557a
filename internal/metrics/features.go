// Package metrics derives size features from text so telemetry can describe
// tasks and tool outputs without recording their content.
package metrics

import (
	"strings"
	"unicode/utf8"
)

// Features holds basic size features of a string.
type Features struct {
	Bytes int `json:"bytes"`
	Runes int `json:"runes"`
	Words int `json:"words"`
	Lines int `json:"lines"`
}

// Measure returns byte, rune, word and line counts for s.
// Words split on Unicode whitespace; an empty string has zero lines.
func Measure(s string) Features {
	f := Features{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
	}
	if s != "" {
		f.Lines = 1 + strings.Count(s, "\n")
	}
	return f
}
