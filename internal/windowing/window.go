// Package windowing bounds what the step loop sends to the model.
//
// Two limits apply:
//   - Recent: only the newest n history entries are embedded in a plan prompt.
//   - Clamp: excerpts (page text, rendered files) are cut to a rune budget.
//
// Both are deterministic and never split a UTF-8 sequence.
package windowing

import "unicode/utf8"

// Clamp returns at most n runes of s and whether anything was cut.
// n <= 0 yields "".
func Clamp(s string, n int) (string, bool) {
	if n <= 0 {
		return "", s != ""
	}
	// Fast path: byte length bounds rune count.
	if len(s) <= n {
		return s, false
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}

// Recent returns the last n items (oldest→newest). The result aliases items.
func Recent[T any](items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

// RuneLen is the number of runes Clamp counts against.
func RuneLen(s string) int { return utf8.RuneCountInString(s) }
