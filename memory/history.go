package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/petasbytes/taskrunner/internal/windowing"
)

// KindPlan marks entries produced by the planning call.
const KindPlan = "plan"

// Entry is one history item: a plan text or a tool result.
type Entry struct {
	Step   int    `json:"step"`
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Result any    `json:"result,omitempty"`
}

// Value is what the entry contributes to a planning prompt: the tool result
// when there is one, otherwise the text.
func (e Entry) Value() any {
	if e.Result != nil {
		return e.Result
	}
	return e.Text
}

// History is an append-only sequence of entries. The zero value is ready to use.
type History struct {
	entries []Entry
}

func (h *History) Append(e Entry) {
	h.entries = append(h.entries, e)
}

func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of all entries in append order.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Recent returns up to the last n entries, oldest first.
func (h *History) Recent(n int) []Entry {
	return slices.Clone(windowing.Recent(h.entries, n))
}

// LoadHistory reads entries saved by SaveHistory. A missing file yields nil, nil.
// Results come back as json.RawMessage.
func LoadHistory(path string) ([]Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var raw []struct {
		Entry
		Result json.RawMessage `json:"result,omitempty"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode history %s: %w", path, err)
	}
	out := make([]Entry, 0, len(raw))
	for _, r := range raw {
		e := r.Entry
		if len(r.Result) > 0 {
			e.Result = r.Result
		}
		out = append(out, e)
	}
	return out, nil
}

// SaveHistory writes entries as indented JSON, creating parent directories.
func SaveHistory(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	b, err := json.MarshalIndent(entries, "", " ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b, 0o644)
}
