package runner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petasbytes/taskrunner/internal/runner"
)

func TestClassify(t *testing.T) {
	const def = "http://example.com"
	cases := []struct {
		name    string
		task    string
		hasFile bool
		want    runner.Action
	}{
		{"write_code", "Write code to print Hello World", false, runner.CodeAction{}},
		{"code_beats_search", "search for code samples", false, runner.CodeAction{}},
		{"search_query_trimmed", "search python docs", false, runner.SearchAction{Query: "python docs"}},
		{"search_beats_browse", "browse and search golang.org", false, runner.SearchAction{Query: "golang.org"}},
		{"search_capitalised_keeps_task", "Search for Python documentation", false, runner.SearchAction{Query: "Search for Python documentation"}},
		{"search_mixed_case_uses_lowercase", "Search the web: search golang", false, runner.SearchAction{Query: "golang"}},
		{"search_last_occurrence", "search research papers", false, runner.SearchAction{Query: "papers"}},
		{"browse_url", "browse https://go.dev/Doc", false, runner.BrowseAction{URL: "https://go.dev/Doc"}},
		{"browse_empty_defaults", "browse ", false, runner.BrowseAction{URL: def}},
		{"browse_capitalised_keeps_task", "Browse to http://example.com", false, runner.BrowseAction{URL: "Browse to http://example.com"}},
		{"browse_upper_keeps_task", "BROWSE", false, runner.BrowseAction{URL: "BROWSE"}},
		{"read_file_with_file", "Read file please", true, runner.FileAction{}},
		{"read_file_without_file", "read file please", false, runner.FallbackAction{}},
		{"file_without_keyword", "summarise this", true, runner.FallbackAction{}},
		{"unknown", "tell me a joke", false, runner.FallbackAction{}},
		{"empty", "", false, runner.FallbackAction{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, runner.Classify(tc.task, tc.hasFile, def))
		})
	}
}

func TestClassify_LabelsAndTools(t *testing.T) {
	assert.Equal(t, "Code Result", runner.CodeAction{}.Label())
	assert.Equal(t, "Search Result", runner.SearchAction{}.Label())
	assert.Equal(t, "Browse Result", runner.BrowseAction{}.Label())
	assert.Equal(t, "File Result", runner.FileAction{}.Label())
	assert.Equal(t, "LLM Fallback", runner.FallbackAction{}.Label())
	assert.EqualValues(t, "browse", runner.BrowseAction{}.Tool())
}

func TestClassify_RemainderFromTaskAsTyped(t *testing.T) {
	// "İ" lowers to a longer byte sequence; offsets must still index the original task.
	got := runner.Classify("İstanbul search cafés", false, "")
	assert.Equal(t, runner.SearchAction{Query: "cafés"}, got)
}
