package runner

import (
	"strings"

	"github.com/petasbytes/taskrunner/tools"
)

// Action is the tool path a task maps to. The set of implementations is closed.
type Action interface {
	// Label is the step-output kind, e.g. "Search Result".
	Label() string
	Tool() tools.Kind
	isAction()
}

type CodeAction struct{}

type SearchAction struct {
	Query string
}

type BrowseAction struct {
	URL string
}

type FileAction struct{}

type FallbackAction struct{}

func (CodeAction) Label() string     { return "Code Result" }
func (SearchAction) Label() string   { return "Search Result" }
func (BrowseAction) Label() string   { return "Browse Result" }
func (FileAction) Label() string     { return "File Result" }
func (FallbackAction) Label() string { return "LLM Fallback" }

func (CodeAction) Tool() tools.Kind     { return tools.KindCode }
func (SearchAction) Tool() tools.Kind   { return tools.KindSearch }
func (BrowseAction) Tool() tools.Kind   { return tools.KindBrowse }
func (FileAction) Tool() tools.Kind     { return tools.KindFile }
func (FallbackAction) Tool() tools.Kind { return tools.KindFallback }

func (CodeAction) isAction()     {}
func (SearchAction) isAction()   {}
func (BrowseAction) isAction()   {}
func (FileAction) isAction()     {}
func (FallbackAction) isAction() {}

// Classify maps a task to its Action. Keywords match case-insensitively and
// are tried in order: "code" (which covers "write code"), "search", "browse",
// then "read file" when hasFile. Search queries and browse URLs are the
// trimmed text after the last lowercase keyword in the task as typed, or the
// whole trimmed task when the keyword only appears capitalised. An empty URL
// becomes defaultURL.
func Classify(task string, hasFile bool, defaultURL string) Action {
	lower := strings.ToLower(task)
	switch {
	case strings.Contains(lower, "code"):
		return CodeAction{}
	case strings.Contains(lower, "search"):
		return SearchAction{Query: remainderAfter(task, "search")}
	case strings.Contains(lower, "browse"):
		url := remainderAfter(task, "browse")
		if url == "" {
			url = defaultURL
		}
		return BrowseAction{URL: url}
	case strings.Contains(lower, "read file") && hasFile:
		return FileAction{}
	default:
		return FallbackAction{}
	}
}

// remainderAfter returns the trimmed text after the last keyword in task,
// or all of task when keyword does not occur verbatim.
func remainderAfter(task, keyword string) string {
	i := strings.LastIndex(task, keyword)
	if i < 0 {
		return strings.TrimSpace(task)
	}
	return strings.TrimSpace(task[i+len(keyword):])
}
