package tools

import (
	"encoding/json"

	"github.com/petasbytes/taskrunner/internal/outcome"
)

// Kind names the tool path that produced a Result.
type Kind string

const (
	KindCode     Kind = "code"
	KindBrowse   Kind = "browse"
	KindSearch   Kind = "search"
	KindFile     Kind = "file"
	KindFallback Kind = "fallback"
)

// Result is the output of one tool path. The set of implementations is closed.
type Result interface {
	Kind() Kind
	// Display is the part of the result shown as the step output.
	Display() outcome.Text
	isResult()
}

// CodeResult is the simulated execution acknowledgement.
type CodeResult struct {
	Code     string
	Language string
	Output   outcome.Text
}

func (CodeResult) Kind() Kind                     { return KindCode }
func (r CodeResult) Display() outcome.Text        { return r.Output }
func (CodeResult) isResult()                      {}
func (r CodeResult) MarshalJSON() ([]byte, error) { return json.Marshal(r.Output.Value) }

// Visual is the synthetic page-rendering record attached to every browse.
type Visual struct {
	Screenshot string          `json:"screenshot"`
	Elements   []VisualElement `json:"elements"`
}

type VisualElement struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// MockVisual returns the fixed visual record.
func MockVisual() Visual {
	return Visual{
		Screenshot: "mock_screenshot.png",
		Elements:   []VisualElement{{ID: "elem1", Type: "button"}},
	}
}

// BrowseResult is a fetched page excerpt plus the model's analysis of it.
type BrowseResult struct {
	URL       string       `json:"url"`
	Status    int          `json:"status"`
	Title     string       `json:"title,omitempty"`
	Text      string       `json:"text"`
	Truncated bool         `json:"truncated"`
	Visual    Visual       `json:"visual"`
	Analysis  outcome.Text `json:"llm_analysis"`
}

func (BrowseResult) Kind() Kind              { return KindBrowse }
func (r BrowseResult) Display() outcome.Text { return r.Analysis }
func (BrowseResult) isResult()               {}

// SearchHit is one fabricated search result.
type SearchHit struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SearchResults is the raw result set a SearchProvider returns.
type SearchResults struct {
	Results []SearchHit `json:"results"`
}

// SearchResult pairs raw results with the model's summary.
type SearchResult struct {
	Query   string        `json:"query"`
	Raw     SearchResults `json:"raw_results"`
	Summary outcome.Text  `json:"summary"`
}

func (SearchResult) Kind() Kind              { return KindSearch }
func (r SearchResult) Display() outcome.Text { return r.Summary }
func (SearchResult) isResult()               {}

// FileResult is a rendered file plus the model's analysis.
// Supported is false when Content is the unsupported-type marker.
type FileResult struct {
	Name      string       `json:"name"`
	Content   string       `json:"content"`
	Supported bool         `json:"supported"`
	Analysis  outcome.Text `json:"llm_analysis"`
}

func (FileResult) Kind() Kind              { return KindFile }
func (r FileResult) Display() outcome.Text { return r.Analysis }
func (FileResult) isResult()               {}

// FallbackResult is the model's direct reply to an unrecognised task.
type FallbackResult struct {
	Reply outcome.Text
}

func (FallbackResult) Kind() Kind                     { return KindFallback }
func (r FallbackResult) Display() outcome.Text        { return r.Reply }
func (FallbackResult) isResult()                      {}
func (r FallbackResult) MarshalJSON() ([]byte, error) { return json.Marshal(r.Reply.Value) }

// FailedResult replaces a tool's payload when the tool itself failed.
type FailedResult struct {
	Tool Kind
	Err  outcome.Text
}

func (r FailedResult) Kind() Kind                   { return r.Tool }
func (r FailedResult) Display() outcome.Text        { return r.Err }
func (FailedResult) isResult()                      {}
func (r FailedResult) MarshalJSON() ([]byte, error) { return json.Marshal(r.Err.Value) }
