package tools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/petasbytes/taskrunner/internal/logging"
	"github.com/petasbytes/taskrunner/internal/outcome"
)

// Analyzer is the model call the stubs use to analyse or summarise data.
type Analyzer interface {
	Generate(ctx context.Context, prompt string) outcome.Text
}

// FileLoader loads a named file by path; fsops.Reader implements it.
type FileLoader interface {
	Load(path string) (name string, data []byte, err error)
}

// Defaults for Options fields left at zero.
const (
	DefaultPromptLimit  = 500
	DefaultBodyLimit    = 1000
	DefaultFetchTimeout = 5 * time.Second
)

// Options tunes the stubs. Zero values select the defaults.
type Options struct {
	PromptLimit    int
	BodyLimit      int
	FetchTimeout   time.Duration
	BrowseMarkdown bool
	CacheSize      int
	CacheTTL       time.Duration
	HTTPClient     *http.Client
	Search         SearchProvider
	Loader         FileLoader
	Logger         *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.PromptLimit <= 0 {
		o.PromptLimit = DefaultPromptLimit
	}
	if o.BodyLimit <= 0 {
		o.BodyLimit = DefaultBodyLimit
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = DefaultFetchTimeout
	}
	if o.Search == nil {
		o.Search = StubSearchProvider{}
	}
	o.Logger = logging.OrDiscard(o.Logger)
	return o
}

// Toolbox bundles the stubs behind one analyzer.
type Toolbox struct {
	Browser  *Browser
	Searcher *Searcher
	Files    *FileReader
	loader   FileLoader
}

// NewToolbox wires every stub to a.
func NewToolbox(a Analyzer, opts Options) *Toolbox {
	opts = opts.withDefaults()
	return &Toolbox{
		Browser:  NewBrowser(a, opts),
		Searcher: NewSearcher(a, opts.Search, opts.Logger),
		Files:    NewFileReader(a, opts.PromptLimit, opts.Logger),
		loader:   opts.Loader,
	}
}

func (tb *Toolbox) RunCode(code, language string) Result { return RunCode(code, language) }

func (tb *Toolbox) Browse(ctx context.Context, url string) Result {
	return tb.Browser.Browse(ctx, url)
}

func (tb *Toolbox) Search(ctx context.Context, query string) Result {
	return tb.Searcher.Search(ctx, query)
}

func (tb *Toolbox) ReadFile(ctx context.Context, f File) Result {
	return tb.Files.Read(ctx, f)
}

type BrowseInput struct {
	URL string `json:"url" jsonschema_description:"Absolute http(s) URL to fetch."`
}

type SearchInput struct {
	Query string `json:"query" jsonschema_description:"Search query."`
}

type ReadFileInput struct {
	Path string `json:"path" jsonschema_description:"File path relative to the read root (.txt or .pdf)."`
}

// Registry returns the definitions of all tools, bound to tb.
func (tb *Toolbox) Registry() []ToolDefinition {
	return []ToolDefinition{
		RunCodeDefinition,
		{
			Name:        "browse",
			Description: "Fetch a web page, keep its first characters and ask the model to analyse them together with a synthetic screenshot record.",
			InputSchema: GenerateSchema[BrowseInput](),
			Function: func(ctx context.Context, input json.RawMessage) (Result, error) {
				var in BrowseInput
				if err := json.Unmarshal(input, &in); err != nil {
					return nil, err
				}
				return tb.Browse(ctx, in.URL), nil
			},
		},
		{
			Name:        "search",
			Description: "Fabricate a search result for a query and ask the model to summarise it.",
			InputSchema: GenerateSchema[SearchInput](),
			Function: func(ctx context.Context, input json.RawMessage) (Result, error) {
				var in SearchInput
				if err := json.Unmarshal(input, &in); err != nil {
					return nil, err
				}
				return tb.Search(ctx, in.Query), nil
			},
		},
		{
			Name:        "read_file",
			Description: "Render a .txt file (or a placeholder for .pdf) as HTML and ask the model to analyse it. Paths outside the read root are rejected.",
			InputSchema: GenerateSchema[ReadFileInput](),
			Function: func(ctx context.Context, input json.RawMessage) (Result, error) {
				var in ReadFileInput
				if err := json.Unmarshal(input, &in); err != nil {
					return nil, err
				}
				if tb.loader == nil {
					return nil, errors.New("read_file: no file loader configured")
				}
				name, data, err := tb.loader.Load(in.Path)
				if err != nil {
					return nil, err
				}
				return tb.ReadFile(ctx, File{Name: name, Data: data}), nil
			},
		},
	}
}

// Lookup returns the named definition from defs.
func Lookup(defs []ToolDefinition, name string) (ToolDefinition, bool) {
	for _, d := range defs {
		if d.Name == name {
			return d, true
		}
	}
	return ToolDefinition{}, false
}
