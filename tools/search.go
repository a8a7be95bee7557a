package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/petasbytes/taskrunner/internal/logging"
	"github.com/petasbytes/taskrunner/internal/outcome"
	"github.com/petasbytes/taskrunner/internal/windowing"
)

// SearchErrorLabel prefixes search provider failures.
const SearchErrorLabel = "Search error"

// SearchProvider returns raw results for a query.
type SearchProvider interface {
	Search(ctx context.Context, query string) (SearchResults, error)
}

// StubSearchProvider fabricates a single result referencing the query.
type StubSearchProvider struct{}

func (StubSearchProvider) Search(_ context.Context, query string) (SearchResults, error) {
	return SearchResults{Results: []SearchHit{{
		Title: "Result for " + query,
		URL:   "http://example.com",
	}}}, nil
}

// Searcher asks the model to summarise a provider's results.
type Searcher struct {
	provider SearchProvider
	analyzer Analyzer
	logger   *slog.Logger
}

// NewSearcher returns a Searcher; a nil provider means StubSearchProvider.
func NewSearcher(a Analyzer, p SearchProvider, logger *slog.Logger) *Searcher {
	if p == nil {
		p = StubSearchProvider{}
	}
	return &Searcher{provider: p, analyzer: a, logger: logging.OrDiscard(logger)}
}

func (s *Searcher) Search(ctx context.Context, query string) Result {
	raw, err := s.provider.Search(ctx, query)
	if err != nil {
		s.logger.Warn("search failed", "query_runes", windowing.RuneLen(query), "err", err)
		return FailedResult{Tool: KindSearch, Err: outcome.Fail(outcome.FetchError, SearchErrorLabel, err)}
	}
	rj, err := json.Marshal(raw)
	if err != nil {
		return FailedResult{Tool: KindSearch, Err: outcome.Fail(outcome.DecodeError, SearchErrorLabel, err)}
	}
	prompt := fmt.Sprintf("Summarize search results for query '%s': %s", query, rj)
	return SearchResult{
		Query:   query,
		Raw:     raw,
		Summary: s.analyzer.Generate(ctx, prompt),
	}
}
