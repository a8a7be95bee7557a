package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/petasbytes/taskrunner/internal/htmlconv"
	"github.com/petasbytes/taskrunner/internal/outcome"
	"github.com/petasbytes/taskrunner/internal/windowing"
)

// BrowseErrorLabel prefixes fetch failures.
const BrowseErrorLabel = "Browsing error"

type page struct {
	status    int
	text      string
	truncated bool
	title     string
}

// Browser fetches pages and has the model analyse an excerpt of each.
// Successful fetches are cached per URL when a cache size is configured.
type Browser struct {
	client      *http.Client
	analyzer    Analyzer
	bodyLimit   int
	promptLimit int
	markdown    bool
	cache       *expirable.LRU[string, page]
	logger      *slog.Logger
}

// NewBrowser builds a Browser from opts. An HTTPClient without a timeout gets opts.FetchTimeout.
func NewBrowser(a Analyzer, opts Options) *Browser {
	opts = opts.withDefaults()
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.FetchTimeout}
	} else if client.Timeout == 0 {
		c := *client
		c.Timeout = opts.FetchTimeout
		client = &c
	}
	b := &Browser{
		client:      client,
		analyzer:    a,
		bodyLimit:   opts.BodyLimit,
		promptLimit: opts.PromptLimit,
		markdown:    opts.BrowseMarkdown,
		logger:      opts.Logger,
	}
	if opts.CacheSize > 0 {
		b.cache = expirable.NewLRU[string, page](opts.CacheSize, nil, opts.CacheTTL)
	}
	return b
}

// Browse GETs url and returns a BrowseResult, or a FetchError FailedResult
// when the request cannot be made or the body cannot be read. Non-2xx
// responses are analysed like any other page.
func (b *Browser) Browse(ctx context.Context, url string) Result {
	p, err := b.fetch(ctx, url)
	if err != nil {
		b.logger.Warn("browse failed", "url", url, "err", err)
		return FailedResult{Tool: KindBrowse, Err: outcome.Fail(outcome.FetchError, BrowseErrorLabel, err)}
	}

	excerpt := p.text
	if b.markdown {
		if md, ok := htmlconv.ConvertIfHTML(excerpt); ok {
			excerpt = md
		}
	}
	excerpt, _ = windowing.Clamp(excerpt, b.promptLimit)

	visual := MockVisual()
	vj, _ := json.Marshal(visual)
	prompt := fmt.Sprintf("Analyze webpage content: %s\nVisual data: %s", excerpt, vj)

	return BrowseResult{
		URL:       url,
		Status:    p.status,
		Title:     p.title,
		Text:      p.text,
		Truncated: p.truncated,
		Visual:    visual,
		Analysis:  b.analyzer.Generate(ctx, prompt),
	}
}

func (b *Browser) fetch(ctx context.Context, url string) (page, error) {
	if b.cache != nil {
		if p, ok := b.cache.Get(url); ok {
			b.logger.Debug("browse cache hit", "url", url)
			return p, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return page{}, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return page{}, err
	}
	defer resp.Body.Close()

	// A rune is at most 4 bytes, so this always covers bodyLimit runes.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, int64(b.bodyLimit)*utf8.UTFMax))
	if err != nil {
		return page{}, fmt.Errorf("read body: %w", err)
	}
	body := strings.ToValidUTF8(string(raw), "\uFFFD")
	text, truncated := windowing.Clamp(body, b.bodyLimit)

	p := page{status: resp.StatusCode, text: text, truncated: truncated}
	if htmlconv.IsHTML(body) {
		p.title = htmlconv.Title(body)
	}
	b.logger.Debug("browse fetched", "url", url, "status", resp.StatusCode, "bytes", len(raw))

	if b.cache != nil {
		b.cache.Add(url, p)
	}
	return p, nil
}
