package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"mdocs-mcp/internal/extract"
	"mdocs-mcp/internal/types"
)

// Fixed request headers. The documentation origin rejects default Go
// client signatures, so requests resemble a browser.
const (
	headerAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	headerUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	headerAcceptLanguage = "en-US,en;q=0.5"
)

// DefaultFetchTimeout bounds each GET against the documentation origin.
const DefaultFetchTimeout = 10 * time.Second

// DefaultCacheTTL is how long a fetched record stays valid.
const DefaultCacheTTL = time.Hour

type cacheEntry struct {
	doc       *types.ApiDoc
	fetchedAt time.Time
}

// DocsClient handles all interactions with the documentation site:
// endpoint resolution, page fetching, extraction and search.
type DocsClient struct {
	baseURL   string
	endpoints *EndpointTable
	client    *http.Client
	logger    zerolog.Logger
	cacheTTL  time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// DocsOption configures a DocsClient.
type DocsOption func(*DocsClient)

// WithTimeout sets the per-request timeout. Defaults to
// DefaultFetchTimeout.
func WithTimeout(d time.Duration) DocsOption {
	return func(c *DocsClient) {
		c.client.Timeout = d
	}
}

// WithCacheTTL sets how long fetched records are reused before hitting
// the origin again. Zero disables caching.
func WithCacheTTL(d time.Duration) DocsOption {
	return func(c *DocsClient) {
		c.cacheTTL = d
	}
}

// WithLogger sets the diagnostic logger. Diagnostics go to the log
// stream only, never into response payloads.
func WithLogger(logger zerolog.Logger) DocsOption {
	return func(c *DocsClient) {
		c.logger = logger
	}
}

// NewDocsClient creates a client for the documentation site at baseURL.
func NewDocsClient(baseURL string, endpoints *EndpointTable, opts ...DocsOption) *DocsClient {
	c := &DocsClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &http.Client{Timeout: DefaultFetchTimeout},
		logger:    zerolog.Nop(),
		cacheTTL:  DefaultCacheTTL,
		cache:     make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured documentation origin.
func (c *DocsClient) BaseURL() string {
	return c.baseURL
}

// Endpoints returns the endpoint table.
func (c *DocsClient) Endpoints() *EndpointTable {
	return c.endpoints
}

// Fetch retrieves and extracts the documentation record for element.
// Unknown names fail with *UnknownElementError; transport errors,
// non-success statuses and empty bodies fail with an EINTERNAL error
// naming the element. A record fetched within the cache TTL is reused
// without touching the origin.
func (c *DocsClient) Fetch(ctx context.Context, element string) (*types.ApiDoc, error) {
	path, ok := c.endpoints.Resolve(element)
	if !ok {
		return nil, &UnknownElementError{
			Element:  element,
			Sections: c.endpoints.Sections(),
		}
	}

	if doc, ok := c.cached(element); ok {
		c.logger.Debug().Str("element", element).Msg("cache hit")
		return doc, nil
	}

	pageURL := joinURL(c.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, Errorf(EINTERNAL, "fetch %s: %v", element, err)
	}
	req.Header.Set("Accept", headerAccept)
	req.Header.Set("User-Agent", headerUserAgent)
	req.Header.Set("Accept-Language", headerAcceptLanguage)

	c.logger.Debug().
		Str("element", element).
		Str("url", pageURL).
		Msg("fetching documentation page")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, Errorf(EINTERNAL, "fetch %s: %v", element, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, Errorf(EINTERNAL, "fetch %s: HTTP %d from %s", element, resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Errorf(EINTERNAL, "fetch %s: read body: %v", element, err)
	}
	if len(body) == 0 {
		return nil, Errorf(EINTERNAL, "fetch %s: empty response body from %s", element, pageURL)
	}

	c.logger.Debug().
		Str("element", element).
		Int("bytes", len(body)).
		Msg("fetched documentation page")

	doc := extract.Page(string(body))
	c.store(element, doc)
	return doc, nil
}

// Search fetches every known element in table order and returns the
// records whose serialized form contains query case-insensitively.
// Per-element failures are logged and skipped; Search never fails as
// a whole.
func (c *DocsClient) Search(ctx context.Context, query string) []*types.ApiDoc {
	needle := strings.ToLower(query)

	var results []*types.ApiDoc
	failed := 0
	for _, name := range c.endpoints.Names() {
		doc, err := c.Fetch(ctx, name)
		if err != nil {
			failed++
			c.logger.Warn().
				Str("element", name).
				Err(err).
				Msg("skipping element: fetch failed")
			continue
		}
		if strings.Contains(strings.ToLower(renderDoc(doc)), needle) {
			results = append(results, doc)
		}
	}

	c.logger.Info().
		Str("query", query).
		Int("matched", len(results)).
		Int("failed", failed).
		Int("total", c.endpoints.Len()).
		Msg("search finished")

	return results
}

// cached returns the record for element if one was stored within the
// cache TTL.
func (c *DocsClient) cached(element string) (*types.ApiDoc, bool) {
	if c.cacheTTL <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[element]
	if !ok || time.Since(entry.fetchedAt) > c.cacheTTL {
		return nil, false
	}
	return entry.doc, true
}

func (c *DocsClient) store(element string, doc *types.ApiDoc) {
	if c.cacheTTL <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[element] = cacheEntry{doc: doc, fetchedAt: time.Now()}
}

// renderDoc serializes a record to its canonical pretty-printed form.
// The same form is returned to callers and matched against search
// queries.
func renderDoc(doc *types.ApiDoc) string {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		// ApiDoc contains only strings and bools; this cannot happen.
		return ""
	}
	return string(data)
}

// renderDocs serializes a sequence of records.
func renderDocs(docs []*types.ApiDoc) string {
	if docs == nil {
		docs = []*types.ApiDoc{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

// joinURL concatenates a base URL and a relative path, collapsing any
// run of repeated slashes that is not part of the scheme separator.
func joinURL(base, path string) string {
	raw := base + "/" + path

	scheme := ""
	rest := raw
	if idx := strings.Index(raw, "://"); idx >= 0 {
		scheme = raw[:idx+3]
		rest = raw[idx+3:]
	}

	var b strings.Builder
	b.Grow(len(rest))
	prevSlash := false
	for i := 0; i < len(rest); i++ {
		ch := rest[i]
		if ch == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(ch)
	}
	return scheme + b.String()
}
