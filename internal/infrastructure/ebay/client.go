package ebay

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ebaylookup/backend/internal/domain"
)

const searchPath = "/sch/i.html"

// DefaultTimeout bounds a single search request
const DefaultTimeout = 30 * time.Second

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string // sent only when non-empty
	Selectors Selectors
}

// Client scrapes the listings site's search-results page
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	selectors  Selectors
	debug      bool
}

// NewClient creates a new listings site client
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return newClient(&http.Client{Timeout: timeout}, opts)
}

// newClient lets tests inject their own http.Client
func newClient(httpClient *http.Client, opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://www.ebay.com"
	}

	selectors := opts.Selectors
	if selectors == (Selectors{}) {
		selectors = DefaultSelectors
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  opts.UserAgent,
		selectors:  selectors,
	}
}

// SetDebug enables per-item extraction logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SearchURL builds the search-results URL for query
func (c *Client) SearchURL(query string) string {
	return fmt.Sprintf("%s%s?_nkw=%s", c.baseURL, searchPath, url.QueryEscape(query))
}

// Search fetches the search-results page for query and extracts up to limit listings.
// It performs exactly one GET and never retries.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Listing, error) {
	reqURL := c.SearchURL(query)
	log.Printf("[EBAY] Search called with query: %q, limit: %d", query, limit)

	doc, err := c.fetchDocument(ctx, reqURL)
	if err != nil {
		log.Printf("[EBAY] Search failed for query %q: %v", query, err)
		return nil, err
	}

	base, err := url.Parse(reqURL)
	if err != nil {
		return nil, fmt.Errorf("invalid search url: %w", err)
	}

	listings := c.extractListings(doc, limit, base)
	log.Printf("[EBAY] Extracted %d listings for query: %q", len(listings), query)
	return listings, nil
}

// fetchDocument executes the GET and parses the body as HTML.
// Non-2xx responses fail before any parsing happens.
func (c *Client) fetchDocument(ctx context.Context, reqURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrListingSiteFailure, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("[EBAY] warning: failed to close response body: %v", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.StatusError{StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}
