package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound reports that the catalog has no such product.
var ErrNotFound = errors.New("catalog: product not found")

// FetchError is an upstream response with a non-success status.
type FetchError struct {
	URL    string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("catalog: fetch %s: unexpected status %d", e.URL, e.Status)
}

// Client talks to the external product catalog. Single attempt per call:
// no retries, no backoff, no caching. A slow upstream blocks only the
// request that is waiting on it, bounded by the HTTP client timeout.
type Client struct {
	baseURL string
	client  *http.Client
	sfg     singleflight.Group // collapses concurrent lookups of one product
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// ListProducts fetches a page of the full catalog.
func (c *Client) ListProducts(ctx context.Context, limit, skip int) (ProductPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	var page ProductPage
	if err := c.getJSON(ctx, "/products", q, &page); err != nil {
		return ProductPage{}, err
	}
	return page, nil
}

// SearchProducts runs a free-text search upstream. Relevance ranking is the
// catalog's business.
func (c *Client) SearchProducts(ctx context.Context, query string, limit, skip int) (ProductPage, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	var page ProductPage
	if err := c.getJSON(ctx, "/products/search", q, &page); err != nil {
		return ProductPage{}, err
	}
	return page, nil
}

// GetProduct fetches one product by id. Any non-success upstream status is
// reported as ErrNotFound; callers map it to a 404 or drop the line.
// Concurrent lookups of the same id share a single upstream request.
func (c *Client) GetProduct(ctx context.Context, id int64) (Product, error) {
	key := strconv.FormatInt(id, 10)
	v, err, _ := c.sfg.Do(key, func() (interface{}, error) {
		var p Product
		if err := c.getJSON(ctx, "/products/"+key, nil, &p); err != nil {
			var fe *FetchError
			if errors.As(err, &fe) {
				return Product{}, ErrNotFound
			}
			return Product{}, err
		}
		return p, nil
	})
	if err != nil {
		return Product{}, err
	}
	return v.(Product), nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("catalog: build request %s: %w", u, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &FetchError{URL: u, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", u, err)
	}
	return nil
}
