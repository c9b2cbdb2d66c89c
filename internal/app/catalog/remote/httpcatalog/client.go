package httpcatalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/light-bringer/invcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

const defaultTimeout = 10 * time.Second

// Client talks to a dummyjson-compatible product API.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ contracts.RemoteCatalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the timeout of every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a client for the API rooted at baseURL, e.g. https://dummyjson.com.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches one slice of the catalog, searching when q.Term is set.
func (c *Client) List(ctx context.Context, q contracts.ListQuery) (*contracts.RemotePage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("skip", strconv.Itoa(q.Skip))

	path := "/products"
	if q.Term != "" {
		path = "/products/search"
		params.Set("q", q.Term)
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, path+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	items := make([]*contracts.RawProduct, 0, len(resp.Products))
	for i := range resp.Products {
		raw, err := resp.Products[i].toRaw()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
		}
		items = append(items, raw)
	}

	return &contracts.RemotePage{Items: items, Total: resp.Total}, nil
}

// Update sends the changed fields of a product.
func (c *Client) Update(ctx context.Context, id int64, update *contracts.RemoteUpdate) (*contracts.RawProduct, error) {
	body, err := json.Marshal(newUpdateRequest(update))
	if err != nil {
		return nil, fmt.Errorf("failed to encode update: %w", err)
	}

	var resp productDTO
	if err := c.do(ctx, http.MethodPut, productPath(id), body, &resp); err != nil {
		return nil, err
	}

	raw, err := resp.toRaw()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}
	return raw, nil
}

// Delete removes a product.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil, nil)
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}

// do sends a request and decodes a JSON response into out when out is non-nil.
// 404 maps to ErrProductNotFound, every other failure to ErrRemoteUnavailable.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", domain.ErrRemoteUnavailable, method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", domain.ErrRemoteUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrProductNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s: status %d: %s",
			domain.ErrRemoteUnavailable, method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: decode response: %w", domain.ErrRemoteUnavailable, method, path, err)
	}
	return nil
}
