package crud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client reads collections from a remote data service exposing the
// /api/collections JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for baseURL. A nil httpClient gets a 30s
// timeout client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) GetAll(ctx context.Context, collection string) (*Result, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, err
	}

	var res Result
	if err := c.get(ctx, "/api/collections/"+url.PathEscape(collection), &res); err != nil {
		return nil, fmt.Errorf("get %s: %w", collection, err)
	}
	if res.Items == nil {
		res.Items = []Document{}
	}
	return &res, nil
}

func (c *Client) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, err
	}

	var doc Document
	path := "/api/collections/" + url.PathEscape(collection) + "/" + url.PathEscape(id)
	if err := c.get(ctx, path, &doc); err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func (c *Client) Collections(ctx context.Context) ([]string, error) {
	var body struct {
		Collections []string `json:"collections"`
	}
	if err := c.get(ctx, "/api/collections", &body); err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return body.Collections, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	return nil
}
