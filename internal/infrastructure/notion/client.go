// Package notion adapts the Notion API to the task source and document store
// ports.
package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jomei/notionapi"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Defaults for Config.
const (
	DefaultBaseURL = "https://api.notion.com"
	DefaultVersion = "2022-06-28"
	DefaultTimeout = 30 * time.Second

	// pageSize is the largest page the API serves.
	pageSize = 100
	// maxAppend is the largest number of children accepted per append call.
	maxAppend = 100
)

// Config configures a Client.
type Config struct {
	Token string
	// BaseURL redirects API calls, e.g. to a proxy. Empty uses the public API.
	BaseURL string
	Version string
	Timeout time.Duration
}

// Client wraps the Notion SDK client shared by the task source and the
// document store.
type Client struct {
	api *notionapi.Client
}

// NewClient creates a client that authenticates every request with the
// integration token. Requests are traced through otelhttp.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("notion token is required")
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	var transport http.RoundTripper = otelhttp.NewTransport(http.DefaultTransport)
	if cfg.BaseURL != "" && strings.TrimRight(cfg.BaseURL, "/") != DefaultBaseURL {
		target, err := url.Parse(cfg.BaseURL)
		if err != nil || target.Host == "" {
			return nil, fmt.Errorf("invalid notion base url %q", cfg.BaseURL)
		}
		transport = &rebaseTransport{base: transport, target: target}
	}

	api := notionapi.NewClient(notionapi.Token(cfg.Token),
		notionapi.WithHTTPClient(&http.Client{Transport: transport, Timeout: cfg.Timeout}),
		notionapi.WithVersion(cfg.Version),
	)
	return &Client{api: api}, nil
}

// rebaseTransport sends requests built for the public API host to target.
type rebaseTransport struct {
	base   http.RoundTripper
	target *url.URL
}

func (t *rebaseTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = t.target.Scheme
	r.URL.Host = t.target.Host
	r.URL.Path = strings.TrimRight(t.target.Path, "/") + req.URL.Path
	r.Host = t.target.Host
	return t.base.RoundTrip(r)
}

// listChildren reads every child block of a block or page.
func (c *Client) listChildren(ctx context.Context, blockID string) ([]notionapi.Block, error) {
	var (
		all    []notionapi.Block
		cursor notionapi.Cursor
	)
	for {
		resp, err := c.api.Block.GetChildren(ctx, notionapi.BlockID(blockID), &notionapi.Pagination{
			StartCursor: cursor,
			PageSize:    pageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("list children of %s: %w", blockID, err)
		}
		all = append(all, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return all, nil
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}
}

// queryDatabase reads one page of a database query. A nil filter matches
// every page.
func (c *Client) queryDatabase(ctx context.Context, databaseID string, filter notionapi.Filter, cursor string) (*notionapi.DatabaseQueryResponse, error) {
	resp, err := c.api.Database.Query(ctx, notionapi.DatabaseID(databaseID), &notionapi.DatabaseQueryRequest{
		Filter:      filter,
		StartCursor: notionapi.Cursor(cursor),
		PageSize:    pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("query database %s: %w", databaseID, err)
	}
	return resp, nil
}
