// Package apiclient fetches task snapshots from the task manager REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/runoshun/taskpulse/internal/domain"
)

// API paths relative to the base URL.
const (
	TasksPath      = "/api/tasks/"
	CategoriesPath = "/api/categories/"
	ListsPath      = "/api/lists/"
)

// maxPages bounds pagination so a misbehaving server cannot loop forever.
const maxPages = 1000

// maxErrorBody is how much of an error response is kept for the message.
const maxErrorBody = 512

// Ensure Client implements domain.SnapshotProvider.
var _ domain.SnapshotProvider = (*Client)(nil)

// Client implements domain.SnapshotProvider over HTTP.
type Client struct {
	httpClient *http.Client
	logger     domain.Logger
	clock      domain.Clock
	base       *url.URL
	token      string
}

// Options configures a Client.
type Options struct {
	HTTPClient *http.Client // Optional; a client with Timeout is created when nil
	Logger     domain.Logger
	Clock      domain.Clock
	BaseURL    string
	Token      string
	Timeout    time.Duration
}

// New creates a new Client.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, domain.ErrMissingAPIBaseURL
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("parse base url: %q is not absolute", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = domain.DefaultAPITimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = domain.NopLogger{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = domain.RealClock{}
	}

	return &Client{
		httpClient: httpClient,
		logger:     logger,
		clock:      clock,
		base:       base,
		token:      opts.Token,
	}, nil
}

// Snapshot fetches tasks, categories and lists concurrently.
func (c *Client) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tasks, err := fetchAll[domain.Task](gctx, c, TasksPath)
		snap.Tasks = tasks
		return err
	})
	g.Go(func() error {
		categories, err := fetchAll[domain.Category](gctx, c, CategoriesPath)
		snap.Categories = categories
		return err
	})
	g.Go(func() error {
		lists, err := fetchAll[domain.TaskList](gctx, c, ListsPath)
		snap.Lists = lists
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.FetchedAt = c.clock.Now()
	return snap, nil
}

// page is the paginated response envelope.
type page[T any] struct {
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

// fetchAll follows pagination for path and returns every item.
// Bare JSON array bodies are accepted as a single page.
func fetchAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	next := c.base.JoinPath(path).String()
	items := []T{}

	for i := 0; next != ""; i++ {
		if i >= maxPages {
			return nil, fmt.Errorf("%w: %s: more than %d pages", domain.ErrAPIUnavailable, path, maxPages)
		}

		body, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}

		trimmed := bytes.TrimSpace(body)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var all []T
			if err := json.Unmarshal(trimmed, &all); err != nil {
				return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrInvalidSnapshot, path, err)
			}
			return append(items, all...), nil
		}

		var p page[T]
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrInvalidSnapshot, path, err)
		}
		items = append(items, p.Results...)

		next = ""
		if p.Next != nil && *p.Next != "" {
			resolved, err := c.resolve(*p.Next)
			if err != nil {
				return nil, err
			}
			next = resolved
		}
	}

	return items, nil
}

// resolve turns a possibly relative "next" link into an absolute URL.
// Links leaving the base origin are rejected so the token never reaches another host.
func (c *Client) resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: invalid next link %q", domain.ErrAPIUnavailable, ref)
	}
	resolved := c.base.ResolveReference(u)
	if resolved.Scheme != c.base.Scheme || !strings.EqualFold(resolved.Host, c.base.Host) {
		return "", fmt.Errorf("%w: next link %q leaves %s://%s", domain.ErrAPIUnavailable, ref, c.base.Scheme, c.base.Host)
	}
	return resolved.String(), nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	c.logger.Debug("api", fmt.Sprintf("GET %s (request %s)", rawURL, requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrAPIUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, rawURL)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: GET %s returned %d: %s",
			domain.ErrAPIUnavailable, rawURL, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrAPIUnavailable, rawURL, err)
	}
	return body, nil
}
