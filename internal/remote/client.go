// Package remote provides a calendar.Provider backed by a GraphQL almanac
// service. It implements a deep module interface - simple methods hiding the
// GraphQL queries, token handling and per-year caching.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/h0rv/qimen/internal/auth"
	"github.com/h0rv/qimen/internal/calendar"
	"github.com/machinebox/graphql"
	"go.uber.org/zap"
)

// Client is a GraphQL almanac client. It satisfies calendar.Provider.
type Client struct {
	gql    *graphql.Client
	tokens auth.TokenProvider
	logger *zap.Logger

	mu    sync.Mutex
	cache map[int][]calendar.Term // year -> terms
}

// Option configures a Client.
type Option func(*options)

type options struct {
	tokens     auth.TokenProvider
	logger     *zap.Logger
	httpClient *http.Client
}

// WithTokenProvider authenticates every request with a bearer token from p.
func WithTokenProvider(p auth.TokenProvider) Option {
	return func(o *options) { o.tokens = p }
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(o *options) { o.httpClient = h }
}

// New creates a client for the almanac service at endpoint.
// Requests are anonymous unless a token provider is configured.
func New(endpoint string, opts ...Option) *Client {
	o := options{logger: zap.NewNop(), httpClient: &http.Client{Timeout: 30 * time.Second}}
	for _, opt := range opts {
		opt(&o)
	}

	gql := graphql.NewClient(endpoint, graphql.WithHTTPClient(o.httpClient))
	logger := o.logger.Named("remote")
	gql.Log = func(s string) { logger.Debug(s) }

	return &Client{
		gql:    gql,
		tokens: o.tokens,
		logger: logger,
		cache:  make(map[int][]calendar.Term),
	}
}

// makeRequest executes a GraphQL request with authentication.
// This is a helper method to avoid repeating the authorization header setup.
func (c *Client) makeRequest(ctx context.Context, req *graphql.Request, resp interface{}) error {
	if c.tokens != nil {
		token, err := c.tokens.GetToken()
		if err != nil {
			return fmt.Errorf("failed to obtain calendar token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.gql.Run(ctx, req, resp)
}

// Pillars returns the calendar snapshot of t.
func (c *Client) Pillars(ctx context.Context, t time.Time) (calendar.Snapshot, error) {
	return calendar.Assemble(ctx, c, t)
}
