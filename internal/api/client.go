// Package api provides the HTTP client for the agent chat endpoint.
package api

import (
	"context"
	"fmt"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/diogo/ghagent/internal/models"
)

// HTTPDoer is the part of tls_client.HttpClient the chat client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChatClientInterface is implemented by anything that can run one exchange
type ChatClientInterface interface {
	Send(ctx context.Context, query string) (*models.Reply, error)
	Endpoint() string
}

// ChatClient posts queries to the agent endpoint
type ChatClient struct {
	httpClient HTTPDoer
	endpoint   string
	extractor  Extractor
	timeout    time.Duration
	headers    map[string]string
}

// Ensure ChatClient implements ChatClientInterface
var _ ChatClientInterface = (*ChatClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*ChatClient)

// WithEndpoint sets the URL queries are posted to
func WithEndpoint(endpoint string) ClientOption {
	return func(c *ChatClient) {
		c.endpoint = endpoint
	}
}

// WithExtractor replaces the response extraction strategy
func WithExtractor(e Extractor) ClientOption {
	return func(c *ChatClient) {
		if e != nil {
			c.extractor = e
		}
	}
}

// WithResponseFields sets the field chain used by the default extractor
func WithResponseFields(fields ...string) ClientOption {
	return func(c *ChatClient) {
		c.extractor = NewFieldChain(fields...)
	}
}

// WithTimeout bounds every exchange. Zero keeps the transport default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *ChatClient) {
		c.timeout = d
	}
}

// WithHTTPClient injects the transport (used by tests)
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *ChatClient) {
		c.httpClient = doer
	}
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) ClientOption {
	return func(c *ChatClient) {
		c.headers[key] = value
	}
}

// NewClient creates a new ChatClient
func NewClient(opts ...ClientOption) (*ChatClient, error) {
	client := &ChatClient{
		endpoint:  models.DefaultEndpoint,
		extractor: NewFieldChain(models.DefaultResponseFields()...),
		headers:   models.DefaultHeaders(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.endpoint == "" {
		return nil, fmt.Errorf("endpoint cannot be empty")
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithClientProfile(profiles.Chrome_120),
		}
		if client.timeout > 0 {
			options = append(options, tls_client.WithTimeoutSeconds(int(client.timeout.Seconds())))
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Endpoint returns the URL queries are posted to
func (c *ChatClient) Endpoint() string {
	return c.endpoint
}

// Extractor returns the active response extraction strategy
func (c *ChatClient) Extractor() Extractor {
	return c.extractor
}
