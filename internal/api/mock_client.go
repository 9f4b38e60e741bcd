package api

import (
	"context"
	"io"
	"strings"
	"sync"

	http "github.com/bogdanfinn/fhttp"

	"github.com/diogo/ghagent/internal/models"
)

// MockChatClient is a mock implementation of ChatClientInterface for testing
type MockChatClient struct {
	// Mock return values, consumed in order. When exhausted the last
	// entry is repeated.
	Replies []*models.Reply
	Errs    []error

	// Gate, when set, blocks Send until a value is received or ctx ends
	Gate chan struct{}

	EndpointVal string

	mu      sync.Mutex
	calls   int
	queries []string
}

// Ensure MockChatClient implements ChatClientInterface
var _ ChatClientInterface = (*MockChatClient)(nil)

// NewMockReply creates a mock client answering every query with text
func NewMockReply(text string) *MockChatClient {
	return &MockChatClient{
		Replies: []*models.Reply{{Text: text, Source: models.ReplySource(models.FieldResponse)}},
	}
}

// NewMockError creates a mock client failing every query with err
func NewMockError(err error) *MockChatClient {
	return &MockChatClient{Errs: []error{err}}
}

func (m *MockChatClient) Send(ctx context.Context, query string) (*models.Reply, error) {
	m.mu.Lock()
	n := m.calls
	m.calls++
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := pick(m.Errs, n); err != nil {
		return nil, err
	}
	return pick(m.Replies, n), nil
}

func (m *MockChatClient) Endpoint() string {
	if m.EndpointVal == "" {
		return models.DefaultEndpoint
	}
	return m.EndpointVal
}

// Calls returns how many times Send was called
func (m *MockChatClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Queries returns the queries received, in order
func (m *MockChatClient) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}

func pick[T any](values []T, n int) T {
	var zero T
	if len(values) == 0 {
		return zero
	}
	if n >= len(values) {
		return values[len(values)-1]
	}
	return values[n]
}

// StaticDoer is an HTTPDoer answering every request with the same status and body
type StaticDoer struct {
	StatusCode int
	Body       string
	Err        error
}

// Ensure StaticDoer implements HTTPDoer
var _ HTTPDoer = (*StaticDoer)(nil)

// NewStaticDoer creates a StaticDoer
func NewStaticDoer(statusCode int, body string) *StaticDoer {
	return &StaticDoer{StatusCode: statusCode, Body: body}
}

// Do implements HTTPDoer
func (d *StaticDoer) Do(req *http.Request) (*http.Response, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	return &http.Response{
		StatusCode: d.StatusCode,
		Body:       io.NopCloser(strings.NewReader(d.Body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}
