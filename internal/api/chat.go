package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/ghagent/internal/errors"
	"github.com/diogo/ghagent/internal/models"
)

const (
	// maxResponseSize caps how much of a reply body is read
	maxResponseSize = 8 << 20
	// maxErrorBodySize caps the body kept on an APIError
	maxErrorBodySize = 4096
)

// Send posts query to the endpoint and extracts the reply text
func (c *ChatClient) Send(ctx context.Context, query string) (*models.Reply, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apierrors.ErrEmptyQuery
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(models.ChatRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || apierrors.IsTimeoutError(err) {
			return nil, &apierrors.TimeoutError{Message: c.endpoint, Err: err}
		}
		return nil, apierrors.NewNetworkErrorWithEndpoint("chat", c.endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, c.endpoint, "chat request failed", string(errorBody))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("read response", c.endpoint, err)
	}

	return c.extractor.Extract(body)
}
