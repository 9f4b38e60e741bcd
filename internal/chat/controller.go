// Package chat runs exchanges between the user and the agent endpoint.
//
// A Controller is either Idle or Pending. Submit moves it to Pending and
// appends the user message at once; Resolve appends the reply (or the
// fallback message on failure) and moves it back to Idle. Only one
// exchange can be pending, and a pending exchange cannot be cancelled.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/diogo/ghagent/internal/api"
	"github.com/diogo/ghagent/internal/conversation"
	apierrors "github.com/diogo/ghagent/internal/errors"
	"github.com/diogo/ghagent/internal/models"
)

// State of the exchange state machine
type State int

const (
	StateIdle State = iota
	StatePending
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	default:
		return "unknown"
	}
}

// Exchange is one submitted query awaiting its reply
type Exchange struct {
	ID        string
	Query     string
	StartedAt time.Time
}

// Result is the outcome of sending an Exchange
type Result struct {
	Exchange *Exchange
	Reply    *models.Reply
	Err      error
	Elapsed  time.Duration
}

// Controller owns the loading state and writes to the conversation
type Controller struct {
	store    *conversation.Store
	client   api.ChatClientInterface
	logger   *zap.Logger
	fallback string

	mu      sync.Mutex
	state   State
	current *Exchange
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used for exchange diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFallbackMessage replaces the text shown when an exchange fails
func WithFallbackMessage(msg string) Option {
	return func(c *Controller) {
		if msg != "" {
			c.fallback = msg
		}
	}
}

// NewController creates an idle controller writing to store
func NewController(store *conversation.Store, client api.ChatClientInterface, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		client:   client,
		logger:   zap.NewNop(),
		fallback: models.FallbackMessage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Loading reports whether an exchange is pending
func (c *Controller) Loading() bool {
	return c.State() == StatePending
}

// Store returns the conversation the controller writes to
func (c *Controller) Store() *conversation.Store {
	return c.store
}

// Endpoint returns the URL exchanges are posted to
func (c *Controller) Endpoint() string {
	return c.client.Endpoint()
}

// Submit starts an exchange for text. It returns false without doing
// anything when the trimmed text is empty or an exchange is pending.
func (c *Controller) Submit(text string) (*Exchange, bool) {
	query := strings.TrimSpace(text)
	if query == "" {
		return nil, false
	}

	c.mu.Lock()
	if c.state == StatePending {
		c.mu.Unlock()
		c.logger.Debug("submit ignored while pending")
		return nil, false
	}
	ex := &Exchange{
		ID:        uuid.NewString(),
		Query:     query,
		StartedAt: time.Now(),
	}
	c.state = StatePending
	c.current = ex
	c.mu.Unlock()

	c.store.Append(models.UserMessage(query))
	c.logger.Info("exchange submitted",
		zap.String("exchange_id", ex.ID),
		zap.Int("query_len", len(query)),
		zap.String("endpoint", c.client.Endpoint()))

	return ex, true
}

// Send performs the outbound call for ex. It blocks and does not touch
// controller state, so it can run off the UI goroutine.
func (c *Controller) Send(ctx context.Context, ex *Exchange) Result {
	reply, err := c.client.Send(ctx, ex.Query)
	if err == nil && reply == nil {
		err = apierrors.ErrNoContent
	}
	return Result{
		Exchange: ex,
		Reply:    reply,
		Err:      err,
		Elapsed:  time.Since(ex.StartedAt),
	}
}

// Resolve finishes the pending exchange with res and returns the appended
// assistant message. Results for any other exchange are dropped.
func (c *Controller) Resolve(res Result) (models.Message, bool) {
	c.mu.Lock()
	if c.state != StatePending || res.Exchange == nil || c.current == nil || c.current.ID != res.Exchange.ID {
		c.mu.Unlock()
		return models.Message{}, false
	}
	c.state = StateIdle
	c.current = nil
	c.mu.Unlock()

	if res.Err == nil && res.Reply == nil {
		res.Err = apierrors.ErrNoContent
	}

	var msg models.Message
	if res.Err != nil {
		c.logger.Error("exchange failed",
			zap.String("exchange_id", res.Exchange.ID),
			zap.Error(res.Err),
			zap.Stringer("error_code", apierrors.GetErrorCode(res.Err)),
			zap.Int("http_status", apierrors.GetHTTPStatus(res.Err)),
			zap.Duration("elapsed", res.Elapsed))
		msg = models.AssistantMessage(c.fallback)
	} else {
		c.logger.Info("exchange completed",
			zap.String("exchange_id", res.Exchange.ID),
			zap.String("source", string(res.Reply.Source)),
			zap.Int("reply_len", len(res.Reply.Text)),
			zap.Duration("elapsed", res.Elapsed))
		msg = models.AssistantMessage(res.Reply.Text)
	}

	c.store.Append(msg)
	return msg, true
}

// Exchange runs a whole exchange synchronously
func (c *Controller) Exchange(ctx context.Context, text string) (models.Message, bool) {
	ex, ok := c.Submit(text)
	if !ok {
		return models.Message{}, false
	}
	return c.Resolve(c.Send(ctx, ex))
}
