package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/diogo/ghagent/internal/api"
	"github.com/diogo/ghagent/internal/conversation"
	apierrors "github.com/diogo/ghagent/internal/errors"
	"github.com/diogo/ghagent/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newController(client api.ChatClientInterface, opts ...Option) (*Controller, *conversation.Store) {
	store := conversation.NewStore()
	return NewController(store, client, opts...), store
}

// newHTTPBacked runs the real ChatClient against a canned body so the
// extraction chain is exercised end to end.
func newHTTPBacked(t *testing.T, body string) api.ChatClientInterface {
	t.Helper()
	client, err := api.NewClient(api.WithHTTPClient(api.NewStaticDoer(200, body)))
	require.NoError(t, err)
	return client
}

func TestSubmit_EmptyOrWhitespaceIsRejected(t *testing.T) {
	client := api.NewMockReply("never")
	c, store := newController(client)

	for _, text := range []string{"", " ", "\n\t  \n"} {
		ex, ok := c.Submit(text)
		assert.False(t, ok, "Submit(%q)", text)
		assert.Nil(t, ex)
	}

	_, ok := c.Exchange(context.Background(), "   ")
	assert.False(t, ok)

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, client.Calls())
	assert.Equal(t, StateIdle, c.State())
}

func TestSubmit_AppendsUserMessageBeforeResolution(t *testing.T) {
	client := api.NewMockReply("answer")
	c, store := newController(client)

	ex, ok := c.Submit("  hello agent  ")
	require.True(t, ok)
	assert.Equal(t, "hello agent", ex.Query)
	assert.NotEmpty(t, ex.ID)

	// Optimistic append: the user message is visible while pending
	require.Equal(t, 1, store.Len())
	last, _ := store.Last()
	assert.Equal(t, models.UserMessage("hello agent"), last)
	assert.True(t, c.Loading())
	assert.Equal(t, 0, client.Calls())

	msg, ok := c.Resolve(c.Send(context.Background(), ex))
	require.True(t, ok)
	assert.Equal(t, models.AssistantMessage("answer"), msg)
	assert.Equal(t, 2, store.Len())
	assert.False(t, c.Loading())
	assert.Equal(t, []string{"hello agent"}, client.Queries())
}

func TestExchange_ResponseExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"response field", `{"response": "X"}`, "X"},
		{"message field", `{"message": "Y"}`, "Y"},
		{"raw dump", `{ "foo": 1 }`, `{"foo":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store := newController(newHTTPBacked(t, tt.body))

			msg, ok := c.Exchange(context.Background(), "q")
			require.True(t, ok)
			assert.Equal(t, models.RoleAssistant, msg.Role)
			assert.Equal(t, tt.want, msg.Content)
			assert.Equal(t, 2, store.Len())
		})
	}
}

func TestExchange_TransportFailureAppendsFallback(t *testing.T) {
	cause := apierrors.NewNetworkError("chat", errors.New("connection refused"))
	c, store := newController(api.NewMockError(cause))

	msg, ok := c.Exchange(context.Background(), "q")
	require.True(t, ok)
	assert.Equal(t, "Sorry, I encountered an error while processing your request.", msg.Content)
	assert.Equal(t, models.RoleAssistant, msg.Role)
	assert.False(t, c.Loading())
	assert.Equal(t, 2, store.Len())
}

func TestExchange_FailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	cause := apierrors.NewAPIError(503, models.DefaultEndpoint, "chat request failed")
	c, _ := newController(api.NewMockError(cause), WithLogger(zap.New(core)))

	c.Exchange(context.Background(), "q")

	failed := logs.FilterMessage("exchange failed").All()
	require.Len(t, failed, 1)
	fields := failed[0].ContextMap()
	assert.Equal(t, int64(503), fields["http_status"])
	assert.Equal(t, "http status", fields["error_code"])
	assert.NotEmpty(t, fields["exchange_id"])
}

func TestExchange_CustomFallbackMessage(t *testing.T) {
	c, _ := newController(api.NewMockError(errors.New("boom")), WithFallbackMessage("agent offline"))

	msg, ok := c.Exchange(context.Background(), "q")
	require.True(t, ok)
	assert.Equal(t, "agent offline", msg.Content)
}

func TestExchange_NilReplyIsFailure(t *testing.T) {
	c, _ := newController(&api.MockChatClient{})

	msg, ok := c.Exchange(context.Background(), "q")
	require.True(t, ok)
	assert.Equal(t, models.FallbackMessage, msg.Content)
}

func TestSubmit_WhilePendingIsNoop(t *testing.T) {
	client := api.NewMockReply("first answer")
	client.Gate = make(chan struct{})
	c, store := newController(client)

	ex, ok := c.Submit("first")
	require.True(t, ok)

	done := make(chan Result, 1)
	go func() { done <- c.Send(context.Background(), ex) }()

	// Second submit while the first is in flight
	second, ok := c.Submit("second")
	assert.False(t, ok)
	assert.Nil(t, second)
	assert.Equal(t, 1, store.Len())

	client.Gate <- struct{}{}
	res := <-done

	_, ok = c.Resolve(res)
	require.True(t, ok)
	assert.Equal(t, 1, client.Calls())
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, StateIdle, c.State())
}

func TestResolve_StaleResultIsDropped(t *testing.T) {
	c, store := newController(api.NewMockReply("x"))

	// Nothing pending
	_, ok := c.Resolve(Result{Exchange: &Exchange{ID: "nope"}})
	assert.False(t, ok)

	ex, _ := c.Submit("q")
	_, ok = c.Resolve(Result{Exchange: &Exchange{ID: "other"}, Reply: &models.Reply{Text: "x"}})
	assert.False(t, ok)
	assert.True(t, c.Loading())

	_, ok = c.Resolve(Result{Exchange: ex, Reply: &models.Reply{Text: "x"}})
	assert.True(t, ok)

	// Resolving twice appends once
	_, ok = c.Resolve(Result{Exchange: ex, Reply: &models.Reply{Text: "x"}})
	assert.False(t, ok)
	assert.Equal(t, 2, store.Len())
}

func TestExchange_ConversationAlternates(t *testing.T) {
	client := &api.MockChatClient{
		Replies: []*models.Reply{{Text: "a0"}, nil, {Text: "a2"}, {Text: "a3"}, {Text: "a4"}},
		Errs:    []error{nil, errors.New("down"), nil},
	}
	c, store := newController(client)

	const n = 5
	for i := 0; i < n; i++ {
		_, ok := c.Exchange(context.Background(), fmt.Sprintf("q%d", i))
		require.True(t, ok)
	}

	msgs := store.Messages()
	require.Len(t, msgs, 2*n)
	for i, msg := range msgs {
		if i%2 == 0 {
			assert.Equal(t, models.RoleUser, msg.Role, "message %d", i)
			assert.Equal(t, fmt.Sprintf("q%d", i/2), msg.Content)
		} else {
			assert.Equal(t, models.RoleAssistant, msg.Role, "message %d", i)
		}
	}
	assert.Equal(t, models.FallbackMessage, msgs[3].Content)
	assert.Equal(t, "a4", msgs[9].Content)
}

func TestSend_HonoursContext(t *testing.T) {
	client := api.NewMockReply("late")
	client.Gate = make(chan struct{})
	c, _ := newController(client)

	ex, ok := c.Submit("q")
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res := c.Send(ctx, ex)
	require.Error(t, res.Err)

	msg, ok := c.Resolve(res)
	require.True(t, ok)
	assert.Equal(t, models.FallbackMessage, msg.Content)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "unknown", State(7).String())
}
