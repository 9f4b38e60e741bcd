package stub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap/zaptest"

	"github.com/diogo/ghagent/internal/api"
	"github.com/diogo/ghagent/internal/models"
)

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestChatEchoesQuery(t *testing.T) {
	s := New(Options{Field: models.FieldResponse}, zaptest.NewLogger(t))

	rec := post(t, s.Handler(), `{"query":"hello"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, gjson.Get(rec.Body.String(), "response").String(), "hello")
	assert.NotEmpty(t, gjson.Get(rec.Body.String(), "request_id").String())
}

func TestChatReplyField(t *testing.T) {
	tests := []struct {
		field string
		path  string
	}{
		{models.FieldResponse, "response"},
		{models.FieldMessage, "message"},
		{"", "echo"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s := New(Options{Field: tt.field}, nil)
			rec := post(t, s.Handler(), `{"query":"hi"}`)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, gjson.Get(rec.Body.String(), tt.path).Exists())
		})
	}
}

func TestChatRejectsBadRequests(t *testing.T) {
	s := New(Options{Field: models.FieldResponse}, nil)

	for _, body := range []string{`not json`, `{"query":"   "}`, `{}`} {
		rec := post(t, s.Handler(), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestChatOnlyAcceptsPost(t *testing.T) {
	s := New(Options{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	s := New(Options{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gjson.Get(rec.Body.String(), "status").Bool())
}

// The real client and the stub agree on the wire contract
func TestClientAgainstStub(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"response field", models.FieldResponse, "You said:\n\n> ping"},
		{"message field", models.FieldMessage, "You said:\n\n> ping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(New(Options{Field: tt.field}, nil).Handler())
			defer ts.Close()

			client, err := api.NewClient(api.WithEndpoint(ts.URL + "/chat"))
			require.NoError(t, err)

			reply, err := client.Send(context.Background(), "ping")
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply.Text)
		})
	}
}

func TestClientAgainstStubUnknownField(t *testing.T) {
	ts := httptest.NewServer(New(Options{}, nil).Handler())
	defer ts.Close()

	client, err := api.NewClient(api.WithEndpoint(ts.URL + "/chat"))
	require.NoError(t, err)

	reply, err := client.Send(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, models.SourceRaw, reply.Source)
	assert.True(t, strings.HasPrefix(reply.Text, `{"echo":`))
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s := New(Options{Addr: "127.0.0.1:0"}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestDelayHonoursRequestContext(t *testing.T) {
	s := New(Options{Field: models.FieldResponse, Delay: time.Hour}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"query":"x"}`)).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		s.Handler().ServeHTTP(rec, req)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler ignored cancellation")
	}
}
