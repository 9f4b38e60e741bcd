package api

import (
	"testing"
	"time"

	"github.com/diogo/ghagent/internal/models"
)

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(WithHTTPClient(&recordingDoer{}))
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	if client.Endpoint() != models.DefaultEndpoint {
		t.Errorf("Endpoint() = %s", client.Endpoint())
	}
	chain, ok := client.Extractor().(*FieldChain)
	if !ok {
		t.Fatalf("default extractor should be *FieldChain, got %T", client.Extractor())
	}
	if len(chain.Fields) != 2 || chain.Fields[0] != "response" || chain.Fields[1] != "message" {
		t.Errorf("Fields = %v", chain.Fields)
	}
	if client.timeout != 0 {
		t.Errorf("timeout = %v, want transport default", client.timeout)
	}
}

func TestNewClient_Options(t *testing.T) {
	custom := ExtractorFunc(func(body []byte) (*models.Reply, error) { return nil, nil })

	client, err := NewClient(
		WithHTTPClient(&recordingDoer{}),
		WithEndpoint("http://127.0.0.1:9000/chat"),
		WithTimeout(30*time.Second),
		WithExtractor(custom),
		WithHeader("X-Trace", "1"),
	)
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	if client.Endpoint() != "http://127.0.0.1:9000/chat" {
		t.Errorf("Endpoint() = %s", client.Endpoint())
	}
	if client.timeout != 30*time.Second {
		t.Errorf("timeout = %v", client.timeout)
	}
	if _, ok := client.Extractor().(ExtractorFunc); !ok {
		t.Errorf("extractor = %T", client.Extractor())
	}
	if client.headers["X-Trace"] != "1" {
		t.Error("custom header missing")
	}
	if client.headers["Content-Type"] != "application/json" {
		t.Error("default headers should be kept")
	}
}

func TestNewClient_NilExtractorIgnored(t *testing.T) {
	client, err := NewClient(WithHTTPClient(&recordingDoer{}), WithExtractor(nil))
	if err != nil {
		t.Fatal(err)
	}
	if client.Extractor() == nil {
		t.Error("nil extractor should keep the default")
	}
}

func TestNewClient_EmptyEndpoint(t *testing.T) {
	if _, err := NewClient(WithHTTPClient(&recordingDoer{}), WithEndpoint("")); err == nil {
		t.Error("expected error for empty endpoint")
	}
}

func TestNewClient_RealTransport(t *testing.T) {
	client, err := NewClient(WithTimeout(5 * time.Second))
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	if client.httpClient == nil {
		t.Error("expected a tls-client transport")
	}
}
