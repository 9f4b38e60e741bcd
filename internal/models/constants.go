// Package models contains data types and constants for the chat endpoint.
package models

// Endpoint defaults
const (
	// DefaultEndpoint is the local agent backend the chat posts to
	DefaultEndpoint = "http://localhost:8000/chat"

	// FallbackMessage is shown as the assistant reply when an exchange fails
	FallbackMessage = "Sorry, I encountered an error while processing your request."
)

// Response fields tried in order before falling back to the raw payload
const (
	FieldResponse = "response"
	FieldMessage  = "message"
)

// DefaultResponseFields returns the default extraction chain
func DefaultResponseFields() []string {
	return []string{FieldResponse, FieldMessage}
}

// DefaultHeaders returns the default headers for chat requests
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json, text/plain, */*",
		"User-Agent":   "ghagent/0.1",
	}
}
