package models

// ChatRequest is the JSON body posted to the chat endpoint
type ChatRequest struct {
	Query string `json:"query"`
}

// ReplySource records which step of the extraction chain produced a reply
type ReplySource string

const (
	// SourceRaw means no configured field matched and the payload was dumped
	SourceRaw ReplySource = "raw"
)

// Reply represents the decoded answer of one exchange
type Reply struct {
	// Text is the display string appended to the conversation
	Text string
	// Source is the field name the text came from, or SourceRaw
	Source ReplySource
	// Payload holds the response body as received
	Payload []byte
}

// FromField returns true when the text was read from a named field
func (r *Reply) FromField() bool {
	return r.Source != "" && r.Source != SourceRaw
}
