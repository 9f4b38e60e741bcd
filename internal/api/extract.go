package api

import (
	"bytes"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/diogo/ghagent/internal/models"
)

// Extractor turns a successful response body into the reply shown to the user
type Extractor interface {
	Extract(body []byte) (*models.Reply, error)
}

// ExtractorFunc adapts a function to the Extractor interface
type ExtractorFunc func(body []byte) (*models.Reply, error)

// Extract calls f
func (f ExtractorFunc) Extract(body []byte) (*models.Reply, error) {
	return f(body)
}

// FieldChain reads the first field holding a value, falling back to the
// compact JSON of the whole payload. Fields are gjson paths, so nested
// values such as "data.answer" work too.
type FieldChain struct {
	Fields []string
}

// NewFieldChain creates a FieldChain, dropping blank field names
func NewFieldChain(fields ...string) *FieldChain {
	chain := &FieldChain{}
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			chain.Fields = append(chain.Fields, f)
		}
	}
	return chain
}

// Extract implements Extractor
func (fc *FieldChain) Extract(body []byte) (*models.Reply, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		// An empty payload is shown as the empty JSON string
		return &models.Reply{Text: `""`, Source: models.SourceRaw, Payload: body}, nil
	}

	// Non-JSON answers are shown as sent
	if !gjson.ValidBytes(trimmed) {
		return &models.Reply{Text: string(trimmed), Source: models.SourceRaw, Payload: body}, nil
	}

	root := gjson.ParseBytes(trimmed)
	if root.IsObject() {
		for _, field := range fc.Fields {
			if text, ok := displayValue(root.Get(field)); ok {
				return &models.Reply{Text: text, Source: models.ReplySource(field), Payload: body}, nil
			}
		}
	}

	return &models.Reply{Text: compact(root), Source: models.SourceRaw, Payload: body}, nil
}

// displayValue returns the text for a field, skipping the values a
// falsy check would skip: missing, null, false, 0 and "".
func displayValue(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.String:
		if v.Str == "" {
			return "", false
		}
		return v.Str, true
	case gjson.Number:
		if v.Num == 0 {
			return "", false
		}
		return v.Raw, true
	case gjson.True:
		return "true", true
	case gjson.JSON:
		return compact(v), true
	default:
		return "", false
	}
}

// compact serializes v without insignificant whitespace
func compact(v gjson.Result) string {
	return gjson.Get(v.Raw, "@ugly").Raw
}
