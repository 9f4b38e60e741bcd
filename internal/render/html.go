package render

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	htmlOnce     sync.Once
	htmlMarkdown goldmark.Markdown
	htmlPolicy   *bluemonday.Policy
)

func initHTML() {
	htmlMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

	// Links must be absolute and open in a new browsing context
	// without access to the opener or a referrer.
	p := bluemonday.UGCPolicy()
	p.AllowRelativeURLs(false)
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	htmlPolicy = p
}

// HTML renders markdown to sanitized HTML. Raw HTML in the source is
// dropped, only http, https and mailto links survive, and every link gets
// target="_blank" with rel="noopener noreferrer".
func HTML(content string) (string, error) {
	htmlOnce.Do(initHTML)

	var buf bytes.Buffer
	if err := htmlMarkdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return string(htmlPolicy.SanitizeBytes(buf.Bytes())), nil
}
