package render

import "strings"

// Markdown renders markdown content for terminal display.
// Safe for concurrent use.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := borrow(opts)
	if err != nil {
		return "", err
	}
	defer giveBack(opts, renderer)

	return renderer.Render(content)
}

// Reply renders an assistant reply, falling back to the plain text when
// the markdown cannot be rendered. Trailing blank lines are trimmed.
func Reply(content string, opts Options) string {
	rendered, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
