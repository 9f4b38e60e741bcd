// Package tui provides the terminal user interface for ghagent.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/ghagent/internal/errors"
	"github.com/diogo/ghagent/internal/render"
)

// skin holds every lipgloss style of the chat screen for one theme.
type skin struct {
	theme render.TUITheme

	header, title, subtitle, hint lipgloss.Style
	messages                      lipgloss.Style
	userBubble, userLabel         lipgloss.Style
	agentBubble, agentLabel       lipgloss.Style
	inputPanel, inputLabel        lipgloss.Style
	loading, text, dim, mute      lipgloss.Style
	statusBar, statusKey, notice  lipgloss.Style
	errText                       lipgloss.Style
	welcome, welcomeTitle         lipgloss.Style
	welcomeIcon                   lipgloss.Style
}

var sk skin

func init() {
	UpdateTheme()
}

// UpdateTheme rebuilds the styles from the current TUI theme.
func UpdateTheme() {
	sk = newSkin(render.GetTUITheme())
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func boxed(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

func newSkin(t render.TUITheme) skin {
	return skin{
		theme: t,

		header:   boxed(t.Border).Padding(0, 2),
		title:    fg(t.Accent).Bold(true),
		subtitle: fg(t.TextDim),
		hint:     fg(t.TextMute).Italic(true),
		messages: boxed(t.Border),

		userBubble:  boxed(t.UserBubble).Foreground(t.Text),
		userLabel:   fg(t.UserBubble).Bold(true),
		agentBubble: boxed(t.AssistantBubble).Foreground(t.Text),
		agentLabel:  fg(t.AssistantBubble).Bold(true),

		inputPanel: boxed(t.Border),
		inputLabel: fg(t.UserBubble).Bold(true).MarginRight(1),

		loading: fg(t.Accent).Bold(true),
		text:    fg(t.Text),
		dim:     fg(t.TextDim),
		mute:    fg(t.TextMute),

		statusBar: fg(t.TextMute),
		statusKey: fg(t.TextDim).Bold(true),
		notice:    fg(t.AssistantBubble).Italic(true),
		errText:   fg(t.Error).Bold(true),

		welcome:      fg(t.TextDim).Align(lipgloss.Center),
		welcomeTitle: fg(t.Accent).Bold(true).Align(lipgloss.Center),
		welcomeIcon:  fg(t.AssistantBubble).Align(lipgloss.Center),
	}
}

// FormatError returns a styled error message with additional context
// taken from the structured error types.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(sk.errText.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(sk.dim.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}
	if code := errors.GetErrorCode(err); code != errors.ErrCodeUnknown {
		sb.WriteString(sk.dim.Render(fmt.Sprintf("\n  Error Code: %d (%s)", code, code)))
	}
	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(sk.dim.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}
	if hint := ErrorHint(err); hint != "" {
		sb.WriteString(sk.dim.Render("\n  Hint: " + hint))
	}

	return sb.String()
}

// ErrorHint suggests what to check for a failed exchange
func ErrorHint(err error) string {
	switch {
	case errors.IsTimeoutError(err):
		return "The endpoint took too long to answer. Raise timeout_seconds or try again"
	case errors.IsNetworkError(err):
		return "Is the chat backend running? Try 'ghagent stub-server' for a local one"
	case errors.GetHTTPStatus(err) >= 500:
		return "The endpoint failed while handling the request. Check its logs"
	case errors.GetHTTPStatus(err) > 0:
		return "The endpoint rejected the request. Check the configured endpoint URL"
	case errors.IsParseError(err):
		return "The endpoint answered with a body that could not be read"
	default:
		return ""
	}
}
