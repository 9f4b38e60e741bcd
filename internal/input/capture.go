// Package input collects the text the user is about to send.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap separates the commit key from the newline key
type KeyMap struct {
	Submit  key.Binding
	Newline key.Binding
}

// DefaultKeyMap commits on enter and inserts a newline with a modifier held
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("alt+enter", "newline"),
		),
	}
}

// Styles for the input box
type Styles struct {
	Text        lipgloss.Style
	Placeholder lipgloss.Style
}

// Input box height bounds, in lines
const (
	MinHeight = 2
	MaxHeight = 6
)

// Capture wraps a textarea holding the pending text
type Capture struct {
	textarea textarea.Model
	keys     KeyMap
}

// New creates a focused Capture
func New(keys KeyMap, styles Styles) Capture {
	ta := textarea.New()
	ta.Placeholder = "Ask anything..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(MinHeight)
	ta.KeyMap.InsertNewline = keys.Newline
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = styles.Text
	ta.FocusedStyle.Placeholder = styles.Placeholder
	ta.BlurredStyle = ta.FocusedStyle

	return Capture{textarea: ta, keys: keys}
}

// Keys returns the key bindings in use
func (c Capture) Keys() KeyMap {
	return c.keys
}

// Value returns the pending text as typed
func (c Capture) Value() string {
	return c.textarea.Value()
}

// SetValue replaces the pending text
func (c *Capture) SetValue(s string) {
	c.textarea.SetValue(s)
	c.fit()
}

// Height returns the current height of the input box in lines
func (c Capture) Height() int {
	return c.textarea.Height()
}

// fit grows the box with its content, within MinHeight and MaxHeight
func (c *Capture) fit() {
	h := c.textarea.LineCount()
	if h < MinHeight {
		h = MinHeight
	}
	if h > MaxHeight {
		h = MaxHeight
	}
	if h != c.textarea.Height() {
		c.textarea.SetHeight(h)
	}
}

// SetWidth resizes the input box
func (c *Capture) SetWidth(w int) {
	c.textarea.SetWidth(w)
}

// Submit returns the trimmed pending text and clears it. Nothing happens
// and false is returned when the text is blank or busy is set.
func (c *Capture) Submit(busy bool) (string, bool) {
	if busy {
		return "", false
	}
	text := strings.TrimSpace(c.textarea.Value())
	if text == "" {
		return "", false
	}
	c.textarea.Reset()
	c.fit()
	return text, true
}

// HandleKey routes a key press: the commit key submits, every other key
// edits the pending text. While busy all keys are ignored.
func (c *Capture) HandleKey(msg tea.KeyMsg, busy bool) (string, bool, tea.Cmd) {
	if busy {
		return "", false, nil
	}
	if key.Matches(msg, c.keys.Submit) {
		text, ok := c.Submit(busy)
		return text, ok, nil
	}

	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	c.fit()
	return "", false, cmd
}

// View renders the input box
func (c Capture) View() string {
	return c.textarea.View()
}

// Blink is the cursor blink command to start with
func Blink() tea.Msg {
	return textarea.Blink()
}
