package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/ghagent/internal/chat"
	"github.com/diogo/ghagent/internal/conversation"
	"github.com/diogo/ghagent/internal/input"
	"github.com/diogo/ghagent/internal/models"
	"github.com/diogo/ghagent/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	// responseMsg carries a finished outbound call back onto the event loop
	responseMsg struct {
		result chat.Result
	}
	copiedMsg struct {
		err error
	}
)

// Option configures a Model
type Option func(*Model)

// WithContext sets the context outbound calls run under
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithRenderOptions sets the markdown options for assistant messages
func WithRenderOptions(opts render.Options) Option {
	return func(m *Model) {
		m.renderOpts = opts
	}
}

// WithClipboard replaces the function used to copy replies
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) {
		if fn != nil {
			m.copyFn = fn
		}
	}
}

// Model represents the TUI state. Everything it draws is derived from the
// conversation store and the controller's loading flag.
type Model struct {
	ctx        context.Context
	controller *chat.Controller
	store      *conversation.Store
	renderOpts render.Options
	copyFn     func(string) error

	// UI components
	viewport viewport.Model
	input    input.Capture
	spinner  spinner.Model

	// State
	ready          bool
	lastLen        int
	animationFrame int
	err            error
	notice         string

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(controller *chat.Controller, opts ...Option) Model {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = sk.loading

	m := Model{
		ctx:        context.Background(),
		controller: controller,
		store:      controller.Store(),
		renderOpts: render.DefaultOptions(),
		copyFn:     clipboard.WriteAll,
		input: input.New(input.DefaultKeyMap(), input.Styles{
			Text:        sk.text,
			Placeholder: sk.dim,
		}),
		spinner: s,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return input.Blink
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			// An issued exchange cannot be cancelled
			if !m.controller.Loading() {
				return m, tea.Quit
			}
			return m, nil

		case "ctrl+y":
			return m, m.copyLastReply()

		case "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		height := m.input.Height()
		text, ok, cmd := m.input.HandleKey(msg, m.controller.Loading())
		if m.ready && m.input.Height() != height {
			m.resize(m.width, m.height)
		}
		if !ok {
			return m, cmd
		}
		ex, started := m.controller.Submit(text)
		if !started {
			return m, nil
		}
		m.err = nil
		m.notice = ""
		m.animationFrame = 0
		m.refresh()
		return m, tea.Batch(
			m.sendExchange(ex),
			m.spinner.Tick,
			animationTick(),
		)

	case responseMsg:
		if _, ok := m.controller.Resolve(msg.result); ok {
			m.err = msg.result.Err
		}
		m.refresh()

	case copiedMsg:
		if msg.err != nil {
			m.notice = "Copy failed: " + msg.err.Error()
		} else {
			m.notice = "Copied last reply to clipboard"
		}

	case spinner.TickMsg:
		if m.controller.Loading() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.controller.Loading() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// sendExchange runs the outbound call off the event loop
func (m Model) sendExchange(ex *chat.Exchange) tea.Cmd {
	ctx := m.ctx
	controller := m.controller
	return func() tea.Msg {
		return responseMsg{result: controller.Send(ctx, ex)}
	}
}

// copyLastReply copies the latest assistant message
func (m Model) copyLastReply() tea.Cmd {
	last, ok := m.store.LastByRole(models.RoleAssistant)
	if !ok {
		return nil
	}
	copyFn := m.copyFn
	return func() tea.Msg {
		return copiedMsg{err: copyFn(last.Content)}
	}
}

// resize lays out the panels for a new terminal size
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 3                   // Header panel with border
	inputHeight := m.input.Height() + 2 // Input panel with border
	statusHeight := 1                   // Status bar
	borders := 2                        // Messages panel border

	vpHeight := height - headerHeight - inputHeight - statusHeight - borders
	if vpHeight < 5 {
		vpHeight = 5
	}
	contentWidth := width - 4

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.input.SetWidth(contentWidth - 4)

	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

// refresh redraws the conversation and follows it to the latest entry
// whenever its length changed.
func (m *Model) refresh() {
	n := m.store.Len()
	if n == m.lastLen || !m.ready {
		m.lastLen = n
		return
	}
	m.lastLen = n
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return sk.loading.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	var sections []string

	// Header
	header := sk.header.Width(contentWidth).Render(lipgloss.JoinHorizontal(
		lipgloss.Center,
		sk.title.Render("✦ ghagent"),
		sk.hint.Render("  •  "),
		sk.subtitle.Render(m.controller.Endpoint()),
	))
	sections = append(sections, header)

	// Messages
	var messagesContent string
	if m.store.Len() == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, sk.messages.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Input
	var inputContent string
	if m.controller.Loading() {
		inputContent = m.renderLoadingAnimation()
	} else {
		inputContent = lipgloss.JoinHorizontal(
			lipgloss.Top,
			sk.inputLabel.Render("You"),
			m.input.View(),
		)
	}
	sections = append(sections, sk.inputPanel.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.err != nil {
		sections = append(sections, FormatError(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 2
	height := m.viewport.Height

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		sk.welcomeIcon.Width(width).Render("✦"),
		"",
		sk.welcomeTitle.Width(width).Render("How can I help you today?"),
		"",
		sk.welcome.Width(width).Render("Type a message and press Enter. Alt+Enter starts a new line."),
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderMessages draws every message as a bubble, user on the right and
// assistant on the left.
func (m Model) renderMessages() string {
	var content strings.Builder
	width := m.viewport.Width
	bubbleWidth := width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = width
	}

	for i, msg := range m.store.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}
		if msg.IsUser() {
			label := sk.userLabel.Render("You ●")
			bubble := sk.userBubble.Width(bubbleWidth).Render(msg.Content)
			block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
			content.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, block))
		} else {
			label := sk.agentLabel.Render("✦ Agent")
			rendered := render.Reply(msg.Content, m.renderOpts.WithWidth(bubbleWidth-4))
			bubble := sk.agentBubble.Width(bubbleWidth).Render(rendered)
			content.WriteString(lipgloss.JoinVertical(lipgloss.Left, label, bubble))
		}
		content.WriteString("\n")
	}

	return content.String()
}

// renderLoadingAnimation renders a colorful animated loading indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame
	colors := sk.theme.Gradient
	if len(colors) == 0 {
		colors = []lipgloss.Color{sk.theme.Accent}
	}

	spin := fg(colors[frame%len(colors)]).Bold(true).Render(chars[frame%len(chars)])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		style := fg(colors[(i+frame)%len(colors)])
		bar.WriteString(style.Render(barChars[(i+frame/2)%len(barChars)]))
	}

	var dots strings.Builder
	numDots := (frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dots.WriteString(fg(colors[(frame+i)%len(colors)]).Render("●"))
		} else {
			dots.WriteString(sk.mute.Render("○"))
		}
	}

	text := sk.text.Render(" Agent is thinking ")
	return fmt.Sprintf("%s %s %s %s %s", spin, bar.String(), text, dots.String(), m.spinner.View())
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Alt+Enter", "Newline"},
		{"PgUp/PgDn", "Scroll"},
		{"Ctrl+Y", "Copy reply"},
		{"Esc", "Quit"},
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, sk.statusKey.Render(s.key)+sk.statusBar.Render(" "+s.desc))
	}
	bar := strings.Join(items, "  │  ")
	if m.notice != "" {
		bar = sk.notice.Render(m.notice) + "  │  " + bar
	}
	return sk.statusBar.Width(width).Align(lipgloss.Center).Render(bar)
}

// RunChat starts the chat TUI
func RunChat(controller *chat.Controller, opts ...Option) error {
	m := NewChatModel(controller, opts...)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
