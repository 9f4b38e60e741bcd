package render

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme is the palette of the chat UI.
type TUITheme struct {
	Name        string
	Description string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// UserBubble and AssistantBubble frame the two sides of the conversation
	UserBubble      lipgloss.Color
	AssistantBubble lipgloss.Color
	Accent          lipgloss.Color
	Error           lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color

	// Gradient colors the thinking bar, left to right
	Gradient []lipgloss.Color

	// MarkdownStyle is the glamour theme paired with this palette
	MarkdownStyle string
}

var (
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night, blue accents on a dark background",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		UserBubble:      lipgloss.Color("#7aa2f7"),
		AssistantBubble: lipgloss.Color("#9ece6a"),
		Accent:          lipgloss.Color("#bb9af7"),
		Error:           lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),

		Gradient:      []lipgloss.Color{"#7aa2f7", "#7dcfff", "#bb9af7", "#9ece6a"},
		MarkdownStyle: ThemeTokyoNight,
	}

	CatppuccinTheme = TUITheme{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha, pastel colors on a warm dark background",

		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475a"),

		UserBubble:      lipgloss.Color("#89b4fa"),
		AssistantBubble: lipgloss.Color("#a6e3a1"),
		Accent:          lipgloss.Color("#cba6f7"),
		Error:           lipgloss.Color("#f38ba8"),

		Text:     lipgloss.Color("#cdd6f4"),
		TextDim:  lipgloss.Color("#6c7086"),
		TextMute: lipgloss.Color("#45475a"),

		Gradient:      []lipgloss.Color{"#89b4fa", "#74c7ec", "#cba6f7", "#f5c2e7"},
		MarkdownStyle: ThemeDark,
	}

	// GitHubTheme follows the GitHub light palette
	GitHubTheme = TUITheme{
		Name:        "github",
		Description: "GitHub light, for bright terminals",

		Background: lipgloss.Color("#ffffff"),
		Surface:    lipgloss.Color("#f6f8fa"),
		Border:     lipgloss.Color("#d0d7de"),

		UserBubble:      lipgloss.Color("#0969da"),
		AssistantBubble: lipgloss.Color("#1a7f37"),
		Accent:          lipgloss.Color("#8250df"),
		Error:           lipgloss.Color("#cf222e"),

		Text:     lipgloss.Color("#1f2328"),
		TextDim:  lipgloss.Color("#656d76"),
		TextMute: lipgloss.Color("#8c959f"),

		Gradient:      []lipgloss.Color{"#0969da", "#8250df", "#bf3989", "#1a7f37"},
		MarkdownStyle: ThemeLight,
	}
)

var tuiThemes = map[string]TUITheme{
	TokyoNightTheme.Name: TokyoNightTheme,
	CatppuccinTheme.Name: CatppuccinTheme,
	GitHubTheme.Name:     GitHubTheme,
}

var (
	themeMu         sync.RWMutex
	currentTUITheme = TokyoNightTheme
)

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme activates the named theme. Unknown names leave the current
// theme in place and return false.
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTUITheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	theme, ok := tuiThemes[name]
	return theme, ok
}

// AvailableTUIThemes returns every TUI theme sorted by name
func AvailableTUIThemes() []TUITheme {
	themes := make([]TUITheme, 0, len(tuiThemes))
	for _, t := range tuiThemes {
		themes = append(themes, t)
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i].Name < themes[j].Name })
	return themes
}
