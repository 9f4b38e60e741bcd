package render

import "testing"

func TestGetTUIThemeByName(t *testing.T) {
	tests := []struct {
		name   string
		wantOK bool
	}{
		{"tokyonight", true},
		{"catppuccin", true},
		{"github", true},
		{"nord", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, ok := GetTUIThemeByName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("GetTUIThemeByName(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && theme.Name != tt.name {
				t.Errorf("theme.Name = %q, want %q", theme.Name, tt.name)
			}
		})
	}
}

func TestSetTUITheme(t *testing.T) {
	original := GetTUITheme()
	t.Cleanup(func() { SetTUITheme(original.Name) })

	if !SetTUITheme("github") {
		t.Fatal("SetTUITheme(github) = false")
	}
	if got := GetTUITheme().Name; got != "github" {
		t.Errorf("GetTUITheme().Name = %q, want github", got)
	}

	if SetTUITheme("does-not-exist") {
		t.Error("SetTUITheme with unknown name returned true")
	}
	if got := GetTUITheme().Name; got != "github" {
		t.Errorf("unknown theme replaced the active one: %q", got)
	}
}

func TestAvailableTUIThemes(t *testing.T) {
	themes := AvailableTUIThemes()
	if len(themes) != 3 {
		t.Fatalf("len(AvailableTUIThemes()) = %d, want 3", len(themes))
	}
	for i := 1; i < len(themes); i++ {
		if themes[i-1].Name > themes[i].Name {
			t.Errorf("themes not sorted: %q before %q", themes[i-1].Name, themes[i].Name)
		}
	}
	for _, theme := range themes {
		if theme.UserBubble == "" || theme.AssistantBubble == "" {
			t.Errorf("theme %q is missing bubble colors", theme.Name)
		}
		if len(theme.Gradient) < 2 {
			t.Errorf("theme %q gradient has %d stops", theme.Name, len(theme.Gradient))
		}
		if !IsBuiltinStyle(theme.MarkdownStyle) {
			t.Errorf("theme %q pairs with unknown markdown style %q", theme.Name, theme.MarkdownStyle)
		}
	}
}
