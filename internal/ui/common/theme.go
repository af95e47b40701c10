package common

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// ThemeID identifies a color theme.
type ThemeID string

const (
	ThemeGruvbox      ThemeID = "gruvbox"
	ThemeGruvboxLight ThemeID = "gruvbox-light"
	ThemeTokyoNight   ThemeID = "tokyo-night"
	ThemeNord         ThemeID = "nord"
	ThemePlain        ThemeID = "plain"
)

// ThemeColors defines all colors used by the application.
type ThemeColors struct {
	Background color.Color
	Foreground color.Color
	Muted      color.Color
	Border     color.Color
	Accent     color.Color

	Success color.Color
	Warning color.Color
	Error   color.Color
	Info    color.Color

	// Alternate rows are drawn on Stripe so wraps stay visible.
	Stripe color.Color
}

// Theme represents a complete color theme.
type Theme struct {
	ID     ThemeID
	Name   string
	Colors ThemeColors
}

// AvailableThemes returns all predefined themes.
func AvailableThemes() []Theme {
	return []Theme{
		GruvboxTheme(),
		GruvboxLightTheme(),
		TokyoNightTheme(),
		NordTheme(),
		PlainTheme(),
	}
}

// GetTheme returns a theme by ID (case-insensitive), defaulting to Gruvbox.
func GetTheme(id string) Theme {
	want := ThemeID(strings.ToLower(strings.TrimSpace(id)))
	for _, t := range AvailableThemes() {
		if t.ID == want {
			return t
		}
	}
	return GruvboxTheme()
}

func GruvboxTheme() Theme {
	return Theme{
		ID:   ThemeGruvbox,
		Name: "Gruvbox",
		Colors: ThemeColors{
			Background: lipgloss.Color("#282828"),
			Foreground: lipgloss.Color("#ebdbb2"),
			Muted:      lipgloss.Color("#928374"),
			Border:     lipgloss.Color("#504945"),
			Accent:     lipgloss.Color("#fe8019"),
			Success:    lipgloss.Color("#b8bb26"),
			Warning:    lipgloss.Color("#fabd2f"),
			Error:      lipgloss.Color("#fb4934"),
			Info:       lipgloss.Color("#83a598"),
			Stripe:     lipgloss.Color("#32302f"),
		},
	}
}

func GruvboxLightTheme() Theme {
	return Theme{
		ID:   ThemeGruvboxLight,
		Name: "Gruvbox Light",
		Colors: ThemeColors{
			Background: lipgloss.Color("#fbf1c7"),
			Foreground: lipgloss.Color("#3c3836"),
			Muted:      lipgloss.Color("#7c6f64"),
			Border:     lipgloss.Color("#d5c4a1"),
			Accent:     lipgloss.Color("#af3a03"),
			Success:    lipgloss.Color("#79740e"),
			Warning:    lipgloss.Color("#b57614"),
			Error:      lipgloss.Color("#9d0006"),
			Info:       lipgloss.Color("#076678"),
			Stripe:     lipgloss.Color("#f2e5bc"),
		},
	}
}

func TokyoNightTheme() Theme {
	return Theme{
		ID:   ThemeTokyoNight,
		Name: "Tokyo Night",
		Colors: ThemeColors{
			Background: lipgloss.Color("#1a1b26"),
			Foreground: lipgloss.Color("#a9b1d6"),
			Muted:      lipgloss.Color("#565f89"),
			Border:     lipgloss.Color("#292e42"),
			Accent:     lipgloss.Color("#7aa2f7"),
			Success:    lipgloss.Color("#9ece6a"),
			Warning:    lipgloss.Color("#e0af68"),
			Error:      lipgloss.Color("#f7768e"),
			Info:       lipgloss.Color("#7dcfff"),
			Stripe:     lipgloss.Color("#1f2335"),
		},
	}
}

func NordTheme() Theme {
	return Theme{
		ID:   ThemeNord,
		Name: "Nord",
		Colors: ThemeColors{
			Background: lipgloss.Color("#2e3440"),
			Foreground: lipgloss.Color("#eceff4"),
			Muted:      lipgloss.Color("#4c566a"),
			Border:     lipgloss.Color("#3b4252"),
			Accent:     lipgloss.Color("#88c0d0"),
			Success:    lipgloss.Color("#a3be8c"),
			Warning:    lipgloss.Color("#ebcb8b"),
			Error:      lipgloss.Color("#bf616a"),
			Info:       lipgloss.Color("#81a1c1"),
			Stripe:     lipgloss.Color("#3b4252"),
		},
	}
}

// PlainTheme leaves every color to the terminal.
func PlainTheme() Theme {
	none := lipgloss.NoColor{}
	return Theme{
		ID:   ThemePlain,
		Name: "Plain",
		Colors: ThemeColors{
			Background: none,
			Foreground: none,
			Muted:      none,
			Border:     none,
			Accent:     none,
			Success:    none,
			Warning:    none,
			Error:      none,
			Info:       none,
			Stripe:     none,
		},
	}
}
