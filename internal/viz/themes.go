package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a phosphor colour scheme for the live screen.
type Theme struct {
	Name   string
	Trace  lipgloss.Color
	Spot   lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeP31 = Theme{
		Name:   "p31",
		Trace:  lipgloss.Color("#33ff66"),
		Spot:   lipgloss.Color("#ccffcc"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#d0ffd0"),
		Muted:  lipgloss.Color("#2f6f3f"),
	}

	ThemeP1 = Theme{
		Name:   "p1",
		Trace:  lipgloss.Color("#00ff00"),
		Spot:   lipgloss.Color("#aaffaa"),
		Accent: lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeP3 = Theme{
		Name:   "amber",
		Trace:  lipgloss.Color("#ffb000"),
		Spot:   lipgloss.Color("#ffe0a0"),
		Accent: lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#ffcc66"),
		Muted:  lipgloss.Color("#805800"),
	}

	ThemeP4 = Theme{
		Name:   "white",
		Trace:  lipgloss.Color("#e0e8ff"),
		Spot:   lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
	}

	Themes = []Theme{ThemeP31, ThemeP1, ThemeP3, ThemeP4}
)

// GetTheme returns a theme by name, falling back to P31.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeP31
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// next returns the theme after t in Themes.
func (t Theme) next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
