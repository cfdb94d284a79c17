package poster

import (
	"fmt"
	"slices"

	"github.com/desertthunder/tidalfest/internal/shared"
)

// Theme is a fixed palette. Colors are hex strings.
type Theme struct {
	Name       string
	Label      string
	Primary    string
	Secondary  string
	Accent     string
	Background string
	Text       string
	Border     string
	Decoration string
}

// ExportBackground fills the canvas around the poster card.
const ExportBackground = "#0a0a0f"

const DefaultTheme = "SunsetBeach"

var themes = []Theme{
	{
		Name:       "SunsetBeach",
		Label:      "Ocean Breeze",
		Primary:    "#06b6d4",
		Secondary:  "#0891b2",
		Accent:     "#fbbf24",
		Background: "#0a1929",
		Text:       "#FFFFFF",
		Border:     "#0e7490",
		Decoration: "#38bdf8",
	},
	{
		Name:       "MidnightFest",
		Label:      "Purple Night",
		Primary:    "#4c1d95",
		Secondary:  "#5b21b6",
		Accent:     "#fde047",
		Background: "#0f0f1b",
		Text:       "#FFFFFF",
		Border:     "#6d28d9",
		Decoration: "#8b5cf6",
	},
	{
		Name:       "DesertDawn",
		Label:      "Coral Sunset",
		Primary:    "#e11d48",
		Secondary:  "#f43f5e",
		Accent:     "#fde047",
		Background: "#1a0d0d",
		Text:       "#FFFFFF",
		Border:     "#fb7185",
		Decoration: "#fca5a5",
	},
}

// Themes returns every theme in selector order.
func Themes() []Theme {
	return slices.Clone(themes)
}

// ThemeNames returns the theme identifiers in selector order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// LookupTheme finds a theme by name. An empty name yields the default theme.
func LookupTheme(name string) (Theme, error) {
	if name == "" {
		name = DefaultTheme
	}
	for _, t := range themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: unknown theme %q", shared.ErrInvalidArgument, name)
}

// MustTheme is [LookupTheme] falling back to the default theme.
func MustTheme(name string) Theme {
	if t, err := LookupTheme(name); err == nil {
		return t
	}
	return themes[0]
}

// NextTheme cycles to the theme after name.
func NextTheme(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
