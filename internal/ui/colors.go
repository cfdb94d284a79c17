package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/tidalfest/internal/poster"
)

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style

	// Poster styles derived from a [poster.Theme].
	header    lipgloss.Style
	heading   lipgloss.Style
	headliner lipgloss.Style
	artist    lipgloss.Style
	muted     lipgloss.Style
	bullet    lipgloss.Style
	divider   lipgloss.Style
	card      lipgloss.Style
}

var _ Painter = Palette{}

// NewPalette builds the chrome styles around the accent colors of t.
func NewPalette(t poster.Theme) Palette {
	return Palette{
		title: NewBold(t.Decoration).MarginBottom(1),
		ok:    NewBold("#04B575"),
		err:   NewBold("#FF5F5F"),
		warn:  NewStyle("#FFA500"),
		help:  NewEm("#626262"),

		header:    NewBold(t.Accent),
		heading:   NewBold(t.Decoration),
		headliner: NewBold(t.Text),
		artist:    NewStyle(t.Text),
		muted:     NewStyle(t.Border),
		bullet:    NewStyle(t.Accent),
		divider:   NewStyle(t.Border),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(1, 4),
	}
}

func (Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Render(s)
}

func (Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
