package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/tidalfest/internal/models"
	"github.com/desertthunder/tidalfest/internal/poster"
)

const (
	minPosterWidth = 30
	maxPosterWidth = 72
	bulletSep      = " • "
)

// posterWidth is the inner width of the poster card for a terminal of the given width.
func posterWidth(termWidth int) int {
	w := termWidth - 12
	if termWidth == 0 || w > maxPosterWidth {
		w = maxPosterWidth
	}
	return max(w, minPosterWidth)
}

// renderPoster draws layout as a bordered card.
func renderPoster(layout poster.Layout, p Palette, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Render(p.header.Render(layout.Title)))
	if layout.Subtitle != "" {
		b.WriteString("\n")
		b.WriteString(center.Render(p.muted.Render(strings.ToUpper(layout.Subtitle))))
	}

	for i, panel := range layout.Panels {
		b.WriteString("\n\n")
		if i > 0 {
			b.WriteString(p.divider.Render(strings.Repeat("━", width)))
			b.WriteString("\n\n")
		}
		if panel.Dated {
			b.WriteString(center.Render(p.heading.Render(panel.Heading)))
			b.WriteString("\n")
			b.WriteString(center.Render(p.muted.Render(panel.DateLabel)))
			b.WriteString("\n\n")
		}
		b.WriteString(renderSections(panel.Sections, p, center, width))
	}

	if layout.Empty() {
		b.WriteString("\n\n")
		b.WriteString(center.Render(p.muted.Render("···")))
	}
	return p.card.Render(b.String())
}

func renderSections(sections []poster.Section, p Palette, center lipgloss.Style, width int) string {
	rule := p.divider.Render(strings.Repeat("─", width/2))

	out := make([]string, 0, len(sections)*2)
	for i, s := range sections {
		if i > 0 {
			out = append(out, center.Render(rule))
		}
		out = append(out, center.Render(renderTier(s, p)))
	}
	return strings.Join(out, "\n")
}

// renderTier puts headliners one per line and joins the other tiers with bullets.
func renderTier(s poster.Section, p Palette) string {
	switch s.Tier {
	case models.Headliners:
		lines := make([]string, len(s.Names))
		for i, n := range s.Names {
			lines[i] = p.headliner.Render(n)
		}
		return strings.Join(lines, "\n")
	case models.TinyLetters:
		return joinNames(s.Names, p.muted, p.bullet)
	default:
		return joinNames(s.Names, p.artist, p.bullet)
	}
}

func joinNames(names []string, style, sep lipgloss.Style) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = style.Render(n)
	}
	return strings.Join(parts, sep.Render(bulletSep))
}

// RenderPoster draws layout for a terminal termWidth columns wide, outside the TUI.
func RenderPoster(layout poster.Layout, termWidth int) string {
	return renderPoster(layout, NewPalette(layout.Theme), posterWidth(termWidth))
}
