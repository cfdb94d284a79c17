package ui

import (
	"fmt"
	"strings"
)

func (m *Model) render() string {
	p := NewPalette(m.theme)

	var body string
	switch m.Current() {
	case HomeView:
		body = m.renderHome(p)
	case LoadingView:
		body = m.renderLoading(p)
	case FailureView:
		body = m.renderFailure(p)
	case PosterView:
		body = renderPoster(m.Layout(), p, posterWidth(m.width))
	}

	parts := []string{body}
	if m.notice != "" {
		style := p.ok
		if m.noticeErr {
			style = p.err
		}
		parts = append(parts, style.Render(m.notice))
	}
	parts = append(parts, m.renderStatus(p), m.help.ShortHelpView(m.keys.forView(m.Current())))
	return strings.Join(parts, "\n\n")
}

func (m *Model) renderHome(p Palette) string {
	title := p.title.Render(m.catalog.Title)
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s",
		title,
		m.catalog.Subtitle,
		m.input.View(),
		p.help.Render(m.catalog.LoginHint),
	)
}

func (m *Model) renderLoading(p Palette) string {
	title := p.title.Render(m.catalog.LoadingTitle)
	return fmt.Sprintf("%s\n%s %s", title, m.spinner.View(), m.state.LoadingMessage)
}

func (m *Model) renderFailure(p Palette) string {
	title := p.err.Render(m.catalog.ErrorTitle)
	return fmt.Sprintf("%s\n\n%s", title, m.state.Message)
}

// renderStatus shows the theme and language selectors.
func (m *Model) renderStatus(p Palette) string {
	return p.help.Render(fmt.Sprintf("%s: %s  %s: %s",
		m.catalog.Theme, m.theme.Label,
		m.catalog.Language, m.catalog.Label,
	))
}
