package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	submit   key.Binding
	login    key.Binding
	retry    key.Binding
	home     key.Binding
	theme    key.Binding
	export   key.Binding
	language key.Binding
	// homeLanguage switches language while the text input has focus.
	homeLanguage key.Binding
	quit         key.Binding
	forceQuit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open festival")),
		login:        key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "login")),
		retry:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		home:         key.NewBinding(key.WithKeys("h", "esc"), key.WithHelp("h", "home")),
		theme:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		export:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export png")),
		language:     key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language")),
		homeLanguage: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "language")),
		quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		forceQuit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.submit, k.login, k.homeLanguage},
		{k.retry, k.home},
		{k.theme, k.export, k.language},
		{k.quit, k.forceQuit},
	}
}

// forView returns the bindings shown in the help line of v.
func (k keyMap) forView(v ViewState) []key.Binding {
	switch v {
	case HomeView:
		return []key.Binding{k.submit, k.login, k.homeLanguage, k.forceQuit}
	case LoadingView:
		return []key.Binding{k.language, k.quit}
	case FailureView:
		return []key.Binding{k.retry, k.home, k.language, k.quit}
	case PosterView:
		return []key.Binding{k.theme, k.export, k.language, k.home, k.quit}
	default:
		return []key.Binding{k.quit}
	}
}
