// Package prefs persists the display preferences chosen in the TUI.
// Preferences are stored in ~/.tidalfest/prefs.toml.
package prefs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/desertthunder/tidalfest/internal/i18n"
	"github.com/desertthunder/tidalfest/internal/shared"
)

// Prefs holds user preferences. Language mirrors the browser client's i18nextLng key.
type Prefs struct {
	Language string `toml:"language"`
	Theme    string `toml:"theme,omitempty"`
}

const defaultPrefsPath = "~/.tidalfest/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{Language: i18n.Default}
}

// Load reads preferences from path, falling back to defaults when the file is missing or unreadable.
func Load(path string) Prefs {
	p := Defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return p
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return p
	}

	if _, err := toml.Decode(string(data), &p); err != nil {
		return Defaults()
	}

	if strings.TrimSpace(p.Language) == "" {
		p.Language = i18n.Default
	}
	p.Language = i18n.Match(p.Language)
	return p
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// SetLanguage loads, updates and saves the language key.
func SetLanguage(path, code string) (Prefs, error) {
	p := Load(path)
	p.Language = i18n.Match(code)
	return p, Save(path, p)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	expanded, err := shared.ExpandPath(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}
