package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/tidalfest/internal/i18n"
)

func TestLoad(t *testing.T) {
	t.Run("Missing File Uses Defaults", func(t *testing.T) {
		p := Load(filepath.Join(t.TempDir(), "missing.toml"))
		if p.Language != i18n.Default {
			t.Errorf("expected default language, got %s", p.Language)
		}
	})

	t.Run("Invalid File Uses Defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prefs.toml")
		os.WriteFile(path, []byte("language = ["), 0o644)

		if p := Load(path); p != Defaults() {
			t.Errorf("expected defaults, got %+v", p)
		}
	})

	t.Run("Normalizes Stored Language", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prefs.toml")
		os.WriteFile(path, []byte("language = \"en-US\"\ntheme = \"DesertDawn\"\n"), 0o644)

		p := Load(path)
		if p.Language != i18n.English {
			t.Errorf("expected en, got %s", p.Language)
		}
		if p.Theme != "DesertDawn" {
			t.Errorf("expected theme kept, got %s", p.Theme)
		}
	})

	t.Run("Empty Language", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prefs.toml")
		os.WriteFile(path, []byte("language = \"\"\n"), 0o644)

		if p := Load(path); p.Language != i18n.Default {
			t.Errorf("expected default language, got %s", p.Language)
		}
	})
}

func TestSave(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

		if err := Save(path, Prefs{Language: i18n.English, Theme: "MidnightFest"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		p := Load(path)
		if p.Language != i18n.English || p.Theme != "MidnightFest" {
			t.Errorf("unexpected prefs %+v", p)
		}
	})

	t.Run("Set Language", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prefs.toml")
		Save(path, Prefs{Language: i18n.Spanish, Theme: "DesertDawn"})

		p, err := SetLanguage(path, "en")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Language != i18n.English || p.Theme != "DesertDawn" {
			t.Errorf("expected language updated and theme kept, got %+v", p)
		}
		if Load(path).Language != i18n.English {
			t.Error("expected language persisted")
		}
	})
}
