package poster

import (
	"errors"
	"testing"

	"github.com/desertthunder/tidalfest/internal/shared"
)

func TestThemes(t *testing.T) {
	t.Run("Names In Selector Order", func(t *testing.T) {
		want := []string{"SunsetBeach", "MidnightFest", "DesertDawn"}
		got := ThemeNames()
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("theme %d: expected %s, got %s", i, want[i], got[i])
			}
		}
	})

	t.Run("Lookup", func(t *testing.T) {
		th, err := LookupTheme("MidnightFest")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if th.Label != "Purple Night" || th.Accent != "#fde047" {
			t.Errorf("unexpected theme %+v", th)
		}

		def, err := LookupTheme("")
		if err != nil || def.Name != DefaultTheme {
			t.Errorf("expected default theme, got %+v (%v)", def, err)
		}
	})

	t.Run("Unknown Theme", func(t *testing.T) {
		_, err := LookupTheme("Neon")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if MustTheme("Neon").Name != DefaultTheme {
			t.Error("expected MustTheme to fall back to default")
		}
	})

	t.Run("Next Cycles", func(t *testing.T) {
		if NextTheme("SunsetBeach").Name != "MidnightFest" {
			t.Error("expected MidnightFest after SunsetBeach")
		}
		if NextTheme("DesertDawn").Name != "SunsetBeach" {
			t.Error("expected wrap around to SunsetBeach")
		}
	})

	t.Run("Table Is Not Mutated By Callers", func(t *testing.T) {
		all := Themes()
		all[0].Primary = "#000000"
		if MustTheme("SunsetBeach").Primary != "#06b6d4" {
			t.Error("expected theme table to be read-only")
		}
	})

	t.Run("Palettes Parse", func(t *testing.T) {
		for _, th := range Themes() {
			if _, err := newPalette(th); err != nil {
				t.Errorf("%s: %v", th.Name, err)
			}
		}
	})
}
