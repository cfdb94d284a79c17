package models

import "testing"

func TestResult(t *testing.T) {
	result := &Result{
		Days: []Day{
			{
				DayNumber:     1,
				Headliners:    []Artist{{Name: "Radiohead"}},
				SpecialGuests: []Artist{{Name: "Björk"}, {Name: "Portishead"}},
			},
			{
				DayNumber:   2,
				Headliners:  []Artist{{Name: "Massive Attack"}},
				TinyLetters: []Artist{{Name: "Low"}},
			},
		},
		Partitioned: true,
	}

	t.Run("Counts", func(t *testing.T) {
		if result.DayCount() != 2 {
			t.Errorf("expected 2 days, got %d", result.DayCount())
		}
		if result.ArtistCount() != 5 {
			t.Errorf("expected 5 artists, got %d", result.ArtistCount())
		}
	})

	t.Run("Headliners Keep Day Order", func(t *testing.T) {
		got := result.Headliners()
		if len(got) != 2 || got[0].Name != "Radiohead" || got[1].Name != "Massive Attack" {
			t.Errorf("unexpected headliners %+v", got)
		}
	})

	t.Run("Day Artists By Tier", func(t *testing.T) {
		d := result.Days[0]
		if got := d.Artists(SpecialGuests); len(got) != 2 || got[1].Name != "Portishead" {
			t.Errorf("unexpected special guests %+v", got)
		}
		if got := d.Artists(Tier(99)); got != nil {
			t.Errorf("expected nil for unknown tier, got %+v", got)
		}
	})

	t.Run("Nil Result", func(t *testing.T) {
		var r *Result
		if r.DayCount() != 0 || r.ArtistCount() != 0 || r.Headliners() != nil {
			t.Error("expected zero values for nil result")
		}
	})
}

func TestTierString(t *testing.T) {
	want := []string{"headliners", "specialGuests", "undercard", "tinyLetters"}
	for i, tier := range Tiers {
		if tier.String() != want[i] {
			t.Errorf("Tier(%d).String() = %q, want %q", tier, tier.String(), want[i])
		}
	}
}
