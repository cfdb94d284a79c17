package formatter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/tidalfest/internal/models"
	th "github.com/desertthunder/tidalfest/internal/testing"
)

func flatResult() *models.Result {
	return &models.Result{Days: []models.Day{{
		DayNumber: 1,
		Headliners: []models.Artist{
			{Name: "Radiohead", Score: 99, Details: models.Details{Track: 5, Albums: 2}},
		},
		SpecialGuests: []models.Artist{
			{Name: "Portishead", Score: 81.5, Details: models.Details{Track: 3, Albums: 1}},
			{Name: "Air", Score: 70},
		},
	}}}
}

func partitionedResult() *models.Result {
	return &models.Result{
		Partitioned: true,
		Metadata:    &models.Metadata{FestivalName: "Tidal Weekend"},
		Days: []models.Day{
			{DayNumber: 1, Headliners: []models.Artist{{Name: "Slowdive"}}},
			{DayNumber: 2, Headliners: []models.Artist{{Name: "Low"}}, TinyLetters: []models.Artist{{Name: "Duster"}}},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(flatResult())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("expected valid CSV, got %v", err)
		}
		if len(records) != 4 {
			t.Fatalf("expected header + 3 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "Day,Tier,Position,Name,Score,Tracks,Albums" {
			t.Errorf("unexpected headers %v", records[0])
		}
		if strings.Join(records[2], ",") != "1,specialGuests,1,Portishead,81.5,3,1" {
			t.Errorf("unexpected row %v", records[2])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(partitionedResult(), "tidalfest-lineup-2-days.png")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content := string(data)
		for _, want := range []string{
			"# Tidal Weekend",
			"![Poster](tidalfest-lineup-2-days.png)",
			"**Days**: 2",
			"## Day 2",
			"### Tiny Letters",
			"1. Duster",
		} {
			if !strings.Contains(content, want) {
				t.Errorf("expected markdown to contain %q", want)
			}
		}
	})

	t.Run("ExportToMarkdown Flat Without Poster", func(t *testing.T) {
		data, _ := ExportToMarkdown(flatResult(), "")
		content := string(data)

		if strings.Contains(content, "![Poster]") {
			t.Error("expected no poster reference")
		}
		if strings.Contains(content, "## Day") {
			t.Error("expected no day headings for flat lineup")
		}
		if strings.Contains(content, "### Undercard") {
			t.Error("expected empty tiers skipped")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(flatResult())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content := string(data)
		if !strings.HasPrefix(content, "Lineup: 1 day(s), 3 artist(s)") {
			t.Errorf("unexpected summary line in %q", content)
		}
		if !strings.Contains(content, "Special Guests:\n  1. Portishead\n  2. Air\n") {
			t.Errorf("expected ordered special guests, got %q", content)
		}
	})

	t.Run("ToJSON", func(t *testing.T) {
		data, err := ToJSON(partitionedResult())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var decoded models.Result
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("expected valid JSON, got %v", err)
		}
		if !decoded.Partitioned || len(decoded.Days) != 2 {
			t.Errorf("unexpected decoded result %+v", decoded)
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteMarkdownExport", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "lineup")

		out, err := WriteMarkdownExport(flatResult(), dir, "tidalfest-lineup.png", []byte("png"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		th.AssertDirExists(t, dir)
		th.AssertFileExists(t, filepath.Join(dir, "README.md"))
		th.AssertFileExists(t, out.Poster)

		if len(out.Files) != 2 {
			t.Errorf("expected 2 files, got %d", len(out.Files))
		}
		if !strings.Contains(th.MustReadFile(t, filepath.Join(dir, "README.md")), "![Poster](tidalfest-lineup.png)") {
			t.Error("expected README to reference poster")
		}
	})

	t.Run("WriteMarkdownExport Without Poster", func(t *testing.T) {
		dir := t.TempDir()

		out, err := WriteMarkdownExport(flatResult(), dir, "", nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Poster != "" || len(out.Files) != 1 {
			t.Errorf("expected only README, got %+v", out)
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lineup.txt")

		written, err := WriteTextExport(flatResult(), path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if written != path {
			t.Errorf("expected %s, got %s", path, written)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("WriteTextExport Invalid Path", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		os.WriteFile(blocker, []byte("x"), 0644)

		if _, err := WriteTextExport(flatResult(), filepath.Join(blocker, "lineup.txt")); err == nil {
			t.Error("expected error writing beneath a file")
		}
	})
}
