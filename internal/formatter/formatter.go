// package formatter renders lineups as CSV, Markdown, plain text and JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/tidalfest/internal/models"
	"github.com/desertthunder/tidalfest/internal/shared"
)

var tierTitles = map[models.Tier]string{
	models.Headliners:    "Headliners",
	models.SpecialGuests: "Special Guests",
	models.Undercard:     "Undercard",
	models.TinyLetters:   "Tiny Letters",
}

// TierTitle returns the display title of a tier.
func TierTitle(t models.Tier) string {
	return tierTitles[t]
}

// ExportToCSV converts a lineup to CSV with columns: Day, Tier, Position, Name, Score, Tracks, Albums
func ExportToCSV(result *models.Result) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Day", "Tier", "Position", "Name", "Score", "Tracks", "Albums"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, day := range result.Days {
		for _, tier := range models.Tiers {
			for i, a := range day.Artists(tier) {
				record := []string{
					strconv.Itoa(day.DayNumber),
					tier.String(),
					strconv.Itoa(i + 1),
					a.Name,
					strconv.FormatFloat(a.Score, 'f', -1, 64),
					strconv.Itoa(a.Details.Track),
					strconv.Itoa(a.Details.Albums),
				}
				if err := writer.Write(record); err != nil {
					return nil, fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a lineup to Markdown with an optional poster image
func ExportToMarkdown(result *models.Result, posterFilename string) ([]byte, error) {
	var buf bytes.Buffer

	title := "TidalFest"
	if result.Metadata != nil && result.Metadata.FestivalName != "" {
		title = result.Metadata.FestivalName
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))

	if posterFilename != "" {
		buf.WriteString(fmt.Sprintf("![Poster](%s)\n\n", posterFilename))
	}

	buf.WriteString(fmt.Sprintf("**Days**: %d\n", result.DayCount()))
	buf.WriteString(fmt.Sprintf("**Artists**: %d\n\n", result.ArtistCount()))

	for _, day := range result.Days {
		if result.Partitioned {
			buf.WriteString(fmt.Sprintf("## Day %d\n\n", day.DayNumber))
		}
		for _, tier := range models.Tiers {
			artists := day.Artists(tier)
			if len(artists) == 0 {
				continue
			}
			buf.WriteString(fmt.Sprintf("### %s\n\n", TierTitle(tier)))
			for i, a := range artists {
				buf.WriteString(fmt.Sprintf("%d. %s (score %s, %d tracks, %d albums)\n",
					i+1, a.Name, strconv.FormatFloat(a.Score, 'f', -1, 64), a.Details.Track, a.Details.Albums))
			}
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a lineup to plain text
func ExportToText(result *models.Result) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Lineup: %s\n\n", result.Summary()))

	for _, day := range result.Days {
		if result.Partitioned {
			buf.WriteString(fmt.Sprintf("Day %d\n", day.DayNumber))
		}
		for _, tier := range models.Tiers {
			artists := day.Artists(tier)
			if len(artists) == 0 {
				continue
			}
			buf.WriteString(fmt.Sprintf("%s:\n", TierTitle(tier)))
			for i, a := range artists {
				buf.WriteString(fmt.Sprintf("  %d. %s\n", i+1, a.Name))
			}
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ToJSON renders the canonical lineup as indented JSON
func ToJSON(result *models.Result) ([]byte, error) {
	return shared.MarshalJSON(result, true)
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
	Poster    string
}

// WriteMarkdownExport writes a lineup to {dir}/README.md and, when poster is non-empty, {dir}/{posterName}.
func WriteMarkdownExport(result *models.Result, outputDir string, posterName string, poster []byte) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = "."
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	out := &MarkdownExportResult{Directory: outputDir, Files: []string{}}

	imageRef := ""
	if len(poster) > 0 && posterName != "" {
		posterPath := filepath.Join(outputDir, posterName)
		if err := os.WriteFile(posterPath, poster, 0644); err != nil {
			return nil, fmt.Errorf("failed to write poster: %w", err)
		}
		imageRef = posterName
		out.Poster = posterPath
		out.Files = append(out.Files, posterPath)
	}

	mdData, err := ExportToMarkdown(result, imageRef)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}
	out.Files = append(out.Files, mdFile)

	return out, nil
}

// WriteTextExport writes a lineup to path as plain text.
func WriteTextExport(result *models.Result, path string) (string, error) {
	if path == "" {
		path = "tidalfest-lineup.txt"
	}

	textData, err := ExportToText(result)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}
