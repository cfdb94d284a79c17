// package models defines the lineup data model
package models

import "fmt"

// Tier is a prominence category for an artist within a lineup.
type Tier int

const (
	Headliners Tier = iota
	SpecialGuests
	Undercard
	TinyLetters
)

// Tiers lists every tier in descending prominence.
var Tiers = []Tier{Headliners, SpecialGuests, Undercard, TinyLetters}

func (t Tier) String() string {
	switch t {
	case Headliners:
		return "headliners"
	case SpecialGuests:
		return "specialGuests"
	case Undercard:
		return "undercard"
	case TinyLetters:
		return "tinyLetters"
	default:
		return ""
	}
}

// Details holds listening statistics for an artist.
type Details struct {
	Track  int `json:"track"`
	Albums int `json:"albums"`
}

// Artist is a single performer. Name is the display key within one lineup.
type Artist struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Details Details `json:"details"`
}

// Day is one festival day with its ordered tiers.
type Day struct {
	DayNumber     int      `json:"dayNumber"`
	Headliners    []Artist `json:"headliners"`
	SpecialGuests []Artist `json:"specialGuests"`
	Undercard     []Artist `json:"undercard"`
	TinyLetters   []Artist `json:"tinyLetters,omitempty"`
}

// Artists returns the artists of tier t in source order.
func (d Day) Artists(t Tier) []Artist {
	switch t {
	case Headliners:
		return d.Headliners
	case SpecialGuests:
		return d.SpecialGuests
	case Undercard:
		return d.Undercard
	case TinyLetters:
		return d.TinyLetters
	default:
		return nil
	}
}

// Count returns the number of artists booked on the day.
func (d Day) Count() int {
	return len(d.Headliners) + len(d.SpecialGuests) + len(d.Undercard) + len(d.TinyLetters)
}

// Metadata is optional backend context attached to a day-partitioned lineup.
type Metadata struct {
	FestivalName string `json:"festivalName,omitempty"`
	UserName     string `json:"userName,omitempty"`
	GeneratedAt  string `json:"generatedAt,omitempty"`
	TotalArtists int    `json:"totalArtists,omitempty"`
}

// Result is the canonical lineup produced by normalization.
type Result struct {
	Days        []Day     `json:"days"`
	Metadata    *Metadata `json:"metadata,omitempty"`
	Partitioned bool      `json:"partitioned"`
}

// DayCount returns the number of days in the lineup.
func (r *Result) DayCount() int {
	if r == nil {
		return 0
	}
	return len(r.Days)
}

// ArtistCount returns the number of artists across all days.
func (r *Result) ArtistCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.Days {
		n += d.Count()
	}
	return n
}

// Headliners returns the headliners of every day, in day order then source order.
func (r *Result) Headliners() []Artist {
	if r == nil {
		return nil
	}
	var out []Artist
	for _, d := range r.Days {
		out = append(out, d.Headliners...)
	}
	return out
}

// Summary is a one-line description for logs.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d day(s), %d artist(s)", r.DayCount(), r.ArtistCount())
}
