package poster

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/tidalfest/internal/i18n"
	"github.com/desertthunder/tidalfest/internal/models"
)

// Title is the poster header.
const Title = "TIDALFEST"

// StartOffsetMonths is how far after "today" the festival starts.
const StartOffsetMonths = 3

// Section is one non-empty tier of a panel.
type Section struct {
	Tier  models.Tier
	Names []string
}

// Panel is one festival day.
type Panel struct {
	DayNumber int
	Date      time.Time
	// Dated is false for flat lineups, which carry no day headings.
	Dated     bool
	Heading   string
	DateLabel string
	Sections  []Section
}

// Layout is the rendered poster, independent of any output surface.
type Layout struct {
	Title       string
	Subtitle    string
	Theme       Theme
	Panels      []Panel
	DayCount    int
	Partitioned bool
}

// Render lays out result with the default language.
func Render(result *models.Result, theme Theme, now time.Time) Layout {
	return RenderLocalized(result, theme, now, i18n.Lookup(i18n.Default))
}

// RenderLocalized lays out result with day headings and dates from c.
func RenderLocalized(result *models.Result, theme Theme, now time.Time, c *i18n.Catalog) Layout {
	layout := Layout{Title: Title, Theme: theme}
	if result == nil {
		return layout
	}
	if result.Metadata != nil {
		layout.Subtitle = result.Metadata.FestivalName
	}
	layout.Partitioned = result.Partitioned

	days := slices.Clone(result.Days)
	slices.SortStableFunc(days, func(a, b models.Day) int {
		return cmp.Compare(a.DayNumber, b.DayNumber)
	})

	start := StartDate(now)
	for _, d := range days {
		p := Panel{DayNumber: d.DayNumber}
		if result.Partitioned {
			p.Dated = true
			p.Date = DayDate(start, d.DayNumber)
			p.Heading = strings.ToUpper(c.DayLabel(d.DayNumber))
			p.DateLabel = strings.ToUpper(c.FormatDate(p.Date))
		}

		for _, tier := range models.Tiers {
			artists := d.Artists(tier)
			if len(artists) == 0 {
				continue
			}
			names := make([]string, len(artists))
			for i, a := range artists {
				names[i] = strings.ToUpper(a.Name)
			}
			p.Sections = append(p.Sections, Section{Tier: tier, Names: names})
		}
		layout.Panels = append(layout.Panels, p)
	}
	layout.DayCount = len(layout.Panels)
	return layout
}

// StartDate is local midnight of now, offset by [StartOffsetMonths].
func StartDate(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, StartOffsetMonths, 0)
}

// DayDate is the calendar date of festival day n.
func DayDate(start time.Time, n int) time.Time {
	return start.AddDate(0, 0, n-1)
}

// Empty reports whether the layout has no artists at all.
func (l Layout) Empty() bool {
	for _, p := range l.Panels {
		if len(p.Sections) > 0 {
			return false
		}
	}
	return true
}
