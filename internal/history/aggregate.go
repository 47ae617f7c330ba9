// Package history derives read-side summaries from the completion log.
// Everything here is a pure computation over entries already loaded; the
// aggregator has no write path back into the counters.
package history

import (
	"math"
	"sort"
	"time"

	"github.com/zulandar/tasbih/internal/models"
)

// DayGroup aggregates the entries of one calendar day.
type DayGroup struct {
	Day      time.Time // midnight, local time
	Label    string    // e.g. "Jan 02"
	Achieved int       // summed achieved counts
	Target   int       // summed targets
	Entries  []models.HistoryEntry
}

// MonthGroup aggregates the entries of one calendar month.
type MonthGroup struct {
	Month    time.Month
	Label    string // e.g. "January"
	Achieved int
	Target   int
	Entries  []models.HistoryEntry
}

// Summary holds the headline numbers for a set of entries.
type Summary struct {
	TotalAchieved int
	TotalTarget   int
	DailyAverage  int    // total achieved / non-empty day groups, rounded
	MostActiveDay string // day label with the highest summed achieved
}

// FilterYear returns the entries whose timestamp falls in the given
// calendar year.
func FilterYear(entries []models.HistoryEntry, year int) []models.HistoryEntry {
	var out []models.HistoryEntry
	for _, e := range entries {
		if e.Timestamp.Year() == year {
			out = append(out, e)
		}
	}
	return out
}

// Years returns the distinct calendar years present, ascending.
func Years(entries []models.HistoryEntry) []int {
	seen := make(map[int]bool)
	for _, e := range entries {
		seen[e.Timestamp.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// GroupByDay buckets entries by calendar day, ascending by date.
func GroupByDay(entries []models.HistoryEntry) []DayGroup {
	byDay := make(map[time.Time]*DayGroup)
	for _, e := range entries {
		day := truncateDay(e.Timestamp)
		g, ok := byDay[day]
		if !ok {
			g = &DayGroup{Day: day, Label: day.Format("Jan 02")}
			byDay[day] = g
		}
		g.Achieved += e.Achieved
		g.Target += e.Target
		g.Entries = append(g.Entries, e)
	}

	out := make([]DayGroup, 0, len(byDay))
	for _, g := range byDay {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

// GroupByMonth buckets a year's entries by calendar month, January first.
// Entries outside the year are ignored.
func GroupByMonth(entries []models.HistoryEntry, year int) []MonthGroup {
	byMonth := make(map[time.Month]*MonthGroup)
	for _, e := range FilterYear(entries, year) {
		m := e.Timestamp.Month()
		g, ok := byMonth[m]
		if !ok {
			g = &MonthGroup{Month: m, Label: m.String()}
			byMonth[m] = g
		}
		g.Achieved += e.Achieved
		g.Target += e.Target
		g.Entries = append(g.Entries, e)
	}

	out := make([]MonthGroup, 0, len(byMonth))
	for _, g := range byMonth {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// Summarize computes the headline numbers for a set of entries. The daily
// average divides total achieved by the number of non-empty day groups
// (the denominator the shipped history screen used). Ties for most active
// day go to the earliest date.
func Summarize(entries []models.HistoryEntry) Summary {
	groups := GroupByDay(entries)

	var s Summary
	for _, g := range groups {
		s.TotalAchieved += g.Achieved
		s.TotalTarget += g.Target
	}
	if len(groups) > 0 {
		s.DailyAverage = int(math.Round(float64(s.TotalAchieved) / float64(len(groups))))
	}

	best := -1
	for _, g := range groups {
		if g.Achieved > best {
			best = g.Achieved
			s.MostActiveDay = g.Label
		}
	}
	return s
}

// truncateDay drops the time-of-day component, keeping the location.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
