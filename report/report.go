// Package report aggregates time entries into daily, weekly, and per-project
// reports. Reports only ever read from the store.
package report

import (
	"sort"
	"time"

	"github.com/ayoisaiah/timespan/internal/models"
	"github.com/ayoisaiah/timespan/internal/timeutil"
	"github.com/ayoisaiah/timespan/store"
)

// ProjectSummary is the per-project subtotal within a report.
type ProjectSummary struct {
	ProjectName   string
	TotalDuration time.Duration
	EntryCount    int
}

// DateRange bounds the entries a report covers.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Report is an aggregation over matching time entries. An empty result set
// is a valid report, not an error.
type Report struct {
	TotalDuration    time.Duration
	Entries          []models.TimeEntry
	ProjectSummaries []ProjectSummary
	DateRange        DateRange
}

// Empty reports whether no entries matched.
func (r *Report) Empty() bool {
	return len(r.Entries) == 0
}

// New aggregates entries in a single pass. Entries are ordered by start time
// ascending, ties broken by project name; summaries are ordered by project
// name.
func New(entries []models.TimeEntry, start, end time.Time) *Report {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].StartTime.Equal(entries[j].StartTime) {
			return entries[i].StartTime.Before(entries[j].StartTime)
		}

		return entries[i].ProjectName < entries[j].ProjectName
	})

	var total time.Duration

	byProject := make(map[string]*ProjectSummary)

	for i := range entries {
		e := &entries[i]
		total += e.Duration

		s, ok := byProject[e.ProjectName]
		if !ok {
			s = &ProjectSummary{ProjectName: e.ProjectName}
			byProject[e.ProjectName] = s
		}

		s.TotalDuration += e.Duration
		s.EntryCount++
	}

	summaries := make([]ProjectSummary, 0, len(byProject))
	for _, s := range byProject {
		summaries = append(summaries, *s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ProjectName < summaries[j].ProjectName
	})

	return &Report{
		TotalDuration:    total,
		Entries:          entries,
		ProjectSummaries: summaries,
		DateRange:        DateRange{Start: start, End: end},
	}
}

// Daily reports all entries whose start time falls within the day containing
// date.
func Daily(db store.DB, date time.Time) (*Report, error) {
	start, end := timeutil.DayRange(date)

	entries, err := db.ListTimeEntries(store.EntryFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	return New(entries, start, end), nil
}

// Weekly reports all entries within the week containing date, where the week
// begins on weekStart.
func Weekly(db store.DB, date time.Time, weekStart time.Weekday) (*Report, error) {
	start, end := timeutil.WeekRange(date, weekStart)

	entries, err := db.ListTimeEntries(store.EntryFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	return New(entries, start, end), nil
}

// ForProject reports all entries recorded against the named project. The
// date range is derived from the matching entries.
func ForProject(db store.DB, projectName string) (*Report, error) {
	p, err := db.GetProjectByName(projectName)
	if err != nil {
		return nil, err
	}

	entries, err := db.ListTimeEntries(store.EntryFilter{ProjectID: p.ID})
	if err != nil {
		return nil, err
	}

	var start, end time.Time

	for i := range entries {
		if start.IsZero() || entries[i].StartTime.Before(start) {
			start = entries[i].StartTime
		}

		if entries[i].EndTime.After(end) {
			end = entries[i].EndTime
		}
	}

	return New(entries, start, end), nil
}
