package report_test

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/ayoisaiah/timespan/internal/models"
	"github.com/ayoisaiah/timespan/report"
	"github.com/ayoisaiah/timespan/store"
)

func newTestDB(t *testing.T) *store.Client {
	t.Helper()

	db, err := store.NewClient(filepath.Join(t.TempDir(), "timespan.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func mustCreateProject(t *testing.T, db *store.Client, name string) *models.Project {
	t.Helper()

	p := models.NewProject(name, "")

	if err := db.CreateProject(p); err != nil {
		t.Fatalf("creating project %q: %v", name, err)
	}

	return p
}

func mustCreateEntry(
	t *testing.T,
	db *store.Client,
	p *models.Project,
	task string,
	start time.Time,
	dur time.Duration,
) {
	t.Helper()

	entry := models.NewTimeEntry(
		p.ID, p.Name, task,
		start, start.Add(dur),
		models.SourceManual,
	)

	if err := db.CreateTimeEntry(entry); err != nil {
		t.Fatalf("creating entry: %v", err)
	}
}

func TestDaily(t *testing.T) {
	db := newTestDB(t)

	alpha := mustCreateProject(t, db, "Alpha")
	beta := mustCreateProject(t, db, "Beta")

	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	mustCreateEntry(t, db, alpha, "planning", day.Add(9*time.Hour), 30*time.Minute)
	mustCreateEntry(t, db, alpha, "coding", day.Add(10*time.Hour), 2*time.Hour)
	mustCreateEntry(t, db, beta, "review", day.Add(14*time.Hour), time.Hour)

	// the next day must not leak in
	mustCreateEntry(t, db, beta, "standup", day.AddDate(0, 0, 1).Add(9*time.Hour), 15*time.Minute)

	r, err := report.Daily(db, day.Add(13*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Empty() {
		t.Fatal("expected a non-empty report")
	}

	if len(r.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(r.Entries))
	}

	want := 3*time.Hour + 30*time.Minute

	if r.TotalDuration != want {
		t.Errorf("total: want %v, got %v", want, r.TotalDuration)
	}

	wantSummaries := []report.ProjectSummary{
		{ProjectName: "Alpha", TotalDuration: 2*time.Hour + 30*time.Minute, EntryCount: 2},
		{ProjectName: "Beta", TotalDuration: time.Hour, EntryCount: 1},
	}

	if diff := cmp.Diff(wantSummaries, r.ProjectSummaries); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	// summaries must account for the whole total
	var sum time.Duration
	for _, s := range r.ProjectSummaries {
		sum += s.TotalDuration
	}

	if sum != r.TotalDuration {
		t.Errorf("summaries sum to %v, total is %v", sum, r.TotalDuration)
	}
}

func TestDailyEmpty(t *testing.T) {
	db := newTestDB(t)

	r, err := report.Daily(db, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !r.Empty() {
		t.Error("expected an empty report")
	}

	if r.TotalDuration != 0 {
		t.Errorf("expected zero total, got %v", r.TotalDuration)
	}
}

func TestWeekly(t *testing.T) {
	db := newTestDB(t)

	alpha := mustCreateProject(t, db, "Alpha")

	// 2024-03-05 is a Tuesday; the Monday week spans 03-04 through 03-10
	tuesday := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	mustCreateEntry(t, db, alpha, "in week", tuesday, time.Hour)
	mustCreateEntry(t, db, alpha, "monday edge", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), time.Hour)
	mustCreateEntry(t, db, alpha, "sunday edge", time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC), 30*time.Minute)
	mustCreateEntry(t, db, alpha, "previous week", time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC), time.Hour)
	mustCreateEntry(t, db, alpha, "next week", time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), time.Hour)

	r, err := report.Weekly(db, tuesday, time.Monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r.Entries) != 3 {
		t.Fatalf("expected 3 entries in the week, got %d", len(r.Entries))
	}

	if r.TotalDuration != 2*time.Hour+30*time.Minute {
		t.Errorf("total: got %v", r.TotalDuration)
	}
}

func TestWeeklySundayStart(t *testing.T) {
	db := newTestDB(t)

	alpha := mustCreateProject(t, db, "Alpha")

	sunday := time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC)

	mustCreateEntry(t, db, alpha, "sunday", sunday, time.Hour)

	r, err := report.Weekly(db, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), time.Sunday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r.Entries) != 1 {
		t.Fatalf("expected the Sunday entry inside a Sunday-start week, got %d", len(r.Entries))
	}
}

func TestForProject(t *testing.T) {
	db := newTestDB(t)

	alpha := mustCreateProject(t, db, "Alpha")
	beta := mustCreateProject(t, db, "Beta")

	jan := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	mustCreateEntry(t, db, alpha, "early", jan, time.Hour)
	mustCreateEntry(t, db, alpha, "late", mar, 2*time.Hour)
	mustCreateEntry(t, db, beta, "other project", mar, time.Hour)

	r, err := report.ForProject(db, "Alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(r.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(r.Entries))
	}

	if r.TotalDuration != 3*time.Hour {
		t.Errorf("total: got %v", r.TotalDuration)
	}

	// range spans the earliest start to the latest end
	if !r.DateRange.Start.Equal(jan) {
		t.Errorf("range start: got %v", r.DateRange.Start)
	}

	if !r.DateRange.End.Equal(mar.Add(2 * time.Hour)) {
		t.Errorf("range end: got %v", r.DateRange.End)
	}
}

func TestReportOrdering(t *testing.T) {
	entries := []models.TimeEntry{
		*models.NewTimeEntry(
			uuid.UUID{1}, "Beta", "",
			time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
			models.SourceManual,
		),
		*models.NewTimeEntry(
			uuid.UUID{2}, "Alpha", "",
			time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
			models.SourceManual,
		),
		*models.NewTimeEntry(
			uuid.UUID{3}, "Gamma", "",
			time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
			models.SourceManual,
		),
	}

	r := report.New(entries, time.Time{}, time.Time{})

	var got []string
	for i := range r.Entries {
		got = append(got, r.Entries[i].ProjectName)
	}

	// earliest first; same start time breaks ties by project name
	want := []string{"Gamma", "Alpha", "Beta"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entry order mismatch (-want +got):\n%s", diff)
	}
}

func TestExportJSON(t *testing.T) {
	start := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	entries := []models.TimeEntry{
		*models.NewTimeEntry(
			uuid.UUID{1}, "Alpha", "coding",
			start,
			start.Add(90*time.Minute+500*time.Millisecond),
			models.SourceManual,
		),
	}

	r := report.New(entries, start, start.Add(24*time.Hour))

	data, err := r.ExportJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		TotalDuration [2]int64 `json:"total_duration"`
		Entries       []struct {
			ProjectName     string   `json:"project_name"`
			TaskDescription string   `json:"task_description"`
			StartTime       string   `json:"start_time"`
			EndTime         string   `json:"end_time"`
			Duration        [2]int64 `json:"duration"`
		} `json:"entries"`
		ProjectSummaries []struct {
			ProjectName   string   `json:"project_name"`
			TotalDuration [2]int64 `json:"total_duration"`
			EntryCount    int      `json:"entry_count"`
		} `json:"project_summaries"`
	}

	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	// durations export as [seconds, nanoseconds], never a float
	wantDur := [2]int64{90 * 60, int64(500 * time.Millisecond)}

	if decoded.TotalDuration != wantDur {
		t.Errorf("total_duration: want %v, got %v", wantDur, decoded.TotalDuration)
	}

	if len(decoded.Entries) != 1 {
		t.Fatalf("expected 1 exported entry, got %d", len(decoded.Entries))
	}

	e := decoded.Entries[0]

	if e.Duration != wantDur {
		t.Errorf("entry duration: want %v, got %v", wantDur, e.Duration)
	}

	if e.StartTime != "2024-03-05T09:00:00Z" {
		t.Errorf("start_time not RFC 3339: %q", e.StartTime)
	}

	if e.TaskDescription != "coding" {
		t.Errorf("task_description: got %q", e.TaskDescription)
	}

	if len(decoded.ProjectSummaries) != 1 ||
		decoded.ProjectSummaries[0].TotalDuration != wantDur {
		t.Errorf("project_summaries mismatch: %+v", decoded.ProjectSummaries)
	}
}

func TestDurationRoundTrip(t *testing.T) {
	in := report.Duration(3*time.Hour + 7*time.Nanosecond)

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(data) != "[10800,7]" {
		t.Errorf("unexpected encoding: %s", data)
	}

	var out report.Duration
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != in {
		t.Errorf("round trip changed the value: %v vs %v", out, in)
	}
}
