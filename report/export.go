package report

import (
	"encoding/json"
	"strconv"
	"time"
)

// Duration serializes as a [seconds, nanoseconds] pair so elapsed time never
// passes through a lossy float.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	secs := int64(time.Duration(d) / time.Second)
	nanos := int64(time.Duration(d) % time.Second)

	b := append([]byte{'['}, strconv.FormatInt(secs, 10)...)
	b = append(b, ',')
	b = append(b, strconv.FormatInt(nanos, 10)...)

	return append(b, ']'), nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var pair [2]int64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}

	*d = Duration(time.Duration(pair[0])*time.Second + time.Duration(pair[1]))

	return nil
}

type exportEntry struct {
	ProjectName     string   `json:"project_name"`
	TaskDescription string   `json:"task_description,omitempty"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	Duration        Duration `json:"duration"`
}

type exportSummary struct {
	ProjectName   string   `json:"project_name"`
	TotalDuration Duration `json:"total_duration"`
	EntryCount    int      `json:"entry_count"`
}

type export struct {
	TotalDuration    Duration        `json:"total_duration"`
	Entries          []exportEntry   `json:"entries"`
	ProjectSummaries []exportSummary `json:"project_summaries"`
}

// ExportJSON serializes the report with ISO-8601 timestamps and durations as
// [seconds, nanoseconds] pairs.
func (r *Report) ExportJSON() ([]byte, error) {
	out := export{
		TotalDuration:    Duration(r.TotalDuration),
		Entries:          make([]exportEntry, 0, len(r.Entries)),
		ProjectSummaries: make([]exportSummary, 0, len(r.ProjectSummaries)),
	}

	for i := range r.Entries {
		e := &r.Entries[i]

		out.Entries = append(out.Entries, exportEntry{
			ProjectName:     e.ProjectName,
			TaskDescription: e.Task,
			StartTime:       e.StartTime.Format(time.RFC3339),
			EndTime:         e.EndTime.Format(time.RFC3339),
			Duration:        Duration(e.Duration),
		})
	}

	for _, s := range r.ProjectSummaries {
		out.ProjectSummaries = append(out.ProjectSummaries, exportSummary{
			ProjectName:   s.ProjectName,
			TotalDuration: Duration(s.TotalDuration),
			EntryCount:    s.EntryCount,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}
