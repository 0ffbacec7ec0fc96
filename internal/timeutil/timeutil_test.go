package timeutil_test

import (
	"testing"
	"time"

	"github.com/ayoisaiah/timespan/internal/timeutil"
)

func TestDayRange(t *testing.T) {
	noon := time.Date(2024, 3, 5, 12, 30, 45, 123, time.UTC)

	start, end := timeutil.DayRange(noon)

	if !start.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start: got %v", start)
	}

	if !end.Equal(time.Date(2024, 3, 5, 23, 59, 59, 999999999, time.UTC)) {
		t.Errorf("end: got %v", end)
	}
}

func TestWeekRange(t *testing.T) {
	cases := []struct {
		name      string
		in        time.Time
		weekStart time.Weekday
		wantStart time.Time
	}{
		{
			name:      "tuesday in a monday week",
			in:        time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
			weekStart: time.Monday,
			wantStart: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "monday is its own week start",
			in:        time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			weekStart: time.Monday,
			wantStart: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "sunday belongs to the preceding monday week",
			in:        time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC),
			weekStart: time.Monday,
			wantStart: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "sunday starts a sunday week",
			in:        time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
			weekStart: time.Sunday,
			wantStart: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "saturday week start",
			in:        time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
			weekStart: time.Saturday,
			wantStart: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := timeutil.WeekRange(tc.in, tc.weekStart)

			if !start.Equal(tc.wantStart) {
				t.Errorf("start: want %v, got %v", tc.wantStart, start)
			}

			wantEnd := tc.wantStart.AddDate(0, 0, 6).
				Add(24*time.Hour - time.Nanosecond)

			if !end.Equal(wantEnd) {
				t.Errorf("end: want %v, got %v", wantEnd, end)
			}
		})
	}
}

func TestFromStr(t *testing.T) {
	got, err := timeutil.FromStr("2024-03-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	y, m, d := got.Date()
	if y != 2024 || m != time.March || d != 5 {
		t.Errorf("expected 2024-03-05, got %v", got)
	}
}

func TestFromStrInvalid(t *testing.T) {
	if _, err := timeutil.FromStr("not a date"); err == nil {
		t.Fatal("expected an error for unparseable input")
	}
}
