package timerange_test

import (
	"errors"
	"testing"
	"time"

	"jira-query-agent/pkg/timerange"
)

func newResolver(t *testing.T, cfg timerange.Config) *timerange.Resolver {
	t.Helper()
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	r, err := timerange.NewResolver(cfg)
	if err != nil {
		t.Fatalf("unexpected error creating resolver: %v", err)
	}
	return r
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewResolver(t *testing.T) {
	if _, err := timerange.NewResolver(timerange.Config{Timezone: "Asia/Taipei"}); err != nil {
		t.Fatalf("unexpected error for valid timezone: %v", err)
	}
	if _, err := timerange.NewResolver(timerange.Config{Timezone: "Invalid/Zone"}); err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestResolve(t *testing.T) {
	r := newResolver(t, timerange.Config{WeekStart: time.Monday, FallbackWindowDays: 30})

	// Wednesday, 2025-06-18.
	ref := time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		phrase    string
		wantStart time.Time
		wantEnd   time.Time
		wantGran  timerange.Granularity
	}{
		{
			name:      "Explicit quarter",
			phrase:    "2025 Q1 我做了哪些工作",
			wantStart: date(2025, time.January, 1),
			wantEnd:   date(2025, time.March, 31),
			wantGran:  timerange.GranularityQuarter,
		},
		{
			name:      "Quarter year reversed",
			phrase:    "Q3 2024",
			wantStart: date(2024, time.July, 1),
			wantEnd:   date(2024, time.September, 30),
			wantGran:  timerange.GranularityQuarter,
		},
		{
			name:      "Relative year adjusts explicit quarter",
			phrase:    "去年 Q1 的任務",
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.March, 31),
			wantGran:  timerange.GranularityQuarter,
		},
		{
			name:      "Bare quarter defaults to current year",
			phrase:    "Q2 完成的事",
			wantStart: date(2025, time.April, 1),
			wantEnd:   date(2025, time.June, 30),
			wantGran:  timerange.GranularityQuarter,
		},
		{
			name:      "This month",
			phrase:    "本月我參與的工作",
			wantStart: date(2025, time.June, 1),
			wantEnd:   date(2025, time.June, 30),
			wantGran:  timerange.GranularityMonth,
		},
		{
			name:      "Last month",
			phrase:    "上個月的 bug",
			wantStart: date(2025, time.May, 1),
			wantEnd:   date(2025, time.May, 31),
			wantGran:  timerange.GranularityMonth,
		},
		{
			name:      "This week from Wednesday",
			phrase:    "this week",
			wantStart: date(2025, time.June, 16),
			wantEnd:   date(2025, time.June, 22),
			wantGran:  timerange.GranularityWeek,
		},
		{
			name:      "Last week is Monday to Sunday",
			phrase:    "上週我做了什麼",
			wantStart: date(2025, time.June, 9),
			wantEnd:   date(2025, time.June, 15),
			wantGran:  timerange.GranularityWeek,
		},
		{
			name:      "Week before last",
			phrase:    "上上週",
			wantStart: date(2025, time.June, 2),
			wantEnd:   date(2025, time.June, 8),
			wantGran:  timerange.GranularityWeek,
		},
		{
			name:      "Today",
			phrase:    "today 的進度",
			wantStart: date(2025, time.June, 18),
			wantEnd:   date(2025, time.June, 18),
			wantGran:  timerange.GranularityDay,
		},
		{
			name:      "Yesterday",
			phrase:    "昨天",
			wantStart: date(2025, time.June, 17),
			wantEnd:   date(2025, time.June, 17),
			wantGran:  timerange.GranularityDay,
		},
		{
			name:      "This quarter",
			phrase:    "本季的工作",
			wantStart: date(2025, time.April, 1),
			wantEnd:   date(2025, time.June, 30),
			wantGran:  timerange.GranularityQuarter,
		},
		{
			name:      "Last quarter",
			phrase:    "上一季",
			wantStart: date(2025, time.January, 1),
			wantEnd:   date(2025, time.March, 31),
			wantGran:  timerange.GranularityQuarter,
		},
		{
			name:      "Last year",
			phrase:    "去年的任務",
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.December, 31),
			wantGran:  timerange.GranularityYear,
		},
		{
			name:      "Bare year",
			phrase:    "2024 做了哪些事",
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.December, 31),
			wantGran:  timerange.GranularityYear,
		},
		{
			name:      "CJK year month",
			phrase:    "2025年3月",
			wantStart: date(2025, time.March, 1),
			wantEnd:   date(2025, time.March, 31),
			wantGran:  timerange.GranularityMonth,
		},
		{
			name:      "ISO year month",
			phrase:    "2025-02",
			wantStart: date(2025, time.February, 1),
			wantEnd:   date(2025, time.February, 28),
			wantGran:  timerange.GranularityMonth,
		},
		{
			name:      "Bare month already started",
			phrase:    "3月的工作",
			wantStart: date(2025, time.March, 1),
			wantEnd:   date(2025, time.March, 31),
			wantGran:  timerange.GranularityMonth,
		},
		{
			name:      "Bare month in the future resolves to previous year",
			phrase:    "11月的工作",
			wantStart: date(2024, time.November, 1),
			wantEnd:   date(2024, time.November, 30),
			wantGran:  timerange.GranularityMonth,
		},
		{
			name:      "Explicit date range",
			phrase:    "2025-01-01 to 2025-02-15",
			wantStart: date(2025, time.January, 1),
			wantEnd:   date(2025, time.February, 15),
			wantGran:  timerange.GranularityDay,
		},
		{
			name:      "Reversed explicit range is normalized",
			phrase:    "2025-02-15 ~ 2025-01-01",
			wantStart: date(2025, time.January, 1),
			wantEnd:   date(2025, time.February, 15),
			wantGran:  timerange.GranularityDay,
		},
		{
			name:      "Single date",
			phrase:    "2025-06-01",
			wantStart: date(2025, time.June, 1),
			wantEnd:   date(2025, time.June, 1),
			wantGran:  timerange.GranularityDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.phrase, ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", got.Start, tt.wantStart)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", got.End, tt.wantEnd)
			}
			if got.Granularity != tt.wantGran {
				t.Errorf("granularity = %v, want %v", got.Granularity, tt.wantGran)
			}
			if got.Start.After(got.End) {
				t.Errorf("invariant violated: start %v after end %v", got.Start, got.End)
			}
		})
	}
}

func TestResolveThisMonthBoundary(t *testing.T) {
	r := newResolver(t, timerange.Config{})
	ref := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

	got, err := r.Resolve("本月", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Start.Equal(date(2025, time.June, 1)) || !got.End.Equal(date(2025, time.June, 30)) {
		t.Errorf("got [%v, %v], want [2025-06-01, 2025-06-30]", got.Start, got.End)
	}
}

func TestResolveLastMonthOnMonthEnd(t *testing.T) {
	r := newResolver(t, timerange.Config{})

	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "March 31 resolves to February, not normalized March",
			ref:       time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC),
			wantStart: date(2025, time.February, 1),
			wantEnd:   date(2025, time.February, 28),
		},
		{
			name:      "January crosses into previous year",
			ref:       time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC),
			wantStart: date(2024, time.December, 1),
			wantEnd:   date(2024, time.December, 31),
		},
		{
			name:      "Leap February",
			ref:       time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC),
			wantStart: date(2024, time.February, 1),
			wantEnd:   date(2024, time.February, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve("上個月", tt.ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Start.Equal(tt.wantStart) || !got.End.Equal(tt.wantEnd) {
				t.Errorf("got [%v, %v], want [%v, %v]", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestResolveAmbiguous(t *testing.T) {
	r := newResolver(t, timerange.Config{FallbackWindowDays: 30})
	ref := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

	_, err := r.Resolve("做一些事", ref)
	if !errors.Is(err, timerange.ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}

	fallback := r.FallbackRange(ref)
	if !fallback.Start.Equal(date(2025, time.May, 20)) {
		t.Errorf("fallback start = %v, want 2025-05-20", fallback.Start)
	}
	if !fallback.End.Equal(date(2025, time.June, 18)) {
		t.Errorf("fallback end = %v, want 2025-06-18", fallback.End)
	}
}

func TestResolveSundayWeekStart(t *testing.T) {
	r := newResolver(t, timerange.Config{WeekStart: time.Sunday})
	// Wednesday, 2025-06-18.
	ref := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

	got, err := r.Resolve("this week", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Start.Equal(date(2025, time.June, 15)) || !got.End.Equal(date(2025, time.June, 21)) {
		t.Errorf("got [%v, %v], want [2025-06-15, 2025-06-21]", got.Start, got.End)
	}
}

func TestResolveFiscalQuarterOffset(t *testing.T) {
	// Fiscal year shifted one month: Q1 = Feb-Apr.
	r := newResolver(t, timerange.Config{FiscalQuarterOffset: 1})
	ref := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

	got, err := r.Resolve("2025 Q1", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Start.Equal(date(2025, time.February, 1)) || !got.End.Equal(date(2025, time.April, 30)) {
		t.Errorf("got [%v, %v], want [2025-02-01, 2025-04-30]", got.Start, got.End)
	}
}

func TestFallbackRangeDisabled(t *testing.T) {
	r := newResolver(t, timerange.Config{FallbackWindowDays: 0})
	got := r.FallbackRange(time.Now())
	if !got.Start.IsZero() || !got.End.IsZero() {
		t.Errorf("expected zero range when fallback window disabled, got %+v", got)
	}
}
