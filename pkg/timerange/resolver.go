package timerange

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateFormatISO = "2006-01-02"

// Resolver converts natural-language time phrases (mixed Chinese/English)
// into closed calendar date ranges anchored at a reference instant.
// It holds no mutable state: resolution is a pure function of the phrase,
// the reference instant, and the locale config.
type Resolver struct {
	loc *time.Location
	cfg Config
}

// NewResolver creates a resolver for the configured timezone and locale.
func NewResolver(cfg Config) (*Resolver, error) {
	tz := cfg.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	if cfg.WeekStart != time.Monday && cfg.WeekStart != time.Sunday {
		cfg.WeekStart = time.Monday
	}
	return &Resolver{loc: loc, cfg: cfg}, nil
}

var (
	reExplicitRange = regexp.MustCompile(`(\d{4}-\d{1,2}-\d{1,2})\s*(?:~|to|到)\s*(\d{4}-\d{1,2}-\d{1,2})`)
	reSingleDate    = regexp.MustCompile(`(\d{4}-\d{1,2}-\d{1,2})`)
	reQuarter       = regexp.MustCompile(`(?:(\d{4})\s*)?q([1-4])(?:\s*(\d{4}))?`)
	reYearMonthCJK  = regexp.MustCompile(`(\d{4})\s*年\s*(\d{1,2})\s*月`)
	reYearMonthISO  = regexp.MustCompile(`(\d{4})-(\d{1,2})(?:\D|$)`)
	reBareMonth     = regexp.MustCompile(`(?:^|\D)(\d{1,2})\s*月`)
	reBareYear      = regexp.MustCompile(`(?:^|\D)((?:19|20)\d{2})(?:\D|$)`)
)

// Resolve parses phrase relative to ref. On failure it returns ErrAmbiguous
// wrapped with the original phrase; it never fabricates an empty range.
func (r *Resolver) Resolve(phrase string, ref time.Time) (Range, error) {
	normalized := strings.ToLower(strings.TrimSpace(phrase))
	if normalized == "" {
		return Range{}, fmt.Errorf("%w: %q", ErrAmbiguous, phrase)
	}
	ref = ref.In(r.loc)

	if m := reExplicitRange.FindStringSubmatch(normalized); m != nil {
		return r.explicitRange(m[1], m[2])
	}
	if m := reSingleDate.FindStringSubmatch(normalized); m != nil {
		return r.explicitRange(m[1], m[1])
	}

	// Quarter before year patterns: "2025 q1" also matches the bare-year
	// regex. An explicit year wins; otherwise a relative year modifier
	// (去年/今年/last year/this year) adjusts the unspecified year.
	if m := reQuarter.FindStringSubmatch(normalized); m != nil {
		quarter, _ := strconv.Atoi(m[2])
		year := ref.Year()
		switch {
		case m[1] != "":
			year, _ = strconv.Atoi(m[1])
		case m[3] != "":
			year, _ = strconv.Atoi(m[3])
		case r.mentionsLastYear(normalized):
			year--
		}
		return r.quarterRange(year, quarter), nil
	}

	if m := reYearMonthCJK.FindStringSubmatch(normalized); m != nil {
		return r.yearMonthRange(m[1], m[2])
	}
	if m := reYearMonthISO.FindStringSubmatch(normalized); m != nil {
		return r.yearMonthRange(m[1], m[2])
	}

	if rng, ok := r.relativeRange(normalized, ref); ok {
		return rng, nil
	}

	if m := reBareMonth.FindStringSubmatch(normalized); m != nil {
		return r.bareMonthRange(m[1], ref)
	}
	if m := reBareYear.FindStringSubmatch(normalized); m != nil {
		year, _ := strconv.Atoi(m[1])
		return r.yearRange(year), nil
	}

	return Range{}, fmt.Errorf("%w: %q", ErrAmbiguous, phrase)
}

// FallbackRange builds the trailing degraded window ending at ref.
// A zero FallbackWindowDays yields a zero-value range, which callers treat
// as "no time constraint".
func (r *Resolver) FallbackRange(ref time.Time) Range {
	days := r.cfg.FallbackWindowDays
	if days <= 0 {
		return Range{}
	}
	end := r.startOfDay(ref.In(r.loc))
	return Range{
		Start:       end.AddDate(0, 0, -(days - 1)),
		End:         end,
		Granularity: GranularityDay,
		Label:       fmt.Sprintf("last %d days", days),
	}
}

func (r *Resolver) relativeRange(phrase string, ref time.Time) (Range, bool) {
	day := r.startOfDay(ref)

	switch {
	case containsAny(phrase, "今天", "today"):
		return Range{Start: day, End: day, Granularity: GranularityDay, Label: "today"}, true
	case containsAny(phrase, "昨天", "yesterday"):
		y := day.AddDate(0, 0, -1)
		return Range{Start: y, End: y, Granularity: GranularityDay, Label: "yesterday"}, true

	// 上上週 must be checked before 上週: the latter is a substring.
	case containsAny(phrase, "上上週", "上上周", "week before last"):
		return r.weekRange(ref, -2, "week before last"), true
	case containsAny(phrase, "上週", "上周", "last week"):
		return r.weekRange(ref, -1, "last week"), true
	case containsAny(phrase, "本週", "這週", "本周", "这周", "this week"):
		return r.weekRange(ref, 0, "this week"), true

	// Step through the first of the current month: AddDate(0, -1, 0) on a
	// month-end date normalizes past the short previous month (2025-03-31
	// would land in March again).
	case containsAny(phrase, "上個月", "上月", "上个月", "last month"):
		firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, r.loc)
		return r.monthRange(firstOfMonth.AddDate(0, 0, -1), "last month"), true
	case containsAny(phrase, "本月", "這個月", "这个月", "this month"):
		return r.monthRange(ref, "this month"), true

	case containsAny(phrase, "上季", "上一季", "last quarter"):
		y, q := r.quarterOf(ref)
		if q--; q < 1 {
			q, y = 4, y-1
		}
		rng := r.quarterRange(y, q)
		rng.Label = "last quarter"
		return rng, true
	case containsAny(phrase, "本季", "這一季", "this quarter"):
		y, q := r.quarterOf(ref)
		rng := r.quarterRange(y, q)
		rng.Label = "this quarter"
		return rng, true

	case containsAny(phrase, "去年", "last year"):
		rng := r.yearRange(ref.Year() - 1)
		rng.Label = "last year"
		return rng, true
	case containsAny(phrase, "今年", "本年", "this year"):
		rng := r.yearRange(ref.Year())
		rng.Label = "this year"
		return rng, true
	}

	return Range{}, false
}

func (r *Resolver) explicitRange(from, to string) (Range, error) {
	start, err := time.ParseInLocation(dateFormatISO, normalizeISODate(from), r.loc)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrAmbiguous, from)
	}
	end, err := time.ParseInLocation(dateFormatISO, normalizeISODate(to), r.loc)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrAmbiguous, to)
	}
	if start.After(end) {
		start, end = end, start
	}
	return Range{
		Start:       start,
		End:         end,
		Granularity: GranularityDay,
		Label:       fmt.Sprintf("%s ~ %s", start.Format(dateFormatISO), end.Format(dateFormatISO)),
	}, nil
}

func (r *Resolver) yearMonthRange(yearStr, monthStr string) (Range, error) {
	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	if month < 1 || month > 12 {
		return Range{}, fmt.Errorf("%w: month %d out of range", ErrAmbiguous, month)
	}
	return r.monthRangeAt(year, time.Month(month)), nil
}

// bareMonthRange resolves "3月" to the current year when that month has
// already started, otherwise to the previous year.
func (r *Resolver) bareMonthRange(monthStr string, ref time.Time) (Range, error) {
	month, _ := strconv.Atoi(monthStr)
	if month < 1 || month > 12 {
		return Range{}, fmt.Errorf("%w: month %d out of range", ErrAmbiguous, month)
	}
	year := ref.Year()
	if time.Month(month) > ref.Month() {
		year--
	}
	return r.monthRangeAt(year, time.Month(month)), nil
}

func (r *Resolver) weekRange(ref time.Time, offsetWeeks int, label string) Range {
	day := r.startOfDay(ref)
	delta := (int(day.Weekday()) - int(r.cfg.WeekStart) + 7) % 7
	start := day.AddDate(0, 0, -delta+offsetWeeks*7)
	return Range{
		Start:       start,
		End:         start.AddDate(0, 0, 6),
		Granularity: GranularityWeek,
		Label:       label,
	}
}

func (r *Resolver) monthRange(ref time.Time, label string) Range {
	rng := r.monthRangeAt(ref.Year(), ref.Month())
	rng.Label = label
	return rng
}

func (r *Resolver) monthRangeAt(year int, month time.Month) Range {
	start := time.Date(year, month, 1, 0, 0, 0, 0, r.loc)
	return Range{
		Start:       start,
		End:         start.AddDate(0, 1, -1),
		Granularity: GranularityMonth,
		Label:       start.Format("2006-01"),
	}
}

// quarterOf returns the (possibly fiscal-shifted) quarter containing ref.
func (r *Resolver) quarterOf(ref time.Time) (year, quarter int) {
	year = ref.Year()
	month := int(ref.Month()) - r.cfg.FiscalQuarterOffset
	for month < 1 {
		month += 12
		year--
	}
	for month > 12 {
		month -= 12
		year++
	}
	return year, (month-1)/3 + 1
}

func (r *Resolver) quarterRange(year, quarter int) Range {
	startMonth := (quarter-1)*3 + 1 + r.cfg.FiscalQuarterOffset
	start := time.Date(year, time.Month(startMonth), 1, 0, 0, 0, 0, r.loc)
	return Range{
		Start:       start,
		End:         start.AddDate(0, 3, -1),
		Granularity: GranularityQuarter,
		Label:       fmt.Sprintf("%d Q%d", year, quarter),
	}
}

func (r *Resolver) yearRange(year int) Range {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, r.loc)
	return Range{
		Start:       start,
		End:         start.AddDate(1, 0, -1),
		Granularity: GranularityYear,
		Label:       strconv.Itoa(year),
	}
}

func (r *Resolver) mentionsLastYear(phrase string) bool {
	return containsAny(phrase, "去年", "last year")
}

func (r *Resolver) startOfDay(t time.Time) time.Time {
	t = t.In(r.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.loc)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// normalizeISODate pads single-digit month/day so "2025-1-5" parses.
func normalizeISODate(s string) string {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return s
	}
	for i := 1; i < 3; i++ {
		if len(parts[i]) == 1 {
			parts[i] = "0" + parts[i]
		}
	}
	return strings.Join(parts, "-")
}
