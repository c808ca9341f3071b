package timerange

import (
	"errors"
	"time"
)

// Granularity describes the calendar unit a range was resolved from.
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// Range is a resolved calendar date range. Start and End are midnight
// timestamps in the resolver's location; both boundaries are inclusive and
// Start is never after End.
type Range struct {
	Start       time.Time
	End         time.Time
	Granularity Granularity
	Label       string
}

// Config is the locale table for the resolver. It is read-only after
// construction and safe for concurrent use.
type Config struct {
	Timezone            string       // IANA name, e.g. "Asia/Taipei"
	WeekStart           time.Weekday // time.Monday or time.Sunday
	FiscalQuarterOffset int          // months to shift quarter boundaries
	FallbackWindowDays  int          // trailing window for unresolvable phrases
}

// ErrAmbiguous indicates the phrase matched no recognized time pattern.
// Callers fall back to a trailing window and flag the result degraded.
var ErrAmbiguous = errors.New("ambiguous time phrase")
