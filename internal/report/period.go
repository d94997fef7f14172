package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPeriod is returned for unknown period names and custom ranges
// whose start is not before their end.
var ErrInvalidPeriod = errors.New("invalid report period")

// PeriodKind names the span a report covers.
type PeriodKind string

const (
	PeriodWeek     PeriodKind = "week"
	PeriodMonth    PeriodKind = "month"
	PeriodSemester PeriodKind = "semester"
	PeriodCustom   PeriodKind = "custom"
)

// Period selects the span of a report. Start and End are only used by
// custom periods.
type Period struct {
	Kind  PeriodKind
	Start time.Time
	End   time.Time
}

func Week() Period     { return Period{Kind: PeriodWeek} }
func Month() Period    { return Period{Kind: PeriodMonth} }
func Semester() Period { return Period{Kind: PeriodSemester} }

// Custom covers [start, end).
func Custom(start, end time.Time) Period {
	return Period{Kind: PeriodCustom, Start: start, End: end}
}

func (p Period) String() string {
	if p.Kind == PeriodCustom {
		return fmt.Sprintf("%s..%s", p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly))
	}
	return string(p.Kind)
}

// ParsePeriod accepts week, month and semester.
func ParsePeriod(s string) (Period, error) {
	switch PeriodKind(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodWeek:
		return Week(), nil
	case PeriodMonth:
		return Month(), nil
	case PeriodSemester:
		return Semester(), nil
	}
	return Period{}, fmt.Errorf("%w: %q (expected week, month or semester)", ErrInvalidPeriod, s)
}

// AnalysisWindow is a trailing range ending today.
type AnalysisWindow string

const (
	LastWeek    AnalysisWindow = "week"
	LastMonth   AnalysisWindow = "month"
	LastQuarter AnalysisWindow = "quarter"
	AllTime     AnalysisWindow = "all"
)

// AnalysisWindows lists every window in display order.
var AnalysisWindows = []AnalysisWindow{LastWeek, LastMonth, LastQuarter, AllTime}

// Days returns the trailing length of the window, or 0 for AllTime.
func (w AnalysisWindow) Days() int {
	switch w {
	case LastWeek:
		return 7
	case LastMonth:
		return 30
	case LastQuarter:
		return 90
	}
	return 0
}

// ParseAnalysisWindow accepts week, month, quarter and all. An empty
// string selects LastWeek.
func ParseAnalysisWindow(s string) (AnalysisWindow, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LastWeek, nil
	}
	for _, w := range AnalysisWindows {
		if string(w) == s {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: unknown analysis window %q", ErrInvalidPeriod, s)
}
