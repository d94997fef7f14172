// Package report builds period reports and dashboard summaries from the
// event store.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/goals"
	"github.com/at-ishikawa/studytracker/internal/statistics"
	"github.com/at-ishikawa/studytracker/internal/study"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
)

// NotYetAvailable is the message of reports for periods that are not
// computed yet.
const NotYetAvailable = "not yet available"

// Advice is a qualitative tier derived from total study hours.
type Advice string

const (
	AdviceExcellent        Advice = "excellent"
	AdviceGood             Advice = "good"
	AdviceNeedsImprovement Advice = "needs_improvement"
)

// AdviceFor returns excellent from 15 hours, good from 10 hours and
// needs_improvement below that.
func AdviceFor(hours float64) Advice {
	switch {
	case hours >= 15:
		return AdviceExcellent
	case hours >= 10:
		return AdviceGood
	default:
		return AdviceNeedsImprovement
	}
}

// Message is the sentence shown to the student.
func (a Advice) Message() string {
	switch a {
	case AdviceExcellent:
		return "Excellent amount of study. Keep it up."
	case AdviceGood:
		return "Good pace. A little more time would make it even better."
	case AdviceNeedsImprovement:
		return "Study time is a bit short. Try to study a little every day."
	}
	return ""
}

// SubjectHours is a subject's share of a report.
type SubjectHours struct {
	SubjectID   int64          `json:"subject_id"`
	SubjectName string         `json:"subject_name"`
	Category    study.Category `json:"category"`
	Hours       float64        `json:"hours"`
}

// Report summarizes one period. Unavailable reports carry only Status,
// Period and Message.
type Report struct {
	UserID           int64                `json:"user_id"`
	Status           Status               `json:"status"`
	Period           PeriodKind           `json:"period"`
	Message          string               `json:"message,omitempty"`
	Interval         *eventstore.Interval `json:"interval,omitempty"`
	TotalHours       float64              `json:"total_hours"`
	SessionCount     int                  `json:"session_count"`
	MeanSatisfaction float64              `json:"mean_satisfaction"`
	HasSatisfaction  bool                 `json:"has_satisfaction"`
	Subjects         []SubjectHours       `json:"subjects"`
	Advice           Advice               `json:"advice,omitempty"`
	GeneratedAt      time.Time            `json:"generated_at"`
}

// Available reports whether the report carries computed numbers.
func (r Report) Available() bool {
	return r.Status == StatusAvailable
}

// Generator reads a user's events and turns them into reports. It keeps
// no state between calls.
type Generator struct {
	store eventstore.Store
	loc   *time.Location
	now   func() time.Time
}

// NewGenerator creates a Generator. A nil loc uses time.Local.
func NewGenerator(store eventstore.Store, loc *time.Location) *Generator {
	if loc == nil {
		loc = time.Local
	}
	return &Generator{
		store: store,
		loc:   loc,
		now:   time.Now,
	}
}

// WithClock makes the generator compute windows relative to now() instead
// of the wall clock.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Location is the time zone calendar dates are computed in.
func (g *Generator) Location() *time.Location {
	return g.loc
}

// Now returns the generator's current time in its location.
func (g *Generator) Now() time.Time {
	return g.now().In(g.loc)
}

func (g *Generator) today() time.Time {
	return goals.DayWindow(g.Now()).Start
}

// Generate builds the report for period. Month and semester reports are
// returned as unavailable without reading the store.
func (g *Generator) Generate(ctx context.Context, userID int64, period Period) (Report, error) {
	now := g.now().In(g.loc)

	var interval eventstore.Interval
	switch period.Kind {
	case PeriodMonth, PeriodSemester:
		return Report{
			UserID:      userID,
			Status:      StatusUnavailable,
			Period:      period.Kind,
			Message:     NotYetAvailable,
			GeneratedAt: now,
		}, nil
	case PeriodWeek:
		interval = goals.CurrentWeekWindow(now)
	case PeriodCustom:
		var err error
		interval, err = eventstore.NewInterval(period.Start, period.End)
		if err != nil {
			return Report{}, fmt.Errorf("%w: %w", ErrInvalidPeriod, err)
		}
	default:
		return Report{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period.Kind)
	}

	sessions, err := g.store.StudySessions(ctx, eventstore.Query{UserID: userID, Interval: interval})
	if err != nil {
		return Report{}, fmt.Errorf("store.StudySessions(user=%d, %s): %w", userID, period, err)
	}

	totalHours := statistics.Hours(statistics.TotalMinutes(sessions))
	satisfaction, hasSatisfaction := statistics.MeanSatisfaction(sessions)
	return Report{
		UserID:           userID,
		Status:           StatusAvailable,
		Period:           period.Kind,
		Interval:         &interval,
		TotalHours:       totalHours,
		SessionCount:     len(sessions),
		MeanSatisfaction: satisfaction,
		HasSatisfaction:  hasSatisfaction,
		Subjects:         subjectHours(statistics.SubjectTotals(sessions)),
		Advice:           AdviceFor(totalHours),
		GeneratedAt:      now,
	}, nil
}

func subjectHours(totals []statistics.SubjectTotal) []SubjectHours {
	hours := make([]SubjectHours, 0, len(totals))
	for _, t := range totals {
		hours = append(hours, SubjectHours{
			SubjectID:   t.SubjectID,
			SubjectName: t.SubjectName,
			Category:    t.Category,
			Hours:       t.Hours(),
		})
	}
	return hours
}
