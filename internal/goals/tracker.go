package goals

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/statistics"
	"github.com/at-ishikawa/studytracker/internal/study"
)

// Attainment is the progress of one user toward their goals in the
// current week and day.
type Attainment struct {
	Goals Goals               `json:"goals"`
	Week  eventstore.Interval `json:"week"`

	WeeklyHours   float64 `json:"weekly_hours"`
	WeeklyPercent float64 `json:"weekly_percent"`

	TodayHours   float64 `json:"today_hours"`
	DailyPercent float64 `json:"daily_percent"`

	Subjects        int     `json:"subjects"`
	SubjectsPercent float64 `json:"subjects_percent"`
}

// Tracker measures goal attainment from stored study sessions.
type Tracker struct {
	store eventstore.Store
	book  *Book
	loc   *time.Location
	now   func() time.Time
}

// NewTracker creates a Tracker. A nil loc uses time.Local.
func NewTracker(store eventstore.Store, book *Book, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{
		store: store,
		book:  book,
		loc:   loc,
		now:   time.Now,
	}
}

// WithClock makes the tracker measure the week containing now().
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Goals returns the user's current goals.
func (t *Tracker) Goals(userID int64) Goals {
	return t.book.Get(userID)
}

// SetGoals replaces the user's goals.
func (t *Tracker) SetGoals(userID int64, g Goals) error {
	return t.book.Set(userID, g)
}

// Attainment reads this week's sessions and compares them with the
// user's goals.
func (t *Tracker) Attainment(ctx context.Context, userID int64) (Attainment, error) {
	now := t.now().In(t.loc)
	week := CurrentWeekWindow(now)
	today := DayWindow(now)

	sessions, err := t.store.StudySessions(ctx, eventstore.Query{
		UserID:   userID,
		Interval: week,
	})
	if err != nil {
		return Attainment{}, fmt.Errorf("store.StudySessions(user=%d): %w", userID, err)
	}

	todayMinutes := 0
	for _, s := range sessions {
		if today.Contains(s.StudiedAt) {
			todayMinutes += s.DurationMinutes
		}
	}

	g := t.book.Get(userID)
	weeklyHours := statistics.Hours(statistics.TotalMinutes(sessions))
	todayHours := statistics.Hours(todayMinutes)
	subjects := DistinctSubjects(sessions)

	return Attainment{
		Goals:           g,
		Week:            week,
		WeeklyHours:     weeklyHours,
		WeeklyPercent:   WeeklyProgress(weeklyHours, g.WeeklyHours),
		TodayHours:      todayHours,
		DailyPercent:    Progress(todayHours, g.DailyHours),
		Subjects:        subjects,
		SubjectsPercent: Progress(float64(subjects), float64(g.SubjectsPerWeek)),
	}, nil
}

// WeeklyPercent returns only the weekly hour progress for sessions that
// were already read for the current week.
func WeeklyPercent(sessions []study.StudySession, g Goals) float64 {
	return WeeklyProgress(statistics.Hours(statistics.TotalMinutes(sessions)), g.WeeklyHours)
}
