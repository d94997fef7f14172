package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/goals"
	"github.com/at-ishikawa/studytracker/internal/statistics"
	"github.com/at-ishikawa/studytracker/internal/study"
)

const (
	subjectDetailDays   = 30
	overviewRecentLimit = 5
	overviewSessionDays = 7
	overviewQuizDays    = 30
)

// Analysis is the breakdown of one trailing window.
type Analysis struct {
	UserID       int64                      `json:"user_id"`
	Window       AnalysisWindow             `json:"window"`
	Interval     eventstore.Interval        `json:"interval"`
	TotalMinutes int                        `json:"total_minutes"`
	StudyDays    int                        `json:"study_days"`
	Daily        []statistics.DailyTotal    `json:"daily"`
	Subjects     []statistics.SubjectTotal  `json:"subjects"`
	Categories   []statistics.CategoryTotal `json:"categories"`
	Hourly       map[int]int                `json:"hourly"`
	PeakHour     *int                       `json:"peak_hour,omitempty"`
	Stats        statistics.Stats           `json:"stats"`
}

// windowInterval starts at midnight window.Days() days before today and
// ends at tomorrow's midnight so sessions logged today are included.
func (g *Generator) windowInterval(window AnalysisWindow) eventstore.Interval {
	today := g.today()
	end := today.AddDate(0, 0, 1)
	if window == AllTime {
		return eventstore.AllTime(end)
	}
	return eventstore.Interval{Start: today.AddDate(0, 0, -window.Days()), End: end}
}

func (g *Generator) trailingDays(days int) eventstore.Interval {
	today := g.today()
	return eventstore.Interval{Start: today.AddDate(0, 0, -days), End: today.AddDate(0, 0, 1)}
}

// Analyze aggregates the sessions of a trailing window.
func (g *Generator) Analyze(ctx context.Context, userID int64, window AnalysisWindow) (Analysis, error) {
	if window != AllTime && window.Days() == 0 {
		return Analysis{}, fmt.Errorf("%w: unknown analysis window %q", ErrInvalidPeriod, window)
	}
	interval := g.windowInterval(window)

	sessions, err := g.store.StudySessions(ctx, eventstore.Query{UserID: userID, Interval: interval})
	if err != nil {
		return Analysis{}, fmt.Errorf("store.StudySessions(user=%d, window=%s): %w", userID, window, err)
	}

	hourly := statistics.HourlyTotals(sessions, g.loc)
	analysis := Analysis{
		UserID:       userID,
		Window:       window,
		Interval:     interval,
		TotalMinutes: statistics.TotalMinutes(sessions),
		StudyDays:    statistics.StudyDays(sessions, g.loc),
		Daily:        statistics.DailyTotals(sessions, g.loc),
		Subjects:     statistics.SubjectTotals(sessions),
		Categories:   statistics.CategoryTotals(sessions),
		Hourly:       hourly,
		Stats:        statistics.BasicStats(sessions, g.loc),
	}
	if hour, ok := statistics.PeakHour(hourly); ok {
		analysis.PeakHour = &hour
	}
	return analysis, nil
}

// SubjectDetail is the all-time summary of one subject.
type SubjectDetail struct {
	UserID       int64                   `json:"user_id"`
	Subject      study.Subject           `json:"subject"`
	TotalMinutes int                     `json:"total_minutes"`
	StudyDays    int                     `json:"study_days"`
	Quiz         statistics.QuizStats    `json:"quiz"`
	Recent       []statistics.DailyTotal `json:"recent"` // newest first
}

// HoursAndMinutes splits TotalMinutes for display.
func (d SubjectDetail) HoursAndMinutes() (int, int) {
	return d.TotalMinutes / 60, d.TotalMinutes % 60
}

// SubjectDetail summarizes a subject across all time. The daily series
// holds the 30 most recent study dates, newest first.
func (g *Generator) SubjectDetail(ctx context.Context, userID, subjectID int64) (SubjectDetail, error) {
	subjects, err := g.store.Subjects(ctx)
	if err != nil {
		return SubjectDetail{}, fmt.Errorf("store.Subjects: %w", err)
	}
	var subject *study.Subject
	for i := range subjects {
		if subjects[i].ID == subjectID {
			subject = &subjects[i]
			break
		}
	}
	if subject == nil {
		return SubjectDetail{}, fmt.Errorf("subject %d: %w", subjectID, eventstore.ErrNotFound)
	}

	query := eventstore.Query{
		UserID:    userID,
		Interval:  eventstore.AllTime(g.today().AddDate(0, 0, 1)),
		SubjectID: &subjectID,
	}
	sessions, err := g.store.StudySessions(ctx, query)
	if err != nil {
		return SubjectDetail{}, fmt.Errorf("store.StudySessions(user=%d, subject=%d): %w", userID, subjectID, err)
	}
	results, err := g.store.QuizResults(ctx, query)
	if err != nil {
		return SubjectDetail{}, fmt.Errorf("store.QuizResults(user=%d, subject=%d): %w", userID, subjectID, err)
	}

	daily := statistics.DailyTotals(sessions, g.loc)
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date.After(daily[j].Date)
	})
	if len(daily) > subjectDetailDays {
		daily = daily[:subjectDetailDays]
	}

	return SubjectDetail{
		UserID:       userID,
		Subject:      *subject,
		TotalMinutes: statistics.TotalMinutes(sessions),
		StudyDays:    statistics.StudyDays(sessions, g.loc),
		Quiz:         statistics.SummarizeQuizResults(results),
		Recent:       daily,
	}, nil
}

// Overview is the dashboard summary.
type Overview struct {
	UserID            int64                `json:"user_id"`
	Last7DaysMinutes  int                  `json:"last_7_days_minutes"`
	MonthStudyDays    int                  `json:"month_study_days"`
	QuizAttempts      int                  `json:"quiz_attempts_30_days"`
	WeeklyGoalPercent float64              `json:"weekly_goal_percent"`
	Recent            []study.StudySession `json:"recent"` // newest first
}

// Overview computes the dashboard numbers. Every call reads the store
// again, including the quiz attempt count.
func (g *Generator) Overview(ctx context.Context, userID int64, userGoals goals.Goals) (Overview, error) {
	now := g.now().In(g.loc)
	today := g.today()
	tomorrow := today.AddDate(0, 0, 1)

	sessions, err := g.store.StudySessions(ctx, eventstore.Query{UserID: userID, Interval: eventstore.AllTime(tomorrow)})
	if err != nil {
		return Overview{}, fmt.Errorf("store.StudySessions(user=%d): %w", userID, err)
	}
	results, err := g.store.QuizResults(ctx, eventstore.Query{UserID: userID, Interval: g.trailingDays(overviewQuizDays)})
	if err != nil {
		return Overview{}, fmt.Errorf("store.QuizResults(user=%d): %w", userID, err)
	}

	last7 := g.trailingDays(overviewSessionDays)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, g.loc)
	week := goals.CurrentWeekWindow(now)

	var recentWeek, thisMonth []study.StudySession
	last7Minutes := 0
	for _, s := range sessions {
		if last7.Contains(s.StudiedAt) {
			last7Minutes += s.DurationMinutes
		}
		if !s.StudiedAt.Before(monthStart) {
			thisMonth = append(thisMonth, s)
		}
		if week.Contains(s.StudiedAt) {
			recentWeek = append(recentWeek, s)
		}
	}

	recent := make([]study.StudySession, 0, overviewRecentLimit)
	for i := len(sessions) - 1; i >= 0 && len(recent) < overviewRecentLimit; i-- {
		recent = append(recent, sessions[i])
	}

	return Overview{
		UserID:            userID,
		Last7DaysMinutes:  last7Minutes,
		MonthStudyDays:    statistics.StudyDays(thisMonth, g.loc),
		QuizAttempts:      len(results),
		WeeklyGoalPercent: goals.WeeklyPercent(recentWeek, userGoals),
		Recent:            recent,
	}, nil
}

// Lifetime is the all-time summary shown with the user's profile.
type Lifetime struct {
	User         study.User           `json:"user"`
	TotalHours   float64              `json:"total_hours"`
	SessionCount int                  `json:"session_count"`
	StudyDays    int                  `json:"study_days"`
	Subjects     []SubjectHours       `json:"subjects"`
	Quiz         statistics.QuizStats `json:"quiz"`
}

// Lifetime summarizes everything the user has recorded.
func (g *Generator) Lifetime(ctx context.Context, userID int64) (Lifetime, error) {
	user, err := g.store.User(ctx, userID)
	if err != nil {
		return Lifetime{}, fmt.Errorf("store.User(%d): %w", userID, err)
	}

	query := eventstore.Query{UserID: userID, Interval: eventstore.AllTime(g.today().AddDate(0, 0, 1))}
	sessions, err := g.store.StudySessions(ctx, query)
	if err != nil {
		return Lifetime{}, fmt.Errorf("store.StudySessions(user=%d): %w", userID, err)
	}
	results, err := g.store.QuizResults(ctx, query)
	if err != nil {
		return Lifetime{}, fmt.Errorf("store.QuizResults(user=%d): %w", userID, err)
	}

	return Lifetime{
		User:         user,
		TotalHours:   statistics.Hours(statistics.TotalMinutes(sessions)),
		SessionCount: len(sessions),
		StudyDays:    statistics.StudyDays(sessions, g.loc),
		Subjects:     subjectHours(statistics.SubjectTotals(sessions)),
		Quiz:         statistics.SummarizeQuizResults(results),
	}, nil
}
