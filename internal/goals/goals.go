// Package goals compares aggregated study time against user-configured targets.
package goals

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/at-ishikawa/studytracker/internal/config"
	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/study"
)

// ErrInvalidConfiguration is wrapped by every goal validation failure.
var ErrInvalidConfiguration = errors.New("invalid goal configuration")

// Goals are the targets a user works toward each week and day.
type Goals struct {
	WeeklyHours     float64 `json:"weekly_hours" validate:"gt=0"`
	DailyHours      float64 `json:"daily_hours" validate:"gt=0"`
	SubjectsPerWeek int     `json:"subjects_per_week" validate:"gt=0"`
}

// DefaultGoals returns 20 hours a week, 3 hours a day and 5 subjects a week.
func DefaultGoals() Goals {
	return Goals{
		WeeklyHours:     20,
		DailyHours:      3,
		SubjectsPerWeek: 5,
	}
}

// FromConfig builds goals from the configured defaults.
func FromConfig(cfg config.GoalsConfig) (Goals, error) {
	g := Goals{
		WeeklyHours:     cfg.WeeklyHours,
		DailyHours:      cfg.DailyHours,
		SubjectsPerWeek: cfg.SubjectsPerWeek,
	}
	if err := g.Validate(); err != nil {
		return Goals{}, err
	}
	return g, nil
}

// Validate rejects non-positive targets. Targets are never clamped.
func (g Goals) Validate() error {
	if err := study.ValidateStruct("goals", g); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return nil
}

// Book keeps goals per user for the lifetime of the process. Goals reset
// to the defaults when the book is recreated.
type Book struct {
	defaults Goals

	mu    sync.Mutex
	goals map[int64]Goals
}

// NewBook creates a Book whose users start with defaults.
func NewBook(defaults Goals) (*Book, error) {
	if err := defaults.Validate(); err != nil {
		return nil, err
	}
	return &Book{
		defaults: defaults,
		goals:    make(map[int64]Goals),
	}, nil
}

// Get returns the user's goals, or the defaults when none were set.
func (b *Book) Get(userID int64) Goals {
	b.mu.Lock()
	defer b.mu.Unlock()
	if g, ok := b.goals[userID]; ok {
		return g
	}
	return b.defaults
}

// Set replaces the user's goals after validating them.
func (b *Book) Set(userID int64, g Goals) error {
	if err := g.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.goals[userID] = g
	return nil
}

// Progress returns actual as a percentage of target, clamped to [0, 100].
// A non-positive target yields 0; such targets are rejected by Validate
// before they can reach here.
func Progress(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	percent := actual / target * 100
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return percent
}

// WeeklyProgress returns min(actualHours/targetHours*100, 100).
func WeeklyProgress(actualHours, targetHours float64) float64 {
	return Progress(actualHours, targetHours)
}

// CurrentWeekWindow returns [Monday 00:00, next Monday 00:00) for the week
// containing now, in now's location.
func CurrentWeekWindow(now time.Time) eventstore.Interval {
	// time.Weekday starts on Sunday; shift so Monday is 0
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.Date()
	start := time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
	return eventstore.Interval{Start: start, End: start.AddDate(0, 0, 7)}
}

// DayWindow returns [00:00, next day 00:00) for the day containing now.
func DayWindow(now time.Time) eventstore.Interval {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return eventstore.Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// DistinctSubjects counts unique subject identifiers among sessions.
func DistinctSubjects(sessions []study.StudySession) int {
	seen := make(map[int64]struct{})
	for _, s := range sessions {
		seen[s.SubjectID] = struct{}{}
	}
	return len(seen)
}
