// Package eventstore provides read access to recorded study events.
package eventstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/at-ishikawa/studytracker/internal/study"
)

var (
	// ErrStorageUnavailable is wrapped by every error caused by the backing
	// store being unreachable or failing a read.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotFound is returned when a single requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write collides with an existing row.
	ErrConflict = errors.New("conflict")
)

// MinTime is the earliest timestamp the stores accept. It is the lower
// bound of MySQL DATETIME.
var MinTime = time.Date(1000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Interval is the half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval returns [start, end). start must be before end.
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("interval start %s must be before end %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// AllTime covers every event before end.
func AllTime(end time.Time) Interval {
	return Interval{Start: MinTime, End: end}
}

// Contains reports whether t is within the interval.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Query selects one user's events within an interval, optionally narrowed
// to a single subject.
type Query struct {
	UserID    int64
	Interval  Interval
	SubjectID *int64
}

// ScheduleQuery selects schedule entries, optionally of a single type.
type ScheduleQuery struct {
	Query
	EventType *study.EventType
}

//go:generate mockgen -source=store.go -destination=../mocks/eventstore/mock_store.go -package=mock_eventstore

// Store reads events for aggregation. Every method returns rows sorted by
// timestamp ascending and an empty slice when nothing matches.
type Store interface {
	StudySessions(ctx context.Context, q Query) ([]study.StudySession, error)
	QuizResults(ctx context.Context, q Query) ([]study.QuizResult, error)
	ScheduleEntries(ctx context.Context, q ScheduleQuery) ([]study.ScheduleEntry, error)
	Subjects(ctx context.Context) ([]study.Subject, error)
	User(ctx context.Context, userID int64) (study.User, error)
}

// Recorder writes new events. The metrics core never calls it; it exists
// for the CLI and HTTP adapters.
type Recorder interface {
	RecordStudySession(ctx context.Context, s study.StudySession) (int64, error)
	AddQuiz(ctx context.Context, q study.Quiz) (int64, error)
	Quiz(ctx context.Context, quizID int64) (study.Quiz, error)
	RecordQuizAnswer(ctx context.Context, r study.QuizResult) (study.QuizResult, error)
	AddScheduleEntry(ctx context.Context, e study.ScheduleEntry) (int64, error)
	SetScheduleCompleted(ctx context.Context, userID, entryID int64, completed bool) error
	DeleteScheduleEntry(ctx context.Context, userID, entryID int64) error
	UpdateUser(ctx context.Context, u study.User) error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
