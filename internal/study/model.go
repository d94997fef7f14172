// Package study defines the entities recorded by the study tracker.
package study

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// User is the single actor whose study activity is tracked.
type User struct {
	ID        int64     `db:"id" json:"id" yaml:"id"`
	Name      string    `db:"name" json:"name" yaml:"name" validate:"notblank"`
	Email     string    `db:"email" json:"email" yaml:"email" validate:"notblank,contains=@"`
	Grade     int       `db:"grade" json:"grade" yaml:"grade" validate:"min=1,max=3"`
	CreatedAt time.Time `db:"created_at" json:"created_at" yaml:"created_at"`
}

// GradeLabel returns a human readable school year.
func (u User) GradeLabel() string {
	switch u.Grade {
	case 1:
		return "1st year"
	case 2:
		return "2nd year"
	case 3:
		return "3rd year"
	default:
		return "unknown"
	}
}

// Subject is a curriculum catalog entry.
type Subject struct {
	ID          int64    `db:"id" json:"id" yaml:"id"`
	Name        string   `db:"name" json:"name" yaml:"name"`
	Category    Category `db:"category" json:"category" yaml:"category"`
	Description string   `db:"description" json:"description" yaml:"description"`
	GradeLevel  int      `db:"grade_level" json:"grade_level" yaml:"grade_level"`
}

// StudySession is one timed study event. SubjectName and Category are
// denormalized from the subject catalog when read.
type StudySession struct {
	ID                int64     `db:"id" json:"id" yaml:"id"`
	UserID            int64     `db:"user_id" json:"user_id" yaml:"user_id"`
	SubjectID         int64     `db:"subject_id" json:"subject_id" yaml:"subject_id" validate:"gt=0"`
	SubjectName       string    `db:"subject_name" json:"subject_name" yaml:"-"`
	Category          Category  `db:"category" json:"category" yaml:"-"`
	DurationMinutes   int       `db:"duration_minutes" json:"duration_minutes" yaml:"duration_minutes" validate:"gt=0"`
	Content           string    `db:"content" json:"content" yaml:"content"`
	SatisfactionScore *int      `db:"satisfaction_score" json:"satisfaction_score,omitempty" yaml:"satisfaction_score,omitempty" validate:"omitempty,min=1,max=5"`
	StudiedAt         time.Time `db:"study_date" json:"studied_at" yaml:"studied_at"`
}

// QuizOptions holds multiple-choice options, persisted as a JSON array.
type QuizOptions []string

func (o *QuizOptions) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*o = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("scan quiz options from %T", src)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		*o = nil
		return nil
	}
	var options []string
	if err := json.Unmarshal(data, &options); err != nil {
		return fmt.Errorf("json.Unmarshal quiz options: %w", err)
	}
	*o = options
	return nil
}

func (o QuizOptions) Value() (driver.Value, error) {
	if len(o) == 0 {
		return nil, nil
	}
	data, err := json.Marshal([]string(o))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal quiz options: %w", err)
	}
	return string(data), nil
}

// Quiz is a question belonging to a subject.
type Quiz struct {
	ID            int64       `db:"id" json:"id" yaml:"id"`
	SubjectID     int64       `db:"subject_id" json:"subject_id" yaml:"subject_id" validate:"gt=0"`
	Title         string      `db:"title" json:"title" yaml:"title" validate:"notblank"`
	Question      string      `db:"question" json:"question" yaml:"question" validate:"notblank"`
	Options       QuizOptions `db:"options" json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer string      `db:"correct_answer" json:"correct_answer" yaml:"correct_answer" validate:"notblank"`
	Explanation   string      `db:"explanation" json:"explanation" yaml:"explanation"`
	Difficulty    int         `db:"difficulty" json:"difficulty" yaml:"difficulty" validate:"min=1,max=5"`
}

// Check reports whether answer matches the correct answer, ignoring
// surrounding whitespace.
func (q Quiz) Check(answer string) bool {
	return strings.TrimSpace(answer) == strings.TrimSpace(q.CorrectAnswer)
}

// QuizResult records one attempt at a quiz. SubjectID is the quiz's subject.
type QuizResult struct {
	ID               int64     `db:"id" json:"id" yaml:"id"`
	UserID           int64     `db:"user_id" json:"user_id" yaml:"user_id"`
	QuizID           int64     `db:"quiz_id" json:"quiz_id" yaml:"quiz_id" validate:"gt=0"`
	SubjectID        int64     `db:"subject_id" json:"subject_id" yaml:"subject_id"`
	UserAnswer       string    `db:"user_answer" json:"user_answer" yaml:"user_answer"`
	IsCorrect        bool      `db:"is_correct" json:"is_correct" yaml:"is_correct"`
	TimeTakenSeconds *int      `db:"time_taken_seconds" json:"time_taken_seconds,omitempty" yaml:"time_taken_seconds,omitempty" validate:"omitempty,min=0"`
	AttemptedAt      time.Time `db:"attempted_at" json:"attempted_at" yaml:"attempted_at"`
}

// ScheduleEntry is a planned item such as an exam or homework deadline.
type ScheduleEntry struct {
	ID          int64     `db:"id" json:"id" yaml:"id"`
	UserID      int64     `db:"user_id" json:"user_id" yaml:"user_id"`
	Title       string    `db:"title" json:"title" yaml:"title" validate:"notblank"`
	Description string    `db:"description" json:"description" yaml:"description"`
	ScheduledAt time.Time `db:"scheduled_date" json:"scheduled_at" yaml:"scheduled_at" validate:"required"`
	EventType   EventType `db:"event_type" json:"event_type" yaml:"event_type" validate:"eventtype"`
	IsCompleted bool      `db:"is_completed" json:"is_completed" yaml:"is_completed"`
}
