package eventstore

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studytracker/internal/study"
)

// Snapshot is the YAML document read by YAMLStore.
type Snapshot struct {
	Users         []study.User          `yaml:"users"`
	Subjects      []study.Subject       `yaml:"subjects"`
	StudySessions []study.StudySession  `yaml:"study_sessions"`
	Quizzes       []study.Quiz          `yaml:"quizzes"`
	QuizResults   []study.QuizResult    `yaml:"quiz_results"`
	Schedules     []study.ScheduleEntry `yaml:"schedules"`
}

// YAMLStore reads events from a YAML snapshot file. The file is read on
// every call so each call sees the latest contents.
type YAMLStore struct {
	path string
}

// NewYAMLStore creates a new YAMLStore.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

var _ Store = (*YAMLStore)(nil)

func (s *YAMLStore) load() (Snapshot, error) {
	var snapshot Snapshot

	file, err := os.Open(s.path)
	if err != nil {
		return snapshot, unavailable(fmt.Sprintf("os.Open(%s)", s.path), err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&snapshot); err != nil {
		return snapshot, unavailable("yaml.NewDecoder().Decode()", err)
	}
	return snapshot, nil
}

// StudySessions returns the user's sessions in the interval with subject
// names and categories filled in from the catalog.
func (s *YAMLStore) StudySessions(ctx context.Context, q Query) ([]study.StudySession, error) {
	snapshot, err := s.load()
	if err != nil {
		return nil, err
	}

	subjects := make(map[int64]study.Subject, len(snapshot.Subjects))
	for _, subject := range snapshot.Subjects {
		subjects[subject.ID] = subject
	}

	sessions := []study.StudySession{}
	for _, session := range snapshot.StudySessions {
		if session.UserID != q.UserID || !q.Interval.Contains(session.StudiedAt) {
			continue
		}
		if q.SubjectID != nil && session.SubjectID != *q.SubjectID {
			continue
		}
		subject, ok := subjects[session.SubjectID]
		if !ok {
			// sessions without a catalog entry are dropped, matching the inner join of DBStore
			continue
		}
		session.SubjectName = subject.Name
		session.Category = subject.Category
		sessions = append(sessions, session)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].StudiedAt.Equal(sessions[j].StudiedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].StudiedAt.Before(sessions[j].StudiedAt)
	})
	return sessions, nil
}

// QuizResults returns the user's quiz attempts in the interval.
func (s *YAMLStore) QuizResults(ctx context.Context, q Query) ([]study.QuizResult, error) {
	snapshot, err := s.load()
	if err != nil {
		return nil, err
	}

	quizSubjects := make(map[int64]int64, len(snapshot.Quizzes))
	for _, quiz := range snapshot.Quizzes {
		quizSubjects[quiz.ID] = quiz.SubjectID
	}

	results := []study.QuizResult{}
	for _, result := range snapshot.QuizResults {
		if result.UserID != q.UserID || !q.Interval.Contains(result.AttemptedAt) {
			continue
		}
		subjectID, ok := quizSubjects[result.QuizID]
		if !ok {
			continue
		}
		if q.SubjectID != nil && subjectID != *q.SubjectID {
			continue
		}
		result.SubjectID = subjectID
		results = append(results, result)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].AttemptedAt.Equal(results[j].AttemptedAt) {
			return results[i].ID < results[j].ID
		}
		return results[i].AttemptedAt.Before(results[j].AttemptedAt)
	})
	return results, nil
}

// ScheduleEntries returns the user's schedule entries in the interval.
func (s *YAMLStore) ScheduleEntries(ctx context.Context, q ScheduleQuery) ([]study.ScheduleEntry, error) {
	snapshot, err := s.load()
	if err != nil {
		return nil, err
	}

	entries := []study.ScheduleEntry{}
	for _, entry := range snapshot.Schedules {
		if entry.UserID != q.UserID || !q.Interval.Contains(entry.ScheduledAt) {
			continue
		}
		if q.EventType != nil && entry.EventType != *q.EventType {
			continue
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ScheduledAt.Equal(entries[j].ScheduledAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].ScheduledAt.Before(entries[j].ScheduledAt)
	})
	return entries, nil
}

// Subjects returns the catalog ordered by grade level and name.
func (s *YAMLStore) Subjects(ctx context.Context) ([]study.Subject, error) {
	snapshot, err := s.load()
	if err != nil {
		return nil, err
	}

	subjects := append([]study.Subject{}, snapshot.Subjects...)
	sort.SliceStable(subjects, func(i, j int) bool {
		if subjects[i].GradeLevel != subjects[j].GradeLevel {
			return subjects[i].GradeLevel < subjects[j].GradeLevel
		}
		return subjects[i].Name < subjects[j].Name
	})
	return subjects, nil
}

// User returns the user profile.
func (s *YAMLStore) User(ctx context.Context, userID int64) (study.User, error) {
	snapshot, err := s.load()
	if err != nil {
		return study.User{}, err
	}
	for _, u := range snapshot.Users {
		if u.ID == userID {
			return u, nil
		}
	}
	return study.User{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
}
