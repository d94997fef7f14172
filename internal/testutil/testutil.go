// Package testutil provides shared test helpers for creating config files and event store fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/study"
)

// SetupTestConfig creates a config file that reads events from a YAML
// snapshot in tmpDir, and writes SampleSnapshot there.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	snapshotPath := filepath.Join(tmpDir, "events.yml")
	WriteSnapshot(t, snapshotPath, SampleSnapshot())

	outputDir := filepath.Join(tmpDir, "reports")
	require.NoError(t, os.MkdirAll(outputDir, 0755))

	configContent := fmt.Sprintf(`store:
  driver: yaml
  yaml_file: %s
timezone: UTC
outputs:
  report_directory: %s
`, snapshotPath, outputDir)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WriteSnapshot writes snapshot as YAML to path.
func WriteSnapshot(t *testing.T, path string, snapshot eventstore.Snapshot) {
	t.Helper()

	data, err := yaml.Marshal(snapshot)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// SampleWeek is the Monday-based week SampleSnapshot's sessions fall in.
var SampleWeek = eventstore.Interval{
	Start: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
}

// SampleSnapshot returns two users, three subjects and a week of events
// for user 1. Times are in UTC.
func SampleSnapshot() eventstore.Snapshot {
	four, three := 4, 3
	thirty := 30
	day := func(d, hour int) time.Time {
		return time.Date(2025, 6, d, hour, 0, 0, 0, time.UTC)
	}

	return eventstore.Snapshot{
		Users: []study.User{
			{ID: 1, Name: "Hanako Yamada", Email: "hanako@example.com", Grade: 2, CreatedAt: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 2, Name: "Taro Suzuki", Email: "taro@example.com", Grade: 1, CreatedAt: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		},
		Subjects: []study.Subject{
			{ID: 1, Name: "Math I", Category: study.CategoryMathematics, GradeLevel: 1},
			{ID: 2, Name: "English Communication", Category: study.CategoryEnglish, GradeLevel: 1},
			{ID: 3, Name: "Physics", Category: study.CategoryScience, GradeLevel: 2},
		},
		StudySessions: []study.StudySession{
			{ID: 3, UserID: 1, SubjectID: 2, DurationMinutes: 45, SatisfactionScore: &three, StudiedAt: day(3, 19)},
			{ID: 1, UserID: 1, SubjectID: 1, DurationMinutes: 60, Content: "quadratic functions", SatisfactionScore: &four, StudiedAt: day(2, 19)},
			{ID: 2, UserID: 1, SubjectID: 1, DurationMinutes: 30, StudiedAt: day(2, 21)},
			{ID: 4, UserID: 2, SubjectID: 3, DurationMinutes: 120, StudiedAt: day(4, 10)},
			{ID: 5, UserID: 1, SubjectID: 99, DurationMinutes: 15, StudiedAt: day(4, 10)},
			{ID: 6, UserID: 1, SubjectID: 3, DurationMinutes: 90, StudiedAt: time.Date(2025, 5, 28, 20, 0, 0, 0, time.UTC)},
		},
		Quizzes: []study.Quiz{
			{ID: 1, SubjectID: 1, Title: "Quadratics", Question: "Solve x^2 = 4 for x > 0", Options: study.QuizOptions{"1", "2", "4"}, CorrectAnswer: "2", Difficulty: 2},
			{ID: 2, SubjectID: 2, Title: "Vocabulary", Question: "Synonym of rapid", CorrectAnswer: "quick", Difficulty: 1},
		},
		QuizResults: []study.QuizResult{
			{ID: 1, UserID: 1, QuizID: 1, UserAnswer: "2", IsCorrect: true, TimeTakenSeconds: &thirty, AttemptedAt: day(2, 20)},
			{ID: 2, UserID: 1, QuizID: 2, UserAnswer: "fast", IsCorrect: false, AttemptedAt: day(3, 20)},
			{ID: 3, UserID: 1, QuizID: 2, UserAnswer: "quick", IsCorrect: true, AttemptedAt: day(4, 20)},
		},
		Schedules: []study.ScheduleEntry{
			{ID: 2, UserID: 1, Title: "English quiz", ScheduledAt: day(6, 9), EventType: study.EventTypeTest},
			{ID: 1, UserID: 1, Title: "Math homework", ScheduledAt: day(5, 9), EventType: study.EventTypeHomework, IsCompleted: true},
			{ID: 3, UserID: 1, Title: "Mock exam", ScheduledAt: time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC), EventType: study.EventTypeMockExam},
		},
	}
}
