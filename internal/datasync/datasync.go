// Package datasync copies study events between a YAML snapshot and the database.
package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/study"
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	SessionsNew        int
	SessionsSkipped    int
	QuizResultsNew     int
	QuizResultsSkipped int
	SchedulesNew       int
	SchedulesSkipped   int
	Warnings           int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool
}

// Importer reads one user's events from source and writes the ones missing
// from dest through recorder.
type Importer struct {
	source   eventstore.Store
	dest     eventstore.Store
	recorder eventstore.Recorder
	writer   io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(source, dest eventstore.Store, recorder eventstore.Recorder, writer io.Writer) *Importer {
	return &Importer{
		source:   source,
		dest:     dest,
		recorder: recorder,
		writer:   writer,
	}
}

// sameSecond compares timestamps at the precision of a DATETIME column.
func sameSecond(t time.Time) int64 {
	return t.Truncate(time.Second).Unix()
}

type sessionKey struct {
	subjectID int64
	at        int64
	minutes   int
}

type quizResultKey struct {
	quizID int64
	at     int64
}

type scheduleKey struct {
	title     string
	at        int64
	eventType study.EventType
}

// ImportUser imports every event of userID recorded before until.
func (imp *Importer) ImportUser(ctx context.Context, userID int64, until time.Time, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult
	q := eventstore.Query{UserID: userID, Interval: eventstore.AllTime(until)}

	if err := imp.importSessions(ctx, q, opts, &result); err != nil {
		return nil, fmt.Errorf("importSessions() > %w", err)
	}
	if err := imp.importQuizResults(ctx, q, opts, &result); err != nil {
		return nil, fmt.Errorf("importQuizResults() > %w", err)
	}
	if err := imp.importSchedules(ctx, q, opts, &result); err != nil {
		return nil, fmt.Errorf("importSchedules() > %w", err)
	}
	return &result, nil
}

func (imp *Importer) importSessions(ctx context.Context, q eventstore.Query, opts ImportOptions, result *ImportResult) error {
	sessions, err := imp.source.StudySessions(ctx, q)
	if err != nil {
		return fmt.Errorf("source.StudySessions() > %w", err)
	}
	existing, err := imp.dest.StudySessions(ctx, q)
	if err != nil {
		return fmt.Errorf("dest.StudySessions() > %w", err)
	}
	subjects, err := imp.dest.Subjects(ctx)
	if err != nil {
		return fmt.Errorf("dest.Subjects() > %w", err)
	}

	known := make(map[int64]bool, len(subjects))
	for _, subject := range subjects {
		known[subject.ID] = true
	}
	seen := make(map[sessionKey]bool, len(existing))
	for _, s := range existing {
		seen[sessionKey{s.SubjectID, sameSecond(s.StudiedAt), s.DurationMinutes}] = true
	}

	for _, s := range sessions {
		label := fmt.Sprintf("session %s subject=%d %dm", s.StudiedAt.Format(time.RFC3339), s.SubjectID, s.DurationMinutes)
		key := sessionKey{s.SubjectID, sameSecond(s.StudiedAt), s.DurationMinutes}
		if seen[key] {
			fmt.Fprintf(imp.writer, "  [SKIP]  %s\n", label)
			result.SessionsSkipped++
			continue
		}
		if !known[s.SubjectID] {
			fmt.Fprintf(imp.writer, "  [WARN]  %s: subject %d is not in the catalog\n", label, s.SubjectID)
			result.Warnings++
			continue
		}

		if !opts.DryRun {
			s.ID = 0
			s.UserID = q.UserID
			if _, err := imp.recorder.RecordStudySession(ctx, s); err != nil {
				return fmt.Errorf("RecordStudySession() > %w", err)
			}
		}
		seen[key] = true
		fmt.Fprintf(imp.writer, "  [NEW]  %s\n", label)
		result.SessionsNew++
	}
	return nil
}

func (imp *Importer) importQuizResults(ctx context.Context, q eventstore.Query, opts ImportOptions, result *ImportResult) error {
	results, err := imp.source.QuizResults(ctx, q)
	if err != nil {
		return fmt.Errorf("source.QuizResults() > %w", err)
	}
	existing, err := imp.dest.QuizResults(ctx, q)
	if err != nil {
		return fmt.Errorf("dest.QuizResults() > %w", err)
	}

	seen := make(map[quizResultKey]bool, len(existing))
	for _, r := range existing {
		seen[quizResultKey{r.QuizID, sameSecond(r.AttemptedAt)}] = true
	}
	quizzes := make(map[int64]bool)

	for _, r := range results {
		label := fmt.Sprintf("quiz result %s quiz=%d", r.AttemptedAt.Format(time.RFC3339), r.QuizID)
		key := quizResultKey{r.QuizID, sameSecond(r.AttemptedAt)}
		if seen[key] {
			fmt.Fprintf(imp.writer, "  [SKIP]  %s\n", label)
			result.QuizResultsSkipped++
			continue
		}

		found, checked := quizzes[r.QuizID]
		if !checked {
			_, err := imp.recorder.Quiz(ctx, r.QuizID)
			switch {
			case err == nil:
				found = true
			case errors.Is(err, eventstore.ErrNotFound):
				found = false
			default:
				return fmt.Errorf("Quiz(%d) > %w", r.QuizID, err)
			}
			quizzes[r.QuizID] = found
		}
		if !found {
			fmt.Fprintf(imp.writer, "  [WARN]  %s: quiz %d does not exist\n", label, r.QuizID)
			result.Warnings++
			continue
		}

		if !opts.DryRun {
			r.ID = 0
			r.UserID = q.UserID
			if _, err := imp.recorder.RecordQuizAnswer(ctx, r); err != nil {
				return fmt.Errorf("RecordQuizAnswer() > %w", err)
			}
		}
		seen[key] = true
		fmt.Fprintf(imp.writer, "  [NEW]  %s\n", label)
		result.QuizResultsNew++
	}
	return nil
}

func (imp *Importer) importSchedules(ctx context.Context, q eventstore.Query, opts ImportOptions, result *ImportResult) error {
	sq := eventstore.ScheduleQuery{Query: q}
	entries, err := imp.source.ScheduleEntries(ctx, sq)
	if err != nil {
		return fmt.Errorf("source.ScheduleEntries() > %w", err)
	}
	existing, err := imp.dest.ScheduleEntries(ctx, sq)
	if err != nil {
		return fmt.Errorf("dest.ScheduleEntries() > %w", err)
	}

	seen := make(map[scheduleKey]bool, len(existing))
	for _, e := range existing {
		seen[scheduleKey{e.Title, sameSecond(e.ScheduledAt), e.EventType}] = true
	}

	for _, e := range entries {
		label := fmt.Sprintf("schedule %s %q (%s)", e.ScheduledAt.Format(time.DateOnly), e.Title, e.EventType)
		key := scheduleKey{e.Title, sameSecond(e.ScheduledAt), e.EventType}
		if seen[key] {
			fmt.Fprintf(imp.writer, "  [SKIP]  %s\n", label)
			result.SchedulesSkipped++
			continue
		}

		if !opts.DryRun {
			e.ID = 0
			e.UserID = q.UserID
			if _, err := imp.recorder.AddScheduleEntry(ctx, e); err != nil {
				return fmt.Errorf("AddScheduleEntry() > %w", err)
			}
		}
		seen[key] = true
		fmt.Fprintf(imp.writer, "  [NEW]  %s\n", label)
		result.SchedulesNew++
	}
	return nil
}

// QuizReader looks up quiz definitions by ID.
type QuizReader interface {
	Quiz(ctx context.Context, quizID int64) (study.Quiz, error)
}

// Exporter reads one user's events and returns them as a snapshot.
type Exporter struct {
	store   eventstore.Store
	quizzes QuizReader
}

// NewExporter creates a new Exporter.
func NewExporter(store eventstore.Store, quizzes QuizReader) *Exporter {
	return &Exporter{
		store:   store,
		quizzes: quizzes,
	}
}

// Export returns the user, the subject catalog, the user's events before
// until, and the quizzes those events reference.
func (e *Exporter) Export(ctx context.Context, userID int64, until time.Time) (*eventstore.Snapshot, error) {
	user, err := e.store.User(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("User(%d) > %w", userID, err)
	}
	subjects, err := e.store.Subjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("Subjects() > %w", err)
	}

	q := eventstore.Query{UserID: userID, Interval: eventstore.AllTime(until)}
	sessions, err := e.store.StudySessions(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("StudySessions() > %w", err)
	}
	results, err := e.store.QuizResults(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("QuizResults() > %w", err)
	}
	schedules, err := e.store.ScheduleEntries(ctx, eventstore.ScheduleQuery{Query: q})
	if err != nil {
		return nil, fmt.Errorf("ScheduleEntries() > %w", err)
	}

	quizIDs := make(map[int64]bool)
	for _, r := range results {
		quizIDs[r.QuizID] = true
	}
	quizzes := make([]study.Quiz, 0, len(quizIDs))
	for id := range quizIDs {
		quiz, err := e.quizzes.Quiz(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("Quiz(%d) > %w", id, err)
		}
		quizzes = append(quizzes, quiz)
	}
	sort.Slice(quizzes, func(i, j int) bool {
		return quizzes[i].ID < quizzes[j].ID
	})

	return &eventstore.Snapshot{
		Users:         []study.User{user},
		Subjects:      subjects,
		StudySessions: sessions,
		Quizzes:       quizzes,
		QuizResults:   results,
		Schedules:     schedules,
	}, nil
}

// WriteSnapshot encodes snapshot as YAML in the layout the YAML store reads.
func WriteSnapshot(w io.Writer, snapshot *eventstore.Snapshot) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(snapshot); err != nil {
		return fmt.Errorf("yaml.Encoder.Encode() > %w", err)
	}
	return encoder.Close()
}
