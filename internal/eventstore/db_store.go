package eventstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studytracker/internal/database"
	"github.com/at-ishikawa/studytracker/internal/study"
)

// DBStore implements Store and Recorder using MySQL.
type DBStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDBStore creates a new DBStore.
func NewDBStore(db *sqlx.DB) *DBStore {
	return &DBStore{db: db, now: time.Now}
}

var (
	_ Store    = (*DBStore)(nil)
	_ Recorder = (*DBStore)(nil)
)

const studySessionsQuery = `SELECT ss.id, ss.user_id, ss.subject_id, s.name AS subject_name, s.category,
	ss.duration_minutes, COALESCE(ss.content, '') AS content, ss.satisfaction_score, ss.study_date
FROM study_sessions ss
JOIN subjects s ON ss.subject_id = s.id
WHERE ss.user_id = ? AND ss.study_date >= ? AND ss.study_date < ?`

// StudySessions returns the user's sessions in the interval.
func (s *DBStore) StudySessions(ctx context.Context, q Query) ([]study.StudySession, error) {
	query := studySessionsQuery
	args := []interface{}{q.UserID, q.Interval.Start, q.Interval.End}
	if q.SubjectID != nil {
		query += " AND ss.subject_id = ?"
		args = append(args, *q.SubjectID)
	}
	query += " ORDER BY ss.study_date, ss.id"

	sessions := []study.StudySession{}
	if err := s.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, dbError("select study sessions", err)
	}
	return sessions, nil
}

const quizResultsQuery = `SELECT qr.id, qr.user_id, qr.quiz_id, q.subject_id, COALESCE(qr.user_answer, '') AS user_answer,
	qr.is_correct, qr.time_taken_seconds, qr.attempted_at
FROM quiz_results qr
JOIN quizzes q ON qr.quiz_id = q.id
WHERE qr.user_id = ? AND qr.attempted_at >= ? AND qr.attempted_at < ?`

// QuizResults returns the user's quiz attempts in the interval.
func (s *DBStore) QuizResults(ctx context.Context, q Query) ([]study.QuizResult, error) {
	query := quizResultsQuery
	args := []interface{}{q.UserID, q.Interval.Start, q.Interval.End}
	if q.SubjectID != nil {
		query += " AND q.subject_id = ?"
		args = append(args, *q.SubjectID)
	}
	query += " ORDER BY qr.attempted_at, qr.id"

	results := []study.QuizResult{}
	if err := s.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, dbError("select quiz results", err)
	}
	return results, nil
}

const scheduleEntriesQuery = `SELECT id, user_id, title, COALESCE(description, '') AS description,
	scheduled_date, event_type, is_completed
FROM schedules
WHERE user_id = ? AND scheduled_date >= ? AND scheduled_date < ?`

// ScheduleEntries returns the user's schedule entries in the interval.
// SubjectID is ignored because schedule entries are not tied to a subject.
func (s *DBStore) ScheduleEntries(ctx context.Context, q ScheduleQuery) ([]study.ScheduleEntry, error) {
	query := scheduleEntriesQuery
	args := []interface{}{q.UserID, q.Interval.Start, q.Interval.End}
	if q.EventType != nil {
		query += " AND event_type = ?"
		args = append(args, string(*q.EventType))
	}
	query += " ORDER BY scheduled_date, id"

	entries := []study.ScheduleEntry{}
	if err := s.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, dbError("select schedule entries", err)
	}
	return entries, nil
}

// Subjects returns the curriculum catalog.
func (s *DBStore) Subjects(ctx context.Context) ([]study.Subject, error) {
	subjects := []study.Subject{}
	query := "SELECT id, name, category, COALESCE(description, '') AS description, grade_level FROM subjects ORDER BY grade_level, name"
	if err := s.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, dbError("select subjects", err)
	}
	return subjects, nil
}

// User returns the user profile.
func (s *DBStore) User(ctx context.Context, userID int64) (study.User, error) {
	var u study.User
	err := s.db.GetContext(ctx, &u, "SELECT id, name, email, grade, created_at FROM users WHERE id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return study.User{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return study.User{}, dbError("select user", err)
	}
	return u, nil
}

// RecordStudySession validates and inserts a session. A zero StudiedAt is
// replaced with the current time.
func (s *DBStore) RecordStudySession(ctx context.Context, session study.StudySession) (int64, error) {
	if err := session.Validate(); err != nil {
		return 0, err
	}
	if session.StudiedAt.IsZero() {
		session.StudiedAt = s.now()
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO study_sessions (user_id, subject_id, duration_minutes, content, satisfaction_score, study_date) VALUES (?, ?, ?, ?, ?, ?)",
		session.UserID, session.SubjectID, session.DurationMinutes, session.Content, session.SatisfactionScore, session.StudiedAt,
	)
	if err != nil {
		return 0, dbError("insert study session", err)
	}
	return res.LastInsertId()
}

// AddQuiz validates and inserts a quiz question.
func (s *DBStore) AddQuiz(ctx context.Context, q study.Quiz) (int64, error) {
	if q.Difficulty == 0 {
		q.Difficulty = 1
	}
	if err := q.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO quizzes (subject_id, title, question, options, correct_answer, explanation, difficulty) VALUES (?, ?, ?, ?, ?, ?, ?)",
		q.SubjectID, q.Title, q.Question, q.Options, q.CorrectAnswer, q.Explanation, q.Difficulty,
	)
	if err != nil {
		return 0, dbError("insert quiz", err)
	}
	return res.LastInsertId()
}

const quizQuery = `SELECT id, subject_id, title, question, options, correct_answer, COALESCE(explanation, '') AS explanation, difficulty
FROM quizzes WHERE id = ?`

// Quiz returns a single quiz question.
func (s *DBStore) Quiz(ctx context.Context, quizID int64) (study.Quiz, error) {
	return getQuiz(ctx, s.db, quizID)
}

func getQuiz(ctx context.Context, q sqlx.QueryerContext, quizID int64) (study.Quiz, error) {
	var quiz study.Quiz
	err := sqlx.GetContext(ctx, q, &quiz, quizQuery, quizID)
	if errors.Is(err, sql.ErrNoRows) {
		return study.Quiz{}, fmt.Errorf("quiz %d: %w", quizID, ErrNotFound)
	}
	if err != nil {
		return study.Quiz{}, dbError("select quiz", err)
	}
	return quiz, nil
}

// RecordQuizAnswer grades r.UserAnswer against the quiz and stores the
// attempt. The returned result carries the grading and the new ID.
func (s *DBStore) RecordQuizAnswer(ctx context.Context, r study.QuizResult) (study.QuizResult, error) {
	if err := r.Validate(); err != nil {
		return study.QuizResult{}, err
	}
	if r.AttemptedAt.IsZero() {
		r.AttemptedAt = s.now()
	}

	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		quiz, err := getQuiz(ctx, tx, r.QuizID)
		if err != nil {
			return err
		}
		r.SubjectID = quiz.SubjectID
		r.IsCorrect = quiz.Check(r.UserAnswer)

		res, err := tx.ExecContext(ctx,
			"INSERT INTO quiz_results (user_id, quiz_id, user_answer, is_correct, time_taken_seconds, attempted_at) VALUES (?, ?, ?, ?, ?, ?)",
			r.UserID, r.QuizID, r.UserAnswer, r.IsCorrect, r.TimeTakenSeconds, r.AttemptedAt,
		)
		if err != nil {
			return dbError("insert quiz result", err)
		}
		r.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		if !classified(err) {
			err = dbError("record quiz answer", err)
		}
		return study.QuizResult{}, err
	}
	return r, nil
}

// AddScheduleEntry validates and inserts a schedule entry.
func (s *DBStore) AddScheduleEntry(ctx context.Context, e study.ScheduleEntry) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO schedules (user_id, title, description, scheduled_date, event_type, is_completed) VALUES (?, ?, ?, ?, ?, ?)",
		e.UserID, e.Title, e.Description, e.ScheduledAt, e.EventType, e.IsCompleted,
	)
	if err != nil {
		return 0, dbError("insert schedule entry", err)
	}
	return res.LastInsertId()
}

// SetScheduleCompleted toggles the completion flag of one of the user's entries.
func (s *DBStore) SetScheduleCompleted(ctx context.Context, userID, entryID int64, completed bool) error {
	res, err := s.db.ExecContext(ctx, "UPDATE schedules SET is_completed = ? WHERE id = ? AND user_id = ?", completed, entryID, userID)
	if err != nil {
		return dbError("update schedule entry", err)
	}
	return requireAffected(res, fmt.Sprintf("schedule entry %d", entryID))
}

// DeleteScheduleEntry removes one of the user's entries.
func (s *DBStore) DeleteScheduleEntry(ctx context.Context, userID, entryID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM schedules WHERE id = ? AND user_id = ?", entryID, userID)
	if err != nil {
		return dbError("delete schedule entry", err)
	}
	return requireAffected(res, fmt.Sprintf("schedule entry %d", entryID))
}

// UpdateUser saves profile edits after validating them.
func (s *DBStore) UpdateUser(ctx context.Context, u study.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)

	res, err := s.db.ExecContext(ctx, "UPDATE users SET name = ?, email = ?, grade = ? WHERE id = ?", u.Name, u.Email, u.Grade, u.ID)
	if err != nil {
		return dbError("update user", err)
	}
	return requireAffected(res, fmt.Sprintf("user %d", u.ID))
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return dbError("rows affected", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// MySQL server error numbers.
const (
	mysqlTooManyConnections = 1040
	mysqlServerShutdown     = 1053
	mysqlDuplicateEntry     = 1062
	mysqlLockWaitTimeout    = 1205
	mysqlDeadlock           = 1213
	mysqlReadOnly           = 1290
	mysqlRowIsReferenced    = 1451
	mysqlNoReferencedRow    = 1452
)

// dbError classifies a failed statement. Only a store that cannot serve the
// statement right now is ErrStorageUnavailable; constraint violations are
// caller errors and anything else is returned as is.
func dbError(op string, err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlNoReferencedRow:
			return fmt.Errorf("%s: referenced row does not exist: %w", op, ErrNotFound)
		case mysqlDuplicateEntry, mysqlRowIsReferenced:
			return fmt.Errorf("%s: %w: %s", op, ErrConflict, mysqlErr.Message)
		case mysqlTooManyConnections, mysqlServerShutdown, mysqlLockWaitTimeout, mysqlDeadlock, mysqlReadOnly:
			return unavailable(op, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var netErr net.Error
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, mysql.ErrInvalidConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.As(err, &netErr):
		return unavailable(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// classified reports whether err already carries one of the store's kinds.
func classified(err error) bool {
	return errors.Is(err, ErrStorageUnavailable) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict)
}
