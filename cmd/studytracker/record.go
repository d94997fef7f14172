package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/goals"
	"github.com/at-ishikawa/studytracker/internal/study"
)

func newLogCommand() *cobra.Command {
	var (
		subjectID    int64
		minutes      int
		content      string
		satisfaction int
		studiedAt    string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a study session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer w.Close()
			recorder, err := w.recorder()
			if err != nil {
				return err
			}

			at, err := parseTimestamp(studiedAt, w.loc, w.now)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			session := study.StudySession{
				UserID:          userID,
				SubjectID:       subjectID,
				DurationMinutes: minutes,
				Content:         content,
				StudiedAt:       at,
			}
			if cmd.Flags().Changed("satisfaction") {
				session.SatisfactionScore = &satisfaction
			}

			id, err := recorder.RecordStudySession(cmd.Context(), session)
			if err != nil {
				return fmt.Errorf("recorder.RecordStudySession() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded session %d: %d minutes\n", id, minutes)
			return nil
		},
	}

	cmd.Flags().Int64Var(&subjectID, "subject", 0, "subject id")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "duration in minutes")
	cmd.Flags().StringVar(&content, "content", "", "what was studied")
	cmd.Flags().IntVar(&satisfaction, "satisfaction", 0, "satisfaction from 1 to 5")
	cmd.Flags().StringVar(&studiedAt, "at", "", "when the session happened (defaults to now)")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func newQuizCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Add quizzes and record answers",
	}
	cmd.AddCommand(
		newQuizAddCommand(),
		newQuizRecordCommand(),
	)
	return cmd
}

func newQuizAddCommand() *cobra.Command {
	var (
		quiz    study.Quiz
		options string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a quiz to a subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer w.Close()
			recorder, err := w.recorder()
			if err != nil {
				return err
			}

			quiz.Options = study.QuizOptions(splitList(options))
			id, err := recorder.AddQuiz(cmd.Context(), quiz)
			if err != nil {
				return fmt.Errorf("recorder.AddQuiz() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added quiz %d\n", id)
			return nil
		},
	}

	cmd.Flags().Int64Var(&quiz.SubjectID, "subject", 0, "subject id")
	cmd.Flags().StringVar(&quiz.Title, "title", "", "quiz title")
	cmd.Flags().StringVar(&quiz.Question, "question", "", "question text")
	cmd.Flags().StringVar(&options, "options", "", "comma separated choices")
	cmd.Flags().StringVar(&quiz.CorrectAnswer, "answer", "", "correct answer")
	cmd.Flags().StringVar(&quiz.Explanation, "explanation", "", "explanation shown after answering")
	cmd.Flags().IntVar(&quiz.Difficulty, "difficulty", 1, "difficulty from 1 to 5")
	return cmd
}

func newQuizRecordCommand() *cobra.Command {
	var (
		quizID      int64
		answer      string
		timeSeconds int
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Grade and record an answer to a quiz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer w.Close()
			recorder, err := w.recorder()
			if err != nil {
				return err
			}

			result := study.QuizResult{
				UserID:      userID,
				QuizID:      quizID,
				UserAnswer:  answer,
				AttemptedAt: w.now().In(w.loc),
			}
			if cmd.Flags().Changed("seconds") {
				result.TimeTakenSeconds = &timeSeconds
			}
			graded, err := recorder.RecordQuizAnswer(cmd.Context(), result)
			if err != nil {
				return fmt.Errorf("recorder.RecordQuizAnswer() > %w", err)
			}

			out := cmd.OutOrStdout()
			if graded.IsCorrect {
				color.New(color.FgGreen, color.Bold).Fprintln(out, "Correct")
			} else {
				color.New(color.FgRed, color.Bold).Fprintln(out, "Incorrect")
			}
			quiz, err := recorder.Quiz(cmd.Context(), quizID)
			if err != nil {
				return fmt.Errorf("recorder.Quiz() > %w", err)
			}
			if !graded.IsCorrect {
				fmt.Fprintf(out, "Answer: %s\n", quiz.CorrectAnswer)
			}
			if quiz.Explanation != "" {
				fmt.Fprintln(out, quiz.Explanation)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&quizID, "quiz", 0, "quiz id")
	cmd.Flags().StringVar(&answer, "answer", "", "your answer")
	cmd.Flags().IntVar(&timeSeconds, "seconds", 0, "time taken in seconds")
	_ = cmd.MarkFlagRequired("quiz")
	return cmd
}

func newScheduleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage exams, homework and other planned events",
	}
	cmd.AddCommand(
		newScheduleAddCommand(),
		newScheduleListCommand(),
		newScheduleDoneCommand(),
		newScheduleDeleteCommand(),
	)
	return cmd
}

func newScheduleAddCommand() *cobra.Command {
	var (
		entry       study.ScheduleEntry
		eventType   string
		scheduledAt string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a planned event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedType, err := study.ParseEventType(eventType)
			if err != nil {
				return err
			}

			w, err := openWorkspace(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer w.Close()
			recorder, err := w.recorder()
			if err != nil {
				return err
			}

			entry.UserID = userID
			entry.EventType = parsedType
			entry.ScheduledAt, err = parseTimestamp(scheduledAt, w.loc, w.now)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}
			id, err := recorder.AddScheduleEntry(cmd.Context(), entry)
			if err != nil {
				return fmt.Errorf("recorder.AddScheduleEntry() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added schedule entry %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&entry.Title, "title", "", "title")
	cmd.Flags().StringVar(&entry.Description, "description", "", "description")
	cmd.Flags().StringVar(&scheduledAt, "date", "", "when it takes place")
	cmd.Flags().StringVar(&eventType, "type", string(study.EventTypeOther), "test, homework, review, mock_exam or other")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

// upcomingDays is the default range of schedule list.
const upcomingDays = 30

func newScheduleListCommand() *cobra.Command {
	var (
		dates     dateRange
		eventType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List planned events, the next 30 days by default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer w.Close()

			today := goals.DayWindow(w.now().In(w.loc)).Start
			interval, err := dates.interval(w.loc, today, upcomingDays)
			if err != nil {
				return err
			}
			q := eventstore.ScheduleQuery{Query: eventstore.Query{UserID: userID, Interval: interval}}
			if eventType != "" {
				parsedType, err := study.ParseEventType(eventType)
				if err != nil {
					return err
				}
				q.EventType = &parsedType
			}

			entries, err := w.backend.Store.ScheduleEntries(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("store.ScheduleEntries() > %w", err)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No planned events.")
				return nil
			}
			done := color.New(color.Faint)
			for _, e := range entries {
				line := fmt.Sprintf("%4d  %s  %-10s %s", e.ID, e.ScheduledAt.In(w.loc).Format("2006-01-02 15:04"), e.EventType, e.Title)
				if e.IsCompleted {
					done.Fprintln(out, line+" (done)")
					continue
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	dates.addFlags(cmd.Flags(), "listing")
	cmd.Flags().StringVar(&eventType, "type", "", "only list this event type")
	return cmd
}

func parseEntryID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("schedule entry id must be a positive integer: %q", arg)
	}
	return id, nil
}

func newScheduleDoneCommand() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <entry-id>",
		Short: "Mark a planned event as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			w, err := openWorkspace(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer w.Close()
			recorder, err := w.recorder()
			if err != nil {
				return err
			}

			if err := recorder.SetScheduleCompleted(cmd.Context(), userID, entryID, !undo); err != nil {
				return fmt.Errorf("recorder.SetScheduleCompleted() > %w", err)
			}
			state := "completed"
			if undo {
				state = "not completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked schedule entry %d as %s\n", entryID, state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "mark as not completed")
	return cmd
}

func newScheduleDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete a planned event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := parseEntryID(args[0])
			if err != nil {
				return err
			}

			w, err := openWorkspace(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer w.Close()
			recorder, err := w.recorder()
			if err != nil {
				return err
			}

			if err := recorder.DeleteScheduleEntry(cmd.Context(), userID, entryID); err != nil {
				return fmt.Errorf("recorder.DeleteScheduleEntry() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted schedule entry %d\n", entryID)
			return nil
		},
	}
}
