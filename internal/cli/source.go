package cli

import (
	"context"

	"github.com/at-ishikawa/studytracker/internal/goals"
	"github.com/at-ishikawa/studytracker/internal/report"
)

//go:generate mockgen -source=source.go -destination=../mocks/cli/mock_source.go -package=mock_cli ReportSource

// ReportSource produces everything the CLI renders. LocalSource reads the
// configured store; apiclient.Client asks a running server.
type ReportSource interface {
	Report(ctx context.Context, userID int64, period report.Period) (report.Report, error)
	Analysis(ctx context.Context, userID int64, window report.AnalysisWindow) (report.Analysis, error)
	SubjectDetail(ctx context.Context, userID, subjectID int64) (report.SubjectDetail, error)
	Overview(ctx context.Context, userID int64) (report.Overview, error)
	Lifetime(ctx context.Context, userID int64) (report.Lifetime, error)
	GoalProgress(ctx context.Context, userID int64) (goals.Attainment, error)
}

// LocalSource computes reports in process.
type LocalSource struct {
	Generator *report.Generator
	Tracker   *goals.Tracker
}

var _ ReportSource = LocalSource{}

func (s LocalSource) Report(ctx context.Context, userID int64, period report.Period) (report.Report, error) {
	return s.Generator.Generate(ctx, userID, period)
}

func (s LocalSource) Analysis(ctx context.Context, userID int64, window report.AnalysisWindow) (report.Analysis, error) {
	return s.Generator.Analyze(ctx, userID, window)
}

func (s LocalSource) SubjectDetail(ctx context.Context, userID, subjectID int64) (report.SubjectDetail, error) {
	return s.Generator.SubjectDetail(ctx, userID, subjectID)
}

func (s LocalSource) Overview(ctx context.Context, userID int64) (report.Overview, error) {
	return s.Generator.Overview(ctx, userID, s.Tracker.Goals(userID))
}

func (s LocalSource) Lifetime(ctx context.Context, userID int64) (report.Lifetime, error) {
	return s.Generator.Lifetime(ctx, userID)
}

func (s LocalSource) GoalProgress(ctx context.Context, userID int64) (goals.Attainment, error) {
	return s.Tracker.Attainment(ctx, userID)
}
