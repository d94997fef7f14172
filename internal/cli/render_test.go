package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/goals"
	"github.com/at-ishikawa/studytracker/internal/report"
	"github.com/at-ishikawa/studytracker/internal/statistics"
	"github.com/at-ishikawa/studytracker/internal/study"
)

func disableColor(t *testing.T) {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })
}

var (
	generatedAt = time.Date(2025, 6, 5, 21, 0, 0, 0, time.UTC)
	sampleWeek  = eventstore.Interval{
		Start: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
	}
)

func weeklyReport() report.Report {
	return report.Report{
		UserID:           1,
		Status:           report.StatusAvailable,
		Period:           report.PeriodWeek,
		Interval:         &sampleWeek,
		TotalHours:       1.5,
		SessionCount:     3,
		MeanSatisfaction: 4,
		HasSatisfaction:  true,
		Subjects: []report.SubjectHours{
			{SubjectID: 1, SubjectName: "Math I", Category: study.CategoryMathematics, Hours: 1.5},
		},
		Advice:      report.AdviceNeedsImprovement,
		GeneratedAt: generatedAt,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: FormatText},
		{input: "text", want: FormatText},
		{input: "Markdown", want: FormatMarkdown},
		{input: "md", want: FormatMarkdown},
		{input: "json", want: FormatJSON},
		{input: "html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderer_Report(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name   string
		report report.Report
		format Format

		wantContains    []string
		wantNotContains []string
	}{
		{
			name:   "text",
			report: weeklyReport(),
			format: FormatText,
			wantContains: []string{
				"Study report (week)\n",
				"2025-06-02 to 2025-06-08\n",
				"Total:    1.5 hours in 3 sessions\n",
				"Mood:     4.0 / 5\n",
				"Math I",
				"needs_improvement Study time is a bit short. Try to study a little every day.\n",
			},
		},
		{
			name: "text for an unavailable period",
			report: report.Report{
				UserID:      1,
				Status:      report.StatusUnavailable,
				Period:      report.PeriodSemester,
				Message:     report.NotYetAvailable,
				GeneratedAt: generatedAt,
			},
			format:          FormatText,
			wantContains:    []string{"Study report (semester)\nnot yet available\n"},
			wantNotContains: []string{"Total:"},
		},
		{
			name:   "markdown",
			report: weeklyReport(),
			format: FormatMarkdown,
			wantContains: []string{
				"# Study report: Hanako\n",
				"| Math I | mathematics | 1.5 |",
				"**needs_improvement**",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewRenderer(&buf).Report(tt.report, "Hanako", tt.format, ""))

			got := buf.String()
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want)
			}
			for _, notWant := range tt.wantNotContains {
				assert.NotContains(t, got, notWant)
			}
		})
	}
}

func TestRenderer_Report_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf).Report(weeklyReport(), "", FormatJSON, ""))

	var got report.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1.5, got.TotalHours)
	assert.Equal(t, report.AdviceNeedsImprovement, got.Advice)
}

func TestReportTemplateData(t *testing.T) {
	got := ReportTemplateData(weeklyReport(), "Hanako")

	assert.Equal(t, "Hanako", got.UserName)
	assert.True(t, got.Available)
	assert.Equal(t, sampleWeek.Start, got.FirstDay)
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), got.LastDay)
	require.Len(t, got.Subjects, 1)
	assert.Equal(t, "mathematics", got.Subjects[0].Category)
	assert.Equal(t, report.AdviceNeedsImprovement.Message(), got.AdviceMessage)
}

func TestRenderer_Analysis(t *testing.T) {
	disableColor(t)
	peak := 20

	var buf bytes.Buffer
	NewRenderer(&buf).Analysis(report.Analysis{
		UserID:       1,
		Window:       report.LastWeek,
		Interval:     sampleWeek,
		TotalMinutes: 135,
		StudyDays:    2,
		Subjects: []statistics.SubjectTotal{
			{SubjectID: 1, SubjectName: "Math I", TotalMinutes: 90},
			{SubjectID: 2, SubjectName: "English Communication", TotalMinutes: 45},
		},
		Categories: []statistics.CategoryTotal{{Category: study.CategoryMathematics, TotalMinutes: 90}},
		PeakHour:   &peak,
		Stats:      statistics.Stats{Mean: 1.1, Max: 1.5, Sum: 2.3, Count: 2},
	})

	got := buf.String()
	assert.Contains(t, got, "Study analysis (week)\n2025-06-02 to 2025-06-08\n")
	assert.Contains(t, got, "Total:       2h 15m\n")
	assert.Contains(t, got, "Peak hour:   20:00\n")
	assert.Contains(t, got, "English Communication")
	assert.Contains(t, got, "45m\n")
	assert.Contains(t, got, "mathematics")
}

func TestRenderer_Analysis_AllTime(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	NewRenderer(&buf).Analysis(report.Analysis{Window: report.AllTime, Interval: eventstore.AllTime(generatedAt)})

	got := buf.String()
	assert.Contains(t, got, "all time\n")
	assert.NotContains(t, got, "Peak hour")
}

func TestRenderer_SubjectDetail(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	NewRenderer(&buf).SubjectDetail(report.SubjectDetail{
		Subject:      study.Subject{ID: 1, Name: "Math I", Category: study.CategoryMathematics},
		TotalMinutes: 150,
		StudyDays:    2,
		Quiz:         statistics.QuizStats{Attempts: 4, Correct: 3, Accuracy: 75},
		Recent: []statistics.DailyTotal{
			{Date: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), TotalMinutes: 90},
		},
	})

	got := buf.String()
	assert.Contains(t, got, "Math I\nmathematics\n")
	assert.Contains(t, got, "Total:      2h 30m\n")
	assert.Contains(t, got, "Quiz:       3/4 correct (75.0%)\n")
	assert.Contains(t, got, "2025-06-04  1h 30m\n")
}

func TestRenderer_OverviewAndGoals(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	renderer := NewRenderer(&buf)
	renderer.Overview(report.Overview{
		Last7DaysMinutes:  90,
		MonthStudyDays:    3,
		QuizAttempts:      2,
		WeeklyGoalPercent: 7.5,
	})
	renderer.GoalProgress(goals.Attainment{
		Goals:           goals.DefaultGoals(),
		WeeklyHours:     5,
		WeeklyPercent:   25,
		TodayHours:      1.5,
		DailyPercent:    50,
		Subjects:        2,
		SubjectsPercent: 40,
	})
	renderer.Goals(goals.DefaultGoals())

	got := buf.String()
	assert.Contains(t, got, "Last 7 days:        1h 30m\n")
	assert.Contains(t, got, "Quizzes (30 days):  2\n")
	assert.Contains(t, got, "Weekly goal:        8%\n")
	assert.Contains(t, got, "This week:   5.0 / 20.0 hours   25%\n")
	assert.Contains(t, got, "Today:       1.5 / 3.0 hours   50%\n")
	assert.Contains(t, got, "Subjects per week: 5\n")
}

func TestRenderer_Lifetime(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	NewRenderer(&buf).Lifetime(report.Lifetime{
		User:         study.User{ID: 1, Name: "Hanako", Email: "hanako@example.com", Grade: 2},
		TotalHours:   12.5,
		SessionCount: 9,
		StudyDays:    6,
		Subjects:     []report.SubjectHours{{SubjectID: 1, SubjectName: "Math I", Hours: 8}},
	})

	got := buf.String()
	assert.Contains(t, got, "Hanako\n2nd year, hanako@example.com\n")
	assert.Contains(t, got, "Total:      12.5 hours in 9 sessions\n")
	assert.Contains(t, got, "Math I")
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", formatMinutes(0))
	assert.Equal(t, "45m", formatMinutes(45))
	assert.Equal(t, "1h 00m", formatMinutes(60))
	assert.Equal(t, "2h 15m", formatMinutes(135))
}
