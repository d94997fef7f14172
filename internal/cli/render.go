package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/studytracker/internal/assets"
	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/goals"
	"github.com/at-ishikawa/studytracker/internal/report"
)

// Format selects how a result is written.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatMarkdown, FormatJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown format %q (expected text, markdown or json)", s)
}

// Renderer writes results for a terminal.
type Renderer struct {
	out     io.Writer
	bold    *color.Color
	heading *color.Color
	faint   *color.Color
	advice  map[report.Advice]*color.Color
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:     out,
		bold:    color.New(color.Bold),
		heading: color.New(color.Bold, color.Underline),
		faint:   color.New(color.Faint),
		advice: map[report.Advice]*color.Color{
			report.AdviceExcellent:        color.New(color.FgGreen, color.Bold),
			report.AdviceGood:             color.New(color.FgYellow, color.Bold),
			report.AdviceNeedsImprovement: color.New(color.FgRed, color.Bold),
		},
	}
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v interface{}) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	return nil
}

// Report writes rep in format. templatePath overrides the embedded
// markdown template.
func (r *Renderer) Report(rep report.Report, userName string, format Format, templatePath string) error {
	switch format {
	case FormatJSON:
		return r.JSON(rep)
	case FormatMarkdown:
		return assets.WriteReport(r.out, templatePath, ReportTemplateData(rep, userName))
	}

	r.heading.Fprintf(r.out, "Study report (%s)\n", rep.Period)
	if !rep.Available() {
		fmt.Fprintf(r.out, "%s\n", rep.Message)
		return nil
	}
	if rep.Interval != nil {
		first, last := inclusiveDays(*rep.Interval)
		r.faint.Fprintf(r.out, "%s to %s\n", first.Format(time.DateOnly), last.Format(time.DateOnly))
	}
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Total:    %s hours in %d sessions\n", r.bold.Sprintf("%.1f", rep.TotalHours), rep.SessionCount)
	if rep.HasSatisfaction {
		fmt.Fprintf(r.out, "Mood:     %.1f / 5\n", rep.MeanSatisfaction)
	}

	if len(rep.Subjects) > 0 {
		fmt.Fprintln(r.out)
		r.bold.Fprintln(r.out, "Subjects")
		for _, s := range rep.Subjects {
			fmt.Fprintf(r.out, "  %-24s %-16s %5.1fh\n", s.SubjectName, s.Category, s.Hours)
		}
	}

	fmt.Fprintln(r.out)
	adviceColor, ok := r.advice[rep.Advice]
	if !ok {
		adviceColor = r.bold
	}
	fmt.Fprintf(r.out, "%s %s\n", adviceColor.Sprint(string(rep.Advice)), rep.Advice.Message())
	return nil
}

// ReportTemplateData flattens rep for the markdown template.
func ReportTemplateData(rep report.Report, userName string) assets.ReportTemplate {
	data := assets.ReportTemplate{
		UserName:         userName,
		Period:           string(rep.Period),
		Available:        rep.Available(),
		Message:          rep.Message,
		TotalHours:       rep.TotalHours,
		SessionCount:     rep.SessionCount,
		HasSatisfaction:  rep.HasSatisfaction,
		MeanSatisfaction: rep.MeanSatisfaction,
		Advice:           string(rep.Advice),
		AdviceMessage:    rep.Advice.Message(),
		GeneratedAt:      rep.GeneratedAt,
	}
	if rep.Interval != nil {
		data.FirstDay, data.LastDay = inclusiveDays(*rep.Interval)
	}
	for _, s := range rep.Subjects {
		data.Subjects = append(data.Subjects, assets.ReportSubject{
			Name:     s.SubjectName,
			Category: string(s.Category),
			Hours:    s.Hours,
		})
	}
	return data
}

// inclusiveDays returns the first and last calendar day of a half-open
// interval.
func inclusiveDays(i eventstore.Interval) (time.Time, time.Time) {
	return i.Start, i.End.AddDate(0, 0, -1)
}

func (r *Renderer) Analysis(a report.Analysis) {
	r.heading.Fprintf(r.out, "Study analysis (%s)\n", a.Window)
	if a.Window == report.AllTime {
		r.faint.Fprintln(r.out, "all time")
	} else {
		first, last := inclusiveDays(a.Interval)
		r.faint.Fprintf(r.out, "%s to %s\n", first.Format(time.DateOnly), last.Format(time.DateOnly))
	}
	fmt.Fprintln(r.out)

	fmt.Fprintf(r.out, "Total:       %s\n", r.bold.Sprint(formatMinutes(a.TotalMinutes)))
	fmt.Fprintf(r.out, "Study days:  %d\n", a.StudyDays)
	fmt.Fprintf(r.out, "Daily hours: mean %.1f, max %.1f\n", a.Stats.Mean, a.Stats.Max)
	if a.PeakHour != nil {
		fmt.Fprintf(r.out, "Peak hour:   %02d:00\n", *a.PeakHour)
	}

	if len(a.Subjects) > 0 {
		fmt.Fprintln(r.out)
		r.bold.Fprintln(r.out, "Subjects")
		for _, s := range a.Subjects {
			fmt.Fprintf(r.out, "  %-24s %s\n", s.SubjectName, formatMinutes(s.TotalMinutes))
		}
	}
	if len(a.Categories) > 0 {
		fmt.Fprintln(r.out)
		r.bold.Fprintln(r.out, "Categories")
		for _, c := range a.Categories {
			fmt.Fprintf(r.out, "  %-24s %s\n", c.Category, formatMinutes(c.TotalMinutes))
		}
	}
}

func (r *Renderer) SubjectDetail(d report.SubjectDetail) {
	hours, minutes := d.HoursAndMinutes()
	r.heading.Fprintf(r.out, "%s\n", d.Subject.Name)
	r.faint.Fprintf(r.out, "%s\n", d.Subject.Category)
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Total:      %dh %dm\n", hours, minutes)
	fmt.Fprintf(r.out, "Study days: %d\n", d.StudyDays)
	fmt.Fprintf(r.out, "Quiz:       %d/%d correct (%.1f%%)\n", d.Quiz.Correct, d.Quiz.Attempts, d.Quiz.Accuracy)

	if len(d.Recent) > 0 {
		fmt.Fprintln(r.out)
		r.bold.Fprintln(r.out, "Recent days")
		for _, day := range d.Recent {
			fmt.Fprintf(r.out, "  %s  %s\n", day.Date.Format(time.DateOnly), formatMinutes(day.TotalMinutes))
		}
	}
}

func (r *Renderer) Overview(o report.Overview) {
	r.heading.Fprintln(r.out, "Overview")
	fmt.Fprintf(r.out, "Last 7 days:        %s\n", formatMinutes(o.Last7DaysMinutes))
	fmt.Fprintf(r.out, "Study days (month): %d\n", o.MonthStudyDays)
	fmt.Fprintf(r.out, "Quizzes (30 days):  %d\n", o.QuizAttempts)
	fmt.Fprintf(r.out, "Weekly goal:        %s\n", r.bold.Sprintf("%.0f%%", o.WeeklyGoalPercent))

	if len(o.Recent) > 0 {
		fmt.Fprintln(r.out)
		r.bold.Fprintln(r.out, "Recent sessions")
		for _, s := range o.Recent {
			fmt.Fprintf(r.out, "  %s  %-24s %s\n", s.StudiedAt.Format("2006-01-02 15:04"), s.SubjectName, formatMinutes(s.DurationMinutes))
		}
	}
}

func (r *Renderer) GoalProgress(a goals.Attainment) {
	r.heading.Fprintln(r.out, "Goal progress")
	fmt.Fprintf(r.out, "This week: %5.1f / %.1f hours  %s\n", a.WeeklyHours, a.Goals.WeeklyHours, r.bold.Sprintf("%3.0f%%", a.WeeklyPercent))
	fmt.Fprintf(r.out, "Today:     %5.1f / %.1f hours  %s\n", a.TodayHours, a.Goals.DailyHours, r.bold.Sprintf("%3.0f%%", a.DailyPercent))
	fmt.Fprintf(r.out, "Subjects:  %5d / %d          %s\n", a.Subjects, a.Goals.SubjectsPerWeek, r.bold.Sprintf("%3.0f%%", a.SubjectsPercent))
}

func (r *Renderer) Goals(g goals.Goals) {
	fmt.Fprintf(r.out, "Weekly hours:      %.1f\n", g.WeeklyHours)
	fmt.Fprintf(r.out, "Daily hours:       %.1f\n", g.DailyHours)
	fmt.Fprintf(r.out, "Subjects per week: %d\n", g.SubjectsPerWeek)
}

func (r *Renderer) Lifetime(l report.Lifetime) {
	r.heading.Fprintf(r.out, "%s\n", l.User.Name)
	r.faint.Fprintf(r.out, "%s, %s\n", l.User.GradeLabel(), l.User.Email)
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Total:      %.1f hours in %d sessions\n", l.TotalHours, l.SessionCount)
	fmt.Fprintf(r.out, "Study days: %d\n", l.StudyDays)
	fmt.Fprintf(r.out, "Quiz:       %d/%d correct (%.1f%%)\n", l.Quiz.Correct, l.Quiz.Attempts, l.Quiz.Accuracy)
	if len(l.Subjects) > 0 {
		fmt.Fprintln(r.out)
		r.bold.Fprintln(r.out, "Subjects")
		for _, s := range l.Subjects {
			fmt.Fprintf(r.out, "  %-24s %5.1fh\n", s.SubjectName, s.Hours)
		}
	}
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
