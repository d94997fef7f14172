package assets

import (
	"fmt"
	"io"
	"time"
)

// ReportTemplate is the data passed to the report template.
type ReportTemplate struct {
	UserName  string
	Period    string
	Available bool
	Message   string

	// FirstDay and LastDay are inclusive calendar dates.
	FirstDay time.Time
	LastDay  time.Time

	TotalHours       float64
	SessionCount     int
	HasSatisfaction  bool
	MeanSatisfaction float64
	Subjects         []ReportSubject

	Advice        string
	AdviceMessage string
	GeneratedAt   time.Time
}

// ReportSubject is one row of the per-subject table.
type ReportSubject struct {
	Name     string
	Category string
	Hours    float64
}

func WriteReport(output io.Writer, templatePath string, templateData ReportTemplate) error {
	tmpl, err := ParseReportTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseReportTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
