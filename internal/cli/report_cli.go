package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/at-ishikawa/studytracker/internal/pdf"
	"github.com/at-ishikawa/studytracker/internal/report"
)

// ReportOptions control where and how RunReport writes a report.
type ReportOptions struct {
	UserName     string
	Format       Format
	TemplatePath string
	// OutputPath is a file to write instead of out. With PDF it names the
	// PDF file.
	OutputPath string
	PDF        bool
	// ReportDirectory receives PDF exports when OutputPath is empty.
	ReportDirectory string
}

// RunReport fetches the report for period from source and writes it.
func RunReport(ctx context.Context, source ReportSource, out io.Writer, userID int64, period report.Period, opts ReportOptions) error {
	rep, err := source.Report(ctx, userID, period)
	if err != nil {
		return fmt.Errorf("source.Report() > %w", err)
	}

	if opts.PDF {
		var markdown bytes.Buffer
		if err := NewRenderer(&markdown).Report(rep, opts.UserName, FormatMarkdown, opts.TemplatePath); err != nil {
			return err
		}
		pdfPath := opts.OutputPath
		if pdfPath == "" {
			pdfPath = filepath.Join(opts.ReportDirectory, reportFileName(userID, rep)+".pdf")
		}
		written, err := pdf.Write(markdown.Bytes(), pdfPath)
		if err != nil {
			return fmt.Errorf("pdf.Write() > %w", err)
		}
		slog.Default().Debug("wrote report pdf", slog.String("path", written))
		fmt.Fprintf(out, "PDF saved to %s\n", written)
		return nil
	}

	if opts.OutputPath == "" {
		return NewRenderer(out).Report(rep, opts.UserName, opts.Format, opts.TemplatePath)
	}

	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(opts.OutputPath), err)
	}
	file, err := os.Create(opts.OutputPath)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", opts.OutputPath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Default().Error("failed to close report file",
				slog.String("path", opts.OutputPath),
				slog.Any("error", closeErr),
			)
		}
	}()

	if err := NewRenderer(file).Report(rep, opts.UserName, opts.Format, opts.TemplatePath); err != nil {
		return err
	}
	fmt.Fprintf(out, "Report saved to %s\n", opts.OutputPath)
	return nil
}

// reportFileName is "report-<user>-<period>-<generated date>".
func reportFileName(userID int64, rep report.Report) string {
	period := string(rep.Period)
	if rep.Interval != nil && rep.Period == report.PeriodCustom {
		first, last := inclusiveDays(*rep.Interval)
		period = first.Format("20060102") + "-" + last.Format("20060102")
	}
	return strings.Join([]string{
		"report",
		fmt.Sprint(userID),
		period,
		rep.GeneratedAt.Format("20060102"),
	}, "-")
}
