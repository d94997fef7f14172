package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studytracker/internal/cli"
	"github.com/at-ishikawa/studytracker/internal/report"
)

func newReportCommand() *cobra.Command {
	var (
		period  string
		dates   dateRange
		format  string
		output  string
		makePDF bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the study report for a week, month, semester or date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := cli.ParseFormat(format)
			if err != nil {
				return err
			}
			if makePDF && cmd.Flags().Changed("format") && outputFormat != cli.FormatMarkdown {
				return fmt.Errorf("--pdf renders markdown and cannot be combined with --format %s", outputFormat)
			}

			w, err := openWorkspace(cmd.Context(), serverURL == "")
			if err != nil {
				return err
			}
			defer w.Close()

			var p report.Period
			if dates.isSet() {
				if dates.from == "" || dates.to == "" {
					return fmt.Errorf("--from and --to must be given together")
				}
				interval, err := dates.interval(w.loc, w.now(), 0)
				if err != nil {
					return fmt.Errorf("%w: %w", report.ErrInvalidPeriod, err)
				}
				p = report.Custom(interval.Start, interval.End)
			} else {
				p, err = report.ParsePeriod(period)
				if err != nil {
					return err
				}
			}

			return cli.RunReport(cmd.Context(), w.source(), cmd.OutOrStdout(), userID, p, cli.ReportOptions{
				UserName:        w.userName(cmd.Context()),
				Format:          outputFormat,
				TemplatePath:    w.cfg.Templates.ReportTemplate,
				OutputPath:      output,
				PDF:             makePDF,
				ReportDirectory: w.cfg.Outputs.ReportDirectory,
			})
		},
	}

	cmd.Flags().StringVar(&period, "period", string(report.PeriodWeek), "week, month or semester")
	dates.addFlags(cmd.Flags(), "custom report")
	cmd.Flags().StringVar(&format, "format", string(cli.FormatText), "text, markdown or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to this file")
	cmd.Flags().BoolVar(&makePDF, "pdf", false, "export the report as PDF")
	return cmd
}

func newAnalyzeCommand() *cobra.Command {
	var window, format string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Break down study time over the last week, month, quarter or all time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			analysisWindow, err := report.ParseAnalysisWindow(window)
			if err != nil {
				return err
			}
			outputFormat, err := cli.ParseFormat(format)
			if err != nil {
				return err
			}

			w, err := openWorkspace(cmd.Context(), serverURL == "")
			if err != nil {
				return err
			}
			defer w.Close()

			analysis, err := w.source().Analysis(cmd.Context(), userID, analysisWindow)
			if err != nil {
				return fmt.Errorf("source.Analysis() > %w", err)
			}
			renderer := cli.NewRenderer(cmd.OutOrStdout())
			if outputFormat == cli.FormatJSON {
				return renderer.JSON(analysis)
			}
			renderer.Analysis(analysis)
			return nil
		},
	}

	cmd.Flags().StringVar(&window, "window", string(report.LastWeek), "week, month, quarter or all")
	cmd.Flags().StringVar(&format, "format", string(cli.FormatText), "text or json")
	return cmd
}

func newSubjectCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "subject <subject-id>",
		Short: "Show all-time statistics of one subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subjectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || subjectID <= 0 {
				return fmt.Errorf("subject id must be a positive integer: %q", args[0])
			}
			outputFormat, err := cli.ParseFormat(format)
			if err != nil {
				return err
			}

			w, err := openWorkspace(cmd.Context(), serverURL == "")
			if err != nil {
				return err
			}
			defer w.Close()

			detail, err := w.source().SubjectDetail(cmd.Context(), userID, subjectID)
			if err != nil {
				return fmt.Errorf("source.SubjectDetail() > %w", err)
			}
			renderer := cli.NewRenderer(cmd.OutOrStdout())
			if outputFormat == cli.FormatJSON {
				return renderer.JSON(detail)
			}
			renderer.SubjectDetail(detail)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(cli.FormatText), "text or json")
	return cmd
}

func newOverviewCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show recent activity, quiz attempts and weekly goal progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := cli.ParseFormat(format)
			if err != nil {
				return err
			}

			w, err := openWorkspace(cmd.Context(), serverURL == "")
			if err != nil {
				return err
			}
			defer w.Close()

			overview, err := w.source().Overview(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("source.Overview() > %w", err)
			}
			renderer := cli.NewRenderer(cmd.OutOrStdout())
			if outputFormat == cli.FormatJSON {
				return renderer.JSON(overview)
			}
			renderer.Overview(overview)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(cli.FormatText), "text or json")
	return cmd
}

func newProfileCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the user and their all-time totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := cli.ParseFormat(format)
			if err != nil {
				return err
			}

			w, err := openWorkspace(cmd.Context(), serverURL == "")
			if err != nil {
				return err
			}
			defer w.Close()

			lifetime, err := w.source().Lifetime(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("source.Lifetime() > %w", err)
			}
			renderer := cli.NewRenderer(cmd.OutOrStdout())
			if outputFormat == cli.FormatJSON {
				return renderer.JSON(lifetime)
			}
			renderer.Lifetime(lifetime)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(cli.FormatText), "text or json")
	return cmd
}
