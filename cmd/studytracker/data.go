package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studytracker/internal/datasync"
	"github.com/at-ishikawa/studytracker/internal/eventstore"
)

func newDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Move study events between YAML snapshots and the database",
	}
	dataCmd.AddCommand(newDataImportCommand(), newDataExportCommand())
	return dataCmd
}

func newDataImportCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <snapshot.yml>",
		Short: "Import a user's events from a YAML snapshot into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := openWorkspace(ctx, true)
			if err != nil {
				return err
			}
			defer w.Close()

			recorder, err := w.recorder()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			importer := datasync.NewImporter(eventstore.NewYAMLStore(args[0]), w.backend.Store, recorder, out)
			result, err := importer.ImportUser(ctx, userID, w.now(), datasync.ImportOptions{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("importer.ImportUser() > %w", err)
			}

			fmt.Fprintln(out, "\nImport Summary:")
			if dryRun {
				fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			fmt.Fprintf(out, "  Study sessions: %d new, %d skipped\n", result.SessionsNew, result.SessionsSkipped)
			fmt.Fprintf(out, "  Quiz results:   %d new, %d skipped\n", result.QuizResultsNew, result.QuizResultsSkipped)
			fmt.Fprintf(out, "  Schedules:      %d new, %d skipped\n", result.SchedulesNew, result.SchedulesSkipped)
			fmt.Fprintf(out, "  Warnings:       %d\n", result.Warnings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	return cmd
}

func newDataExportCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's events from the database as a YAML snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := openWorkspace(ctx, true)
			if err != nil {
				return err
			}
			defer w.Close()

			recorder, err := w.recorder()
			if err != nil {
				return err
			}

			snapshot, err := datasync.NewExporter(w.backend.Store, recorder).Export(ctx, userID, w.now())
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}

			var out io.Writer = cmd.OutOrStdout()
			if outputPath != "" {
				file, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("os.Create(%s) > %w", outputPath, err)
				}
				defer func() {
					_ = file.Close()
				}()
				out = file
			}
			if err := datasync.WriteSnapshot(out, snapshot); err != nil {
				return err
			}
			if outputPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Snapshot saved to %s\n", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the snapshot to this file instead of stdout")
	return cmd
}
