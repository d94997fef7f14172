package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studytracker/internal/cli"
	"github.com/at-ishikawa/studytracker/internal/goals"
)

func newGoalsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show, set and check study goals",
	}
	cmd.AddCommand(
		newGoalsShowCommand(),
		newGoalsSetCommand(),
		newGoalsProgressCommand(),
	)
	return cmd
}

func newGoalsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the goals in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer w.Close()

			var g goals.Goals
			if w.remote != nil {
				g, err = w.remote.Goals(cmd.Context(), userID)
				if err != nil {
					return fmt.Errorf("remote.Goals() > %w", err)
				}
			} else {
				g, err = goals.FromConfig(w.cfg.Goals)
				if err != nil {
					return err
				}
			}
			cli.NewRenderer(cmd.OutOrStdout()).Goals(g)
			return nil
		},
	}
}

func newGoalsSetCommand() *cobra.Command {
	var g goals.Goals

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the goals kept by a running server",
		Long: "Goals are kept by the server process for each user and reset to the configured defaults when it restarts.\n" +
			"Change the goals section of the config file to change the defaults.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := g.Validate(); err != nil {
				return err
			}
			if serverURL == "" {
				return errors.New("goals set needs --server; local runs use the goals section of the config file")
			}

			w, err := openWorkspace(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer w.Close()

			saved, err := w.remote.SetGoals(cmd.Context(), userID, g)
			if err != nil {
				return fmt.Errorf("remote.SetGoals() > %w", err)
			}
			cli.NewRenderer(cmd.OutOrStdout()).Goals(saved)
			return nil
		},
	}

	defaults := goals.DefaultGoals()
	cmd.Flags().Float64Var(&g.WeeklyHours, "weekly-hours", defaults.WeeklyHours, "weekly study hours")
	cmd.Flags().Float64Var(&g.DailyHours, "daily-hours", defaults.DailyHours, "daily study hours")
	cmd.Flags().IntVar(&g.SubjectsPerWeek, "subjects", defaults.SubjectsPerWeek, "distinct subjects per week")
	return cmd
}

func newGoalsProgressCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show this week's and today's progress against the goals",
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

			attainment, err := w.source().GoalProgress(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("source.GoalProgress() > %w", err)
			}
			renderer := cli.NewRenderer(cmd.OutOrStdout())
			if outputFormat == cli.FormatJSON {
				return renderer.JSON(attainment)
			}
			renderer.GoalProgress(attainment)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(cli.FormatText), "text or json")
	return cmd
}
