package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile  string
	userID      int64 = 1
	storeDriver string
	serverURL   string
	asOf        string
)

func main() {
	var debugMode bool
	rootCommand := cobra.Command{
		Use:           "studytracker",
		Short:         "Track study time, quizzes and goals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
	}
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path")
	flags.BoolVar(&debugMode, "debug", false, "Enable debug mode")
	flags.Int64Var(&userID, "user", 1, "user id")
	flags.StringVar(&storeDriver, "store", "", "override the configured store driver (db or yaml)")
	flags.StringVar(&serverURL, "server", "", "read reports from a running studytracker-server at this URL")
	flags.StringVar(&asOf, "as-of", "", "treat this date (YYYY-MM-DD, end of day) or RFC3339 time as now; local store only")

	rootCommand.AddCommand(
		newReportCommand(),
		newAnalyzeCommand(),
		newSubjectCommand(),
		newOverviewCommand(),
		newProfileCommand(),
		newGoalsCommand(),
		newLogCommand(),
		newQuizCommand(),
		newScheduleCommand(),
		newDataCommand(),
		newMigrateCommand(),
	)
	if err := rootCommand.Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}
