package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/initstring/pwnreport/internal/config"
	"github.com/initstring/pwnreport/internal/database"
	"github.com/initstring/pwnreport/internal/model"
	"github.com/initstring/pwnreport/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
// This command reads past check runs from the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past check runs and their results",
		Long: `History lists check runs recorded in the local database, newest first,
with the input file and result counts for each.

Examples:
  # List all recorded runs
  pwnreport history

  # Show the breach report for a specific run
  pwnreport history --run-id 3

  # Machine-readable output
  pwnreport history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64P("run-id", "i", 0,
		"Show the full breach report for a specific run")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	runID, err := cmd.Flags().GetInt64("run-id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if runID > 0 {
		return showRun(ctx, db, runID, jsonOutput)
	}
	return listRuns(ctx, db, jsonOutput)
}

// listRuns prints all recorded runs, newest first.
func listRuns(ctx context.Context, db *database.HistoryDB, jsonOutput bool) error {
	runs, err := db.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No check runs recorded yet.")
		fmt.Println("\nUse 'pwnreport check' to check a file; completed runs are recorded here.")
		return nil
	}

	fmt.Printf("Recorded runs (%d):\n\n", len(runs))
	fmt.Printf("  %-6s  %-20s  %-30s  %-8s  %-8s  %s\n",
		"ID", "Date", "Input", "Emails", "Pwned", "Breaches")
	fmt.Println("  " + strings.Repeat("-", 90))

	for _, run := range runs {
		fmt.Printf("  %-6d  %-20s  %-30s  %-8d  %-8d  %d\n",
			run.ID,
			run.CheckedAt.Format("2006-01-02 15:04:05"),
			truncate(run.InputFile, 30),
			run.EmailsChecked,
			run.AccountsPwned,
			run.BreachCount,
		)
	}

	fmt.Println("\nUse 'pwnreport history --run-id <id>' to see a run's breach report.")

	return nil
}

// showRun prints the stored breach report for a single run.
func showRun(ctx context.Context, db *database.HistoryDB, runID int64, jsonOutput bool) error {
	index, err := db.GetRunBreaches(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", runID, err)
	}

	if index.Len() == 0 {
		fmt.Printf("No breach data recorded for run %d.\n", runID)
		return nil
	}

	// Rebuild a report shell so the standard writers can render it.
	checkReport := model.NewCheckReport("")
	checkReport.Breaches = index

	var writer report.Writer
	if jsonOutput {
		writer = report.NewJSONWriter(os.Stdout, report.WithPrettyPrint())
	} else {
		writer = report.NewPwnedWriter(os.Stdout)
	}

	if _, err := writer.Write(checkReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
