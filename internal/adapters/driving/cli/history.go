package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past import and clone runs",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one run's per-policy outcomes",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

// Flags for history.
var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum runs to list")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if runStore == nil {
		return errors.New("run history not configured")
	}

	runs, err := runStore.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		mode := string(run.Mode)
		if mode == "" {
			mode = "clone"
		}
		cmd.Printf("%s  %s  %-8s  %d imported, %d skipped, %d failed\n",
			run.StartedAt.Local().Format(time.DateTime), run.ID, mode,
			run.Imported, run.Skipped, run.Failed)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if runStore == nil {
		return errors.New("run history not configured")
	}

	run, err := runStore.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	renderRun(cmd, run)
	return nil
}
