package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/policyctl/internal/core/domain"
)

// Styles for comparison and run output.
var (
	addedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	removedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	modifiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	unchangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // grey
	headingStyle   = lipgloss.NewStyle().Bold(true)
)

// renderReport prints a comparison report grouped by policy type.
func renderReport(cmd *cobra.Command, report *domain.ComparisonReport, showUnchanged bool) {
	for _, t := range domain.AllPolicyTypes() {
		result, ok := report.Results[t]
		if !ok {
			continue
		}

		cmd.Println(headingStyle.Render(t.Label()))
		for _, doc := range result.Added {
			cmd.Printf("  %s %s\n", addedStyle.Render("+"), doc.DisplayName())
		}
		for _, doc := range result.Removed {
			cmd.Printf("  %s %s\n", removedStyle.Render("-"), doc.DisplayName())
		}
		for _, entry := range result.Modified {
			cmd.Printf("  %s %s\n", modifiedStyle.Render("~"), entry.Name)
			for _, change := range entry.Changes {
				cmd.Printf("      %s: %s -> %s (%s)\n",
					change.Property, change.Before, change.After, change.Kind)
			}
		}
		if showUnchanged {
			for _, entry := range result.Unchanged {
				cmd.Printf("  %s %s\n", unchangedStyle.Render("="), entry.Name)
			}
		}
		cmd.Println()
	}

	cmd.Println(headingStyle.Render("Summary"))
	cmd.Printf("  %s  %s  %s  %s\n",
		addedStyle.Render(fmt.Sprintf("%d added", report.TotalAdded)),
		removedStyle.Render(fmt.Sprintf("%d removed", report.TotalRemoved)),
		modifiedStyle.Render(fmt.Sprintf("%d modified", report.TotalModified)),
		unchangedStyle.Render(fmt.Sprintf("%d unchanged", report.TotalUnchanged)))
}

// renderRun prints an import or clone run's outcomes and counters.
func renderRun(cmd *cobra.Command, run *domain.ImportRun) {
	for _, outcome := range run.Outcomes {
		switch outcome.Action {
		case domain.ActionImported:
			cmd.Printf("  %s %s (%s)\n", addedStyle.Render("+"), outcome.Name, outcome.Type)
		case domain.ActionSkipped:
			cmd.Printf("  %s %s (%s): %s\n", unchangedStyle.Render("="), outcome.Name, outcome.Type, outcome.Reason)
		case domain.ActionFailed:
			cmd.Printf("  %s %s (%s): %s\n", removedStyle.Render("!"), outcome.Name, outcome.Type, outcome.Error)
		}
	}

	cmd.Println()
	cmd.Printf("Run %s: %s, %s, %s (took %s)\n",
		run.ID,
		addedStyle.Render(fmt.Sprintf("%d imported", run.Imported)),
		unchangedStyle.Render(fmt.Sprintf("%d skipped", run.Skipped)),
		removedStyle.Render(fmt.Sprintf("%d failed", run.Failed)),
		run.EndedAt.Sub(run.StartedAt).Round(time.Millisecond))
}

// progressPrinter returns a ProgressFunc writing a one-line progress
// update per processed document.
func progressPrinter(cmd *cobra.Command) domain.ProgressFunc {
	return func(current, total int, label string) {
		cmd.Printf("[%d/%d] %s\n", current, total, label)
	}
}
