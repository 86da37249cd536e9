package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "tsquiet.dev/pkg/tsquiet/internal/model"
)

// historyCmd represents the history command.
var historyCmd = newHistoryCmd()

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show summaries of previous fix runs",
		Long:  "Reads the stored run summaries from the reports directory and renders them in chronological order.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := m.Path(viper.GetString(outputFlagName))

			summaries, err := reportStore.LoadSummaries(dir)
			if err != nil {
				return fmt.Errorf("load run summaries: %w", err)
			}

			if len(summaries) == 0 {
				cmd.Printf("No run summaries found in %s\n", dir)
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Timestamp", "Found", "Fixed", "Remaining", "Dry Run"})
			table.SetBorder(false)
			table.SetCenterSeparator("")

			for _, summary := range summaries {
				remaining := "-"
				if summary.Verified {
					remaining = fmt.Sprintf("%d", summary.Remaining)
				}

				dryRun := ""
				if summary.DryRun {
					dryRun = "yes"
				}

				table.Append([]string{
					summary.Timestamp,
					fmt.Sprintf("%d", summary.Found),
					fmt.Sprintf("%d", summary.Fixed),
					remaining,
					dryRun,
				})
			}

			table.Render()

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
