package main

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentmemory/internal/util"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [flags] <description>",
	Short: "Suggest an approach for an upcoming task",
	Long: `Ask the memory which approach to use for an upcoming task, based on the
recorded history of the given category.

Example:
  agentmemory suggest --category coding "fix race condition in worker pool"
`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().String("category", "", "task category to draw history from")
	_ = suggestCmd.MarkFlagRequired("category")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mem, err := openMemory(cfg)
	if err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")
	suggestion, err := mem.SuggestApproach(cmd.Context(), args[0], category)
	if err != nil {
		return err
	}

	if suggestion.RecommendedAction == "" {
		fmt.Printf("No recorded history for category %q yet.\n", category)
		return nil
	}

	fmt.Printf("Recommended approach: %s (confidence %s)\n\n",
		suggestion.RecommendedAction, util.Percent(suggestion.Confidence))

	if len(suggestion.SimilarTasks) > 0 {
		rows := make([]table.Row, 0, len(suggestion.SimilarTasks))
		for _, similar := range suggestion.SimilarTasks {
			rows = append(rows, table.Row{
				similar.TaskID,
				similar.Approach,
				util.SuccessMarker(similar.Success),
				util.Truncate(similar.Notes, 48),
			})
		}
		fmt.Println("Similar past tasks:")
		renderTable(table.Row{"Task", "Approach", "Outcome", "Notes"}, rows)
		fmt.Println()
	}

	approaches := make([]string, 0, len(suggestion.ApproachStatistics))
	for approach := range suggestion.ApproachStatistics {
		approaches = append(approaches, approach)
	}
	sort.Strings(approaches)

	rows := make([]table.Row, 0, len(approaches))
	for _, approach := range approaches {
		stats := suggestion.ApproachStatistics[approach]
		rows = append(rows, table.Row{
			approach,
			stats.Total,
			stats.Successes,
			util.Percent(stats.SuccessRate),
		})
	}
	fmt.Println("Approach statistics:")
	renderTable(table.Row{"Approach", "Attempts", "Successes", "Success Rate"}, rows)

	return nil
}
