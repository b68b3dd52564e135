package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentmemory/internal/util"
)

var insightsCmd = &cobra.Command{
	Use:   "insights [category]",
	Short: "Show per-category success rates and best approaches",
	Long: `Show one analytic rollup per recorded category: task volume, success
rate, average execution time and the approach with the best track record.
Pass a category name to restrict the output to that category.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInsights,
}

func runInsights(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mem, err := openMemory(cfg)
	if err != nil {
		return err
	}

	insights := mem.CategoryInsights()
	if len(args) == 1 {
		filtered := insights[:0]
		for _, insight := range insights {
			if insight.Category == args[0] {
				filtered = append(filtered, insight)
			}
		}
		insights = filtered
	}

	if len(insights) == 0 {
		fmt.Println("No recorded history yet.")
		return nil
	}

	rows := make([]table.Row, 0, len(insights))
	for _, insight := range insights {
		rows = append(rows, table.Row{
			insight.Category,
			insight.TotalTasks,
			util.Percent(insight.SuccessRate),
			util.Seconds(insight.AvgExecutionTime),
			insight.BestApproach,
		})
	}
	renderTable(table.Row{"Category", "Tasks", "Success Rate", "Avg Time", "Best Approach"}, rows)

	return nil
}
