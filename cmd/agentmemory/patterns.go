package main

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentmemory/internal/util"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show success rates grouped by task complexity",
	Long: `Show success and timing rollups grouped by the complexity bucket
(low, medium, high) of the retained episodes.
`,
	Args: cobra.NoArgs,
	RunE: runPatterns,
}

func runPatterns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mem, err := openMemory(cfg)
	if err != nil {
		return err
	}

	patterns := mem.ComplexityPatterns()
	if len(patterns) == 0 {
		fmt.Println("No recorded history yet.")
		return nil
	}

	buckets := make([]string, 0, len(patterns))
	for bucket := range patterns {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)

	rows := make([]table.Row, 0, len(buckets))
	for _, bucket := range buckets {
		stats := patterns[bucket]
		rows = append(rows, table.Row{
			bucket,
			stats.Total,
			util.Percent(stats.SuccessRate),
			util.Seconds(stats.AvgExecutionTime),
		})
	}
	renderTable(table.Row{"Complexity", "Tasks", "Success Rate", "Avg Time"}, rows)

	return nil
}
