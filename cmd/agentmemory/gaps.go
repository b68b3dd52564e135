package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentmemory/core"
	"github.com/hupe1980/agentmemory/internal/util"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Show categories and approaches that need a different strategy",
	Long: `Flag weak spots in the recorded history: categories with low success
rates and approaches that keep failing despite repeated attempts.
`,
	Args: cobra.NoArgs,
	RunE: runGaps,
}

func runGaps(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mem, err := openMemory(cfg)
	if err != nil {
		return err
	}

	areas := mem.ImprovementAreas()
	if len(areas) == 0 {
		fmt.Println("No improvement areas flagged.")
		return nil
	}

	rows := make([]table.Row, 0, len(areas))
	for _, area := range areas {
		kind := "low success category"
		subject := area.Category
		if area.Kind == core.AreaFailingApproach {
			kind = "failing approach"
			subject = util.JoinNonEmpty(" / ", area.Category, area.Action)
		}
		rows = append(rows, table.Row{
			kind,
			subject,
			util.Percent(area.SuccessRate),
			area.Attempts,
		})
	}
	renderTable(table.Row{"Kind", "Subject", "Success Rate", "Attempts"}, rows)

	return nil
}
