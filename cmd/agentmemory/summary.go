package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentmemory/internal/util"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show headline numbers for the accumulated memory",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mem, err := openMemory(cfg)
	if err != nil {
		return err
	}

	summary := mem.LearningSummary()
	renderTable(table.Row{"Metric", "Value"}, []table.Row{
		{"Episodes retained", summary.RetainedEpisodes},
		{"Lifetime samples", summary.LifetimeSamples},
		{"Categories tracked", summary.Categories},
		{"Overall success rate", util.Percent(summary.OverallSuccessRate)},
		{"Tracked preferences", summary.TrackedPreferences},
	})

	return nil
}
