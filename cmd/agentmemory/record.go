package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/agentmemory"
)

var recordCmd = &cobra.Command{
	Use:   "record [flags] <description>",
	Short: "Record one completed task execution",
	Long: `Record a completed task execution into the memory and save the snapshot.

The description is the free-text situation the task addressed; category and
approach feed the success patterns that later suggestions are built from.

Example:
  agentmemory record --category coding --approach tdd --success --time 45.2 "fix login bug"
`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().String("task-id", "", "task correlation ID (default generated)")
	recordCmd.Flags().String("category", "", "task category (e.g. coding, analysis)")
	recordCmd.Flags().String("approach", "", "approach that was applied")
	recordCmd.Flags().Bool("success", false, "the approach worked")
	recordCmd.Flags().Float64("time", 0, "execution time in seconds")
	recordCmd.Flags().String("complexity", "", "complexity bucket: low, medium or high (default medium)")
	recordCmd.Flags().String("notes", "", "free-text observations worth resurfacing later")
	_ = recordCmd.MarkFlagRequired("category")
	_ = recordCmd.MarkFlagRequired("approach")
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mem, err := openMemory(cfg)
	if err != nil {
		return err
	}

	taskID, _ := cmd.Flags().GetString("task-id")
	category, _ := cmd.Flags().GetString("category")
	approach, _ := cmd.Flags().GetString("approach")
	success, _ := cmd.Flags().GetBool("success")
	execTime, _ := cmd.Flags().GetFloat64("time")
	complexity, _ := cmd.Flags().GetString("complexity")
	notes, _ := cmd.Flags().GetString("notes")

	episode, err := mem.RecordTaskExecution(cmd.Context(), agentmemory.TaskExecution{
		TaskID:        taskID,
		Description:   args[0],
		Category:      category,
		Approach:      approach,
		Success:       success,
		ExecutionTime: execTime,
		Complexity:    complexity,
		Notes:         notes,
	})
	if err != nil {
		return err
	}
	if err := mem.Save(cmd.Context()); err != nil {
		return err
	}

	fmt.Printf("Recorded episode %s (fingerprint %05d), %d episodes retained\n",
		episode.ID, episode.Fingerprint, mem.Episodic().Count())

	return nil
}
