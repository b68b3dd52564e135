package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/agentmemory"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Bulk-record task executions from a YAML file",
	Long: `Replay a list of task executions from a YAML file into the memory and
save the snapshot once at the end.

File format:
  - description: fix login bug
    category: coding
    approach: tdd
    success: true
    execution_time: 45.2
    complexity: high
    notes: added regression test
`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

// seedTask mirrors TaskExecution with YAML field names.
type seedTask struct {
	TaskID        string  `yaml:"task_id"`
	Description   string  `yaml:"description"`
	Category      string  `yaml:"category"`
	Approach      string  `yaml:"approach"`
	Success       bool    `yaml:"success"`
	ExecutionTime float64 `yaml:"execution_time"`
	Complexity    string  `yaml:"complexity"`
	Notes         string  `yaml:"notes"`
}

// execution converts the YAML entry into the facade's input type.
func (t seedTask) execution() agentmemory.TaskExecution {
	return agentmemory.TaskExecution{
		TaskID:        t.TaskID,
		Description:   t.Description,
		Category:      t.Category,
		Approach:      t.Approach,
		Success:       t.Success,
		ExecutionTime: t.ExecutionTime,
		Complexity:    t.Complexity,
		Notes:         t.Notes,
	}
}

// parseSeedFile decodes a YAML task list. A file that decodes to zero entries
// is rejected so a wrong document shape fails loudly instead of seeding
// nothing.
func parseSeedFile(data []byte) ([]seedTask, error) {
	var tasks []seedTask
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("seed file contains no task executions")
	}
	return tasks, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	tasks, err := parseSeedFile(data)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mem, err := openMemory(cfg)
	if err != nil {
		return err
	}

	for i, task := range tasks {
		if _, err := mem.RecordTaskExecution(cmd.Context(), task.execution()); err != nil {
			return fmt.Errorf("failed to record seed entry %d: %w", i+1, err)
		}
	}
	if err := mem.Save(cmd.Context()); err != nil {
		return err
	}

	fmt.Printf("Seeded %d executions, %d episodes retained\n", len(tasks), mem.Episodic().Count())

	return nil
}
