package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/agentmemory"
)

func TestParseSeedFile(t *testing.T) {
	data := []byte(`
- description: fix login bug
  category: coding
  approach: tdd
  success: true
  execution_time: 45.2
  complexity: high
  notes: added regression test
- task_id: t-2
  description: write release notes
  category: writing
  approach: outline first
  success: false
`)

	tasks, err := parseSeedFile(data)
	if err != nil {
		t.Fatalf("parseSeedFile returned error: %v", err)
	}
	assert.Len(t, tasks, 2)

	first := tasks[0]
	assert.Empty(t, first.TaskID) // facade generates one on record
	assert.Equal(t, "fix login bug", first.Description)
	assert.Equal(t, "coding", first.Category)
	assert.Equal(t, "tdd", first.Approach)
	assert.True(t, first.Success)
	assert.InDelta(t, 45.2, first.ExecutionTime, 1e-9)
	assert.Equal(t, "high", first.Complexity)
	assert.Equal(t, "added regression test", first.Notes)

	second := tasks[1]
	assert.Equal(t, "t-2", second.TaskID)
	assert.Equal(t, "outline first", second.Approach)
	assert.False(t, second.Success)
	assert.Zero(t, second.ExecutionTime)
}

func TestParseSeedFile_Invalid(t *testing.T) {
	_, err := parseSeedFile([]byte("description: not a list"))
	assert.Error(t, err)

	_, err = parseSeedFile([]byte(""))
	assert.ErrorContains(t, err, "no task executions")

	_, err = parseSeedFile([]byte("[]"))
	assert.ErrorContains(t, err, "no task executions")
}

func TestSeedTask_Execution(t *testing.T) {
	task := seedTask{
		TaskID:        "t-9",
		Description:   "migrate billing table",
		Category:      "database",
		Approach:      "expand and contract",
		Success:       true,
		ExecutionTime: 12.5,
		Complexity:    "high",
		Notes:         "zero downtime",
	}

	assert.Equal(t, agentmemory.TaskExecution{
		TaskID:        "t-9",
		Description:   "migrate billing table",
		Category:      "database",
		Approach:      "expand and contract",
		Success:       true,
		ExecutionTime: 12.5,
		Complexity:    "high",
		Notes:         "zero downtime",
	}, task.execution())
}
