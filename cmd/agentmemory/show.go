package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentmemory/core"
	"github.com/hupe1980/agentmemory/internal/util"
	"github.com/hupe1980/agentmemory/persist"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the snapshot location, store counts and recent episodes",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Int("limit", 10, "number of recent episodes to list")
	showCmd.Flags().String("action", "", "filter episodes by action substring")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mem, err := openMemory(cfg)
	if err != nil {
		return err
	}

	codec, err := persist.NewCodec(mem.Format())
	if err != nil {
		return err
	}

	fmt.Printf("Storage directory: %s\n", mem.StorageDir())
	fmt.Printf("Episodic snapshot: %s\n", codec.EpisodicPath(mem.StorageDir()))
	fmt.Printf("Semantic snapshot: %s\n", codec.SemanticPath(mem.StorageDir()))
	fmt.Printf("Episodes retained: %d (capacity %d)\n", mem.Episodic().Count(), mem.Episodic().Capacity())
	fmt.Printf("Categories:        %d\n\n", len(mem.Semantic().Contexts()))

	limit, _ := cmd.Flags().GetInt("limit")
	action, _ := cmd.Flags().GetString("action")

	var episodes []core.Episode
	if action != "" {
		episodes = mem.Episodic().SearchByAction(action)
		if len(episodes) > limit {
			episodes = episodes[len(episodes)-limit:]
		}
	} else {
		episodes = mem.Episodic().Recent(limit)
	}

	if len(episodes) == 0 {
		fmt.Println("No episodes recorded yet.")
		return nil
	}

	rows := make([]table.Row, 0, len(episodes))
	for _, episode := range episodes {
		rows = append(rows, table.Row{
			episode.Timestamp.Format("2006-01-02 15:04"),
			util.Truncate(episode.State, 40),
			util.Truncate(episode.Action, 24),
			episode.MetaString(core.MetaCategory),
			util.SuccessMarker(episode.MetaBool(core.MetaSuccess)),
		})
	}
	renderTable(table.Row{"Recorded", "Task", "Approach", "Category", "Outcome"}, rows)

	return nil
}
