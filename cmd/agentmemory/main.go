package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agentmemory",
	Short: "Adaptive task memory for learning agents",
	Long: `AgentMemory records completed task executions, accumulates success
patterns per category and answers "which approach should I use for this
task" from the recorded history.

State lives in a snapshot directory (JSON or CBOR). Every command binds the
memory to that directory, and commands that modify state save before exit.
`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default config.yaml in $XDG_CONFIG_HOME/agentmemory)")
	rootCmd.PersistentFlags().String("data-dir", "", "snapshot directory (default $XDG_DATA_HOME/agentmemory)")
	rootCmd.PersistentFlags().String("format", "", "snapshot format: structured (JSON) or binary (CBOR)")
	rootCmd.PersistentFlags().Int("capacity", 0, "episodic store capacity (default 100)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(gapsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(versionCmd)
}
