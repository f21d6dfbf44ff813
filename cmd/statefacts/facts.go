package main

import (
	"github.com/spf13/cobra"
)

var factsJSONOutput bool

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Manage state fun facts",
	Long:  "List, add, replace, prune, and clear fun facts in the configured store without running the server.",
}

func init() {
	factsCmd.PersistentFlags().BoolVar(&factsJSONOutput, "json", false,
		"Output in JSON format")

	factsCmd.AddCommand(factsListCmd)
	factsCmd.AddCommand(factsAddCmd)
	factsCmd.AddCommand(factsReplaceCmd)
	factsCmd.AddCommand(factsPruneCmd)
	factsCmd.AddCommand(factsClearCmd)
}
