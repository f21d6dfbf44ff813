package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var clearForce bool

var factsPruneCmd = &cobra.Command{
	Use:   "prune <state-code>",
	Short: "Remove empty fun facts from a state",
	Args:  cobra.ExactArgs(1),
	RunE:  runFactsPrune,
}

var factsClearCmd = &cobra.Command{
	Use:   "clear <state-code>",
	Short: "Delete all fun facts for a state",
	Long:  "Permanently delete a state's fun facts. Requires --force or interactive confirmation.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFactsClear,
}

func init() {
	factsClearCmd.Flags().BoolVar(&clearForce, "force", false,
		"Skip confirmation prompt")
}

func runFactsPrune(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	b, err := loadBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	code, err := normalizeCode(b.refs, args[0])
	if err != nil {
		return err
	}

	result, err := b.svc.PruneFacts(ctx, code)
	if err != nil {
		return commandError(err)
	}

	if factsJSONOutput {
		return printJSON(cmd.OutOrStdout(), result)
	}
	if result.ModifiedCount == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing to prune for %s\n", b.refs.Name(code))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed empty facts from %s\n", b.refs.Name(code))
	return nil
}

func runFactsClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	b, err := loadBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	code, err := normalizeCode(b.refs, args[0])
	if err != nil {
		return err
	}

	// Interactive confirmation unless --force
	if !clearForce {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "WARNING: This will permanently delete all fun facts for %s.\n", b.refs.Name(code))
		fmt.Fprint(errOut, "Type the state code to confirm: ")

		reader := bufio.NewReader(cmd.InOrStdin())
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}

		if !strings.EqualFold(strings.TrimSpace(input), code) {
			fmt.Fprintln(errOut, "Aborted. State code did not match.")
			return nil
		}
	}

	if err := b.svc.ClearFacts(ctx, code); err != nil {
		return commandError(err)
	}

	if factsJSONOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"code":    code,
			"cleared": true,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared fun facts for %s\n", b.refs.Name(code))
	return nil
}
