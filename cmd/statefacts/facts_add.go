package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/statefacts/internal/types"
)

var factsAddCmd = &cobra.Command{
	Use:   "add <state-code> <fact>...",
	Short: "Append fun facts to a state",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runFactsAdd,
}

var factsReplaceCmd = &cobra.Command{
	Use:   "replace <state-code> <index> <fact>",
	Short: "Replace the fun fact at a 1-based index",
	Args:  cobra.ExactArgs(3),
	RunE:  runFactsReplace,
}

func runFactsAdd(cmd *cobra.Command, args []string) error {
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

	raw, err := json.Marshal(args[1:])
	if err != nil {
		return fmt.Errorf("encode facts: %w", err)
	}

	doc, err := b.svc.AppendFacts(ctx, code, raw)
	if err != nil {
		return commandError(err)
	}

	if factsJSONOutput {
		return printJSON(cmd.OutOrStdout(), doc)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %d fact(s) to %s (%d total)\n",
		len(args)-1, b.refs.Name(code), len(doc.FunFacts))
	return nil
}

func runFactsReplace(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid index %q: must be an integer", args[1])
	}

	b, err := loadBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	code, err := normalizeCode(b.refs, args[0])
	if err != nil {
		return err
	}

	doc, err := b.svc.ReplaceFact(ctx, code, types.ReplaceFactRequest{
		Index:   &index,
		FunFact: &args[2],
	})
	if err != nil {
		return commandError(err)
	}

	if factsJSONOutput {
		return printJSON(cmd.OutOrStdout(), doc)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Replaced fact %d for %s\n", index, b.refs.Name(code))
	return nil
}
