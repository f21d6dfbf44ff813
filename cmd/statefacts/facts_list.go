package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hyperengineering/statefacts/internal/store"
	"github.com/hyperengineering/statefacts/internal/types"
)

var factsListCmd = &cobra.Command{
	Use:   "list [state-code]",
	Short: "List stored fun facts",
	Long:  "Without a code, summarize every state that has fun facts. With a code, print that state's facts by 1-based index.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFactsList,
}

func runFactsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	b, err := loadBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	if len(args) == 1 {
		return listStateFacts(cmd, b, args[0])
	}

	docs, err := b.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list overlays: %w", err)
	}

	if factsJSONOutput {
		if docs == nil {
			docs = []types.FactOverlay{}
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"overlays": docs,
			"total":    len(docs),
		})
	}

	if len(docs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No fun facts stored.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "CODE\tSTATE\tFACTS\tUPDATED")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			doc.StateCode,
			b.refs.Name(doc.StateCode),
			len(doc.FunFacts),
			humanize.Time(doc.UpdatedAt),
		)
	}
	w.Flush()

	return nil
}

func listStateFacts(cmd *cobra.Command, b *backend, raw string) error {
	code, err := normalizeCode(b.refs, raw)
	if err != nil {
		return err
	}

	doc, err := b.store.Get(context.Background(), code)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("get overlay: %w", err)
	}
	if doc == nil {
		doc = &types.FactOverlay{StateCode: code, FunFacts: []string{}}
	}

	out := cmd.OutOrStdout()
	if factsJSONOutput {
		return printJSON(out, doc)
	}

	if len(doc.FunFacts) == 0 {
		fmt.Fprintf(out, "No fun facts for %s.\n", b.refs.Name(code))
		return nil
	}

	fmt.Fprintf(out, "%s (%s)\n", b.refs.Name(code), code)
	for i, fact := range doc.FunFacts {
		if fact == "" {
			fact = "(empty)"
		}
		fmt.Fprintf(out, "%3d. %s\n", i+1, fact)
	}
	return nil
}
