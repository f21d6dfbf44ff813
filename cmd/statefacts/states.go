package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hyperengineering/statefacts/internal/states"
)

var (
	statesJSONOutput bool
	statesContig     string
)

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Inspect state reference data",
}

var statesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List states with their fun fact counts",
	Args:  cobra.NoArgs,
	RunE:  runStatesList,
}

func init() {
	statesCmd.PersistentFlags().BoolVar(&statesJSONOutput, "json", false,
		"Output in JSON format")
	statesListCmd.Flags().StringVar(&statesContig, "contig", "",
		`"true" for the contiguous 48, "false" for Alaska and Hawaii only`)

	statesCmd.AddCommand(statesListCmd)
}

func runStatesList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	b, err := loadBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	merged, err := b.svc.MergedList(ctx, states.ParseContiguity(statesContig))
	if err != nil {
		return commandError(err)
	}

	if statesJSONOutput {
		return printJSON(cmd.OutOrStdout(), merged)
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "CODE\tSTATE\tCAPITAL\tPOPULATION\tADMITTED\tFACTS")
	for _, st := range merged {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			st.Code,
			st.Name,
			st.Capital,
			humanize.Comma(st.Population),
			st.AdmissionDate,
			len(st.FunFacts),
		)
	}
	w.Flush()

	return nil
}
