package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fruitd/internal/labels"
	"fruitd/pkg/types"
)

func runLabels(cmd *cobra.Command, _ []string) error {
	classes := labels.Describe()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(types.ClassesResponse{Classes: classes})
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tLABEL\tFRUIT\tCONDITION")
	for i, c := range classes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, c.Label, c.FruitName, c.ConditionName)
	}
	return tw.Flush()
}
