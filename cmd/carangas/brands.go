package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func buildBrandsCommand(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brands",
		Short: "Inspect the brand reference list",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known vehicle brands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Failures are logged by the client and surface as an empty list.
			brands := st.client.FetchBrands(cmd.Context())

			out := cmd.OutOrStdout()
			if st.output == "json" || st.output == "yaml" {
				return printOutput(out, st.output, brands)
			}
			if len(brands) == 0 {
				fmt.Fprintln(out, "No brands found.")
				return nil
			}

			rows := make([][]string, 0, len(brands))
			for _, b := range brands {
				rows = append(rows, []string{strconv.Itoa(b.ID), b.Key, b.DisplayName()})
			}
			printTable(out, []string{"ID", "Key", "Name"}, rows)
			return nil
		},
	})
	return cmd
}
