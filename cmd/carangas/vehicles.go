package main

import (
	"fmt"
	"strconv"

	"github.com/carangas-hq/carangas-catalog/internal/domain"
	"github.com/spf13/cobra"
)

func buildVehiclesCommand(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vehicles",
		Aliases: []string{"cars"},
		Short:   "Manage catalog vehicles",
	}
	cmd.AddCommand(buildVehiclesListCommand(st))
	cmd.AddCommand(buildVehiclesCreateCommand(st))
	cmd.AddCommand(buildVehiclesUpdateCommand(st))
	cmd.AddCommand(buildVehiclesDeleteCommand(st))
	return cmd
}

func buildVehiclesListCommand(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all vehicles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vehicles, err := st.client.FetchVehicles(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list vehicles: %w", err)
			}

			out := cmd.OutOrStdout()
			if st.output == "json" || st.output == "yaml" {
				return printOutput(out, st.output, vehicles)
			}
			if len(vehicles) == 0 {
				fmt.Fprintln(out, "No vehicles found.")
				return nil
			}

			rows := make([][]string, 0, len(vehicles))
			for _, v := range vehicles {
				rows = append(rows, []string{
					v.ID,
					truncate(v.Name, 40),
					v.Brand,
					domain.GasTypeLabel(v.GasType),
					formatPrice(v.Price),
				})
			}
			printTable(out, []string{"ID", "Name", "Brand", "Gas", "Price"}, rows)
			return nil
		},
	}
}

// vehicleFlags collects the editable vehicle fields.
type vehicleFlags struct {
	name    string
	brand   string
	gasType int
	price   float64
}

func (f *vehicleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "vehicle model name")
	cmd.Flags().StringVar(&f.brand, "brand", "", "vehicle brand")
	cmd.Flags().IntVar(&f.gasType, "gas-type", domain.GasTypeFlex, "fuel: 0 flex, 1 alcohol, 2 gasoline")
	cmd.Flags().Float64Var(&f.price, "price", 0, "vehicle price")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("brand")
}

func (f *vehicleFlags) vehicle(id string) (domain.Vehicle, error) {
	switch f.gasType {
	case domain.GasTypeFlex, domain.GasTypeAlcohol, domain.GasTypeGasoline:
	default:
		return domain.Vehicle{}, fmt.Errorf("invalid --gas-type %d (use 0, 1 or 2)", f.gasType)
	}
	if f.price < 0 {
		return domain.Vehicle{}, fmt.Errorf("invalid --price %v (must not be negative)", f.price)
	}
	return domain.Vehicle{
		ID:      id,
		Name:    f.name,
		Brand:   f.brand,
		GasType: f.gasType,
		Price:   f.price,
	}, nil
}

func buildVehiclesCreateCommand(st *cliState) *cobra.Command {
	var flags vehicleFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a vehicle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := flags.vehicle("")
			if err != nil {
				return err
			}
			if !st.client.Create(cmd.Context(), v) {
				return fmt.Errorf("failed to create vehicle %q", v.Name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Vehicle %q created.\n", v.Name)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func buildVehiclesUpdateCommand(st *cliState) *cobra.Command {
	var flags vehicleFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a vehicle's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := flags.vehicle(args[0])
			if err != nil {
				return err
			}
			if !st.client.Update(cmd.Context(), v) {
				return fmt.Errorf("failed to update vehicle %s", v.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Vehicle %s updated.\n", v.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func buildVehiclesDeleteCommand(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a vehicle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := domain.Vehicle{ID: args[0]}
			if !st.client.Delete(cmd.Context(), v) {
				return fmt.Errorf("failed to delete vehicle %s", v.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Vehicle %s deleted.\n", v.ID)
			return nil
		},
	}
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
