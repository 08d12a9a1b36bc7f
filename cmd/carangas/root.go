package main

import (
	"fmt"

	"github.com/carangas-hq/carangas-catalog/internal/app"
	"github.com/carangas-hq/carangas-catalog/internal/config"
	"github.com/carangas-hq/carangas-catalog/internal/logger"
	"github.com/carangas-hq/carangas-catalog/pkg/catalog"
	"github.com/spf13/cobra"
)

// cliState is shared by every subcommand once the root pre-run has completed.
type cliState struct {
	output    string
	baseURL   string
	brandsURL string

	cfg    *config.Config
	client *catalog.Client
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	root := &cobra.Command{
		Use:           "carangas",
		Short:         "Browse and edit the Carangas vehicle catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&st.output, "output", "o", "table", "output format: table, json or yaml")
	flags.StringVar(&st.baseURL, "base-url", "", "vehicle collection endpoint (overrides CATALOG_BASE_URL)")
	flags.StringVar(&st.brandsURL, "brands-url", "", "brand reference endpoint (overrides BRANDS_URL)")

	root.AddCommand(buildVehiclesCommand(st))
	root.AddCommand(buildBrandsCommand(st))
	root.AddCommand(buildWatchCommand(st))
	return root
}

func (st *cliState) setup(cmd *cobra.Command) error {
	switch st.output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q (use table, json or yaml)", st.output)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if st.baseURL != "" {
		cfg.CatalogBaseURL = st.baseURL
	}
	if st.brandsURL != "" {
		cfg.BrandsURL = st.brandsURL
	}

	// stdout carries command output; diagnostics go to stderr.
	logger.InitTo(cfg, cmd.ErrOrStderr())

	st.cfg = cfg
	st.client = app.NewCatalogClient(cfg, logger.Default())
	return nil
}
