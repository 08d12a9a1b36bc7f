package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/carangas-hq/carangas-catalog/internal/app"
	"github.com/carangas-hq/carangas-catalog/internal/logger"
	"github.com/spf13/cobra"
)

func buildWatchCommand(st *cliState) *cobra.Command {
	var resolveBrands bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the catalog and publish new vehicle snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("resolve-brands") {
				st.cfg.ResolveBrands = resolveBrands
			}

			ctx, stop := signal.NotifyContext(contextOf(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.InfoObj("watcher starting", "config", st.cfg)
			w, err := app.NewWatcher(ctx, st.cfg, logger.Default())
			if err != nil {
				logger.ErrorObj("failed to initialize watcher", "error", err)
				return err
			}
			return w.Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&resolveBrands, "resolve-brands", false, "flag vehicles whose brand is missing from the reference list")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
