package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kava-labs/liquidation-queue/keeper"
	"github.com/kava-labs/liquidation-queue/metrics"
	"github.com/kava-labs/liquidation-queue/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   "serves ledger queries and config updates over http",
		Example: "serve",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.store.GetConfig(); err != nil {
				return fmt.Errorf("ledger is not initialized, run init first: %w", err)
			}

			tax, checks, err := a.taxOracle()
			if err != nil {
				return err
			}
			syncChecks, conn, err := a.syncCheck()
			if err != nil {
				return err
			}
			if conn != nil {
				defer conn.Close()
			}
			checks = append(checks, syncChecks...)

			k := keeper.NewKeeper(a.store, tax, a.logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(k, metrics.NewMetrics(), a.logger, checks...)
			return srv.ListenAndServe(ctx, a.config.ListenAddr)
		},
	}
}
