package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kava-labs/liquidation-queue/config"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "init [genesis-file]",
		Short:   "seeds an empty ledger from a toml, yaml or json genesis file",
		Example: "init genesis.toml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			gs, err := config.LoadGenesis(args[0])
			if err != nil {
				return err
			}
			if err := a.store.InitGenesis(gs); err != nil {
				return err
			}

			a.logger.Info().
				Int("collaterals", len(gs.Collaterals)).
				Int("bid_pools", len(gs.BidPools)).
				Int("bids", len(gs.Bids)).
				Msgf("initialized ledger in %s", a.config.Home)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "prints the whole ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			gs, err := a.store.ExportGenesis()
			if err != nil {
				return err
			}
			return printOutput(cmd, gs)
		},
	}
}
