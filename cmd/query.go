package cmd

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kava-labs/liquidation-queue/keeper"
	"github.com/kava-labs/liquidation-queue/types"
)

const (
	flagStartAfter = "start-after"
	flagLimit      = "limit"
)

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "queries the local ledger",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "config",
			Short: "prints the config",
			Args:  cobra.NoArgs,
			RunE: withKeeper(func(cmd *cobra.Command, k keeper.Keeper, args []string) (interface{}, error) {
				return k.QueryConfig()
			}),
		},
		&cobra.Command{
			Use:     "bid [idx]",
			Short:   "prints a bid",
			Example: "bid 12",
			Args:    cobra.ExactArgs(1),
			RunE: withKeeper(func(cmd *cobra.Command, k keeper.Keeper, args []string) (interface{}, error) {
				idx, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return nil, err
				}
				return k.QueryBid(types.QueryBidParams{BidIdx: idx})
			}),
		},
		pagedCmd(&cobra.Command{
			Use:   "bids [collateral-token] [bidder]",
			Short: "lists the bids of a bidder on a collateral",
			Args:  cobra.ExactArgs(2),
			RunE: withKeeper(func(cmd *cobra.Command, k keeper.Keeper, args []string) (interface{}, error) {
				params := types.QueryBidsByUserParams{CollateralToken: args[0], Bidder: args[1]}
				if cmd.Flags().Changed(flagStartAfter) {
					startAfter, err := cmd.Flags().GetUint64(flagStartAfter)
					if err != nil {
						return nil, err
					}
					params.StartAfter = &startAfter
				}
				limit, err := cmd.Flags().GetUint8(flagLimit)
				if err != nil {
					return nil, err
				}
				params.Limit = limit
				return k.QueryBidsByUser(params)
			}),
		}),
		&cobra.Command{
			Use:   "bid-pool [collateral-token] [slot]",
			Short: "prints one premium slot of a collateral",
			Args:  cobra.ExactArgs(2),
			RunE: withKeeper(func(cmd *cobra.Command, k keeper.Keeper, args []string) (interface{}, error) {
				slot, err := strconv.ParseUint(args[1], 10, 8)
				if err != nil {
					return nil, err
				}
				return k.QueryBidPool(types.QueryBidPoolParams{CollateralToken: args[0], BidSlot: uint8(slot)})
			}),
		},
		pagedCmd(&cobra.Command{
			Use:   "bid-pools [collateral-token]",
			Short: "lists the funded premium slots of a collateral",
			Args:  cobra.ExactArgs(1),
			RunE: withKeeper(func(cmd *cobra.Command, k keeper.Keeper, args []string) (interface{}, error) {
				params := types.QueryBidPoolsParams{CollateralToken: args[0]}
				if cmd.Flags().Changed(flagStartAfter) {
					startAfter, err := cmd.Flags().GetUint64(flagStartAfter)
					if err != nil {
						return nil, err
					}
					slot, err := toSlot(startAfter)
					if err != nil {
						return nil, err
					}
					params.StartAfter = &slot
				}
				limit, err := cmd.Flags().GetUint8(flagLimit)
				if err != nil {
					return nil, err
				}
				params.Limit = limit
				return k.QueryBidPools(params)
			}),
		}),
		&cobra.Command{
			Use:   "collateral [collateral-token]",
			Short: "prints a registered collateral",
			Args:  cobra.ExactArgs(1),
			RunE: withKeeper(func(cmd *cobra.Command, k keeper.Keeper, args []string) (interface{}, error) {
				return k.QueryCollateralInfo(types.QueryCollateralInfoParams{CollateralToken: args[0]})
			}),
		},
		&cobra.Command{
			Use:     "liquidation-amount [params-json]",
			Short:   "computes the collateral to liquidate for a position",
			Example: `liquidation-amount '{"borrow_amount":"1000","borrow_limit":"900","stable_denom":"uusd","collaterals":[{"collateral_token":"terra1...","amount":"100"}],"collateral_prices":["12.5"]}'`,
			Args:    cobra.ExactArgs(1),
			RunE: withKeeper(func(cmd *cobra.Command, k keeper.Keeper, args []string) (interface{}, error) {
				var params types.QueryLiquidationAmountParams
				if err := types.ModuleCdc.UnmarshalJSON([]byte(args[0]), &params); err != nil {
					return nil, err
				}
				resp, _, err := k.QueryLiquidationAmount(context.Background(), params)
				return resp, err
			}),
		},
	)

	return cmd
}

// withKeeper opens the ledger for the duration of one query and prints its result
func withKeeper(query func(cmd *cobra.Command, k keeper.Keeper, args []string) (interface{}, error)) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		k, err := a.keeper()
		if err != nil {
			return err
		}

		resp, err := query(cmd, k, args)
		if err != nil {
			return err
		}
		return printOutput(cmd, resp)
	}
}

func pagedCmd(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().Uint64(flagStartAfter, 0, "exclusive cursor, the last index of the previous page")
	cmd.Flags().Uint8(flagLimit, 0, "page size, defaults to 10 and may not exceed 30")
	return cmd
}

func toSlot(v uint64) (uint8, error) {
	if v > math.MaxUint8 {
		return 0, fmt.Errorf("slot %d out of range", v)
	}
	return uint8(v), nil
}
