package cmd

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/spf13/cobra"

	"github.com/kava-labs/liquidation-queue/types"
)

const (
	flagFrom                 = "from"
	flagOwner                = "owner"
	flagOracleContract       = "oracle-contract"
	flagSafeRatio            = "safe-ratio"
	flagBidFee               = "bid-fee"
	flagMinLiquidation       = "min-liquidation"
	flagLiquidationThreshold = "liquidation-threshold"
	flagPriceTimeframe       = "price-timeframe"
	flagWaitingPeriod        = "waiting-period"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "changes the local ledger",
	}
	cmd.AddCommand(updateConfigCmd())
	return cmd
}

func updateConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update-config",
		Short:   "overrides config fields, only flags that are set change",
		Example: "update-config --from terra1... --safe-ratio 0.75",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := msgUpdateConfigFromFlags(cmd)
			if err != nil {
				return err
			}

			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			k, err := a.keeper()
			if err != nil {
				return err
			}

			resp, err := k.UpdateConfig(msg)
			if err != nil {
				return err
			}
			return printOutput(cmd, resp)
		},
	}

	cmd.Flags().String(flagFrom, "", "sender, must be the current owner")
	cmd.Flags().String(flagOwner, "", "new owner")
	cmd.Flags().String(flagOracleContract, "", "new oracle contract")
	cmd.Flags().String(flagSafeRatio, "", "new safe ratio, in [0, 1)")
	cmd.Flags().String(flagBidFee, "", "new bid fee, in [0, 1)")
	cmd.Flags().String(flagMinLiquidation, "", "new minimum liquidated value")
	cmd.Flags().String(flagLiquidationThreshold, "", "new liquidation threshold")
	cmd.Flags().Uint64(flagPriceTimeframe, 0, "new price timeframe in seconds")
	cmd.Flags().Uint64(flagWaitingPeriod, 0, "new waiting period in seconds")
	_ = cmd.MarkFlagRequired(flagFrom)

	return cmd
}

func msgUpdateConfigFromFlags(cmd *cobra.Command) (types.MsgUpdateConfig, error) {
	flags := cmd.Flags()

	from, err := flags.GetString(flagFrom)
	if err != nil {
		return types.MsgUpdateConfig{}, err
	}
	msg := types.MsgUpdateConfig{Sender: from}

	for name, dst := range map[string]**string{
		flagOwner:          &msg.Owner,
		flagOracleContract: &msg.OracleContract,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return types.MsgUpdateConfig{}, err
		}
		*dst = &v
	}

	for name, dst := range map[string]**sdk.Dec{
		flagSafeRatio: &msg.SafeRatio,
		flagBidFee:    &msg.BidFee,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return types.MsgUpdateConfig{}, err
		}
		d, err := sdk.NewDecFromStr(v)
		if err != nil {
			return types.MsgUpdateConfig{}, sdkerrors.Wrapf(types.ErrInvalidInput, "--%s: %s", name, err)
		}
		*dst = &d
	}

	for name, dst := range map[string]**sdk.Int{
		flagMinLiquidation:       &msg.MinLiquidation,
		flagLiquidationThreshold: &msg.LiquidationThreshold,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return types.MsgUpdateConfig{}, err
		}
		i, ok := sdk.NewIntFromString(v)
		if !ok {
			return types.MsgUpdateConfig{}, sdkerrors.Wrapf(types.ErrInvalidInput, "--%s: %q is not an integer", name, v)
		}
		*dst = &i
	}

	for name, dst := range map[string]**uint64{
		flagPriceTimeframe: &msg.PriceTimeframe,
		flagWaitingPeriod:  &msg.WaitingPeriod,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetUint64(name)
		if err != nil {
			return types.MsgUpdateConfig{}, err
		}
		*dst = &v
	}

	return msg, nil
}
