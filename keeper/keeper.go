package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/rs/zerolog"

	"github.com/kava-labs/liquidation-queue/liquidation"
	"github.com/kava-labs/liquidation-queue/store"
	"github.com/kava-labs/liquidation-queue/types"
)

// Keeper answers queries against the ledger and applies config updates.
// It holds no state besides the store handle.
type Keeper struct {
	store  store.Store
	engine liquidation.Engine
	logger zerolog.Logger
}

func NewKeeper(s store.Store, tax liquidation.TaxRateQuerier, logger zerolog.Logger) Keeper {
	return Keeper{
		store:  s,
		engine: liquidation.NewEngine(s, tax),
		logger: logger,
	}
}

func (k Keeper) QueryConfig() (types.ConfigResponse, error) {
	config, err := k.store.GetConfig()
	if err != nil {
		return types.ConfigResponse{}, err
	}
	return types.NewConfigResponse(config), nil
}

// QueryLiquidationAmount returns the collateral to liquidate for a position
// together with the plan it was derived from
func (k Keeper) QueryLiquidationAmount(ctx context.Context, params types.QueryLiquidationAmountParams) (types.LiquidationAmountResponse, liquidation.Plan, error) {
	config, err := k.store.GetConfig()
	if err != nil {
		return types.LiquidationAmountResponse{}, liquidation.Plan{}, err
	}
	if params.StableDenom != "" && params.StableDenom != config.StableDenom {
		return types.LiquidationAmountResponse{}, liquidation.Plan{}, sdkerrors.Wrapf(types.ErrInvalidInput, "stable denom %s does not match %s", params.StableDenom, config.StableDenom)
	}

	collaterals, err := params.Collaterals.ToCanonical()
	if err != nil {
		return types.LiquidationAmountResponse{}, liquidation.Plan{}, err
	}

	plan, err := k.engine.LiquidationAmount(ctx, config, params.BorrowAmount, params.BorrowLimit, collaterals, params.CollateralPrices)
	if err != nil {
		return types.LiquidationAmountResponse{}, liquidation.Plan{}, err
	}

	k.logger.Debug().
		Str("outcome", string(plan.Outcome)).
		Str("ratio", plan.Ratio.String()).
		Str("expected_repay", plan.ExpectedRepay.String()).
		Msg("computed liquidation amount")

	return types.LiquidationAmountResponse{Collaterals: plan.Collaterals.ToHuman()}, plan, nil
}

func (k Keeper) QueryBid(params types.QueryBidParams) (types.BidResponse, error) {
	bid, err := k.store.GetBid(params.BidIdx)
	if err != nil {
		return types.BidResponse{}, err
	}
	return types.NewBidResponse(bid), nil
}

func (k Keeper) QueryBidsByUser(params types.QueryBidsByUserParams) (types.BidsResponse, error) {
	collateralToken, err := parseAddress("collateral token", params.CollateralToken)
	if err != nil {
		return types.BidsResponse{}, err
	}
	bidder, err := parseAddress("bidder", params.Bidder)
	if err != nil {
		return types.BidsResponse{}, err
	}

	bids, err := k.store.GetBidsByBidder(collateralToken, bidder, params.StartAfter, params.Limit)
	if err != nil {
		return types.BidsResponse{}, err
	}

	resp := types.BidsResponse{Bids: make([]types.BidResponse, 0, len(bids))}
	for _, bid := range bids {
		resp.Bids = append(resp.Bids, types.NewBidResponse(bid))
	}
	return resp, nil
}

func (k Keeper) QueryBidPool(params types.QueryBidPoolParams) (types.BidPoolResponse, error) {
	collateralToken, err := parseAddress("collateral token", params.CollateralToken)
	if err != nil {
		return types.BidPoolResponse{}, err
	}

	pool, err := k.store.GetBidPool(collateralToken, params.BidSlot)
	if err != nil {
		return types.BidPoolResponse{}, err
	}
	return types.NewBidPoolResponse(params.BidSlot, pool), nil
}

func (k Keeper) QueryBidPools(params types.QueryBidPoolsParams) (types.BidPoolsResponse, error) {
	collateralToken, err := parseAddress("collateral token", params.CollateralToken)
	if err != nil {
		return types.BidPoolsResponse{}, err
	}

	entries, err := k.store.GetBidPools(collateralToken, params.StartAfter, params.Limit)
	if err != nil {
		return types.BidPoolsResponse{}, err
	}

	resp := types.BidPoolsResponse{BidPools: make([]types.BidPoolResponse, 0, len(entries))}
	for _, entry := range entries {
		resp.BidPools = append(resp.BidPools, types.NewBidPoolResponse(entry.Slot, entry.BidPool))
	}
	return resp, nil
}

func (k Keeper) QueryCollateralInfo(params types.QueryCollateralInfoParams) (types.CollateralInfoResponse, error) {
	collateralToken, err := parseAddress("collateral token", params.CollateralToken)
	if err != nil {
		return types.CollateralInfoResponse{}, err
	}

	info, err := k.store.GetCollateralInfo(collateralToken)
	if err != nil {
		return types.CollateralInfoResponse{}, err
	}
	return types.NewCollateralInfoResponse(info), nil
}

// UpdateConfig applies the overrides in msg when it is sent by the owner
func (k Keeper) UpdateConfig(msg types.MsgUpdateConfig) (types.ConfigResponse, error) {
	sender, err := msg.GetSender()
	if err != nil {
		return types.ConfigResponse{}, err
	}

	config, err := k.store.GetConfig()
	if err != nil {
		return types.ConfigResponse{}, err
	}
	if !sender.Equals(config.Owner) {
		k.logger.Warn().Str("sender", sender.String()).Msg("rejected config update from non owner")
		return types.ConfigResponse{}, sdkerrors.Wrapf(types.ErrUnauthorized, "%s is not the owner", sender)
	}

	updated, err := msg.Apply(config)
	if err != nil {
		return types.ConfigResponse{}, err
	}
	if err := updated.Validate(); err != nil {
		return types.ConfigResponse{}, err
	}
	if err := k.store.SetConfig(updated); err != nil {
		return types.ConfigResponse{}, err
	}

	k.logger.Info().
		Str("owner", updated.Owner.String()).
		Str("safe_ratio", updated.SafeRatio.String()).
		Str("bid_fee", updated.BidFee.String()).
		Str("liquidation_threshold", updated.LiquidationThreshold.String()).
		Msg("config updated")

	return types.NewConfigResponse(updated), nil
}

// ExportGenesis dumps the ledger
func (k Keeper) ExportGenesis() (types.GenesisState, error) {
	return k.store.ExportGenesis()
}

// Ping checks the ledger is readable
func (k Keeper) Ping() error {
	_, err := k.store.GetConfig()
	return err
}

func parseAddress(field, bech32 string) (sdk.AccAddress, error) {
	addr, err := sdk.AccAddressFromBech32(bech32)
	if err != nil {
		return nil, sdkerrors.Wrapf(types.ErrInvalidAddress, "%s %q: %s", field, bech32, err)
	}
	return addr, nil
}
