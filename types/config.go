package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Config holds the parameters of one liquidation queue deployment
type Config struct {
	Owner          sdk.AccAddress `json:"owner"`
	OracleContract sdk.AccAddress `json:"oracle_contract"`
	StableDenom    string         `json:"stable_denom"`
	// borrow_amount / borrow_limit above which a position is liquidated
	SafeRatio sdk.Dec `json:"safe_ratio"`
	// fraction of liquidation proceeds kept by the protocol
	BidFee sdk.Dec `json:"bid_fee"`
	// liquidated entries worth less than this (in stable denom) are left out of a partial liquidation
	MinLiquidation sdk.Int `json:"min_liquidation"`
	// when the collateral value is below this, the whole debt is repaid
	LiquidationThreshold sdk.Int `json:"liquidation_threshold"`
	// seconds an oracle price stays valid
	PriceTimeframe uint64 `json:"price_timeframe"`
	// seconds a bid waits before it is activated
	WaitingPeriod uint64 `json:"waiting_period"`
}

// Validate checks the config is usable by the liquidation engine
func (c Config) Validate() error {
	if c.Owner.Empty() {
		return sdkerrors.Wrap(ErrInvalidInput, "owner cannot be empty")
	}
	if err := sdk.ValidateDenom(c.StableDenom); err != nil {
		return sdkerrors.Wrapf(ErrInvalidInput, "stable denom: %s", err)
	}
	if err := validateFraction("safe ratio", c.SafeRatio); err != nil {
		return err
	}
	if err := validateFraction("bid fee", c.BidFee); err != nil {
		return err
	}
	if c.MinLiquidation.IsNil() || c.MinLiquidation.IsNegative() {
		return sdkerrors.Wrapf(ErrInvalidInput, "min liquidation must be non-negative, got %s", c.MinLiquidation)
	}
	if c.LiquidationThreshold.IsNil() || c.LiquidationThreshold.IsNegative() {
		return sdkerrors.Wrapf(ErrInvalidInput, "liquidation threshold must be non-negative, got %s", c.LiquidationThreshold)
	}
	return nil
}

// validateFraction ensures 0 <= d < 1
func validateFraction(name string, d sdk.Dec) error {
	if d.IsNil() {
		return sdkerrors.Wrapf(ErrInvalidInput, "%s cannot be empty", name)
	}
	if d.IsNegative() || d.GTE(sdk.OneDec()) {
		return sdkerrors.Wrapf(ErrInvalidInput, "%s must be in [0, 1), got %s", name, d)
	}
	return nil
}
