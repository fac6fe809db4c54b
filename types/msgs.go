package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MsgUpdateConfig overrides any subset of the config. Nil fields are left unchanged.
type MsgUpdateConfig struct {
	Sender               string   `json:"sender"`
	Owner                *string  `json:"owner"`
	OracleContract       *string  `json:"oracle_contract"`
	SafeRatio            *sdk.Dec `json:"safe_ratio"`
	BidFee               *sdk.Dec `json:"bid_fee"`
	MinLiquidation       *sdk.Int `json:"min_liquidation"`
	LiquidationThreshold *sdk.Int `json:"liquidation_threshold"`
	PriceTimeframe       *uint64  `json:"price_timeframe"`
	WaitingPeriod        *uint64  `json:"waiting_period"`
}

// GetSender decodes the sender address
func (msg MsgUpdateConfig) GetSender() (sdk.AccAddress, error) {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, sdkerrors.Wrapf(ErrInvalidAddress, "sender %q: %s", msg.Sender, err)
	}
	return sender, nil
}

// Apply returns a copy of config with the message's overrides. The result is
// not validated.
func (msg MsgUpdateConfig) Apply(config Config) (Config, error) {
	if msg.Owner != nil {
		owner, err := sdk.AccAddressFromBech32(*msg.Owner)
		if err != nil {
			return Config{}, sdkerrors.Wrapf(ErrInvalidAddress, "owner %q: %s", *msg.Owner, err)
		}
		config.Owner = owner
	}
	if msg.OracleContract != nil {
		oracle, err := sdk.AccAddressFromBech32(*msg.OracleContract)
		if err != nil {
			return Config{}, sdkerrors.Wrapf(ErrInvalidAddress, "oracle contract %q: %s", *msg.OracleContract, err)
		}
		config.OracleContract = oracle
	}
	if msg.SafeRatio != nil {
		config.SafeRatio = *msg.SafeRatio
	}
	if msg.BidFee != nil {
		config.BidFee = *msg.BidFee
	}
	if msg.MinLiquidation != nil {
		config.MinLiquidation = *msg.MinLiquidation
	}
	if msg.LiquidationThreshold != nil {
		config.LiquidationThreshold = *msg.LiquidationThreshold
	}
	if msg.PriceTimeframe != nil {
		config.PriceTimeframe = *msg.PriceTimeframe
	}
	if msg.WaitingPeriod != nil {
		config.WaitingPeriod = *msg.WaitingPeriod
	}
	return config, nil
}
