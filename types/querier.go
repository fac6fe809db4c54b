package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// QueryLiquidationAmountParams asks how much collateral must be liquidated
type QueryLiquidationAmountParams struct {
	BorrowAmount     sdk.Int     `json:"borrow_amount"`
	BorrowLimit      sdk.Int     `json:"borrow_limit"`
	StableDenom      string      `json:"stable_denom"`
	Collaterals      TokensHuman `json:"collaterals"`
	CollateralPrices []sdk.Dec   `json:"collateral_prices"`
}

// QueryBidParams looks up a bid by index
type QueryBidParams struct {
	BidIdx uint64 `json:"bid_idx"`
}

// QueryBidPoolParams looks up one premium slot of a collateral
type QueryBidPoolParams struct {
	CollateralToken string `json:"collateral_token"`
	BidSlot         uint8  `json:"bid_slot"`
}

// QueryCollateralInfoParams looks up a registered collateral
type QueryCollateralInfoParams struct {
	CollateralToken string `json:"collateral_token"`
}

// QueryBidsByUserParams pages through a bidder's bids on one collateral
type QueryBidsByUserParams struct {
	CollateralToken string  `json:"collateral_token"`
	Bidder          string  `json:"bidder"`
	StartAfter      *uint64 `json:"start_after"`
	Limit           uint8   `json:"limit"`
}

// QueryBidPoolsParams pages through the premium slots of one collateral
type QueryBidPoolsParams struct {
	CollateralToken string `json:"collateral_token"`
	StartAfter      *uint8 `json:"start_after"`
	Limit           uint8  `json:"limit"`
}

type ConfigResponse struct {
	Owner                string  `json:"owner"`
	OracleContract       string  `json:"oracle_contract"`
	StableDenom          string  `json:"stable_denom"`
	SafeRatio            sdk.Dec `json:"safe_ratio"`
	BidFee               sdk.Dec `json:"bid_fee"`
	MinLiquidation       sdk.Int `json:"min_liquidation"`
	LiquidationThreshold sdk.Int `json:"liquidation_threshold"`
	PriceTimeframe       uint64  `json:"price_timeframe"`
	WaitingPeriod        uint64  `json:"waiting_period"`
}

type LiquidationAmountResponse struct {
	Collaterals TokensHuman `json:"collaterals"`
}

type CollateralInfoResponse struct {
	CollateralToken    string  `json:"collateral_token"`
	MaxSlot            uint8   `json:"max_slot"`
	PremiumRatePerSlot sdk.Dec `json:"premium_rate_per_slot"`
	BidThreshold       sdk.Int `json:"bid_threshold"`
}

type BidResponse struct {
	Idx                         uint64  `json:"idx"`
	CollateralToken             string  `json:"collateral_token"`
	Bidder                      string  `json:"bidder"`
	Amount                      sdk.Int `json:"amount"`
	PremiumSlot                 uint8   `json:"premium_slot"`
	PendingLiquidatedCollateral sdk.Int `json:"pending_liquidated_collateral"`
	ProductSnapshot             sdk.Dec `json:"product_snapshot"`
	SumSnapshot                 sdk.Dec `json:"sum_snapshot"`
	WaitEnd                     *uint64 `json:"wait_end"`
	EpochSnapshot               uint64  `json:"epoch_snapshot"`
	ScaleSnapshot               uint64  `json:"scale_snapshot"`
}

type BidsResponse struct {
	Bids []BidResponse `json:"bids"`
}

type BidPoolResponse struct {
	Slot            uint8   `json:"slot"`
	SumSnapshot     sdk.Dec `json:"sum_snapshot"`
	ProductSnapshot sdk.Dec `json:"product_snapshot"`
	TotalBidAmount  sdk.Int `json:"total_bid_amount"`
	PremiumRate     sdk.Dec `json:"premium_rate"`
	CurrentEpoch    uint64  `json:"current_epoch"`
	CurrentScale    uint64  `json:"current_scale"`
}

type BidPoolsResponse struct {
	BidPools []BidPoolResponse `json:"bid_pools"`
}

// NewConfigResponse renders a config with bech32 addresses
func NewConfigResponse(c Config) ConfigResponse {
	return ConfigResponse{
		Owner:                c.Owner.String(),
		OracleContract:       c.OracleContract.String(),
		StableDenom:          c.StableDenom,
		SafeRatio:            c.SafeRatio,
		BidFee:               c.BidFee,
		MinLiquidation:       c.MinLiquidation,
		LiquidationThreshold: c.LiquidationThreshold,
		PriceTimeframe:       c.PriceTimeframe,
		WaitingPeriod:        c.WaitingPeriod,
	}
}

func NewCollateralInfoResponse(info CollateralInfo) CollateralInfoResponse {
	return CollateralInfoResponse{
		CollateralToken:    info.CollateralToken.String(),
		MaxSlot:            info.MaxSlot,
		PremiumRatePerSlot: info.PremiumRatePerSlot,
		BidThreshold:       info.BidThreshold,
	}
}

func NewBidResponse(bid Bid) BidResponse {
	return BidResponse{
		Idx:                         bid.Idx,
		CollateralToken:             bid.CollateralToken.String(),
		Bidder:                      bid.Bidder.String(),
		Amount:                      bid.Amount,
		PremiumSlot:                 bid.PremiumSlot,
		PendingLiquidatedCollateral: bid.PendingLiquidatedCollateral,
		ProductSnapshot:             bid.ProductSnapshot,
		SumSnapshot:                 bid.SumSnapshot,
		WaitEnd:                     bid.WaitEnd,
		EpochSnapshot:               bid.EpochSnapshot,
		ScaleSnapshot:               bid.ScaleSnapshot,
	}
}

func NewBidPoolResponse(slot uint8, pool BidPool) BidPoolResponse {
	return BidPoolResponse{
		Slot:            slot,
		SumSnapshot:     pool.SumSnapshot,
		ProductSnapshot: pool.ProductSnapshot,
		TotalBidAmount:  pool.TotalBidAmount,
		PremiumRate:     pool.PremiumRate,
		CurrentEpoch:    pool.CurrentEpoch,
		CurrentScale:    pool.CurrentScale,
	}
}
