package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// BidPoolEntry is a bid pool together with its position in the ledger
type BidPoolEntry struct {
	CollateralToken sdk.AccAddress `json:"collateral_token"`
	Slot            uint8          `json:"slot"`
	BidPool         BidPool        `json:"bid_pool"`
}

// GenesisState is the full ledger content, used to seed and export a store
type GenesisState struct {
	Config      Config           `json:"config"`
	Collaterals []CollateralInfo `json:"collaterals"`
	BidPools    []BidPoolEntry   `json:"bid_pools"`
	Bids        []Bid            `json:"bids"`
}

// Validate checks the ledger invariants the liquidation engine relies on
func (gs GenesisState) Validate() error {
	if err := gs.Config.Validate(); err != nil {
		return err
	}

	collaterals := make(map[string]CollateralInfo, len(gs.Collaterals))
	for _, info := range gs.Collaterals {
		if info.CollateralToken.Empty() {
			return sdkerrors.Wrap(ErrInvalidInput, "collateral token cannot be empty")
		}
		key := string(info.CollateralToken)
		if _, found := collaterals[key]; found {
			return sdkerrors.Wrapf(ErrInvalidInput, "collateral %s registered twice", info.CollateralToken)
		}
		if info.PremiumRatePerSlot.IsNil() || info.PremiumRatePerSlot.IsNegative() {
			return sdkerrors.Wrapf(ErrInvalidInput, "collateral %s premium rate per slot must be non-negative", info.CollateralToken)
		}
		if info.BidThreshold.IsNil() || info.BidThreshold.IsNegative() {
			return sdkerrors.Wrapf(ErrInvalidInput, "collateral %s bid threshold must be non-negative", info.CollateralToken)
		}
		collaterals[key] = info
	}

	// bid pools per collateral indexed by slot
	pools := make(map[string]map[uint8]BidPool)
	for _, gp := range gs.BidPools {
		info, found := collaterals[string(gp.CollateralToken)]
		if !found {
			return sdkerrors.Wrapf(ErrInvalidInput, "bid pool for unregistered collateral %s", gp.CollateralToken)
		}
		if gp.Slot >= info.MaxSlot {
			return sdkerrors.Wrapf(ErrInvalidInput, "bid pool slot %d out of range for collateral %s (max slot %d)", gp.Slot, gp.CollateralToken, info.MaxSlot)
		}
		pool := gp.BidPool
		if pool.TotalBidAmount.IsNil() || pool.TotalBidAmount.IsNegative() {
			return sdkerrors.Wrapf(ErrInvalidInput, "bid pool %s/%d total bid amount must be non-negative", gp.CollateralToken, gp.Slot)
		}
		if pool.PremiumRate.IsNil() || pool.PremiumRate.IsNegative() || pool.PremiumRate.GTE(sdk.OneDec()) {
			return sdkerrors.Wrapf(ErrInvalidInput, "bid pool %s/%d premium rate must be in [0, 1)", gp.CollateralToken, gp.Slot)
		}
		if pool.SumSnapshot.IsNil() || pool.ProductSnapshot.IsNil() {
			return sdkerrors.Wrapf(ErrInvalidInput, "bid pool %s/%d snapshots cannot be empty", gp.CollateralToken, gp.Slot)
		}
		slots, ok := pools[string(gp.CollateralToken)]
		if !ok {
			slots = make(map[uint8]BidPool)
			pools[string(gp.CollateralToken)] = slots
		}
		if _, dup := slots[gp.Slot]; dup {
			return sdkerrors.Wrapf(ErrInvalidInput, "bid pool %s/%d defined twice", gp.CollateralToken, gp.Slot)
		}
		slots[gp.Slot] = pool
	}

	// premium rate must strictly increase with the slot index
	for token, slots := range pools {
		var previous *sdk.Dec
		for slot := 0; slot < 256; slot++ {
			pool, ok := slots[uint8(slot)]
			if !ok {
				continue
			}
			if previous != nil && !pool.PremiumRate.GT(*previous) {
				return sdkerrors.Wrapf(ErrInvalidInput, "bid pool %s/%d premium rate %s does not increase", sdk.AccAddress(token), slot, pool.PremiumRate)
			}
			rate := pool.PremiumRate
			previous = &rate
		}
	}

	seen := make(map[uint64]bool, len(gs.Bids))
	for _, bid := range gs.Bids {
		if seen[bid.Idx] {
			return sdkerrors.Wrapf(ErrInvalidInput, "bid %d defined twice", bid.Idx)
		}
		seen[bid.Idx] = true

		info, found := collaterals[string(bid.CollateralToken)]
		if !found {
			return sdkerrors.Wrapf(ErrInvalidInput, "bid %d on unregistered collateral %s", bid.Idx, bid.CollateralToken)
		}
		if bid.PremiumSlot >= info.MaxSlot {
			return sdkerrors.Wrapf(ErrInvalidInput, "bid %d slot %d out of range (max slot %d)", bid.Idx, bid.PremiumSlot, info.MaxSlot)
		}
		if bid.Bidder.Empty() {
			return sdkerrors.Wrapf(ErrInvalidInput, "bid %d has no bidder", bid.Idx)
		}
		if bid.Amount.IsNil() || bid.Amount.IsNegative() {
			return sdkerrors.Wrapf(ErrInvalidInput, "bid %d amount must be non-negative", bid.Idx)
		}
		if bid.PendingLiquidatedCollateral.IsNil() || bid.PendingLiquidatedCollateral.IsNegative() {
			return sdkerrors.Wrapf(ErrInvalidInput, "bid %d pending collateral must be non-negative", bid.Idx)
		}
		if bid.ProductSnapshot.IsNil() || bid.SumSnapshot.IsNil() {
			return sdkerrors.Wrapf(ErrInvalidInput, "bid %d snapshots cannot be empty", bid.Idx)
		}
		// a bid cannot have seen a pool state the pool has not reached yet
		if pool, ok := pools[string(bid.CollateralToken)][bid.PremiumSlot]; ok {
			if !bid.Snapshot().NotAfter(pool.Snapshot()) {
				return sdkerrors.Wrapf(ErrInvalidInput, "bid %d snapshot is ahead of its pool", bid.Idx)
			}
		}
	}

	return nil
}
