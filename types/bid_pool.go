package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// CollateralInfo is registered once per collateral token
type CollateralInfo struct {
	CollateralToken sdk.AccAddress `json:"collateral_token"`
	// number of premium slots, slots are indexed 0..MaxSlot-1
	MaxSlot            uint8   `json:"max_slot"`
	PremiumRatePerSlot sdk.Dec `json:"premium_rate_per_slot"`
	// minimum total bid amount across slots before bids activate
	BidThreshold sdk.Int `json:"bid_threshold"`
}

// PoolSnapshot is the scaled balance state of a bid pool. Bids record the
// values at the time they last changed and their share of liquidated
// collateral is the delta against the pool's current values, so a
// liquidation never has to visit individual bids.
//
// Product decays on every liquidation that consumes the pool, Sum grows by
// the collateral distributed per unit of bid, Epoch rolls over when the pool
// is emptied and Scale rolls over when Product is about to lose precision.
type PoolSnapshot struct {
	Product sdk.Dec `json:"product_snapshot"`
	Sum     sdk.Dec `json:"sum_snapshot"`
	Epoch   uint64  `json:"epoch"`
	Scale   uint64  `json:"scale"`
}

// NewPoolSnapshot returns the snapshot of a pool that was never liquidated
func NewPoolSnapshot() PoolSnapshot {
	return PoolSnapshot{
		Product: sdk.OneDec(),
		Sum:     sdk.ZeroDec(),
		Epoch:   0,
		Scale:   0,
	}
}

// NotAfter reports whether s was taken no later than other, comparing epoch
// first and scale within an epoch
func (s PoolSnapshot) NotAfter(other PoolSnapshot) bool {
	if s.Epoch != other.Epoch {
		return s.Epoch < other.Epoch
	}
	return s.Scale <= other.Scale
}

// BidPool aggregates the bids placed on one premium slot of a collateral
type BidPool struct {
	SumSnapshot     sdk.Dec `json:"sum_snapshot"`
	ProductSnapshot sdk.Dec `json:"product_snapshot"`
	TotalBidAmount  sdk.Int `json:"total_bid_amount"`
	PremiumRate     sdk.Dec `json:"premium_rate"`
	CurrentEpoch    uint64  `json:"current_epoch"`
	CurrentScale    uint64  `json:"current_scale"`
}

// NewBidPool returns an empty pool for a premium rate
func NewBidPool(premiumRate sdk.Dec) BidPool {
	snapshot := NewPoolSnapshot()
	return BidPool{
		SumSnapshot:     snapshot.Sum,
		ProductSnapshot: snapshot.Product,
		TotalBidAmount:  sdk.ZeroInt(),
		PremiumRate:     premiumRate,
		CurrentEpoch:    snapshot.Epoch,
		CurrentScale:    snapshot.Scale,
	}
}

// Snapshot returns the pool's current scaled balance values
func (p BidPool) Snapshot() PoolSnapshot {
	return PoolSnapshot{
		Product: p.ProductSnapshot,
		Sum:     p.SumSnapshot,
		Epoch:   p.CurrentEpoch,
		Scale:   p.CurrentScale,
	}
}

// HasLiquidity is false for pools that cannot absorb any collateral
func (p BidPool) HasLiquidity() bool {
	return !p.TotalBidAmount.IsNil() && p.TotalBidAmount.IsPositive()
}
