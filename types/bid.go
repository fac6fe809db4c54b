package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Bid is a single bidder's standing offer on one premium slot
type Bid struct {
	Idx                         uint64         `json:"idx"`
	CollateralToken             sdk.AccAddress `json:"collateral_token"`
	Bidder                      sdk.AccAddress `json:"bidder"`
	Amount                      sdk.Int        `json:"amount"`
	PremiumSlot                 uint8          `json:"premium_slot"`
	PendingLiquidatedCollateral sdk.Int        `json:"pending_liquidated_collateral"`
	ProductSnapshot             sdk.Dec        `json:"product_snapshot"`
	SumSnapshot                 sdk.Dec        `json:"sum_snapshot"`
	EpochSnapshot               uint64         `json:"epoch_snapshot"`
	ScaleSnapshot               uint64         `json:"scale_snapshot"`
	// unix seconds before which the bid does not participate, nil once active
	WaitEnd *uint64 `json:"wait_end"`
}

// Snapshot returns the pool values captured when the bid last changed
func (b Bid) Snapshot() PoolSnapshot {
	return PoolSnapshot{
		Product: b.ProductSnapshot,
		Sum:     b.SumSnapshot,
		Epoch:   b.EpochSnapshot,
		Scale:   b.ScaleSnapshot,
	}
}
